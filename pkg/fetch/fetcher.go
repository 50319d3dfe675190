package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"webloader/pkg/utils"
)

// Fetcher retrieves the raw body of a page. Any non-success response,
// network error, or timeout surfaces as an error, never as partial content.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// HTTPFetcher implements Fetcher over a shared http.Client with a fixed
// per-request timeout. A single attempt per URL; the loader treats failures
// as "skip this node", so retrying here would only slow the traversal down.
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
	log     *logrus.Entry
}

// NewHTTPFetcher creates an HTTPFetcher with the given per-request timeout.
func NewHTTPFetcher(client *http.Client, timeout time.Duration, log *logrus.Entry) *HTTPFetcher {
	return &HTTPFetcher{
		client:  client,
		timeout: timeout,
		log:     log,
	}
}

// Fetch performs a single GET and returns the response body as a string.
// The configured timeout bounds the whole request including body read.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	reqLog := f.log.WithField("url", rawURL)

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: '%s': %w", utils.ErrRequestCreation, rawURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		reqLog.Debugf("Fetch failed: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	statusCode := resp.StatusCode
	if statusCode < 200 || statusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		reqLog.WithFields(logrus.Fields{"status_code": statusCode, "status": resp.Status}).Debug("Non-success status")
		switch {
		case statusCode >= 500:
			return "", fmt.Errorf("%w: status %d %s", utils.ErrServerHTTPError, statusCode, resp.Status)
		case statusCode >= 400:
			return "", fmt.Errorf("%w: status %d %s", utils.ErrClientHTTPError, statusCode, resp.Status)
		default:
			return "", fmt.Errorf("%w: status %d %s", utils.ErrOtherHTTPError, statusCode, resp.Status)
		}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body from '%s': %w", utils.ErrResponseBodyRead, rawURL, err)
	}

	reqLog.Debugf("Fetched %d bytes", len(bodyBytes))
	return string(bodyBytes), nil
}
