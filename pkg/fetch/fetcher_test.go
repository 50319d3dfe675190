package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"webloader/pkg/utils"
)

// testLogger returns a logger entry that discards output
func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func TestFetch_Success(t *testing.T) {
	const body = "<html><body>Hello</body></html>"
	attempts := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	fetcher := NewHTTPFetcher(server.Client(), 5*time.Second, testLogger())

	got, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got != body {
		t.Errorf("expected body %q, got %q", body, got)
	}
	if attempts.Load() != 1 {
		t.Errorf("expected exactly 1 request, got %d", attempts.Load())
	}
}

func TestFetch_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErrIs  error
	}{
		{"404 Not Found", http.StatusNotFound, utils.ErrClientHTTPError},
		{"403 Forbidden", http.StatusForbidden, utils.ErrClientHTTPError},
		{"500 Internal Server Error", http.StatusInternalServerError, utils.ErrServerHTTPError},
		{"503 Service Unavailable", http.StatusServiceUnavailable, utils.ErrServerHTTPError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				io.WriteString(w, "error page body")
			}))
			t.Cleanup(server.Close)

			fetcher := NewHTTPFetcher(server.Client(), 5*time.Second, testLogger())

			got, err := fetcher.Fetch(context.Background(), server.URL)
			if err == nil {
				t.Fatal("expected error for non-success status")
			}
			if !errors.Is(err, tt.wantErrIs) {
				t.Errorf("expected %v, got: %v", tt.wantErrIs, err)
			}
			if got != "" {
				t.Errorf("expected empty body on failure, got %q", got)
			}
		})
	}
}

func TestFetch_NoRetry(t *testing.T) {
	// A single failed attempt must not be retried.
	attempts := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	fetcher := NewHTTPFetcher(server.Client(), 5*time.Second, testLogger())

	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error")
	}
	if attempts.Load() != 1 {
		t.Errorf("expected exactly 1 attempt (no retry), got %d", attempts.Load())
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	fetcher := NewHTTPFetcher(server.Client(), 50*time.Millisecond, testLogger())

	start := time.Now()
	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got: %v", err)
	}
}

func TestFetch_ContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	fetcher := NewHTTPFetcher(server.Client(), 10*time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := fetcher.Fetch(ctx, server.URL)
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	fetcher := NewHTTPFetcher(http.DefaultClient, time.Second, testLogger())

	_, err := fetcher.Fetch(context.Background(), "http://exa mple.com/")
	if err == nil {
		t.Fatal("expected error for malformed URL")
	}
	if !errors.Is(err, utils.ErrRequestCreation) {
		t.Errorf("expected ErrRequestCreation, got: %v", err)
	}
}
