package loader

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"webloader/pkg/config"
	"webloader/pkg/extract"
	"webloader/pkg/fetch"
	"webloader/pkg/models"
	"webloader/pkg/parse"
	"webloader/pkg/utils"
)

// Loader drives the depth-limited recursive traversal for one configured
// seed URL and aggregates the extracted documents.
type Loader struct {
	log     *logrus.Entry // Logger contextualized with run_id and root_url
	cfg     config.Resolved
	fetcher fetch.Fetcher
	links   *extract.LinkExtractor
	runID   string

	// Counters for the stats snapshot. The traversal itself is strictly
	// sequential; atomics only make concurrent Stats polling safe.
	pagesLoaded    atomic.Int64
	fetchFailures  atomic.Int64
	duplicateLinks atomic.Int64
	failureCatsMu  sync.Mutex
	failureCats    map[string]int64
}

// Stats is a snapshot of a loader's progress counters. Failure counts never
// influence the result; a failed node simply contributes no documents.
type Stats struct {
	RunID              string
	PagesLoaded        int64
	FetchFailures      int64
	DuplicateLinks     int64
	FailuresByCategory map[string]int64
}

// New creates a Loader for one resolved configuration.
func New(cfg config.Resolved, fetcher fetch.Fetcher, baseLogger *logrus.Logger) *Loader {
	runID := uuid.New().String()
	logger := baseLogger.WithFields(logrus.Fields{"run_id": runID, "root_url": cfg.RootURL})

	return &Loader{
		log:         logger,
		cfg:         cfg,
		fetcher:     fetcher,
		links:       extract.NewLinkExtractor(cfg, logger),
		runID:       runID,
		failureCats: make(map[string]int64),
	}
}

// Load fetches the root URL and every reachable same-site descendant within
// the depth bound, returning their documents in deterministic order: root
// first, then each page's children in link-appearance order, depth-first.
// A root fetch failure yields an empty result; any other fetch failure
// removes only that node and its unexplored subtree.
func (l *Loader) Load(ctx context.Context) []models.Document {
	start := time.Now()
	l.log.WithFields(logrus.Fields{
		"max_depth":       l.cfg.MaxDepth,
		"timeout":         l.cfg.Timeout.String(),
		"prevent_outside": l.cfg.PreventOutside,
		"exclude_dirs":    len(l.cfg.ExcludeDirs),
	}).Info("Load starting")

	var docs []models.Document
	rootDoc, ok := l.fetchAsDoc(ctx, l.cfg.RootURL)
	if !ok {
		l.log.Warn("Root fetch failed; nothing to recurse from, returning empty result")
		return docs
	}
	docs = append(docs, rootDoc)

	// The visited set is owned here and threaded through every recursive
	// step. The root is marked up front; its document was already produced.
	visited := map[string]struct{}{l.cfg.RootURL: {}}
	docs = append(docs, l.expand(ctx, l.cfg.RootURL, 0, visited)...)

	l.log.WithFields(logrus.Fields{
		"documents":       len(docs),
		"fetch_failures":  l.fetchFailures.Load(),
		"duplicate_links": l.duplicateLinks.Load(),
		"duration":        time.Since(start).String(),
	}).Info("Load finished")
	return docs
}

// expand performs one recursive traversal step: fetch the directory form of
// inputURL, discover its child links, and produce a document per new child,
// recursing into children that themselves look like directories.
func (l *Loader) expand(ctx context.Context, inputURL string, depth int, visited map[string]struct{}) []models.Document {
	if depth >= l.cfg.MaxDepth {
		return nil
	}

	dirURL := parse.DirectoryForm(inputURL)
	nodeLog := l.log.WithFields(logrus.Fields{"url": dirURL, "depth": depth})

	// Exclusion pruning happens before the fetch, saving a network call
	// for a whole excluded subtree.
	for _, dir := range l.cfg.ExcludeDirs {
		if strings.HasPrefix(dirURL, dir) {
			nodeLog.Debugf("Pruning excluded subtree (prefix '%s')", dir)
			return nil
		}
	}

	body, err := l.fetcher.Fetch(ctx, dirURL)
	if err != nil {
		l.recordFetchFailure(err)
		nodeLog.Debugf("Fetch failed, skipping branch: %v", err)
		return nil
	}

	base, err := url.Parse(dirURL)
	if err != nil {
		nodeLog.Warnf("Cannot parse base URL for link extraction: %v", err)
		return nil
	}
	childURLs := l.links.Extract(body, base)
	nodeLog.Debugf("Discovered %d child links", len(childURLs))

	var results []models.Document
	for _, childURL := range childURLs {
		if _, seen := visited[childURL]; seen {
			l.duplicateLinks.Add(1)
			continue
		}
		// Mark before fetching so the same URL is never queued twice,
		// even when it reappears nested under itself.
		visited[childURL] = struct{}{}

		childDoc, ok := l.fetchAsDoc(ctx, childURL)
		if !ok {
			continue
		}
		results = append(results, childDoc)

		// Only directory-like children (literal trailing slash) are
		// expanded further; resource-like URLs still yield a document
		// but cap the fan-out here.
		if strings.HasSuffix(childURL, "/") {
			results = append(results, l.expand(ctx, childURL, depth+1, visited)...)
		}
	}
	return results
}

// fetchAsDoc fetches a URL and turns the raw markup into a Document.
// Failures are recorded and reported as !ok, never propagated.
func (l *Loader) fetchAsDoc(ctx context.Context, rawURL string) (models.Document, bool) {
	body, err := l.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		l.recordFetchFailure(err)
		l.log.WithField("url", rawURL).Debugf("Fetch failed: %v", err)
		return models.Document{}, false
	}

	doc := models.Document{
		PageContent: extract.Content(body),
		Metadata:    extract.Metadata(body, rawURL),
	}
	l.pagesLoaded.Add(1)
	return doc, true
}

func (l *Loader) recordFetchFailure(err error) {
	l.fetchFailures.Add(1)
	category := utils.CategorizeError(err)

	l.failureCatsMu.Lock()
	l.failureCats[category]++
	l.failureCatsMu.Unlock()
}

// Stats returns a snapshot of the loader's counters.
func (l *Loader) Stats() Stats {
	l.failureCatsMu.Lock()
	categories := make(map[string]int64, len(l.failureCats))
	for category, count := range l.failureCats {
		categories[category] = count
	}
	l.failureCatsMu.Unlock()

	return Stats{
		RunID:              l.runID,
		PagesLoaded:        l.pagesLoaded.Load(),
		FetchFailures:      l.fetchFailures.Load(),
		DuplicateLinks:     l.duplicateLinks.Load(),
		FailuresByCategory: categories,
	}
}
