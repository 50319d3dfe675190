package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"webloader/pkg/config"
	"webloader/pkg/parse"
)

// LinkExtractor finds the outbound links of a page and filters them against
// the configured crawl rules.
type LinkExtractor struct {
	excludeDirs    []string
	preventOutside bool
	log            *logrus.Entry
}

// NewLinkExtractor creates a LinkExtractor from the resolved configuration.
func NewLinkExtractor(cfg config.Resolved, log *logrus.Entry) *LinkExtractor {
	return &LinkExtractor{
		excludeDirs:    cfg.ExcludeDirs,
		preventOutside: cfg.PreventOutside,
		log:            log,
	}
}

// Extract returns the normalized outbound links of a page in document order.
// Links are resolved against base and kept only if they pass every filter:
// not under an excluded prefix, not a javascript:/mailto: scheme, not a
// known resource file, and (when prevent_outside is set) starting with the
// base URL string. Duplicates survive; dedup is the orchestrator's job via
// its visited set.
func (le *LinkExtractor) Extract(rawHTML string, base *url.URL) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	baseStr := base.String()
	var links []string
	doc.Find("a").Each(func(_ int, element *goquery.Selection) {
		href, exists := element.Attr("href")
		if !exists {
			return
		}

		link, ok := parse.ResolveHref(base, href)
		if !ok {
			le.log.Debugf("Dropping unresolvable href '%s'", href)
			return
		}

		for _, dir := range le.excludeDirs {
			if strings.HasPrefix(link, dir) {
				return
			}
		}
		if parse.IsNonNavScheme(link) {
			return
		}
		if parse.IsResourceFile(link) {
			return
		}
		// Containment is a literal string-prefix check against the page
		// being parsed, not the crawl root.
		if le.preventOutside && !strings.HasPrefix(link, baseStr) {
			return
		}

		links = append(links, link)
	})

	return links
}
