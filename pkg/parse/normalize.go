package parse

import (
	"net/url"
	"strings"
)

// resourceExtensions are suffixes of links that point at page assets rather
// than navigable pages. Links ending in one of these are never fetched.
var resourceExtensions = []string{
	".css", ".js", ".ico", ".png", ".jpg", ".jpeg", ".gif", ".svg",
}

// ResolveHref normalizes an href found on a page to an absolute URL string:
// absolute http(s) hrefs pass through unchanged, protocol-relative hrefs
// inherit the base scheme, everything else is resolved against base with
// standard URL-join semantics (relative paths, "..", fragments, queries).
// Returns false for hrefs that cannot be resolved.
func ResolveHref(base *url.URL, href string) (string, bool) {
	if strings.HasPrefix(href, "http") {
		return href, true
	}
	if strings.HasPrefix(href, "//") {
		return base.Scheme + ":" + href, true
	}
	resolved, err := base.Parse(href)
	if err != nil {
		return "", false
	}
	return resolved.String(), true
}

// DirectoryForm appends a trailing slash if rawURL does not already end with
// one. The slashed form is what the loader fetches and matches exclusions
// against when expanding a URL as a directory.
func DirectoryForm(rawURL string) string {
	if strings.HasSuffix(rawURL, "/") {
		return rawURL
	}
	return rawURL + "/"
}

// IsResourceFile reports whether link ends in a known non-page resource
// extension.
func IsResourceFile(link string) bool {
	for _, ext := range resourceExtensions {
		if strings.HasSuffix(link, ext) {
			return true
		}
	}
	return false
}

// IsNonNavScheme reports whether link uses a scheme that never leads to a
// fetchable page (javascript: handlers, mailto: addresses).
func IsNonNavScheme(link string) bool {
	return strings.HasPrefix(link, "javascript:") || strings.HasPrefix(link, "mailto:")
}
