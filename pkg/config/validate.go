package config

import (
	"fmt"
	"net/url"
	"time"
)

// Resolve checks the options against rootURL and applies defaults.
// Returns the effective configuration and collected warnings.
// A missing or unparseable root URL is fatal; recoverable problems
// (negative depth, non-positive timeout) warn and fall back to defaults.
func (o Options) Resolve(rootURL string) (Resolved, []string, error) {
	var warnings []string

	if rootURL == "" {
		return Resolved{}, nil, fmt.Errorf("root URL is required")
	}
	parsed, err := url.ParseRequestURI(rootURL)
	if err != nil {
		return Resolved{}, nil, fmt.Errorf("invalid root URL '%s': %w", rootURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Resolved{}, nil, fmt.Errorf("root URL '%s' must use http or https, got '%s'", rootURL, parsed.Scheme)
	}

	r := Resolved{
		RootURL:        rootURL,
		ExcludeDirs:    o.ExcludeDirs,
		MaxDepth:       DefaultMaxDepth,
		Timeout:        DefaultTimeoutMillis * time.Millisecond,
		PreventOutside: DefaultPreventOutside,
	}

	if o.MaxDepth != nil {
		if *o.MaxDepth < 0 {
			warnings = append(warnings, fmt.Sprintf(
				"max_depth cannot be negative (%d), defaulting to %d", *o.MaxDepth, DefaultMaxDepth))
		} else {
			r.MaxDepth = *o.MaxDepth
		}
	}

	if o.TimeoutMillis != nil {
		if *o.TimeoutMillis <= 0 {
			warnings = append(warnings, fmt.Sprintf(
				"timeout_ms must be > 0 (%d), defaulting to %d", *o.TimeoutMillis, DefaultTimeoutMillis))
		} else {
			r.Timeout = time.Duration(*o.TimeoutMillis) * time.Millisecond
		}
	}

	if o.PreventOutside != nil {
		r.PreventOutside = *o.PreventOutside
	}

	for _, dir := range o.ExcludeDirs {
		if dir == "" {
			warnings = append(warnings, "exclude_dirs contains an empty prefix; it matches every URL and will prune the whole crawl")
		}
	}

	return r, warnings, nil
}
