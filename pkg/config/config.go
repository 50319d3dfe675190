package config

import "time"

// Defaults applied by Options.Resolve when a field is left unset.
const (
	DefaultMaxDepth       = 2
	DefaultTimeoutMillis  = 10000
	DefaultPreventOutside = true
)

// Options holds the optional settings for one load run. Pointer fields
// distinguish "unset" from an explicit zero (max_depth: 0 means root only).
type Options struct {
	ExcludeDirs    []string `yaml:"exclude_dirs,omitempty"`
	MaxDepth       *int     `yaml:"max_depth,omitempty"`
	TimeoutMillis  *int64   `yaml:"timeout_ms,omitempty"`
	PreventOutside *bool    `yaml:"prevent_outside,omitempty"`
}

// Resolved is the immutable effective configuration for one load run, with
// all defaults applied.
type Resolved struct {
	RootURL        string
	ExcludeDirs    []string
	MaxDepth       int
	Timeout        time.Duration
	PreventOutside bool
}
