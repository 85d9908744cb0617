// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RefreshIntervalSec is the cadence of correlation cycles.
	RefreshIntervalSec int `koanf:"refresh_interval_sec"`

	// FetchTimeoutSec bounds each upstream fetch within a cycle.
	FetchTimeoutSec int `koanf:"fetch_timeout_sec"`

	// FuzzyThreshold is the acceptance threshold for the fuzzy name
	// tier, in (0,1].
	FuzzyThreshold float64 `koanf:"fuzzy_threshold"`

	// MatchWindowHours is the plausible-context window: fuzzy
	// candidates must start within this many hours of each other.
	MatchWindowHours int `koanf:"match_window_hours"`

	// PrematchBaseURL and PrematchToken configure the prematch feed.
	PrematchBaseURL string `koanf:"prematch_base_url"`
	PrematchToken   string `koanf:"prematch_token"`

	// LiveBaseURL and LiveToken configure the in-play feed.
	LiveBaseURL string `koanf:"live_base_url"`
	LiveToken   string `koanf:"live_token"`

	// FetchRateLimit caps upstream requests per second per source.
	FetchRateLimit float64 `koanf:"fetch_rate_limit"`
}

// New creates a Config populated with defaults. The refresh cadence
// and fuzzy policy defaults match the documented service behavior.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8000",
		RefreshIntervalSec: 60,
		FetchTimeoutSec:    15,
		FuzzyThreshold:     0.75,
		MatchWindowHours:   24,
		PrematchBaseURL:    "https://api.b365api.example",
		LiveBaseURL:        "https://tennis-live.example",
		FetchRateLimit:     2,
	}
}
