// Package feedsim serves both providers' JSON shapes from generated
// fixtures, so the service can run against localhost instead of the
// real upstreams.
package feedsim

import "errors"

// Config holds simulator configuration.
type Config struct {
	Addr         string  // listen address for both provider endpoints
	Matches      int     // number of fixtures to generate
	LiveFraction float64 // share of fixtures that also appear in-play
	Verbose      bool    // enable verbose logging
}

// Validation errors.
var (
	ErrNoMatches       = errors.New("matches must be positive")
	ErrBadLiveFraction = errors.New("live fraction must be within [0, 1]")
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Matches <= 0 {
		return ErrNoMatches
	}
	if c.LiveFraction < 0 || c.LiveFraction > 1 {
		return ErrBadLiveFraction
	}
	return nil
}
