package fetch

import (
	"net/http"

	"golang.org/x/time/rate"
)

// clientConfig holds the knobs shared by both provider clients.
type clientConfig struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option applies a configuration option to a provider client.
type Option func(*clientConfig)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) {
		if c != nil {
			cfg.httpClient = c
		}
	}
}

// WithRateLimit caps requests per second against the upstream.
func WithRateLimit(rps float64) Option {
	return func(cfg *clientConfig) {
		if rps > 0 {
			cfg.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func newClientConfig(opts ...Option) clientConfig {
	cfg := clientConfig{
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
