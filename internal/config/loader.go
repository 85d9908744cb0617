package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if MATCHPOINT_CONFIG is set
//  3. env (prefix MATCHPOINT_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("MATCHPOINT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: MATCHPOINT_ADDR, MATCHPOINT_FUZZY_THRESHOLD, ...
	// Map env keys like MATCHPOINT_REFRESH_INTERVAL_SEC -> refresh_interval_sec
	// (flat keys). Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("MATCHPOINT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "matchpoint_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RefreshIntervalSec <= 0:
		return fmt.Errorf("%w: refresh_interval_sec must be positive", ErrInvalidConfig)
	case c.FetchTimeoutSec <= 0:
		return fmt.Errorf("%w: fetch_timeout_sec must be positive", ErrInvalidConfig)
	case c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1:
		return fmt.Errorf("%w: fuzzy_threshold must be in (0,1]", ErrInvalidConfig)
	case c.MatchWindowHours <= 0:
		return fmt.Errorf("%w: match_window_hours must be positive", ErrInvalidConfig)
	}
	return nil
}
