// Package correlate pairs one cycle's prematch and live event
// collections into a single match set.
package correlate

import (
	"time"

	"github.com/okian/matchpoint/internal/domain/similarity"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithThreshold sets the fuzzy acceptance threshold in (0,1]. Pairings
// scoring below it are never emitted by the fuzzy pass.
func WithThreshold(threshold float64) Option {
	return func(e *Engine) {
		if threshold > 0 && threshold <= 1 {
			e.threshold = threshold
		}
	}
}

// WithWindow sets the plausible-context window: the maximum start-time
// distance at which two events are still considered fuzzy candidates.
func WithWindow(window time.Duration) Option {
	return func(e *Engine) {
		if window > 0 {
			e.window = window
		}
	}
}

// WithScorer replaces the default name scorer.
func WithScorer(scorer similarity.Scorer) Option {
	return func(e *Engine) {
		if scorer != nil {
			e.scorer = scorer
		}
	}
}
