// Package similarity computes bounded similarity scores between
// normalized participant-name pairs from the two providers.
package similarity

// Option applies a configuration option to the NameScorer.
type Option func(*NameScorer)

// WithoutLevenshtein disables the edit-distance fallback so only token
// overlap contributes to the score. Useful when a feed abbreviates
// names so aggressively that edit distance produces false positives.
func WithoutLevenshtein() Option {
	return func(s *NameScorer) {
		s.noLevenshtein = true
	}
}
