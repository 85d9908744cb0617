// Package similarity computes bounded similarity scores between
// normalized participant-name pairs from the two providers.
package similarity

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/okian/matchpoint/internal/domain/names"
)

// Pair is one side's normalized home/away participant names.
type Pair struct {
	Home string
	Away string
}

// Scorer computes a pairwise similarity score in [0,1].
type Scorer interface {
	// Pair scores two name pairs, evaluating both the aligned and the
	// home/away-swapped orientation and returning the higher score.
	// swapped reports whether the swapped orientation won.
	Pair(a, b Pair) (score float64, swapped bool)
}

// NameScorer implements Scorer using token overlap with a Levenshtein
// ratio fallback. Both component measures are symmetric, so the pair
// score is symmetric as well.
type NameScorer struct {
	noLevenshtein bool
}

// NewNameScorer creates a scorer with configuration options.
func NewNameScorer(opts ...Option) *NameScorer {
	s := &NameScorer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pair scores two normalized name pairs. Providers do not agree on
// home/away sides, so both orientations are evaluated and the higher
// score wins; swapped is only reported when the reversed orientation
// strictly beats the aligned one.
func (s *NameScorer) Pair(a, b Pair) (float64, bool) {
	aligned := (s.name(a.Home, b.Home) + s.name(a.Away, b.Away)) / 2
	reversed := (s.name(a.Home, b.Away) + s.name(a.Away, b.Home)) / 2
	if reversed > aligned {
		return reversed, true
	}
	return aligned, false
}

// name scores two single normalized names. Unknown sentinels never
// match anything, including each other.
func (s *NameScorer) name(x, y string) float64 {
	if names.IsUnknown(x) || names.IsUnknown(y) {
		return 0
	}
	if x == y {
		return 1
	}
	score := tokenOverlap(x, y)
	if s.noLevenshtein {
		return score
	}
	if r := levenshteinRatio(x, y); r > score {
		score = r
	}
	return score
}

// tokenOverlap is the Jaccard index over punctuation-stripped tokens.
// Splitting on every non-alphanumeric rune makes "j. smith" and
// "smith, j." identical token sets, and treats "/" as the doubles
// separator so "alice/bob" matches "bob/alice".
func tokenOverlap(x, y string) float64 {
	xs := tokenize(x)
	ys := tokenize(y)
	if len(xs) == 0 || len(ys) == 0 {
		return 0
	}
	inter := 0
	for tok := range xs {
		if _, ok := ys[tok]; ok {
			inter++
		}
	}
	union := len(xs) + len(ys) - inter
	return float64(inter) / float64(union)
}

func tokenize(s string) map[string]struct{} {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch {
		case r >= '0' && r <= '9':
			return false
		case r >= 'a' && r <= 'z':
			return false
		case r >= 'A' && r <= 'Z':
			return false
		}
		return true
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// levenshteinRatio maps edit distance onto [0,1]: identical strings
// score 1, fully distinct strings score 0.
func levenshteinRatio(x, y string) float64 {
	longest := len([]rune(x))
	if l := len([]rune(y)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	dist := fuzzy.LevenshteinDistance(x, y)
	return 1 - float64(dist)/float64(longest)
}
