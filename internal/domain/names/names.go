// Package names canonicalizes participant name strings for comparison.
// Normalized names never reach users; they exist only so two providers'
// spellings of the same player can be compared.
package names

import (
	"regexp"
	"strings"
)

// Unknown is the sentinel produced for null/empty input. It is distinct
// from any real normalized name so two unknown participants can never
// spuriously match each other.
const Unknown = "\x00unknown"

// parenthetical matches "(...)" annotations such as seed numbers or
// doubles pairing notes. Nested parentheses do not occur in feeds.
var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// Normalize canonicalizes a raw participant name: parenthesized
// substrings are stripped, whitespace runs collapse to a single space,
// the result is trimmed and lower-cased. Empty input (or input that is
// empty after stripping) yields the Unknown sentinel.
func Normalize(raw string) string {
	s := parenthetical.ReplaceAllString(raw, " ")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return Unknown
	}
	return strings.ToLower(s)
}

// IsUnknown reports whether a normalized name is the sentinel.
func IsUnknown(normalized string) bool { return normalized == Unknown }
