// Package extract recovers the embedded prematch event id from the
// in-play provider's composite market identifier.
package extract

import "strings"

// Composite market id layout for the current provider version:
// "<sportID>-<channel>-<eventID>[-<suffix>...]", dash-delimited.
const (
	minTokens     = 3
	eventIDOffset = 2
)

// EventID attempts to recover the prematch-compatible event id embedded
// in a composite market id. The second return value reports whether the
// id matched the expected layout; false is a normal outcome meaning the
// caller should fall through to the next matching tier, not an error.
func EventID(marketID string) (string, bool) {
	if marketID == "" {
		return "", false
	}
	tokens := strings.Split(marketID, "-")
	if len(tokens) < minTokens {
		return "", false
	}
	id := tokens[eventIDOffset]
	if id == "" || !alphanumeric(id) {
		return "", false
	}
	return id, true
}

func alphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
