// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/google/uuid"
)

// PrematchEvent is one event as reported by the prematch provider.
// ID is the provider's native event id, unique within a cycle.
type PrematchEvent struct {
	ID        string         // native event id, e.g. "E190152318"
	Home      string         // home participant, raw provider spelling
	Away      string         // away participant, raw provider spelling
	League    string         // tournament / league name
	StartTime time.Time      // scheduled start, zero if the provider omitted it
	Status    string         // provider status string, passed through
	FixtureID string         // secondary correlation key (fixture id)
	Raw       map[string]any // opaque provider payload, untouched by correlation
}

// LiveEvent is one event as reported by the in-play provider.
// MarketID is a composite identifier; it may embed the prematch
// provider's native event id (see the extract package).
type LiveEvent struct {
	MarketID  string         // composite market id, e.g. "13-0-E190152318-2"
	Home      string         // home participant, raw provider spelling
	Away      string         // away participant, raw provider spelling
	FixtureID string         // secondary correlation key candidate
	StartTime time.Time      // scheduled start, zero if unknown
	Raw       map[string]any // opaque provider payload, untouched by correlation
}

// MatchTier identifies which matching strategy paired a record.
type MatchTier int

const (
	// TierUnmatched marks a record holding a single unpaired event.
	TierUnmatched MatchTier = iota
	// TierPrimaryID marks a pair joined on the embedded native id.
	TierPrimaryID
	// TierSecondaryKey marks a pair joined on a unique fixture id.
	TierSecondaryKey
	// TierFuzzyName marks a pair joined by participant-name similarity.
	TierFuzzyName
)

// String returns the stable wire name for a tier.
func (t MatchTier) String() string {
	switch t {
	case TierPrimaryID:
		return "primary_id"
	case TierSecondaryKey:
		return "secondary_key"
	case TierFuzzyName:
		return "fuzzy_name"
	default:
		return "unmatched"
	}
}

// MatchRecord pairs a prematch event with a live event, or holds a
// single event that found no counterpart. For Tier != TierUnmatched both
// sides are present; for TierUnmatched exactly one side is present.
// Score is only meaningful for TierFuzzyName. Swapped records that the
// fuzzy pairing matched with home/away orientation reversed.
type MatchRecord struct {
	Prematch *PrematchEvent
	Live     *LiveEvent
	Tier     MatchTier
	Score    float64
	Swapped  bool
}

// CycleStats are derived counts for one cycle's match set. They are
// always recomputable from the records and never authoritative.
type CycleStats struct {
	TotalUnique  int `json:"total_unique"`
	Paired       int `json:"paired"`
	PrematchOnly int `json:"prematch_only"`
	LiveOnly     int `json:"live_only"`
	ByPrimaryID  int `json:"by_primary_id"`
	BySecondary  int `json:"by_secondary_key"`
	ByFuzzyName  int `json:"by_fuzzy_name"`
}

// DegradedSources records which upstream fetches failed for a cycle.
type DegradedSources struct {
	Prematch bool `json:"prematch"`
	Live     bool `json:"live"`
}

// Any reports whether either side was unavailable.
func (d DegradedSources) Any() bool { return d.Prematch || d.Live }

// Snapshot is one cycle's complete correlation result. It is immutable
// once published; a new cycle replaces it wholesale, never in place.
type Snapshot struct {
	CycleID   uuid.UUID
	Timestamp time.Time // cycle start time
	Records   []MatchRecord
	Stats     CycleStats
	Degraded  DegradedSources
}

// ComputeStats tallies per-tier and per-side counts over records.
func ComputeStats(records []MatchRecord) CycleStats {
	var s CycleStats
	s.TotalUnique = len(records)
	for _, r := range records {
		switch r.Tier {
		case TierPrimaryID:
			s.ByPrimaryID++
			s.Paired++
		case TierSecondaryKey:
			s.BySecondary++
			s.Paired++
		case TierFuzzyName:
			s.ByFuzzyName++
			s.Paired++
		case TierUnmatched:
			if r.Prematch != nil {
				s.PrematchOnly++
			} else {
				s.LiveOnly++
			}
		}
	}
	return s
}
