package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/matchpoint/internal/domain/model"
	"github.com/okian/matchpoint/pkg/metrics"
)

// indexed bundles a published snapshot with its lookup indexes. The
// indexes are built once at publish time and share the snapshot's
// immutability: replaced wholesale, never updated in place.
type indexed struct {
	snapshot *model.Snapshot
	byID     map[string]int // native id (either side) -> record index
}

// SnapshotStore implements Store with a single atomically-swapped
// pointer. Readers load whatever snapshot is current at the moment of
// read and keep it alive for as long as they hold it; a concurrent
// publish never disturbs them.
type SnapshotStore struct {
	current atomic.Pointer[indexed]
}

// NewSnapshotStore constructs an empty store. Current returns nil
// until the first Publish.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Publish derives CycleStats, builds the id index, and swaps the new
// snapshot in. The records slice is owned by the store from here on;
// callers must not retain or modify it.
func (s *SnapshotStore) Publish(ctx context.Context, cycleID uuid.UUID, ts time.Time, records []model.MatchRecord, degraded model.DegradedSources) {
	snap := &model.Snapshot{
		CycleID:   cycleID,
		Timestamp: ts,
		Records:   records,
		Stats:     model.ComputeStats(records),
		Degraded:  degraded,
	}

	byID := make(map[string]int, len(records))
	for i, r := range records {
		if r.Prematch != nil {
			byID[r.Prematch.ID] = i
		}
		if r.Live != nil {
			byID[r.Live.MarketID] = i
		}
	}

	s.current.Store(&indexed{snapshot: snap, byID: byID})

	metrics.IncrementSnapshotCount()
	metrics.UpdateSnapshotLastUnix(float64(ts.Unix()))
	metrics.UpdateTierCounts(snap.Stats.ByPrimaryID, snap.Stats.BySecondary, snap.Stats.ByFuzzyName)
	metrics.UpdateSideCounts(snap.Stats.Paired, snap.Stats.PrematchOnly, snap.Stats.LiveOnly)
}

// Current returns the latest published snapshot, or nil.
func (s *SnapshotStore) Current(ctx context.Context) *model.Snapshot {
	cur := s.current.Load()
	if cur == nil {
		return nil
	}
	return cur.snapshot
}

// Lookup finds the record holding the event with the given native id.
// Both the prematch event id and the live market id are accepted.
func (s *SnapshotStore) Lookup(ctx context.Context, id string) (model.MatchRecord, error) {
	cur := s.current.Load()
	if cur == nil {
		return model.MatchRecord{}, ErrNoSnapshot
	}
	i, ok := cur.byID[id]
	if !ok {
		return model.MatchRecord{}, ErrNotFound
	}
	return cur.snapshot.Records[i], nil
}

// Stats returns the current snapshot's derived counts.
func (s *SnapshotStore) Stats(ctx context.Context) (model.CycleStats, error) {
	cur := s.current.Load()
	if cur == nil {
		return model.CycleStats{}, ErrNoSnapshot
	}
	return cur.snapshot.Stats, nil
}
