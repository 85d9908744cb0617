// Package repository defines the snapshot store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/matchpoint/internal/domain/model"
)

// Store publishes and serves immutable correlation snapshots.
type Store interface {
	// Publish derives stats and indexes for one cycle's match set and
	// atomically installs it as the current snapshot.
	Publish(ctx context.Context, cycleID uuid.UUID, ts time.Time, records []model.MatchRecord, degraded model.DegradedSources)

	// Current returns the snapshot installed by the latest completed
	// cycle, or nil before the first cycle publishes. Callers may hold
	// the returned snapshot for as long as they need; it is never
	// mutated after publication.
	Current(ctx context.Context) *model.Snapshot

	// Lookup returns the record containing the event with the given
	// native id, matched or not, from the current snapshot. The id is
	// checked against both sides. Returns ErrNotFound if no current
	// snapshot holds it.
	Lookup(ctx context.Context, id string) (model.MatchRecord, error)

	// Stats returns the current snapshot's cycle stats.
	Stats(ctx context.Context) (model.CycleStats, error)
}
