// Package fetch contains the upstream provider clients. Each client
// maps its provider's JSON schema onto the domain model; a row that
// cannot be adapted is dropped with a warning, never fails the fetch.
package fetch

import (
	"context"

	"github.com/okian/matchpoint/internal/domain/model"
)

// Source labels used in logs and metrics.
const (
	SourcePrematch = "prematch"
	SourceLive     = "live"
)

// PrematchFetcher fetches one cycle's prematch events.
type PrematchFetcher interface {
	FetchPrematch(ctx context.Context) ([]model.PrematchEvent, error)
}

// LiveFetcher fetches one cycle's in-play events.
type LiveFetcher interface {
	FetchLive(ctx context.Context) ([]model.LiveEvent, error)
}
