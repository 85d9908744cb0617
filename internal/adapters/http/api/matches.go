// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/matchpoint/internal/adapters/repository"
	"github.com/okian/matchpoint/internal/domain/model"
)

// MatchesDependencies defines the interface for snapshot reads.
type MatchesDependencies interface {
	Current(ctx context.Context) *model.Snapshot
}

// MatchesHandler handles full-snapshot requests.
type MatchesHandler struct {
	deps MatchesDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchesDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// HandleGetMatches handles GET /api/matches requests. It renders the
// current snapshot in full; before the first cycle publishes it
// answers 503 so pollers can tell "not ready" from "empty".
func (h *MatchesHandler) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_matches"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap := h.deps.Current(r.Context())
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "no_snapshot", NewKind(op, repository.ErrNoSnapshot))
		return
	}
	resp := snapshotResponse{
		CycleID:   snap.CycleID.String(),
		Timestamp: snap.Timestamp,
		Degraded:  snap.Degraded,
		Stats:     snap.Stats,
		Matches:   make([]matchView, 0, len(snap.Records)),
	}
	for _, rec := range snap.Records {
		resp.Matches = append(resp.Matches, newMatchView(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}
