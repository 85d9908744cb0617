// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/matchpoint/internal/adapters/repository"
	"github.com/okian/matchpoint/internal/domain/model"
)

// MatchDependencies defines the interface for point lookups.
type MatchDependencies interface {
	Lookup(ctx context.Context, id string) (model.MatchRecord, error)
}

// MatchHandler handles single-record lookups.
type MatchHandler struct {
	deps MatchDependencies
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps MatchDependencies) *MatchHandler {
	return &MatchHandler{deps: deps}
}

// HandleGetMatch handles GET /api/matches/{id} requests. The id is a
// native event id from either source; composite live market ids
// contain dashes and pass through verbatim.
func (h *MatchHandler) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_match"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /api/matches/
	id := strings.TrimPrefix(r.URL.Path, "/api/matches/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	rec, err := h.deps.Lookup(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoSnapshot):
			writeError(w, http.StatusServiceUnavailable, "no_snapshot", err)
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, newMatchView(rec))
}
