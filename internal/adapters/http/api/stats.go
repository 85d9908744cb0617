// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/matchpoint/internal/domain/model"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsDependencies defines the interface for cycle stats reads.
type StatsDependencies interface {
	Stats(ctx context.Context) (model.CycleStats, error)
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	deps          StatsDependencies
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps StatsDependencies, statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{deps: deps, statsProvider: statsProvider}
}

// statsResponse joins the current cycle's counts with service-level
// scheduler state.
type statsResponse struct {
	Cycle   *model.CycleStats      `json:"cycle,omitempty"`
	Service map[string]interface{} `json:"service"`
}

// HandleStats handles GET /api/stats requests. Cycle counts are
// omitted before the first snapshot publishes; service state is
// always present.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	resp := statsResponse{Service: h.statsProvider.GetStats()}
	if cycle, err := h.deps.Stats(r.Context()); err == nil {
		resp.Cycle = &cycle
	}
	writeJSON(w, http.StatusOK, resp)
}
