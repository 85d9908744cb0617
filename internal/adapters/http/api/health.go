// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/matchpoint/internal/domain/model"
)

// HealthDependencies defines the interface for liveness checks.
type HealthDependencies interface {
	Current(ctx context.Context) *model.Snapshot
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps HealthDependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// healthResponse reports process liveness plus whether a snapshot has
// been published yet.
type healthResponse struct {
	Status   string `json:"status"`
	Snapshot bool   `json:"snapshot"`
}

// HandleHealth handles GET /healthz requests. The process is healthy
// as soon as it serves traffic; Snapshot flips true after the first
// cycle publishes.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Snapshot: h.deps.Current(r.Context()) != nil,
	})
}
