// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/matchpoint/internal/domain/model"
	"github.com/okian/matchpoint/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Current returns the latest published snapshot, or nil before the
	// first cycle completes.
	Current(ctx context.Context) *model.Snapshot

	// Lookup returns the record holding the event with the given native
	// id, from either side, matched or not.
	Lookup(ctx context.Context, id string) (model.MatchRecord, error)

	// Stats returns the current snapshot's cycle stats.
	Stats(ctx context.Context) (model.CycleStats, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	matchesHandler *MatchesHandler
	matchHandler   *MatchHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(deps),
		statsHandler:   NewStatsHandler(deps, statsProvider),
		matchesHandler: NewMatchesHandler(deps),
		matchHandler:   NewMatchHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux, deps Dependencies) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/api/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/matches", MetricsMiddleware(s.matchesHandler.HandleGetMatches, "matches"))
	mux.HandleFunc("/api/matches/", MetricsMiddleware(s.matchHandler.HandleGetMatch, "match"))
}

// prematchView mirrors the wire shape of the prematch side of a record.
type prematchView struct {
	ID        string         `json:"id"`
	Home      string         `json:"home"`
	Away      string         `json:"away"`
	League    string         `json:"league,omitempty"`
	StartTime *time.Time     `json:"start_time,omitempty"`
	Status    string         `json:"status,omitempty"`
	Raw       map[string]any `json:"raw,omitempty"`
}

// liveView mirrors the wire shape of the live side of a record.
type liveView struct {
	MarketID  string         `json:"market_id"`
	Home      string         `json:"home"`
	Away      string         `json:"away"`
	StartTime *time.Time     `json:"start_time,omitempty"`
	Raw       map[string]any `json:"raw,omitempty"`
}

// matchView is one correlation record on the wire.
type matchView struct {
	Tier     string        `json:"tier"`
	Score    float64       `json:"score,omitempty"`
	Swapped  bool          `json:"swapped,omitempty"`
	Prematch *prematchView `json:"prematch,omitempty"`
	Live     *liveView     `json:"live,omitempty"`
}

// snapshotResponse is the envelope for GET /api/matches.
type snapshotResponse struct {
	CycleID   string                `json:"cycle_id"`
	Timestamp time.Time             `json:"timestamp"`
	Degraded  model.DegradedSources `json:"degraded"`
	Stats     model.CycleStats      `json:"stats"`
	Matches   []matchView           `json:"matches"`
}

func newMatchView(rec model.MatchRecord) matchView {
	v := matchView{
		Tier:    rec.Tier.String(),
		Score:   rec.Score,
		Swapped: rec.Swapped,
	}
	if rec.Prematch != nil {
		p := &prematchView{
			ID:     rec.Prematch.ID,
			Home:   rec.Prematch.Home,
			Away:   rec.Prematch.Away,
			League: rec.Prematch.League,
			Status: rec.Prematch.Status,
			Raw:    rec.Prematch.Raw,
		}
		if !rec.Prematch.StartTime.IsZero() {
			t := rec.Prematch.StartTime
			p.StartTime = &t
		}
		v.Prematch = p
	}
	if rec.Live != nil {
		l := &liveView{
			MarketID: rec.Live.MarketID,
			Home:     rec.Live.Home,
			Away:     rec.Live.Away,
			Raw:      rec.Live.Raw,
		}
		if !rec.Live.StartTime.IsZero() {
			t := rec.Live.StartTime
			l.StartTime = &t
		}
		v.Live = l
	}
	return v
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
