package feedsim

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/matchpoint/pkg/logger"
)

// Server shutdown timeout.
const shutdownTimeout = 5 * time.Second

// surnameFirst renders "Carlos Alcaraz" as "Alcaraz Carlos", the
// spelling drift the in-play feed shows for events it cannot link by
// id. Token-identical names keep fuzzy pairing working.
func surnameFirst(full string) string {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return full
	}
	return parts[len(parts)-1] + " " + strings.Join(parts[:len(parts)-1], " ")
}

// liveName picks the in-play spelling for a fixture. Id-linked rows
// can afford the lossy abbreviation; name-linked rows keep all tokens.
func liveName(f fixture, name string) string {
	if f.mode == linkNamesOnly {
		return surnameFirst(name)
	}
	return abbreviate(name)
}

// handlePrematch serves the prematch provider's upcoming-events shape.
func handlePrematch(fixtures []fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := make([]map[string]any, 0, len(fixtures))
		for _, f := range fixtures {
			if f.mode == linkOrphan {
				continue
			}
			results = append(results, map[string]any{
				"id":          f.eventID,
				"home":        map[string]any{"name": f.home},
				"away":        map[string]any{"name": f.away},
				"league":      map[string]any{"name": f.league},
				"time":        strconv.FormatInt(f.start.Unix(), 10),
				"time_status": "0",
				"bet365_id":   f.fixtureID,
			})
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": 1,
			"results": results,
		})
	}
}

// handleInplay serves the live provider's in-play shape.
func handleInplay(fixtures []fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches := make([]map[string]any, 0, len(fixtures))
		for _, f := range fixtures {
			if !f.live {
				continue
			}
			matches = append(matches, map[string]any{
				"marketFI":  f.marketID,
				"team1":     liveName(f, f.home),
				"team2":     liveName(f, f.away),
				"eventFI":   f.fixtureID,
				"startTime": f.start.Unix(),
			})
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"matches": matches,
		})
	}
}

// Run generates fixtures and serves both provider endpoints until ctx
// is cancelled.
func Run(ctx context.Context, config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	log := logger.Get().Named("feedsim")
	fixtures := generateFixtures(config.Matches, config.LiveFraction)

	var liveCount int
	for _, f := range fixtures {
		if f.live {
			liveCount++
		}
	}
	log.Info(ctx, "fixtures generated",
		logger.Int("total", len(fixtures)),
		logger.Int("live", liveCount),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/v3/events/upcoming", handlePrematch(fixtures))
	mux.HandleFunc("/tennis/inplay", handleInplay(fixtures))

	srv := &http.Server{
		Addr:              config.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "feed simulator listening", logger.String("addr", config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
