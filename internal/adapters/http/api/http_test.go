package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/matchpoint/internal/adapters/http/api"
	"github.com/okian/matchpoint/internal/adapters/repository"
	"github.com/okian/matchpoint/internal/domain/model"
)

// mockDeps implements api.Dependencies over a canned snapshot.
type mockDeps struct {
	snap *model.Snapshot
}

func (m *mockDeps) Current(ctx context.Context) *model.Snapshot {
	return m.snap
}

func (m *mockDeps) Lookup(ctx context.Context, id string) (model.MatchRecord, error) {
	if m.snap == nil {
		return model.MatchRecord{}, repository.ErrNoSnapshot
	}
	for _, rec := range m.snap.Records {
		if rec.Prematch != nil && rec.Prematch.ID == id {
			return rec, nil
		}
		if rec.Live != nil && rec.Live.MarketID == id {
			return rec, nil
		}
	}
	return model.MatchRecord{}, repository.ErrNotFound
}

func (m *mockDeps) Stats(ctx context.Context) (model.CycleStats, error) {
	if m.snap == nil {
		return model.CycleStats{}, repository.ErrNoSnapshot
	}
	return m.snap.Stats, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func testSnapshot() *model.Snapshot {
	records := []model.MatchRecord{
		{
			Prematch: &model.PrematchEvent{ID: "E100", Home: "Alice Aa", Away: "Bob Bb", League: "Open"},
			Live:     &model.LiveEvent{MarketID: "13-0-E100-2", Home: "Alice Aa", Away: "Bob Bb"},
			Tier:     model.TierPrimaryID,
		},
		{
			Prematch: &model.PrematchEvent{ID: "E200", Home: "Carol Cc", Away: "Dave Dd"},
			Tier:     model.TierUnmatched,
		},
	}
	return &model.Snapshot{
		CycleID:   uuid.New(),
		Timestamp: time.Now().UTC(),
		Records:   records,
		Stats:     model.ComputeStats(records),
	}
}

func newMux(deps *mockDeps) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux, deps)
	return mux
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(&mockDeps{snap: testSnapshot()})

		Convey("Then the health endpoint should be accessible", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)

			var body map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body["status"], ShouldEqual, "ok")
			So(body["snapshot"], ShouldEqual, true)
		})

		Convey("And the metrics endpoint should be accessible", func() {
			req := httptest.NewRequest("GET", "/metrics", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint should be accessible", func() {
			req := httptest.NewRequest("GET", "/api/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestMatchesHandler(t *testing.T) {
	Convey("Given a snapshot with one pair and one unmatched event", t, func() {
		deps := &mockDeps{snap: testSnapshot()}
		mux := newMux(deps)

		Convey("When requesting the full snapshot", func() {
			req := httptest.NewRequest("GET", "/api/matches", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the envelope carries every record", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body struct {
					CycleID string `json:"cycle_id"`
					Stats   struct {
						TotalUnique int `json:"total_unique"`
						Paired      int `json:"paired"`
					} `json:"stats"`
					Matches []struct {
						Tier string `json:"tier"`
					} `json:"matches"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.CycleID, ShouldEqual, deps.snap.CycleID.String())
				So(body.Stats.TotalUnique, ShouldEqual, 2)
				So(body.Stats.Paired, ShouldEqual, 1)
				So(len(body.Matches), ShouldEqual, 2)
				So(body.Matches[0].Tier, ShouldEqual, "primary_id")
				So(body.Matches[1].Tier, ShouldEqual, "unmatched")
			})
		})

		Convey("When sending a non-GET method", func() {
			req := httptest.NewRequest("POST", "/api/matches", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should not be found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})

	Convey("Given no snapshot has been published", t, func() {
		mux := newMux(&mockDeps{})

		Convey("When requesting the full snapshot", func() {
			req := httptest.NewRequest("GET", "/api/matches", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the service reports unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)

				var body map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "no_snapshot")
			})
		})
	})
}

func TestMatchHandler(t *testing.T) {
	Convey("Given a snapshot with known events", t, func() {
		mux := newMux(&mockDeps{snap: testSnapshot()})

		Convey("When looking up by prematch id", func() {
			req := httptest.NewRequest("GET", "/api/matches/E100", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the paired record is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body struct {
					Tier     string `json:"tier"`
					Prematch struct {
						ID string `json:"id"`
					} `json:"prematch"`
					Live struct {
						MarketID string `json:"market_id"`
					} `json:"live"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Tier, ShouldEqual, "primary_id")
				So(body.Prematch.ID, ShouldEqual, "E100")
				So(body.Live.MarketID, ShouldEqual, "13-0-E100-2")
			})
		})

		Convey("When looking up by composite live market id", func() {
			req := httptest.NewRequest("GET", "/api/matches/13-0-E100-2", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the same record resolves", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When looking up an unknown id", func() {
			req := httptest.NewRequest("GET", "/api/matches/E999", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then 404 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)

				var body map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "not_found")
			})
		})

		Convey("When the id has trailing path segments", func() {
			req := httptest.NewRequest("GET", "/api/matches/E100/extra", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then 400 is returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})

	Convey("Given no snapshot has been published", t, func() {
		mux := newMux(&mockDeps{})

		Convey("When looking up any id", func() {
			req := httptest.NewRequest("GET", "/api/matches/E100", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the service reports unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})
}

func TestStatsHandler(t *testing.T) {
	Convey("Given a snapshot and service stats", t, func() {
		mux := newMux(&mockDeps{snap: testSnapshot()})

		Convey("When requesting stats", func() {
			req := httptest.NewRequest("GET", "/api/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then cycle and service sections are present", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body struct {
					Cycle *struct {
						TotalUnique int `json:"total_unique"`
					} `json:"cycle"`
					Service map[string]any `json:"service"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Cycle, ShouldNotBeNil)
				So(body.Cycle.TotalUnique, ShouldEqual, 2)
				So(body.Service["started"], ShouldEqual, true)
			})
		})
	})

	Convey("Given no snapshot has been published", t, func() {
		mux := newMux(&mockDeps{})

		Convey("When requesting stats", func() {
			req := httptest.NewRequest("GET", "/api/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then only service stats are present", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body struct {
					Cycle   *json.RawMessage `json:"cycle"`
					Service map[string]any   `json:"service"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Cycle, ShouldBeNil)
				So(body.Service, ShouldNotBeNil)
			})
		})
	})
}
