// Package service provides the core business service that implements
// the dependencies required by the HTTP API: it schedules correlation
// cycles and owns the published snapshot.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	fetch "github.com/okian/matchpoint/internal/adapters/fetch"
	repository "github.com/okian/matchpoint/internal/adapters/repository"
	"github.com/okian/matchpoint/internal/domain/correlate"
	"github.com/okian/matchpoint/internal/domain/model"
	"github.com/okian/matchpoint/pkg/logger"
	"github.com/okian/matchpoint/pkg/metrics"
)

// Default scheduling constants.
const (
	defaultRefreshInterval = 60 * time.Second
	defaultFetchTimeout    = 15 * time.Second
)

// Service drives correlation cycles and serves the resulting
// snapshots to the HTTP layer.
type Service struct {
	mu sync.RWMutex

	// Core components
	prematch fetch.PrematchFetcher
	live     fetch.LiveFetcher
	engine   *correlate.Engine
	store    repository.Store

	// Configuration
	refreshInterval time.Duration
	fetchTimeout    time.Duration
	engineOpts      []correlate.Option

	// State
	started      bool
	stopCh       chan struct{}
	wg           sync.WaitGroup
	inFlight     atomic.Bool
	cyclesRun    atomic.Int64
	lastDegraded atomic.Value // model.DegradedSources

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetchers sets the two upstream fetchers. Both must be set
// before Start.
func WithFetchers(prematch fetch.PrematchFetcher, live fetch.LiveFetcher) Option {
	return func(s *Service) {
		s.prematch = prematch
		s.live = live
	}
}

// WithRefreshInterval sets the cycle cadence.
func WithRefreshInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.refreshInterval = interval
		}
	}
}

// WithFetchTimeout bounds each upstream fetch within a cycle.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.fetchTimeout = timeout
		}
	}
}

// WithEngineOptions forwards options to the correlation engine built
// at Start (threshold, window, scorer).
func WithEngineOptions(opts ...correlate.Option) Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithStore replaces the default snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		refreshInterval: defaultRefreshInterval,
		fetchTimeout:    defaultFetchTimeout,
		stopCh:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes components and begins the refresh loop. The first
// cycle runs immediately; subsequent cycles follow the configured
// cadence. A scheduled cycle is skipped, not queued, while the
// previous one is still in flight.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.prematch == nil || s.live == nil {
		return ErrNoFetchers
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting correlation service...")

	s.engine = correlate.New(s.engineOpts...)
	if s.store == nil {
		s.store = repository.NewSnapshotStore()
	}
	s.lastDegraded.Store(model.DegradedSources{})

	s.wg.Add(1)
	go s.refreshLoop(ctx)

	s.started = true
	s.logger.Info(ctx, "correlation service started",
		logger.Duration("refreshInterval", s.refreshInterval),
		logger.Duration("fetchTimeout", s.fetchTimeout),
	)

	return nil
}

// Stop gracefully shuts down the refresh loop. The current snapshot
// stays readable after Stop.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping correlation service...")

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}
	s.wg.Wait()

	s.started = false
	s.logger.Info(context.Background(), "correlation service stopped")
}

// refreshLoop runs one cycle immediately, then on every tick. Ticks
// that fire while a cycle is running are dropped.
func (s *Service) refreshLoop(ctx context.Context) {
	defer s.wg.Done()

	s.runCycle(ctx)

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.runCycle(ctx)
			// Drop the tick that may have fired mid-cycle so slow
			// cycles skip a beat instead of queueing one.
			select {
			case <-ticker.C:
				metrics.RecordCycleSkipped()
			default:
			}
		}
	}
}

// Refresh runs one correlation cycle synchronously. It returns
// ErrCycleInFlight if a cycle is already running.
func (s *Service) Refresh(ctx context.Context) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		metrics.RecordCycleSkipped()
		return ErrCycleInFlight
	}
	defer s.inFlight.Store(false)

	s.cycle(ctx)
	return nil
}

// runCycle is the loop-driven variant of Refresh; an in-flight cycle
// turns the tick into a recorded skip.
func (s *Service) runCycle(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn(ctx, "cycle skipped", logger.Error(err))
	}
}

// cycle fetches both sources concurrently, correlates, and publishes.
// A failed or timed-out fetch degrades its side to an empty collection;
// the cycle itself never fails.
func (s *Service) cycle(ctx context.Context) {
	cycleStart := time.Now().UTC()
	cycleID := uuid.New()

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	var (
		wg          sync.WaitGroup
		prematch    []model.PrematchEvent
		live        []model.LiveEvent
		prematchErr error
		liveErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		start := time.Now()
		prematch, prematchErr = s.prematch.FetchPrematch(fetchCtx)
		metrics.RecordFetchDuration(fetch.SourcePrematch, float64(time.Since(start).Milliseconds()))
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		live, liveErr = s.live.FetchLive(fetchCtx)
		metrics.RecordFetchDuration(fetch.SourceLive, float64(time.Since(start).Milliseconds()))
	}()
	wg.Wait()

	degraded := model.DegradedSources{}
	if prematchErr != nil {
		degraded.Prematch = true
		prematch = nil
		metrics.RecordFetchError(fetch.SourcePrematch)
		metrics.RecordCycleDegraded(fetch.SourcePrematch)
		s.logger.Warn(ctx, "prematch fetch failed; cycle degraded", logger.Error(prematchErr))
	}
	if liveErr != nil {
		degraded.Live = true
		live = nil
		metrics.RecordFetchError(fetch.SourceLive)
		metrics.RecordCycleDegraded(fetch.SourceLive)
		s.logger.Warn(ctx, "live fetch failed; cycle degraded", logger.Error(liveErr))
	}
	metrics.UpdateEventsFetched(fetch.SourcePrematch, len(prematch))
	metrics.UpdateEventsFetched(fetch.SourceLive, len(live))

	correlateStart := time.Now()
	records := s.engine.Correlate(ctx, prematch, live)
	metrics.RecordCorrelationDuration(float64(time.Since(correlateStart).Milliseconds()))

	s.store.Publish(ctx, cycleID, cycleStart, records, degraded)
	s.lastDegraded.Store(degraded)
	s.cyclesRun.Add(1)

	metrics.RecordCycle()
	metrics.RecordCycleDuration(float64(time.Since(cycleStart).Milliseconds()))
	metrics.UpdateCycleLastUnix(float64(cycleStart.Unix()))

	stats := model.ComputeStats(records)
	s.logger.Info(ctx, "cycle complete",
		logger.String("cycleID", cycleID.String()),
		logger.Int("totalUnique", stats.TotalUnique),
		logger.Int("paired", stats.Paired),
		logger.Int("prematchOnly", stats.PrematchOnly),
		logger.Int("liveOnly", stats.LiveOnly),
		logger.Duration("took", time.Since(cycleStart)),
	)
}

// Current returns the latest published snapshot, or nil before the
// first cycle completes.
func (s *Service) Current(ctx context.Context) *model.Snapshot {
	return s.store.Current(ctx)
}

// Lookup returns the record holding the event with the given native
// id, from either side, matched or not.
func (s *Service) Lookup(ctx context.Context, id string) (model.MatchRecord, error) {
	return s.store.Lookup(ctx, id)
}

// Stats returns the current snapshot's cycle stats.
func (s *Service) Stats(ctx context.Context) (model.CycleStats, error) {
	return s.store.Stats(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"refreshInterval": s.refreshInterval.String(),
		"fetchTimeout":    s.fetchTimeout.String(),
		"cyclesRun":       s.cyclesRun.Load(),
	}

	if degraded, ok := s.lastDegraded.Load().(model.DegradedSources); ok {
		stats["degradedPrematch"] = degraded.Prematch
		stats["degradedLive"] = degraded.Live
	}

	if s.store != nil {
		if cycleStats, err := s.store.Stats(context.Background()); err == nil {
			stats["totalUnique"] = cycleStats.TotalUnique
			stats["paired"] = cycleStats.Paired
		}
	}

	return stats
}
