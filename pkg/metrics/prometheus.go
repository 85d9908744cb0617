// Package metrics provides Prometheus metrics for the matchpoint
// correlation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the matchpoint service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Cycle Metrics - one refresh of both sources plus correlation
	cyclesTotal     prometheus.Counter
	cyclesDegraded  *prometheus.CounterVec
	cyclesSkipped   prometheus.Counter
	cycleDuration   prometheus.Histogram
	cycleLastUnix   prometheus.Gauge
	correlationTime prometheus.Histogram

	// Match Metrics - current snapshot composition
	matchesByTier *prometheus.GaugeVec
	pairedEvents  prometheus.Gauge
	prematchOnly  prometheus.Gauge
	liveOnly      prometheus.Gauge

	// Fetch Metrics - per-source upstream health
	fetchDuration *prometheus.HistogramVec
	fetchErrors   *prometheus.CounterVec
	eventsFetched *prometheus.GaugeVec

	// Snapshot Metrics
	snapshotCount    prometheus.Counter
	snapshotLastUnix prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchpoint",
		subsystem:        "correlator",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Cycle Metrics - one per refresh
	m.cyclesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycles_total",
		Help:      "Total number of completed refresh cycles",
	})

	m.cyclesDegraded = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cycles_degraded_total",
			Help:      "Cycles completed with one source unavailable",
		},
		[]string{"source"},
	)

	m.cyclesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycles_skipped_total",
		Help:      "Scheduled cycles skipped because the previous one was still running",
	})

	m.cycleDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycle_duration_milliseconds",
		Help:      "End-to-end refresh cycle duration in milliseconds",
		Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	})

	m.cycleLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycle_last_unix",
		Help:      "Unix time of the last completed cycle (staleness indicator)",
	})

	m.correlationTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "correlation_duration_milliseconds",
		Help:      "Correlation step duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Match Metrics - composition of the current snapshot
	m.matchesByTier = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "matches_by_tier",
			Help:      "Paired events in the current snapshot by matching tier",
		},
		[]string{"tier"},
	)

	m.pairedEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "paired_events",
		Help:      "Events paired across both sources in the current snapshot",
	})

	m.prematchOnly = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prematch_only_events",
		Help:      "Unmatched prematch-side events in the current snapshot",
	})

	m.liveOnly = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "live_only_events",
		Help:      "Unmatched live-side events in the current snapshot",
	})

	// Fetch Metrics - upstream provider health
	m.fetchDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "fetch_duration_milliseconds",
			Help:      "Upstream fetch duration in milliseconds by source",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 15000},
		},
		[]string{"source"},
	)

	m.fetchErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "fetch_errors_total",
			Help:      "Failed or timed-out upstream fetches by source",
		},
		[]string{"source"},
	)

	m.eventsFetched = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "events_fetched",
			Help:      "Events returned by the last fetch of each source",
		},
		[]string{"source"},
	)

	// Snapshot Metrics
	m.snapshotCount = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_publish_total",
		Help:      "Total number of snapshots published",
	})

	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix",
		Help:      "Unix time of the last published snapshot",
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// System Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Current memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "Garbage collection pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// RecordCycle increments the completed cycles counter.
func RecordCycle() {
	globalManager.cyclesTotal.Inc()
}

// RecordCycleDegraded increments the degraded cycles counter for a source.
func RecordCycleDegraded(source string) {
	globalManager.cyclesDegraded.WithLabelValues(source).Inc()
}

// RecordCycleSkipped increments the skipped cycles counter.
func RecordCycleSkipped() {
	globalManager.cyclesSkipped.Inc()
}

// RecordCycleDuration records end-to-end cycle duration in milliseconds.
func RecordCycleDuration(durationMs float64) {
	globalManager.cycleDuration.Observe(durationMs)
}

// UpdateCycleLastUnix sets the unix time of the last completed cycle.
func UpdateCycleLastUnix(ts float64) {
	globalManager.cycleLastUnix.Set(ts)
}

// RecordCorrelationDuration records the correlation step duration in milliseconds.
func RecordCorrelationDuration(durationMs float64) {
	globalManager.correlationTime.Observe(durationMs)
}

// UpdateTierCounts sets the per-tier paired gauges for the current snapshot.
func UpdateTierCounts(primaryID, secondaryKey, fuzzyName int) {
	globalManager.matchesByTier.WithLabelValues("primary_id").Set(float64(primaryID))
	globalManager.matchesByTier.WithLabelValues("secondary_key").Set(float64(secondaryKey))
	globalManager.matchesByTier.WithLabelValues("fuzzy_name").Set(float64(fuzzyName))
}

// UpdateSideCounts sets the paired/leftover gauges for the current snapshot.
func UpdateSideCounts(paired, prematchOnly, liveOnly int) {
	globalManager.pairedEvents.Set(float64(paired))
	globalManager.prematchOnly.Set(float64(prematchOnly))
	globalManager.liveOnly.Set(float64(liveOnly))
}

// RecordFetchDuration records an upstream fetch duration in milliseconds.
func RecordFetchDuration(source string, durationMs float64) {
	globalManager.fetchDuration.WithLabelValues(source).Observe(durationMs)
}

// RecordFetchError increments the fetch error counter for a source.
func RecordFetchError(source string) {
	globalManager.fetchErrors.WithLabelValues(source).Inc()
}

// UpdateEventsFetched sets the last fetch size gauge for a source.
func UpdateEventsFetched(source string, count int) {
	globalManager.eventsFetched.WithLabelValues(source).Set(float64(count))
}

// IncrementSnapshotCount increments the published snapshots counter.
func IncrementSnapshotCount() {
	globalManager.snapshotCount.Inc()
}

// UpdateSnapshotLastUnix sets the unix time of the last published snapshot.
func UpdateSnapshotLastUnix(ts float64) {
	globalManager.snapshotLastUnix.Set(ts)
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets current memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records a GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
