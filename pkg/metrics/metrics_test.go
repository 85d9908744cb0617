package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager on it", func() {
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then all metric families register without collision", func() {
				So(manager, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording cycle and fetch metrics", func() {
			RecordCycle()
			RecordCycleSkipped()
			RecordCycleDegraded("live")
			RecordCycleDuration(125)
			UpdateCycleLastUnix(1_700_000_000)
			RecordCorrelationDuration(3)
			UpdateTierCounts(5, 2, 1)
			UpdateSideCounts(8, 3, 4)
			RecordFetchDuration("prematch", 250)
			RecordFetchError("prematch")
			UpdateEventsFetched("live", 42)
			IncrementSnapshotCount()
			UpdateSnapshotLastUnix(1_700_000_000)
			RecordHTTPRequest("matches", "GET", "200")
			RecordHTTPRequestDuration("matches", "GET", "200", 4)

			Convey("Then the registry exposes them", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
