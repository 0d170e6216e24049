package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for aggregate rebuilds.
type Metrics struct {
	RebuildsTotal       *prometheus.CounterVec
	RebuildDuration     prometheus.Histogram
	SnapshotContractors prometheus.Gauge
	SnapshotErrors      prometheus.Gauge
}

// New creates a Metrics instance with all aggregate metrics registered.
func New() *Metrics {
	return &Metrics{
		RebuildsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crewly_aggregate_rebuilds_total",
			Help: "Aggregate snapshot rebuilds, labeled by outcome",
		}, []string{"status"}),
		RebuildDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crewly_aggregate_rebuild_duration_seconds",
			Help:    "Duration of full aggregate rebuilds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SnapshotContractors: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "crewly_aggregate_snapshot_contractors",
			Help: "Contractors covered by the current snapshot",
		}),
		SnapshotErrors: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "crewly_aggregate_snapshot_errors",
			Help: "Contractors with unreadable data in the current snapshot",
		}),
	}
}

// ObserveRebuild records one rebuild attempt.
func (m *Metrics) ObserveRebuild(status string, start time.Time) {
	m.RebuildsTotal.WithLabelValues(status).Inc()
	m.RebuildDuration.Observe(time.Since(start).Seconds())
}

// SetSnapshot records the published snapshot's coverage.
func (m *Metrics) SetSnapshot(contractors, errors int) {
	m.SnapshotContractors.Set(float64(contractors))
	m.SnapshotErrors.Set(float64(errors))
}
