package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the classification module. Tracks
// assessment volume and latency, factor submissions, and batch outcomes.
type Metrics struct {
	AssessmentsTotal     *prometheus.CounterVec
	AssessmentDuration   prometheus.Histogram
	FactorsSubmitted     *prometheus.CounterVec
	FactorsDerived       prometheus.Counter
	BatchContractorsFail prometheus.Counter
}

// New creates a Metrics instance with all classification metrics registered.
func New() *Metrics {
	return &Metrics{
		AssessmentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crewly_assessments_total",
			Help: "Total assessments run, labeled by resulting risk level",
		}, []string{"risk"}),
		AssessmentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crewly_assessment_duration_seconds",
			Help:    "Duration of full assessment runs (derive + score + record)",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		FactorsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crewly_factors_submitted_total",
			Help: "Total factor observations accepted, labeled by source",
		}, []string{"source"}),
		FactorsDerived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crewly_factors_derived_total",
			Help: "Total computed factors produced by the deriver",
		}),
		BatchContractorsFail: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crewly_batch_contractor_failures_total",
			Help: "Contractors whose assessment failed inside a batch run",
		}),
	}
}

// ObserveAssessment records one completed assessment.
func (m *Metrics) ObserveAssessment(risk string, start time.Time) {
	m.AssessmentsTotal.WithLabelValues(risk).Inc()
	m.AssessmentDuration.Observe(time.Since(start).Seconds())
}

// IncrementFactorSubmitted records an accepted factor observation.
func (m *Metrics) IncrementFactorSubmitted(source string) {
	m.FactorsSubmitted.WithLabelValues(source).Inc()
}

// AddFactorsDerived records computed factors appended by the deriver.
func (m *Metrics) AddFactorsDerived(n int) {
	m.FactorsDerived.Add(float64(n))
}

// IncrementBatchFailure records one contractor failing inside a batch run.
func (m *Metrics) IncrementBatchFailure() {
	m.BatchContractorsFail.Inc()
}
