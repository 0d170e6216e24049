// Package service orchestrates the classification pipeline: factor intake,
// behavioral derivation, scoring, and history. Pure computation lives in the
// engine package; this package owns I/O sequencing and error translation.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"crewly/internal/classification/metrics"
	"crewly/internal/classification/models"
	"crewly/internal/classification/ports"
	"crewly/internal/platform/config"
	id "crewly/pkg/domain"
)

// History limits per spec: default when the caller passes 0, hard cap
// otherwise.
const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// FactorStore is the append-only factor repository contract.
type FactorStore interface {
	Append(ctx context.Context, f *models.Factor) error
	ListInWindow(ctx context.Context, contractorID id.ContractorID, from, to time.Time) ([]models.Factor, error)
}

// AssessmentStore is the append-only assessment repository contract.
type AssessmentStore interface {
	Append(ctx context.Context, a *models.Assessment) error
	History(ctx context.Context, contractorID id.ContractorID, limit int) ([]models.Assessment, error)
	Latest(ctx context.Context, contractorID id.ContractorID) (*models.Assessment, error)
}

// Service runs the classification pipeline for one platform instance.
type Service struct {
	factors     FactorStore
	assessments AssessmentStore
	timeSource  ports.TimeTrackingSource
	engagements ports.EngagementRegistry
	contractors ports.ContractorRegistry

	window       time.Duration
	batchWorkers int
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
}

// Option configures optional service dependencies.
type Option func(*Service)

// WithLogger attaches a structured logger. Without it the service is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches classification metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithWindow overrides the trailing assessment window.
func WithWindow(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.window = window
		}
	}
}

// WithBatchWorkers bounds batch fan-out concurrency.
func WithBatchWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchWorkers = n
		}
	}
}

// New constructs the classification service.
func New(
	factors FactorStore,
	assessments AssessmentStore,
	timeSource ports.TimeTrackingSource,
	engagements ports.EngagementRegistry,
	contractors ports.ContractorRegistry,
	opts ...Option,
) *Service {
	s := &Service{
		factors:      factors,
		assessments:  assessments,
		timeSource:   timeSource,
		engagements:  engagements,
		contractors:  contractors,
		window:       config.DefaultAssessmentWindow,
		batchWorkers: config.DefaultBatchWorkers,
		tracer:       otel.Tracer("crewly/classification"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
