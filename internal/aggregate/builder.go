package aggregate

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/sync/errgroup"

	aggmetrics "crewly/internal/aggregate/metrics"
	"crewly/internal/classification/models"
	"crewly/internal/classification/ports"
	"crewly/internal/classification/rollup"
	"crewly/internal/platform/config"
	id "crewly/pkg/domain"
	dErrors "crewly/pkg/domain-errors"
	"crewly/pkg/platform/sentinel"
	"crewly/pkg/requestcontext"
)

// LatestAssessments is the slice of the assessment store the builder needs.
type LatestAssessments interface {
	LatestByContractors(ctx context.Context, contractorIDs []id.ContractorID) (map[id.ContractorID]models.Assessment, error)
}

// Builder rebuilds the read-model and publishes versions atomically. Readers
// go through the atomic pointer; a rebuild in progress never affects them.
type Builder struct {
	contractors ports.ContractorRegistry
	engagements ports.EngagementRegistry
	timeSource  ports.TimeTrackingSource
	assessments LatestAssessments

	window  time.Duration
	workers int
	logger  *slog.Logger
	metrics *aggmetrics.Metrics
	mirror  *Mirror
	tracer  trace.Tracer

	current atomic.Pointer[Snapshot]
}

// BuilderOption configures optional builder dependencies.
type BuilderOption func(*Builder)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = logger }
}

// WithMetrics attaches aggregate metrics.
func WithMetrics(m *aggmetrics.Metrics) BuilderOption {
	return func(b *Builder) { b.metrics = m }
}

// WithMirror publishes each snapshot to Redis after the in-process swap.
func WithMirror(mirror *Mirror) BuilderOption {
	return func(b *Builder) { b.mirror = mirror }
}

// WithWindow overrides the trailing rollup window.
func WithWindow(window time.Duration) BuilderOption {
	return func(b *Builder) {
		if window > 0 {
			b.window = window
		}
	}
}

// WithWorkers bounds rebuild fan-out concurrency.
func WithWorkers(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// NewBuilder constructs an aggregate view builder.
func NewBuilder(
	contractors ports.ContractorRegistry,
	engagements ports.EngagementRegistry,
	timeSource ports.TimeTrackingSource,
	assessments LatestAssessments,
	opts ...BuilderOption,
) *Builder {
	b := &Builder{
		contractors: contractors,
		engagements: engagements,
		timeSource:  timeSource,
		assessments: assessments,
		window:      config.DefaultAssessmentWindow,
		workers:     config.DefaultBatchWorkers,
		tracer:      otel.Tracer("crewly/aggregate"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Rebuild constructs the next snapshot off to the side and publishes it in
// one step. On failure the previously published snapshot stays visible.
//
// Per-contractor read failures are isolated: the contractor contributes a
// zero-valued row and the error count, never an aborted rebuild. Only
// failures that make the whole view meaningless (listing contractors, bulk
// assessment lookup, cancellation) abort.
func (b *Builder) Rebuild(ctx context.Context) (*Snapshot, error) {
	ctx, span := b.tracer.Start(ctx, "aggregate.Rebuild")
	defer span.End()

	start := time.Now()
	now := requestcontext.Now(ctx)

	active, err := b.contractors.ActiveContractors(ctx)
	if err != nil {
		b.observeRebuild("error", start)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "contractor registry unavailable")
	}

	contractorIDs := make([]id.ContractorID, len(active))
	for i, c := range active {
		contractorIDs[i] = c.ID
	}
	latest, err := b.assessments.LatestByContractors(ctx, contractorIDs)
	if err != nil {
		b.observeRebuild("error", start)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load latest assessments")
	}

	summaries := make([]ContractorSummary, len(active))
	var mu sync.Mutex
	errorCount := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, contractor := range active {
		g.Go(func() error {
			summary, err := b.buildRow(gctx, contractor, latest, now)
			if err != nil {
				mu.Lock()
				errorCount++
				mu.Unlock()
				if b.logger != nil {
					b.logger.WarnContext(gctx, "aggregate row degraded",
						"contractor_id", contractor.ID,
						"error", err,
					)
				}
			}
			summaries[i] = summary
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		b.observeRebuild("error", start)
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "aggregate rebuild aborted")
	}

	snapshot := NewSnapshot(now, summaries, errorCount)
	b.current.Store(snapshot)

	if b.mirror != nil {
		if err := b.mirror.Publish(ctx, snapshot); err != nil && b.logger != nil {
			// The in-process snapshot is already live; a mirror miss
			// only affects other instances until the next rebuild.
			b.logger.WarnContext(ctx, "snapshot mirror publish failed", "error", err)
		}
	}

	b.observeRebuild("ok", start)
	if b.metrics != nil {
		b.metrics.SetSnapshot(snapshot.Size(), snapshot.ErrorCount())
	}
	if b.logger != nil {
		b.logger.InfoContext(ctx, "aggregate snapshot published",
			"contractors", snapshot.Size(),
			"degraded_rows", snapshot.ErrorCount(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return snapshot, nil
}

// buildRow joins one contractor's latest assessment with its time rollup and
// engagement count. Any read failure degrades to a zero row.
func (b *Builder) buildRow(ctx context.Context, contractor ports.ContractorRecord, latest map[id.ContractorID]models.Assessment, now time.Time) (ContractorSummary, error) {
	summary := ContractorSummary{
		ContractorID:   contractor.ID,
		OrganizationID: contractor.OrganizationID,
		Name:           contractor.Name,
	}
	if assessment, ok := latest[contractor.ID]; ok {
		assessedAt := assessment.AssessedAt
		summary.HasAssessment = true
		summary.Risk = assessment.OverallRisk
		summary.Score = assessment.OverallScore
		summary.AssessedAt = &assessedAt
	}

	entries, err := b.timeSource.EntriesInRange(ctx, contractor.ID, now.Add(-b.window), now)
	if err != nil {
		return summary, err
	}
	sum := rollup.Compute(entries)
	summary.AvgWeeklyHours = models.Round2(sum.AvgWeeklyHours)
	summary.WeeksActive = sum.WeeksActive

	count, err := b.engagements.ActiveEngagementCount(ctx, contractor.ID)
	if err != nil {
		return summary, err
	}
	summary.ActiveEngagements = count

	return summary, nil
}

// Current returns the published snapshot, or sentinel.ErrUnavailable when no
// rebuild has completed yet.
func (b *Builder) Current() (*Snapshot, error) {
	snapshot := b.current.Load()
	if snapshot == nil {
		return nil, sentinel.ErrUnavailable
	}
	return snapshot, nil
}

// Contractor looks up one row in the published snapshot.
func (b *Builder) Contractor(contractorID id.ContractorID) (ContractorSummary, error) {
	snapshot, err := b.Current()
	if err != nil {
		return ContractorSummary{}, err
	}
	summary, ok := snapshot.Contractor(contractorID)
	if !ok {
		return ContractorSummary{}, sentinel.ErrNotFound
	}
	return summary, nil
}

// Dashboard returns the org-wide view from the published snapshot.
func (b *Builder) Dashboard(orgID id.OrganizationID) (Dashboard, error) {
	snapshot, err := b.Current()
	if err != nil {
		return Dashboard{}, err
	}
	return snapshot.Dashboard(orgID, DefaultTopRisk), nil
}

func (b *Builder) observeRebuild(status string, start time.Time) {
	if b.metrics != nil {
		b.metrics.ObserveRebuild(status, start)
	}
}

// restore swaps in a snapshot loaded from the mirror, used at startup so a
// fresh instance can serve dashboards before its first rebuild. A mirror
// snapshot never replaces a locally built one.
func (b *Builder) restore(snapshot *Snapshot) {
	b.current.CompareAndSwap(nil, snapshot)
}

// RestoreFromMirror loads the last published snapshot from Redis, if any.
func (b *Builder) RestoreFromMirror(ctx context.Context) error {
	if b.mirror == nil {
		return nil
	}
	snapshot, err := b.mirror.Load(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return err
	}
	b.restore(snapshot)
	return nil
}
