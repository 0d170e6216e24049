package aggregate

import (
	"context"
	"log/slog"
	"time"

	"crewly/internal/platform/config"
)

// Scheduler rebuilds the snapshot on a fixed cadence. Each rebuild runs under
// its own time budget; a failed or over-budget rebuild leaves the previously
// published snapshot visible and the loop continues.
type Scheduler struct {
	builder  *Builder
	interval time.Duration
	budget   time.Duration
	logger   *slog.Logger
}

// NewScheduler constructs a rebuild scheduler.
func NewScheduler(builder *Builder, interval, budget time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = config.DefaultRebuildInterval
	}
	if budget <= 0 {
		budget = config.DefaultRebuildBudget
	}
	return &Scheduler{builder: builder, interval: interval, budget: budget, logger: logger}
}

// Run rebuilds immediately, then on every tick until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.rebuildOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.rebuildOnce(ctx)
		}
	}
}

func (s *Scheduler) rebuildOnce(ctx context.Context) {
	rebuildCtx, cancel := context.WithTimeout(ctx, s.budget)
	defer cancel()

	if _, err := s.builder.Rebuild(rebuildCtx); err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "scheduled aggregate rebuild failed", "error", err)
		}
	}
}
