package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"crewly/internal/classification/models"
	id "crewly/pkg/domain"
	dErrors "crewly/pkg/domain-errors"
)

// BatchOutcome is the per-contractor result of a batch run.
type BatchOutcome struct {
	ContractorID id.ContractorID
	Assessment   *models.Assessment
	Err          error
}

// BatchResult aggregates a whole batch run.
type BatchResult struct {
	Outcomes []BatchOutcome
	Failed   int
}

// AssessBatch assesses many contractors with bounded fan-out. Scoring is
// embarrassingly parallel; the worker limit exists to respect store limits,
// not compute. One contractor failing never aborts the batch: its error is
// recorded in the outcome and the run continues. The caller owns the overall
// time budget via ctx and owns retry policy for retryable outcomes.
func (s *Service) AssessBatch(ctx context.Context, contractorIDs []id.ContractorID) (*BatchResult, error) {
	if len(contractorIDs) == 0 {
		return &BatchResult{}, nil
	}

	outcomes := make([]BatchOutcome, len(contractorIDs))
	var mu sync.Mutex
	failed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)

	for i, cid := range contractorIDs {
		g.Go(func() error {
			assessment, err := s.Assess(gctx, cid)
			outcomes[i] = BatchOutcome{ContractorID: cid, Assessment: assessment, Err: err}
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				if s.metrics != nil {
					s.metrics.IncrementBatchFailure()
				}
				if s.logger != nil {
					s.logger.ErrorContext(gctx, "batch assessment failed",
						"contractor_id", cid,
						"retryable", dErrors.IsRetryable(err),
						"error", err,
					)
				}
			}
			// Individual failures are isolated; only context
			// cancellation stops the group.
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch run aborted")
	}
	return &BatchResult{Outcomes: outcomes, Failed: failed}, nil
}
