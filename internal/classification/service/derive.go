package service

import (
	"context"

	"crewly/internal/classification/models"
	"crewly/internal/classification/rollup"
	id "crewly/pkg/domain"
	dErrors "crewly/pkg/domain-errors"
	"crewly/pkg/requestcontext"
)

// DeriveFactors computes behavioral factors from time-tracking records over
// the given period and appends them as new rows tagged computed.
//
// Produced factors:
//   - hours-per-week: total tracked hours / distinct active ISO weeks
//   - engagement-duration-weeks: distinct active ISO weeks
//   - exclusivity-ratio: dominant engagement's share of tracked hours,
//     emitted only when the contractor has more than one active engagement
//     and tracked hours in the period
//
// Zero time-tracking records yield zero-valued factors, not an error.
// Re-running derivation appends equivalent new rows; prior rows are never
// mutated or deleted, so the operation is idempotent in effect.
func (s *Service) DeriveFactors(ctx context.Context, contractorID id.ContractorID, period models.Period) ([]models.Factor, error) {
	if contractorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "contractor id is required")
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.timeSource.EntriesInRange(ctx, contractorID, period.Start, period.End)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "time-tracking source unavailable")
	}
	activeEngagements, err := s.engagements.ActiveEngagementCount(ctx, contractorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "engagement registry unavailable")
	}

	summary := rollup.Compute(entries)
	now := requestcontext.Now(ctx)

	observations := []struct {
		category models.FactorCategory
		value    models.FactorValue
		emit     bool
	}{
		{models.CategoryHoursPerWeek, models.NumberValue(models.Round2(summary.AvgWeeklyHours)), true},
		{models.CategoryEngagementDurationWeeks, models.NumberValue(float64(summary.WeeksActive)), true},
		{models.CategoryExclusivityRatio, models.NumberValue(models.Round2(summary.DominantShare)),
			activeEngagements > 1 && summary.TotalHours > 0},
	}

	var derived []models.Factor
	for _, obs := range observations {
		if !obs.emit {
			continue
		}
		f, err := models.NewFactor(contractorID, obs.category, obs.value, period, models.SourceComputed, now)
		if err != nil {
			return nil, err
		}
		if err := s.factors.Append(ctx, f); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store derived factor")
		}
		derived = append(derived, *f)
	}

	if s.metrics != nil {
		s.metrics.AddFactorsDerived(len(derived))
	}
	return derived, nil
}
