package service

import (
	"context"
	"errors"
	"time"

	"crewly/internal/classification/engine"
	"crewly/internal/classification/models"
	id "crewly/pkg/domain"
	dErrors "crewly/pkg/domain-errors"
	"crewly/pkg/platform/sentinel"
	"crewly/pkg/requestcontext"
)

// Assess runs the full pipeline for one contractor: derive fresh computed
// factors for the trailing window, select the effective factor per category,
// score all three legal tests, classify, and append an immutable assessment.
//
// Re-running with an unchanged factor set yields a new row with an identical
// score vector: the computation is deterministic, only storage is append-only.
// Upstream read failures surface as retryable errors; no partial assessment
// is ever written.
func (s *Service) Assess(ctx context.Context, contractorID id.ContractorID) (*models.Assessment, error) {
	ctx, span := s.tracer.Start(ctx, "classification.Assess")
	defer span.End()

	if contractorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "contractor id is required")
	}
	start := time.Now()
	now := requestcontext.Now(ctx)

	contractor, err := s.contractors.Contractor(ctx, contractorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contractor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "contractor registry unavailable")
	}
	if !contractor.Active {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contractor is not active")
	}

	window := models.Period{Start: now.Add(-s.window), End: now}
	if _, err := s.DeriveFactors(ctx, contractorID, window); err != nil {
		return nil, err
	}

	factors, err := s.factors.ListInWindow(ctx, contractorID, window.Start, window.End)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load factors")
	}

	set := models.EffectiveFactors(factors)
	result := engine.Score(set)

	assessment := &models.Assessment{
		ID:           id.AssessmentID(id.New()),
		ContractorID: contractorID,
		OverallRisk:  result.Risk,
		OverallScore: result.Overall,
		IRS:          result.IRS,
		DOL:          result.DOL,
		ABC:          result.ABC,
		Factors:      set.Factors(),
		AssessedAt:   now,
	}
	if err := s.assessments.Append(ctx, assessment); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record assessment")
	}

	if s.metrics != nil {
		s.metrics.ObserveAssessment(string(result.Risk), start)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "contractor assessed",
			"contractor_id", contractorID,
			"risk", result.Risk,
			"score", result.Overall,
		)
	}
	return assessment, nil
}

// History returns up to limit assessments for a contractor, newest first.
// A zero limit means DefaultHistoryLimit; limits above MaxHistoryLimit are
// capped, not rejected.
func (s *Service) History(ctx context.Context, contractorID id.ContractorID, limit int) ([]models.Assessment, error) {
	if contractorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "contractor id is required")
	}
	if limit < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "limit must not be negative")
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	history, err := s.assessments.History(ctx, contractorID, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load assessment history")
	}
	return history, nil
}
