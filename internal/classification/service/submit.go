package service

import (
	"context"

	"crewly/internal/classification/models"
	id "crewly/pkg/domain"
	dErrors "crewly/pkg/domain-errors"
	"crewly/pkg/requestcontext"
)

// SubmitFactorRequest carries one factor observation from a collaborator.
type SubmitFactorRequest struct {
	ContractorID id.ContractorID
	Category     models.FactorCategory
	Value        models.FactorValue
	Period       models.Period
	Source       models.FactorSource
}

// SubmitFactor validates and appends a factor observation. A value whose type
// does not match the category's expected type is rejected, never coerced.
func (s *Service) SubmitFactor(ctx context.Context, req SubmitFactorRequest) (*models.Factor, error) {
	f, err := models.NewFactor(req.ContractorID, req.Category, req.Value, req.Period, req.Source, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.factors.Append(ctx, f); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store factor")
	}

	if s.metrics != nil {
		s.metrics.IncrementFactorSubmitted(string(f.Source))
	}
	return f, nil
}
