package handler

import (
	"time"

	"crewly/internal/classification/models"
	dErrors "crewly/pkg/domain-errors"
)

// SubmitFactorRequest is the wire form of a factor submission. Exactly one of
// the value fields must be set, matching the category's expected type; the
// domain layer rejects mismatches.
type SubmitFactorRequest struct {
	Category    string     `json:"category"`
	Number      *float64   `json:"number,omitempty"`
	Bool        *bool      `json:"bool,omitempty"`
	Text        *string    `json:"text,omitempty"`
	PeriodStart *time.Time `json:"period_start"`
	PeriodEnd   *time.Time `json:"period_end"`
	Source      string     `json:"source"`
}

// Validate checks wire-level shape; semantic validation (category kind,
// level sets, period ordering) happens in the domain layer.
func (r SubmitFactorRequest) Validate() error {
	if r.Category == "" {
		return dErrors.New(dErrors.CodeBadRequest, "category is required")
	}
	if r.Source == "" {
		return dErrors.New(dErrors.CodeBadRequest, "source is required")
	}
	if r.PeriodStart == nil || r.PeriodEnd == nil {
		return dErrors.New(dErrors.CodeBadRequest, "period_start and period_end are required")
	}
	set := 0
	if r.Number != nil {
		set++
	}
	if r.Bool != nil {
		set++
	}
	if r.Text != nil {
		set++
	}
	if set != 1 {
		return dErrors.New(dErrors.CodeBadRequest, "exactly one of number, bool, text must be set")
	}
	return nil
}

// FactorValue converts the wire value to the domain's polymorphic value.
func (r SubmitFactorRequest) FactorValue() models.FactorValue {
	switch {
	case r.Number != nil:
		return models.NumberValue(*r.Number)
	case r.Bool != nil:
		return models.BoolValue(*r.Bool)
	default:
		return models.TextValue(*r.Text)
	}
}

// Period converts the wire window to the domain period.
func (r SubmitFactorRequest) Period() models.Period {
	return models.Period{Start: *r.PeriodStart, End: *r.PeriodEnd}
}
