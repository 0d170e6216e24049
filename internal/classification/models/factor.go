package models

import (
	"time"

	id "crewly/pkg/domain"
	dErrors "crewly/pkg/domain-errors"
)

// FactorCategory is the closed set of observations the scoring engine
// understands. Adding a category means updating categoryKinds, the scoring
// tables in the engine package, and nothing else; an unknown category is
// rejected at construction, never silently ignored.
type FactorCategory string

const (
	CategoryHoursPerWeek            FactorCategory = "hours-per-week"
	CategoryEngagementDurationWeeks FactorCategory = "engagement-duration-weeks"
	CategoryExclusivityRatio        FactorCategory = "exclusivity-ratio"
	CategorySetSchedule             FactorCategory = "set-schedule"
	CategoryToolsProvided           FactorCategory = "tools-provided"
	CategoryTrainingProvided        FactorCategory = "training-provided"
	CategorySupervisionLevel        FactorCategory = "supervision-level"
	CategoryIntegrationLevel        FactorCategory = "integration-level"
	CategoryMultipleClients         FactorCategory = "multiple-clients"
	CategoryProfitLossOpportunity   FactorCategory = "profit-loss-opportunity"
	CategorySignificantInvestment   FactorCategory = "significant-investment"
)

// ValueKind is the value shape a category accepts.
type ValueKind string

const (
	KindNumeric ValueKind = "numeric"
	KindBoolean ValueKind = "boolean"
	KindText    ValueKind = "text"
)

// categoryKinds is the source of truth for the category set and the value
// shape each category accepts.
var categoryKinds = map[FactorCategory]ValueKind{
	CategoryHoursPerWeek:            KindNumeric,
	CategoryEngagementDurationWeeks: KindNumeric,
	CategoryExclusivityRatio:        KindNumeric,
	CategorySetSchedule:             KindBoolean,
	CategoryToolsProvided:           KindBoolean,
	CategoryTrainingProvided:        KindBoolean,
	CategorySupervisionLevel:        KindText,
	CategoryIntegrationLevel:        KindText,
	CategoryMultipleClients:         KindBoolean,
	CategoryProfitLossOpportunity:   KindBoolean,
	CategorySignificantInvestment:   KindBoolean,
}

// Closed level sets for text categories.
const (
	SupervisionNone     = "none"
	SupervisionPeriodic = "periodic"
	SupervisionClose    = "close"

	IntegrationPeripheral = "peripheral"
	IntegrationSupporting = "supporting"
	IntegrationCore       = "core"
)

var textLevels = map[FactorCategory][]string{
	CategorySupervisionLevel: {SupervisionNone, SupervisionPeriodic, SupervisionClose},
	CategoryIntegrationLevel: {IntegrationPeripheral, IntegrationSupporting, IntegrationCore},
}

// Categories returns the full closed category set in a stable order.
func Categories() []FactorCategory {
	return []FactorCategory{
		CategoryHoursPerWeek,
		CategoryEngagementDurationWeeks,
		CategoryExclusivityRatio,
		CategorySetSchedule,
		CategoryToolsProvided,
		CategoryTrainingProvided,
		CategorySupervisionLevel,
		CategoryIntegrationLevel,
		CategoryMultipleClients,
		CategoryProfitLossOpportunity,
		CategorySignificantInvestment,
	}
}

// ParseFactorCategory validates and returns a FactorCategory.
func ParseFactorCategory(s string) (FactorCategory, error) {
	c := FactorCategory(s)
	if _, ok := categoryKinds[c]; !ok {
		return "", dErrors.New(dErrors.CodeValidation, "unknown factor category: "+s)
	}
	return c, nil
}

// Kind returns the value shape this category accepts. The second return is
// false for categories outside the closed set.
func (c FactorCategory) Kind() (ValueKind, bool) {
	k, ok := categoryKinds[c]
	return k, ok
}

func (c FactorCategory) String() string {
	return string(c)
}

// FactorSource tags where an observation came from.
type FactorSource string

const (
	SourceComputed    FactorSource = "computed"
	SourceManual      FactorSource = "manual"
	SourceTimeEntries FactorSource = "derived-from-time-entries"
)

// ParseFactorSource validates and returns a FactorSource.
func ParseFactorSource(s string) (FactorSource, error) {
	switch src := FactorSource(s); src {
	case SourceComputed, SourceManual, SourceTimeEntries:
		return src, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "unknown factor source: "+s)
	}
}

// FactorValue is the polymorphic observation value. Exactly one field is
// populated, matching the category's ValueKind.
type FactorValue struct {
	Kind   ValueKind `json:"kind"`
	Number float64   `json:"number,omitempty"`
	Bool   bool      `json:"bool,omitempty"`
	Text   string    `json:"text,omitempty"`
}

// NumberValue builds a numeric factor value.
func NumberValue(n float64) FactorValue {
	return FactorValue{Kind: KindNumeric, Number: n}
}

// BoolValue builds a boolean factor value.
func BoolValue(b bool) FactorValue {
	return FactorValue{Kind: KindBoolean, Bool: b}
}

// TextValue builds a text factor value.
func TextValue(s string) FactorValue {
	return FactorValue{Kind: KindText, Text: s}
}

// Period is the [Start, End] validity window of an observation.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate enforces End >= Start.
func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "factor period start and end are required")
	}
	if p.End.Before(p.Start) {
		return dErrors.New(dErrors.CodeValidation, "factor period end must not precede start")
	}
	return nil
}

// Overlaps reports whether the period intersects [from, to].
func (p Period) Overlaps(from, to time.Time) bool {
	return !p.End.Before(from) && !p.Start.After(to)
}

// Factor is a single immutable observation. A changed observation for the
// same category/period is a new row; existing rows are never mutated.
type Factor struct {
	ID           id.FactorID     `json:"id"`
	ContractorID id.ContractorID `json:"contractor_id"`
	Category     FactorCategory  `json:"category"`
	Value        FactorValue     `json:"value"`
	Period       Period          `json:"period"`
	Source       FactorSource    `json:"source"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewFactor validates category, value shape, and period, and stamps identity.
// Value type mismatches are rejected here, never coerced.
func NewFactor(contractorID id.ContractorID, category FactorCategory, value FactorValue, period Period, source FactorSource, now time.Time) (*Factor, error) {
	if contractorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "contractor id is required")
	}
	kind, ok := category.Kind()
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown factor category: "+string(category))
	}
	if value.Kind != kind {
		return nil, dErrors.New(dErrors.CodeValidation,
			"category "+string(category)+" requires a "+string(kind)+" value, got "+string(value.Kind))
	}
	if kind == KindText {
		if err := validateTextLevel(category, value.Text); err != nil {
			return nil, err
		}
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	switch source {
	case SourceComputed, SourceManual, SourceTimeEntries:
	default:
		return nil, dErrors.New(dErrors.CodeValidation, "unknown factor source: "+string(source))
	}

	return &Factor{
		ID:           id.FactorID(id.New()),
		ContractorID: contractorID,
		Category:     category,
		Value:        value,
		Period:       period,
		Source:       source,
		CreatedAt:    now,
	}, nil
}

func validateTextLevel(category FactorCategory, text string) error {
	levels, ok := textLevels[category]
	if !ok {
		return dErrors.New(dErrors.CodeValidation, "category "+string(category)+" has no defined levels")
	}
	for _, l := range levels {
		if l == text {
			return nil
		}
	}
	return dErrors.New(dErrors.CodeValidation,
		"value "+text+" is not a valid level for "+string(category))
}
