package models

import (
	"math"
	"time"

	id "crewly/pkg/domain"
	dErrors "crewly/pkg/domain-errors"
)

// RiskLevel is the discrete misclassification-risk category derived from the
// overall score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskLevels returns all levels ordered from least to most severe.
func RiskLevels() []RiskLevel {
	return []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}
}

// ParseRiskLevel validates and returns a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch l := RiskLevel(s); l {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return l, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "unknown risk level: "+s)
	}
}

// Severity orders risk levels for sorting (low=0 .. critical=3).
func (l RiskLevel) Severity() int {
	switch l {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return -1
	}
}

// FactorContribution records how one input factor moved one legal test.
// Breakdown entries exist for every constituent of a test, observed or not,
// so a reviewer can see exactly which defaults were applied.
type FactorContribution struct {
	// Label names the legal-test constituent (e.g. "set work hours"),
	// which is not always the same as the backing category name.
	Label        string         `json:"label"`
	Category     FactorCategory `json:"category"`
	Weight       float64        `json:"weight"`
	Contribution float64        `json:"contribution"`
	// Observed is false when the factor was absent and the documented
	// contractor-like default (zero contribution) applied.
	Observed bool `json:"observed"`
	// EmployeeLike is true when the observed value indicated an
	// employee-like condition.
	EmployeeLike bool `json:"employee_like"`
}

// TestScore is one legal test's bounded sub-score with its full breakdown.
type TestScore struct {
	Score     float64              `json:"score"`
	Breakdown []FactorContribution `json:"breakdown"`
}

// Assessment is an immutable snapshot of one scoring run. History is
// append-only; assessments are never updated or deleted.
type Assessment struct {
	ID           id.AssessmentID `json:"id"`
	ContractorID id.ContractorID `json:"contractor_id"`
	OverallRisk  RiskLevel       `json:"overall_risk"`
	OverallScore float64         `json:"overall_score"`
	IRS          TestScore       `json:"irs_score"`
	DOL          TestScore       `json:"dol_score"`
	ABC          TestScore       `json:"abc_score"`
	// Factors is the raw effective-factor snapshot the scores were
	// computed from.
	Factors    []Factor  `json:"factors"`
	AssessedAt time.Time `json:"assessed_at"`
}

// Round2 rounds a score to two decimal places, the persisted precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
