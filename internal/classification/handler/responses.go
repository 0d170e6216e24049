package handler

import (
	"time"

	"crewly/internal/aggregate"
	"crewly/internal/classification/models"
	id "crewly/pkg/domain"
)

// FactorResponse is the wire form of an accepted factor.
type FactorResponse struct {
	ID          id.FactorID        `json:"id"`
	Category    string             `json:"category"`
	Value       models.FactorValue `json:"value"`
	PeriodStart time.Time          `json:"period_start"`
	PeriodEnd   time.Time          `json:"period_end"`
	Source      string             `json:"source"`
	CreatedAt   time.Time          `json:"created_at"`
}

// FromFactor converts a domain factor to its wire form.
func FromFactor(f *models.Factor) FactorResponse {
	return FactorResponse{
		ID:          f.ID,
		Category:    string(f.Category),
		Value:       f.Value,
		PeriodStart: f.Period.Start,
		PeriodEnd:   f.Period.End,
		Source:      string(f.Source),
		CreatedAt:   f.CreatedAt,
	}
}

// AssessmentResponse is the wire form of an assessment snapshot. Sub-scores
// keep their full factor-by-factor breakdowns.
type AssessmentResponse struct {
	ID           id.AssessmentID  `json:"id"`
	ContractorID id.ContractorID  `json:"contractor_id"`
	OverallRisk  string           `json:"overall_risk"`
	OverallScore float64          `json:"overall_score"`
	IRSScore     models.TestScore `json:"irs_score"`
	DOLScore     models.TestScore `json:"dol_score"`
	ABCScore     models.TestScore `json:"abc_score"`
	Factors      []models.Factor  `json:"factors"`
	AssessedAt   time.Time        `json:"assessed_at"`
}

// FromAssessment converts a domain assessment to its wire form.
func FromAssessment(a *models.Assessment) AssessmentResponse {
	return AssessmentResponse{
		ID:           a.ID,
		ContractorID: a.ContractorID,
		OverallRisk:  string(a.OverallRisk),
		OverallScore: a.OverallScore,
		IRSScore:     a.IRS,
		DOLScore:     a.DOL,
		ABCScore:     a.ABC,
		Factors:      a.Factors,
		AssessedAt:   a.AssessedAt,
	}
}

// HistoryResponse wraps an assessment history page.
type HistoryResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
}

// FromHistory converts a history page to its wire form.
func FromHistory(history []models.Assessment) HistoryResponse {
	out := HistoryResponse{Assessments: make([]AssessmentResponse, 0, len(history))}
	for i := range history {
		out.Assessments = append(out.Assessments, FromAssessment(&history[i]))
	}
	return out
}

// DashboardResponse is the wire form of the org dashboard.
type DashboardResponse struct {
	OrganizationID     id.OrganizationID             `json:"organization_id"`
	CountsByRiskLevel  map[string]int                `json:"counts_by_risk_level"`
	TopRiskContractors []aggregate.ContractorSummary `json:"top_risk_contractors"`
	BuiltAt            time.Time                     `json:"built_at"`
}

// FromDashboard converts the aggregate dashboard to its wire form.
func FromDashboard(d aggregate.Dashboard) DashboardResponse {
	counts := make(map[string]int, len(d.CountsByRiskLevel))
	for level, count := range d.CountsByRiskLevel {
		counts[string(level)] = count
	}
	return DashboardResponse{
		OrganizationID:     d.OrganizationID,
		CountsByRiskLevel:  counts,
		TopRiskContractors: d.TopRiskContractors,
		BuiltAt:            d.BuiltAt,
	}
}
