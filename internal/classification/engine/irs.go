package engine

import (
	"crewly/internal/classification/models"
)

// IRS common-law test: three weighted groups of all-or-nothing constituents.
// Each constituent contributes its full weight when its observed value
// indicates an employee-like condition, zero otherwise.
//
// Group weights: behavioral control 40, financial control 30, relationship
// type 30; constituents are 10 points each, so the maximum is 100.
//
// Observed-value mapping (unobserved always contributes 0):
//
//	behavioral control
//	  instructions given   supervision-level is periodic or close
//	  training provided    training-provided is true
//	  set work hours       set-schedule is true
//	  tools provided       tools-provided is true
//	financial control (the false branch is the employee-like one here:
//	absence of investment, profit chance, or other clients marks dependence)
//	  significant investment    significant-investment is false
//	  profit/loss opportunity   profit-loss-opportunity is false
//	  economic dependence       multiple-clients is false
//	relationship type
//	  permanency           engagement-duration-weeks >= 26
//	  exclusivity          exclusivity-ratio >= 0.8
//	  integral role        integration-level is core
const irsConstituentWeight = 10.0

type irsConstituent struct {
	label    string
	category models.FactorCategory
	eval     binary
}

var irsConstituents = []irsConstituent{
	// Behavioral control (max 40)
	{"instructions given", models.CategorySupervisionLevel,
		textIn(models.CategorySupervisionLevel, models.SupervisionPeriodic, models.SupervisionClose)},
	{"training provided", models.CategoryTrainingProvided,
		boolIs(models.CategoryTrainingProvided, true)},
	{"set work hours", models.CategorySetSchedule,
		boolIs(models.CategorySetSchedule, true)},
	{"tools provided", models.CategoryToolsProvided,
		boolIs(models.CategoryToolsProvided, true)},

	// Financial control (max 30)
	{"significant investment", models.CategorySignificantInvestment,
		boolIs(models.CategorySignificantInvestment, false)},
	{"profit/loss opportunity", models.CategoryProfitLossOpportunity,
		boolIs(models.CategoryProfitLossOpportunity, false)},
	{"economic dependence", models.CategoryMultipleClients,
		boolIs(models.CategoryMultipleClients, false)},

	// Relationship type (max 30)
	{"permanency", models.CategoryEngagementDurationWeeks,
		numberAtLeast(models.CategoryEngagementDurationWeeks, permanencyWeeks)},
	{"exclusivity", models.CategoryExclusivityRatio,
		numberAtLeast(models.CategoryExclusivityRatio, exclusivityThreshold)},
	{"integral role", models.CategoryIntegrationLevel,
		textIn(models.CategoryIntegrationLevel, models.IntegrationCore)},
}

// ScoreIRS computes the IRS common-law sub-score with a full breakdown.
func ScoreIRS(set models.FactorSet) models.TestScore {
	breakdown := make([]models.FactorContribution, 0, len(irsConstituents))
	var score float64

	for _, c := range irsConstituents {
		employeeLike, observed := c.eval(set)
		contribution := 0.0
		if observed && employeeLike {
			contribution = irsConstituentWeight
		}
		score += contribution
		breakdown = append(breakdown, models.FactorContribution{
			Label:        c.label,
			Category:     c.category,
			Weight:       irsConstituentWeight,
			Contribution: contribution,
			Observed:     observed,
			EmployeeLike: observed && employeeLike,
		})
	}

	return models.TestScore{Score: models.Round2(score), Breakdown: breakdown}
}
