package engine

import (
	"crewly/internal/classification/models"
)

// DOL economic-realities test: six factors whose weights sum to 100. Unlike
// the IRS test, each factor contributes proportionally to how employee-like
// its observed value is (a likeness in [0, 1] times the factor weight).
//
// Weights and observed-value mapping (unobserved contributes 0):
//
//	opportunity for profit/loss  20  profit-loss-opportunity: false=1, true=0
//	investment                   15  significant-investment: false=1, true=0
//	permanence                   15  engagement-duration-weeks: min(weeks/52, 1)
//	degree of control            20  strongest of: supervision-level
//	                                 (none=0, periodic=0.5, close=1),
//	                                 set-schedule true=0.75,
//	                                 hours-per-week >= 40 = 0.5
//	integral to business         15  integration-level: peripheral=0,
//	                                 supporting=0.5, core=1
//	skill and initiative         15  multiple-clients: false=1, true=0
type dolFactor struct {
	label    string
	category models.FactorCategory
	weight   float64
	likeness func(models.FactorSet) (float64, bool)
}

var dolFactors = []dolFactor{
	{"opportunity for profit/loss", models.CategoryProfitLossOpportunity, 20, boolLikeness(models.CategoryProfitLossOpportunity, false)},
	{"investment", models.CategorySignificantInvestment, 15, boolLikeness(models.CategorySignificantInvestment, false)},
	{"permanence", models.CategoryEngagementDurationWeeks, 15, permanenceLikeness},
	{"degree of control", models.CategorySupervisionLevel, 20, controlLikeness},
	{"integral to business", models.CategoryIntegrationLevel, 15, integrationLikeness},
	{"skill and initiative", models.CategoryMultipleClients, 15, boolLikeness(models.CategoryMultipleClients, false)},
}

// ScoreDOL computes the DOL economic-realities sub-score with a full breakdown.
func ScoreDOL(set models.FactorSet) models.TestScore {
	breakdown := make([]models.FactorContribution, 0, len(dolFactors))
	var score float64

	for _, f := range dolFactors {
		likeness, observed := f.likeness(set)
		contribution := 0.0
		if observed {
			contribution = models.Round2(likeness * f.weight)
		}
		score += contribution
		breakdown = append(breakdown, models.FactorContribution{
			Label:        f.label,
			Category:     f.category,
			Weight:       f.weight,
			Contribution: contribution,
			Observed:     observed,
			EmployeeLike: observed && likeness > 0,
		})
	}

	return models.TestScore{Score: models.Round2(score), Breakdown: breakdown}
}

func boolLikeness(category models.FactorCategory, employeeLikeWhen bool) func(models.FactorSet) (float64, bool) {
	return func(set models.FactorSet) (float64, bool) {
		v, ok := set.Bool(category)
		if !ok {
			return 0, false
		}
		if v == employeeLikeWhen {
			return 1, true
		}
		return 0, true
	}
}

func permanenceLikeness(set models.FactorSet) (float64, bool) {
	weeks, ok := set.Number(models.CategoryEngagementDurationWeeks)
	if !ok {
		return 0, false
	}
	if weeks < 0 {
		weeks = 0
	}
	likeness := weeks / dolPermanenceHorizonWeeks
	if likeness > 1 {
		likeness = 1
	}
	return likeness, true
}

// controlLikeness blends the control signals: direct supervision, a set
// schedule, and full-time weekly hours. The strongest observed signal governs.
func controlLikeness(set models.FactorSet) (float64, bool) {
	likeness, observed := 0.0, false

	if level, ok := set.Text(models.CategorySupervisionLevel); ok {
		observed = true
		switch level {
		case models.SupervisionClose:
			likeness = max(likeness, 1)
		case models.SupervisionPeriodic:
			likeness = max(likeness, 0.5)
		case models.SupervisionNone:
			// no control signal
		}
	}
	if scheduled, ok := set.Bool(models.CategorySetSchedule); ok {
		observed = true
		if scheduled {
			likeness = max(likeness, 0.75)
		}
	}
	if hours, ok := set.Number(models.CategoryHoursPerWeek); ok {
		observed = true
		if hours >= fullTimeHours {
			likeness = max(likeness, 0.5)
		}
	}

	return likeness, observed
}

func integrationLikeness(set models.FactorSet) (float64, bool) {
	level, ok := set.Text(models.CategoryIntegrationLevel)
	if !ok {
		return 0, false
	}
	switch level {
	case models.IntegrationCore:
		return 1, true
	case models.IntegrationSupporting:
		return 0.5, true
	default:
		return 0, true
	}
}
