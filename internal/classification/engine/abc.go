package engine

import (
	"crewly/internal/classification/models"
)

// California ABC test: three pass/fail prongs weighted 34/33/33. A failed
// prong contributes its full weight toward risk; failing more prongs
// increases the score.
//
// Prong determinations (a prong with no observed backing factor passes — the
// contractor-like default):
//
//	A  free from control (34)          fails when set-schedule is true, or
//	                                   supervision-level is periodic or close,
//	                                   or hours-per-week >= 40
//	B  outside usual course (33)       fails when integration-level is core,
//	                                   or tools-provided is true
//	C  independently established (33)  fails when exclusivity-ratio >= 0.8.
//	                                   A bare multiple-clients=false is
//	                                   deliberately insufficient on its own:
//	                                   the prong keys on observed hour
//	                                   concentration, not a single flag.
type abcProng struct {
	label  string
	weight float64
	// fails reports whether the prong fails and whether any backing
	// factor was observed.
	fails func(models.FactorSet) (failed, observed bool)
}

var abcProngs = []abcProng{
	{"free from control", 34, prongAFails},
	{"outside usual course", 33, prongBFails},
	{"independently established", 33, prongCFails},
}

// ScoreABC computes the California ABC sub-score with a per-prong breakdown.
func ScoreABC(set models.FactorSet) models.TestScore {
	breakdown := make([]models.FactorContribution, 0, len(abcProngs))
	var score float64

	for _, p := range abcProngs {
		failed, observed := p.fails(set)
		contribution := 0.0
		if failed {
			contribution = p.weight
		}
		score += contribution
		breakdown = append(breakdown, models.FactorContribution{
			Label:        p.label,
			Weight:       p.weight,
			Contribution: contribution,
			Observed:     observed,
			EmployeeLike: failed,
		})
	}

	return models.TestScore{Score: models.Round2(score), Breakdown: breakdown}
}

func prongAFails(set models.FactorSet) (bool, bool) {
	failed, observed := false, false

	if scheduled, ok := set.Bool(models.CategorySetSchedule); ok {
		observed = true
		failed = failed || scheduled
	}
	if level, ok := set.Text(models.CategorySupervisionLevel); ok {
		observed = true
		failed = failed || level == models.SupervisionPeriodic || level == models.SupervisionClose
	}
	if hours, ok := set.Number(models.CategoryHoursPerWeek); ok {
		observed = true
		failed = failed || hours >= fullTimeHours
	}

	return failed, observed
}

func prongBFails(set models.FactorSet) (bool, bool) {
	failed, observed := false, false

	if level, ok := set.Text(models.CategoryIntegrationLevel); ok {
		observed = true
		failed = failed || level == models.IntegrationCore
	}
	if tools, ok := set.Bool(models.CategoryToolsProvided); ok {
		observed = true
		failed = failed || tools
	}

	return failed, observed
}

func prongCFails(set models.FactorSet) (bool, bool) {
	ratio, ok := set.Number(models.CategoryExclusivityRatio)
	if !ok {
		return false, false
	}
	return ratio >= exclusivityThreshold, true
}
