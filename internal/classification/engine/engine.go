// Package engine implements the three worker-classification legal tests and
// the score combination. Everything here is a pure function of the supplied
// factor set: no I/O, no clocks, no shared state, safe to run concurrently
// across any number of contractors.
//
// Missing factors never abort a computation. Every constituent of every test
// defaults to the contractor-like branch (zero contribution) when its backing
// factor was not observed, and the breakdown records that the default applied
// so results stay explainable.
package engine

import (
	"crewly/internal/classification/models"
)

// Shared observed-value thresholds. These resolve the open question of how
// raw values map to employee-like conditions; the per-test tables document
// which categories feed which constituents.
const (
	// fullTimeHours marks a weekly-hours average that looks like a
	// scheduled full-time job.
	fullTimeHours = 40.0
	// permanencyWeeks marks an engagement long enough to suggest a
	// permanent relationship (half a year).
	permanencyWeeks = 26.0
	// exclusivityThreshold marks hour concentration on a single client
	// high enough to suggest economic dependence.
	exclusivityThreshold = 0.8
	// dolPermanenceHorizonWeeks is the duration at which the DOL
	// permanence factor saturates (a full year).
	dolPermanenceHorizonWeeks = 52.0
)

// Result is the outcome of one full scoring run.
type Result struct {
	IRS     models.TestScore
	DOL     models.TestScore
	ABC     models.TestScore
	Overall float64
	Risk    models.RiskLevel
}

// Score runs all three tests and combines them.
//
// Combination rule: equal thirds. The three tests are independent bodies of
// law with no authoritative relative weighting, so none is privileged:
//
//	overall = (irs + dol + abc) / 3, rounded to two decimals.
func Score(set models.FactorSet) Result {
	irs := ScoreIRS(set)
	dol := ScoreDOL(set)
	abc := ScoreABC(set)

	overall := models.Round2((irs.Score + dol.Score + abc.Score) / 3)

	return Result{
		IRS:     irs,
		DOL:     dol,
		ABC:     abc,
		Overall: overall,
		Risk:    Classify(overall),
	}
}

// binary evaluates a condition that contributes its full weight when the
// observed value is employee-like and nothing otherwise.
type binary func(models.FactorSet) (employeeLike, observed bool)

func boolIs(category models.FactorCategory, employeeLikeWhen bool) binary {
	return func(set models.FactorSet) (bool, bool) {
		v, ok := set.Bool(category)
		if !ok {
			return false, false
		}
		return v == employeeLikeWhen, true
	}
}

func textIn(category models.FactorCategory, levels ...string) binary {
	return func(set models.FactorSet) (bool, bool) {
		v, ok := set.Text(category)
		if !ok {
			return false, false
		}
		for _, l := range levels {
			if v == l {
				return true, true
			}
		}
		return false, true
	}
}

func numberAtLeast(category models.FactorCategory, threshold float64) binary {
	return func(set models.FactorSet) (bool, bool) {
		v, ok := set.Number(category)
		if !ok {
			return false, false
		}
		return v >= threshold, true
	}
}
