package engine

import (
	"crewly/internal/classification/models"
)

// Risk band lower bounds. Bands are non-overlapping and cover [0, 100]:
// low [0,25), medium [25,50), high [50,75), critical [75,100]. Integer
// boundary values belong to the lower band's upper bound (24 is low, 25 is
// medium).
const (
	mediumThreshold   = 25.0
	highThreshold     = 50.0
	criticalThreshold = 75.0
)

// Classify maps an overall score to exactly one risk level. Total over the
// whole score range; out-of-range inputs are clamped to [0, 100] first so no
// undefined region exists.
func Classify(score float64) models.RiskLevel {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	switch {
	case score < mediumThreshold:
		return models.RiskLow
	case score < highThreshold:
		return models.RiskMedium
	case score < criticalThreshold:
		return models.RiskHigh
	default:
		return models.RiskCritical
	}
}
