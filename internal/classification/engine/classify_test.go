package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crewly/internal/classification/models"
)

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		score float64
		want  models.RiskLevel
	}{
		{0, models.RiskLow},
		{10, models.RiskLow},
		{24, models.RiskLow},
		{24.99, models.RiskLow},
		{25, models.RiskMedium},
		{49, models.RiskMedium},
		{49.99, models.RiskMedium},
		{50, models.RiskHigh},
		{74, models.RiskHigh},
		{74.99, models.RiskHigh},
		{75, models.RiskCritical},
		{99, models.RiskCritical},
		{100, models.RiskCritical},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Classify(tc.score), "score %v", tc.score)
	}
}

func TestClassifyClampsOutOfRange(t *testing.T) {
	assert.Equal(t, models.RiskLow, Classify(-5))
	assert.Equal(t, models.RiskCritical, Classify(250))
}

func TestClassifyTotalOverLevels(t *testing.T) {
	// Every score in [0, 100] lands in exactly one band and severity is
	// monotone in the score.
	prev := models.RiskLow
	for score := 0.0; score <= 100; score += 0.5 {
		level := Classify(score)
		assert.Contains(t, models.RiskLevels(), level)
		assert.GreaterOrEqual(t, level.Severity(), prev.Severity(), "score %v", score)
		prev = level
	}
}
