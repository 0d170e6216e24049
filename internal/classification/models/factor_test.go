package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "crewly/pkg/domain"
	dErrors "crewly/pkg/domain-errors"
)

var (
	testNow    = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testPeriod = Period{Start: testNow.AddDate(0, -1, 0), End: testNow}
)

func TestNewFactor(t *testing.T) {
	contractorID := id.ContractorID(id.New())

	t.Run("valid numeric factor", func(t *testing.T) {
		f, err := NewFactor(contractorID, CategoryHoursPerWeek, NumberValue(37.5), testPeriod, SourceComputed, testNow)
		require.NoError(t, err)
		assert.False(t, f.ID.IsNil())
		assert.Equal(t, contractorID, f.ContractorID)
		assert.Equal(t, 37.5, f.Value.Number)
		assert.Equal(t, testNow, f.CreatedAt)
	})

	t.Run("valid text factor", func(t *testing.T) {
		f, err := NewFactor(contractorID, CategorySupervisionLevel, TextValue(SupervisionPeriodic), testPeriod, SourceManual, testNow)
		require.NoError(t, err)
		assert.Equal(t, SupervisionPeriodic, f.Value.Text)
	})

	t.Run("nil contractor id rejected", func(t *testing.T) {
		_, err := NewFactor(id.ContractorID{}, CategoryHoursPerWeek, NumberValue(1), testPeriod, SourceManual, testNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		_, err := NewFactor(contractorID, FactorCategory("favorite-color"), TextValue("blue"), testPeriod, SourceManual, testNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("value kind mismatch rejected not coerced", func(t *testing.T) {
		_, err := NewFactor(contractorID, CategorySetSchedule, NumberValue(1), testPeriod, SourceManual, testNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = NewFactor(contractorID, CategoryHoursPerWeek, BoolValue(true), testPeriod, SourceManual, testNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("text level outside the closed set rejected", func(t *testing.T) {
		_, err := NewFactor(contractorID, CategorySupervisionLevel, TextValue("constant"), testPeriod, SourceManual, testNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("inverted period rejected", func(t *testing.T) {
		inverted := Period{Start: testNow, End: testNow.AddDate(0, -1, 0)}
		_, err := NewFactor(contractorID, CategoryHoursPerWeek, NumberValue(1), inverted, SourceManual, testNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("zero-length period allowed", func(t *testing.T) {
		instant := Period{Start: testNow, End: testNow}
		_, err := NewFactor(contractorID, CategoryHoursPerWeek, NumberValue(1), instant, SourceManual, testNow)
		assert.NoError(t, err)
	})

	t.Run("unknown source rejected", func(t *testing.T) {
		_, err := NewFactor(contractorID, CategoryHoursPerWeek, NumberValue(1), testPeriod, FactorSource("guessed"), testNow)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestPeriodOverlaps(t *testing.T) {
	p := Period{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	windowStart := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, p.Overlaps(windowStart, windowEnd))

	assert.True(t, p.Overlaps(p.End, p.End.AddDate(0, 1, 0)), "touching boundaries overlap")
	assert.False(t, p.Overlaps(p.End.Add(time.Second), p.End.AddDate(0, 1, 0)))
	assert.False(t, p.Overlaps(p.Start.AddDate(0, -1, 0), p.Start.Add(-time.Second)))
}

func TestParseFactorCategory(t *testing.T) {
	for _, c := range Categories() {
		parsed, err := ParseFactorCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)

		kind, ok := c.Kind()
		assert.True(t, ok)
		assert.NotEmpty(t, kind)
	}

	_, err := ParseFactorCategory("not-a-category")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestParseRiskLevel(t *testing.T) {
	for _, l := range RiskLevels() {
		parsed, err := ParseRiskLevel(string(l))
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}

	_, err := ParseRiskLevel("severe")
	assert.Error(t, err)
}
