package models

// FactorSet is the per-category effective view of a contractor's factors for
// one assessment window. At most one factor governs each category.
type FactorSet map[FactorCategory]Factor

// sourceRank orders sources for the effective-value rule. Manual submissions
// take precedence over computed ones for the same category, and computed over
// externally derived rows.
var sourceRank = map[FactorSource]int{
	SourceManual:      3,
	SourceComputed:    2,
	SourceTimeEntries: 1,
}

// EffectiveFactors selects the governing factor per category.
//
// Selection rule, in order:
//  1. higher source precedence wins (manual > computed > derived-from-time-entries)
//  2. later PeriodEnd wins (most recent observation window)
//  3. newer CreatedAt wins (latest appended row supersedes)
//
// Callers pass only factors already scoped to the assessment window.
func EffectiveFactors(factors []Factor) FactorSet {
	set := make(FactorSet, len(factors))
	for _, f := range factors {
		current, exists := set[f.Category]
		if !exists || supersedes(f, current) {
			set[f.Category] = f
		}
	}
	return set
}

func supersedes(candidate, current Factor) bool {
	cr, sr := sourceRank[candidate.Source], sourceRank[current.Source]
	if cr != sr {
		return cr > sr
	}
	if !candidate.Period.End.Equal(current.Period.End) {
		return candidate.Period.End.After(current.Period.End)
	}
	return candidate.CreatedAt.After(current.CreatedAt)
}

// Number returns the numeric value for a category and whether it was observed.
func (s FactorSet) Number(c FactorCategory) (float64, bool) {
	f, ok := s[c]
	if !ok || f.Value.Kind != KindNumeric {
		return 0, false
	}
	return f.Value.Number, true
}

// Bool returns the boolean value for a category and whether it was observed.
func (s FactorSet) Bool(c FactorCategory) (bool, bool) {
	f, ok := s[c]
	if !ok || f.Value.Kind != KindBoolean {
		return false, false
	}
	return f.Value.Bool, true
}

// Text returns the text value for a category and whether it was observed.
func (s FactorSet) Text(c FactorCategory) (string, bool) {
	f, ok := s[c]
	if !ok || f.Value.Kind != KindText {
		return "", false
	}
	return f.Value.Text, true
}

// Factors returns the effective factors in the stable category order, for
// embedding as an assessment's raw input snapshot.
func (s FactorSet) Factors() []Factor {
	out := make([]Factor, 0, len(s))
	for _, c := range Categories() {
		if f, ok := s[c]; ok {
			out = append(out, f)
		}
	}
	return out
}
