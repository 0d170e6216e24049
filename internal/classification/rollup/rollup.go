// Package rollup computes trailing-window summaries of tracked time. It is
// shared by the factor deriver and the aggregate view builder so both report
// the same numbers for the same window.
package rollup

import (
	"crewly/internal/classification/ports"
	id "crewly/pkg/domain"
)

// Summary is a pure aggregation of time entries: no I/O, deterministic for a
// given entry set.
type Summary struct {
	TotalHours     float64
	AvgWeeklyHours float64
	// WeeksActive counts distinct ISO weeks with at least one entry.
	WeeksActive int
	// DominantShare is the fraction of total hours attributable to the
	// single busiest engagement. Zero when no hours were tracked.
	DominantShare float64
	// Engagements counts distinct engagements appearing in the entries.
	Engagements int
}

// Compute aggregates entries. Zero entries yield a zero Summary; that is a
// valid result, not an error.
func Compute(entries []ports.TimeEntry) Summary {
	if len(entries) == 0 {
		return Summary{}
	}

	type weekKey struct {
		year int
		week int
	}
	weeks := make(map[weekKey]struct{})
	perEngagement := make(map[id.EngagementID]float64)

	var total float64
	for _, e := range entries {
		if e.Hours <= 0 {
			continue
		}
		total += e.Hours
		year, week := e.Date.ISOWeek()
		weeks[weekKey{year, week}] = struct{}{}
		perEngagement[e.EngagementID] += e.Hours
	}

	summary := Summary{
		TotalHours:  total,
		WeeksActive: len(weeks),
		Engagements: len(perEngagement),
	}
	if summary.WeeksActive > 0 {
		summary.AvgWeeklyHours = total / float64(summary.WeeksActive)
	}
	if total > 0 {
		var dominant float64
		for _, hours := range perEngagement {
			if hours > dominant {
				dominant = hours
			}
		}
		summary.DominantShare = dominant / total
	}
	return summary
}
