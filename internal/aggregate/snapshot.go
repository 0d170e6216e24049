// Package aggregate maintains the dashboard read-model: per-contractor latest
// risk joined with trailing-window time rollups, plus org-wide counts. The
// snapshot is rebuilt wholesale and published atomically; readers always see
// either the previous complete version or the new complete version.
package aggregate

import (
	"sort"
	"time"

	"crewly/internal/classification/models"
	id "crewly/pkg/domain"
)

// DefaultTopRisk is how many contractors the dashboard ranks.
const DefaultTopRisk = 10

// ContractorSummary is one contractor's row in the read-model.
type ContractorSummary struct {
	ContractorID   id.ContractorID   `json:"contractor_id"`
	OrganizationID id.OrganizationID `json:"organization_id"`
	Name           string            `json:"name"`

	// HasAssessment is false when the contractor has never been scored;
	// risk fields are zero-valued then, by design rather than by error.
	HasAssessment bool             `json:"has_assessment"`
	Risk          models.RiskLevel `json:"risk,omitempty"`
	Score         float64          `json:"score"`
	AssessedAt    *time.Time       `json:"assessed_at,omitempty"`

	AvgWeeklyHours    float64 `json:"avg_weekly_hours"`
	WeeksActive       int     `json:"weeks_active"`
	ActiveEngagements int     `json:"active_engagements"`
}

// Dashboard is the org-wide query result.
type Dashboard struct {
	OrganizationID     id.OrganizationID        `json:"organization_id"`
	CountsByRiskLevel  map[models.RiskLevel]int `json:"counts_by_risk_level"`
	TopRiskContractors []ContractorSummary      `json:"top_risk_contractors"`
	BuiltAt            time.Time                `json:"built_at"`
}

// Snapshot is one fully-built version of the read-model. Immutable after
// construction; a rebuild produces a fresh Snapshot, never patches this one.
type Snapshot struct {
	builtAt     time.Time
	errors      int
	contractors map[id.ContractorID]ContractorSummary
	// byOrg holds each org's contractors sorted by score descending, so
	// dashboard reads are slice-window cheap.
	byOrg map[id.OrganizationID][]ContractorSummary
}

// NewSnapshot indexes the summaries for per-contractor and per-org queries.
func NewSnapshot(builtAt time.Time, summaries []ContractorSummary, errorCount int) *Snapshot {
	s := &Snapshot{
		builtAt:     builtAt,
		errors:      errorCount,
		contractors: make(map[id.ContractorID]ContractorSummary, len(summaries)),
		byOrg:       make(map[id.OrganizationID][]ContractorSummary),
	}
	for _, summary := range summaries {
		s.contractors[summary.ContractorID] = summary
		s.byOrg[summary.OrganizationID] = append(s.byOrg[summary.OrganizationID], summary)
	}
	for org, list := range s.byOrg {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Score > list[j].Score
		})
		s.byOrg[org] = list
	}
	return s
}

// BuiltAt reports when this version was built.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}

// ErrorCount reports how many contractors contributed zero rows because
// their data could not be read during the rebuild.
func (s *Snapshot) ErrorCount() int {
	return s.errors
}

// Size reports how many contractors the snapshot covers.
func (s *Snapshot) Size() int {
	return len(s.contractors)
}

// Contractor looks up one contractor's row.
func (s *Snapshot) Contractor(contractorID id.ContractorID) (ContractorSummary, bool) {
	summary, ok := s.contractors[contractorID]
	return summary, ok
}

// Dashboard returns the org view: counts by risk level over contractors with
// at least one assessment, and the top-risk ranking (score descending).
func (s *Snapshot) Dashboard(orgID id.OrganizationID, topN int) Dashboard {
	if topN <= 0 {
		topN = DefaultTopRisk
	}
	counts := make(map[models.RiskLevel]int, 4)
	for _, level := range models.RiskLevels() {
		counts[level] = 0
	}

	list := s.byOrg[orgID]
	var top []ContractorSummary
	for _, summary := range list {
		if !summary.HasAssessment {
			continue
		}
		counts[summary.Risk]++
		if len(top) < topN {
			top = append(top, summary)
		}
	}

	return Dashboard{
		OrganizationID:     orgID,
		CountsByRiskLevel:  counts,
		TopRiskContractors: top,
		BuiltAt:            s.builtAt,
	}
}

// ByRiskLevel filters an org's contractors to one risk level, ordered by
// score descending.
func (s *Snapshot) ByRiskLevel(orgID id.OrganizationID, level models.RiskLevel) []ContractorSummary {
	var out []ContractorSummary
	for _, summary := range s.byOrg[orgID] {
		if summary.HasAssessment && summary.Risk == level {
			out = append(out, summary)
		}
	}
	return out
}

// Summaries returns all rows, for serialization by the mirror.
func (s *Snapshot) Summaries() []ContractorSummary {
	out := make([]ContractorSummary, 0, len(s.contractors))
	for _, summary := range s.contractors {
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ContractorID.String() < out[j].ContractorID.String()
	})
	return out
}
