package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"crewly/internal/classification/adapters"
	"crewly/internal/classification/models"
	"crewly/internal/classification/ports"
	"crewly/internal/classification/ports/mocks"
	assessmentstore "crewly/internal/classification/store/assessment"
	id "crewly/pkg/domain"
	dErrors "crewly/pkg/domain-errors"
	"crewly/pkg/platform/sentinel"
	"crewly/pkg/requestcontext"
)

type BuilderSuite struct {
	suite.Suite
	contractors *adapters.MemoryContractors
	engagements *adapters.MemoryEngagements
	timeSource  *adapters.MemoryTimeTracking
	assessments *assessmentstore.InMemoryStore
	builder     *Builder

	ctx context.Context
	now time.Time
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

func (s *BuilderSuite) SetupTest() {
	s.contractors = adapters.NewMemoryContractors()
	s.engagements = adapters.NewMemoryEngagements()
	s.timeSource = adapters.NewMemoryTimeTracking()
	s.assessments = assessmentstore.NewInMemory()
	s.builder = NewBuilder(s.contractors, s.engagements, s.timeSource, s.assessments)

	s.now = time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *BuilderSuite) addContractor(orgID id.OrganizationID, name string) id.ContractorID {
	contractorID := id.ContractorID(id.New())
	s.contractors.Add(ports.ContractorRecord{
		ID:             contractorID,
		OrganizationID: orgID,
		Name:           name,
		Active:         true,
	})
	return contractorID
}

func (s *BuilderSuite) addAssessment(contractorID id.ContractorID, score float64, risk models.RiskLevel) {
	s.Require().NoError(s.assessments.Append(s.ctx, &models.Assessment{
		ID:           id.AssessmentID(id.New()),
		ContractorID: contractorID,
		OverallRisk:  risk,
		OverallScore: score,
		AssessedAt:   s.now.Add(-time.Hour),
	}))
}

func (s *BuilderSuite) TestCurrentBeforeFirstRebuild() {
	_, err := s.builder.Current()
	s.ErrorIs(err, sentinel.ErrUnavailable)

	_, err = s.builder.Contractor(id.ContractorID(id.New()))
	s.ErrorIs(err, sentinel.ErrUnavailable)
}

func (s *BuilderSuite) TestRebuildPublishesSnapshot() {
	orgID := id.OrganizationID(id.New())
	assessed := s.addContractor(orgID, "assessed")
	unassessed := s.addContractor(orgID, "unassessed")
	s.addAssessment(assessed, 62.5, models.RiskHigh)
	s.engagements.SetCount(assessed, 2)

	snapshot, err := s.builder.Rebuild(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, snapshot.Size())
	s.Zero(snapshot.ErrorCount())

	row, err := s.builder.Contractor(assessed)
	s.Require().NoError(err)
	s.True(row.HasAssessment)
	s.Equal(models.RiskHigh, row.Risk)
	s.Equal(62.5, row.Score)
	s.Equal(2, row.ActiveEngagements)

	row, err = s.builder.Contractor(unassessed)
	s.Require().NoError(err)
	s.False(row.HasAssessment, "never-assessed contractors still appear")
	s.Zero(row.Score)
}

func (s *BuilderSuite) TestRebuildSwapsAtomically() {
	orgID := id.OrganizationID(id.New())
	contractorID := s.addContractor(orgID, "c")
	s.addAssessment(contractorID, 30, models.RiskMedium)

	first, err := s.builder.Rebuild(s.ctx)
	s.Require().NoError(err)

	s.addAssessment(contractorID, 80, models.RiskCritical)
	second, err := s.builder.Rebuild(s.ctx)
	s.Require().NoError(err)

	s.NotSame(first, second)
	row, _ := first.Contractor(contractorID)
	s.Equal(30.0, row.Score, "old version is untouched by the rebuild")

	current, err := s.builder.Current()
	s.Require().NoError(err)
	s.Same(second, current)
}

func (s *BuilderSuite) TestRebuildDegradesFailedRows() {
	ctrl := gomock.NewController(s.T())
	engagements := mocks.NewMockEngagementRegistry(ctrl)
	engagements.EXPECT().
		ActiveEngagementCount(gomock.Any(), gomock.Any()).
		Return(0, errors.New("engagement service down")).
		AnyTimes()

	orgID := id.OrganizationID(id.New())
	contractorID := s.addContractor(orgID, "degraded")
	s.addAssessment(contractorID, 55, models.RiskHigh)

	builder := NewBuilder(s.contractors, engagements, s.timeSource, s.assessments)
	snapshot, err := builder.Rebuild(s.ctx)
	s.Require().NoError(err, "row failures never abort the rebuild")

	s.Equal(1, snapshot.ErrorCount())
	row, ok := snapshot.Contractor(contractorID)
	s.Require().True(ok)
	s.True(row.HasAssessment, "assessment data read before the failure survives")
	s.Zero(row.ActiveEngagements)
}

func (s *BuilderSuite) TestRebuildAbortsWhenRegistryFails() {
	ctrl := gomock.NewController(s.T())
	contractors := mocks.NewMockContractorRegistry(ctrl)
	contractors.EXPECT().
		ActiveContractors(gomock.Any()).
		Return(nil, errors.New("registry down"))

	builder := NewBuilder(contractors, s.engagements, s.timeSource, s.assessments)
	_, err := builder.Rebuild(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))

	_, err = builder.Current()
	s.ErrorIs(err, sentinel.ErrUnavailable, "no partial snapshot is ever published")
}

func (s *BuilderSuite) TestDashboard() {
	orgID := id.OrganizationID(id.New())
	otherOrg := id.OrganizationID(id.New())

	high := s.addContractor(orgID, "high")
	low := s.addContractor(orgID, "low")
	critical := s.addContractor(orgID, "critical")
	unassessed := s.addContractor(orgID, "unassessed")
	elsewhere := s.addContractor(otherOrg, "elsewhere")

	s.addAssessment(high, 60, models.RiskHigh)
	s.addAssessment(low, 5, models.RiskLow)
	s.addAssessment(critical, 90, models.RiskCritical)
	s.addAssessment(elsewhere, 40, models.RiskMedium)
	_ = unassessed

	_, err := s.builder.Rebuild(s.ctx)
	s.Require().NoError(err)

	dashboard, err := s.builder.Dashboard(orgID)
	s.Require().NoError(err)

	s.Equal(orgID, dashboard.OrganizationID)
	s.Equal(1, dashboard.CountsByRiskLevel[models.RiskLow])
	s.Equal(0, dashboard.CountsByRiskLevel[models.RiskMedium])
	s.Equal(1, dashboard.CountsByRiskLevel[models.RiskHigh])
	s.Equal(1, dashboard.CountsByRiskLevel[models.RiskCritical])

	total := 0
	for _, n := range dashboard.CountsByRiskLevel {
		total += n
	}
	s.Equal(3, total, "counts cover assessed contractors only")

	s.Require().Len(dashboard.TopRiskContractors, 3)
	s.Equal(critical, dashboard.TopRiskContractors[0].ContractorID)
	s.Equal(high, dashboard.TopRiskContractors[1].ContractorID)
	s.Equal(low, dashboard.TopRiskContractors[2].ContractorID)
}

func (s *BuilderSuite) TestDashboardEmptyOrg() {
	s.addContractor(id.OrganizationID(id.New()), "someone")
	_, err := s.builder.Rebuild(s.ctx)
	s.Require().NoError(err)

	dashboard, err := s.builder.Dashboard(id.OrganizationID(id.New()))
	s.Require().NoError(err)
	s.Empty(dashboard.TopRiskContractors)
	for _, level := range models.RiskLevels() {
		s.Zero(dashboard.CountsByRiskLevel[level])
	}
}

func (s *BuilderSuite) TestSnapshotByRiskLevel() {
	orgID := id.OrganizationID(id.New())
	a := s.addContractor(orgID, "a")
	b := s.addContractor(orgID, "b")
	s.addAssessment(a, 55, models.RiskHigh)
	s.addAssessment(b, 70, models.RiskHigh)

	snapshot, err := s.builder.Rebuild(s.ctx)
	s.Require().NoError(err)

	rows := snapshot.ByRiskLevel(orgID, models.RiskHigh)
	s.Require().Len(rows, 2)
	s.Equal(70.0, rows[0].Score, "ordered by score descending")
	s.Empty(snapshot.ByRiskLevel(orgID, models.RiskCritical))
}

func (s *BuilderSuite) TestRestoreNeverReplacesBuiltSnapshot() {
	orgID := id.OrganizationID(id.New())
	s.addContractor(orgID, "c")

	built, err := s.builder.Rebuild(s.ctx)
	s.Require().NoError(err)

	stale := NewSnapshot(s.now.Add(-time.Hour), nil, 0)
	s.builder.restore(stale)

	current, err := s.builder.Current()
	s.Require().NoError(err)
	s.Same(built, current)
}
