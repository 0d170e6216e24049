package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"crewly/internal/aggregate"
	"crewly/internal/classification/adapters"
	"crewly/internal/classification/models"
	"crewly/internal/classification/ports"
	"crewly/internal/classification/service"
	assessmentstore "crewly/internal/classification/store/assessment"
	factorstore "crewly/internal/classification/store/factor"
	"crewly/internal/platform/logger"
	id "crewly/pkg/domain"
	"crewly/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	router      chi.Router
	contractors *adapters.MemoryContractors
	builder     *aggregate.Builder
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	factors := factorstore.NewInMemory()
	assessments := assessmentstore.NewInMemory()
	timeSource := adapters.NewMemoryTimeTracking()
	engagements := adapters.NewMemoryEngagements()
	s.contractors = adapters.NewMemoryContractors()

	svc := service.New(factors, assessments, timeSource, engagements, s.contractors)
	s.builder = aggregate.NewBuilder(s.contractors, engagements, timeSource, assessments)

	s.router = chi.NewRouter()
	New(svc, s.builder, logger.New()).Register(s.router)
}

func (s *HandlerSuite) activeContractor(orgID id.OrganizationID) id.ContractorID {
	contractorID := id.ContractorID(id.New())
	s.contractors.Add(ports.ContractorRecord{
		ID:             contractorID,
		OrganizationID: orgID,
		Name:           "handler test contractor",
		Active:         true,
	})
	return contractorID
}

func (s *HandlerSuite) submitBody(category string, value any) map[string]any {
	body := map[string]any{
		"category":     category,
		"period_start": time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		"period_end":   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		"source":       string(models.SourceManual),
	}
	switch v := value.(type) {
	case bool:
		body["bool"] = v
	case float64:
		body["number"] = v
	case string:
		body["text"] = v
	}
	return body
}

// =============================================================================
// Factor Submission
// =============================================================================

func (s *HandlerSuite) TestSubmitFactor() {
	contractorID := s.activeContractor(id.OrganizationID(id.New()))
	path := "/contractors/" + contractorID.String() + "/factors"

	s.Run("valid submission returns 201", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, path, s.submitBody("set-schedule", true))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[FactorResponse](s.T(), rr)
		s.Equal("set-schedule", resp.Category)
		s.True(resp.Value.Bool)
		s.False(resp.ID.IsNil())
	})

	s.Run("two value fields rejected", func() {
		body := s.submitBody("set-schedule", true)
		body["number"] = 3.0
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, path, body)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertErrorCode(s.T(), rr, "bad_request")
	})

	s.Run("unknown category rejected", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, path, s.submitBody("astrology-sign", "leo"))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("type mismatch rejected", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, path, s.submitBody("set-schedule", 4.5))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("malformed contractor id rejected", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/contractors/not-a-uuid/factors", s.submitBody("set-schedule", true))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("invalid JSON body rejected", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, path)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}

// =============================================================================
// Assessment
// =============================================================================

func (s *HandlerSuite) TestAssess() {
	contractorID := s.activeContractor(id.OrganizationID(id.New()))

	s.Run("assessing an active contractor returns 201", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/contractors/"+contractorID.String()+"/assessments")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[AssessmentResponse](s.T(), rr)
		s.Equal(contractorID, resp.ContractorID)
		s.NotEmpty(resp.OverallRisk)
		s.GreaterOrEqual(resp.OverallScore, 0.0)
		s.LessOrEqual(resp.OverallScore, 100.0)
	})

	s.Run("unknown contractor returns 404", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/contractors/"+id.NewString()+"/assessments")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
		testutil.AssertErrorCode(s.T(), rr, "not_found")
	})

	s.Run("inactive contractor returns 409", func() {
		inactive := id.ContractorID(id.New())
		s.contractors.Add(ports.ContractorRecord{ID: inactive, Active: false})

		req := testutil.NewRequest(s.T(), http.MethodPost, "/contractors/"+inactive.String()+"/assessments")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusConflict)
	})
}

func (s *HandlerSuite) TestHistory() {
	contractorID := s.activeContractor(id.OrganizationID(id.New()))
	base := "/contractors/" + contractorID.String() + "/assessments"

	for i := 0; i < 3; i++ {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, base))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	}

	s.Run("history returns recorded assessments", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, base))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		resp := testutil.UnmarshalResponse[HistoryResponse](s.T(), rr)
		s.Len(resp.Assessments, 3)
	})

	s.Run("limit query parameter applies", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, base+"?limit=2"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		resp := testutil.UnmarshalResponse[HistoryResponse](s.T(), rr)
		s.Len(resp.Assessments, 2)
	})

	s.Run("non-numeric limit rejected", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, base+"?limit=many"))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("negative limit rejected", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, base+"?limit=-1"))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}

// =============================================================================
// Dashboard and Summary
// =============================================================================

func (s *HandlerSuite) TestDashboard() {
	orgID := id.OrganizationID(id.New())
	contractorID := s.activeContractor(orgID)

	s.Run("before first rebuild returns 503", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/organizations/"+orgID.String()+"/dashboard"))
		testutil.AssertStatus(s.T(), rr, http.StatusServiceUnavailable)
	})

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/contractors/"+contractorID.String()+"/assessments"))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	_, err := s.builder.Rebuild(context.Background())
	s.Require().NoError(err)

	s.Run("after rebuild returns counts and ranking", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/organizations/"+orgID.String()+"/dashboard"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		resp := testutil.UnmarshalResponse[DashboardResponse](s.T(), rr)
		s.Equal(orgID, resp.OrganizationID)
		total := 0
		for _, n := range resp.CountsByRiskLevel {
			total += n
		}
		s.Equal(1, total)
		s.Len(resp.TopRiskContractors, 1)
	})

	s.Run("malformed organization id rejected", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/organizations/nope/dashboard"))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}

func (s *HandlerSuite) TestContractorSummary() {
	orgID := id.OrganizationID(id.New())
	contractorID := s.activeContractor(orgID)

	_, err := s.builder.Rebuild(context.Background())
	s.Require().NoError(err)

	s.Run("known contractor returns its row", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/contractors/"+contractorID.String()+"/summary"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		resp := testutil.UnmarshalResponse[aggregate.ContractorSummary](s.T(), rr)
		s.Equal(contractorID, resp.ContractorID)
	})

	s.Run("contractor outside the snapshot returns 404", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/contractors/"+id.NewString()+"/summary"))
		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	})
}
