package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"crewly/internal/aggregate"
	"crewly/internal/classification/models"
	"crewly/internal/classification/service"
	id "crewly/pkg/domain"
	dErrors "crewly/pkg/domain-errors"
	"crewly/pkg/platform/httputil"
	"crewly/pkg/platform/sentinel"
	"crewly/pkg/requestcontext"
)

// Service defines the classification operations the handler exposes.
type Service interface {
	SubmitFactor(ctx context.Context, req service.SubmitFactorRequest) (*models.Factor, error)
	Assess(ctx context.Context, contractorID id.ContractorID) (*models.Assessment, error)
	History(ctx context.Context, contractorID id.ContractorID, limit int) ([]models.Assessment, error)
}

// Dashboards defines the aggregate read surface the handler exposes.
type Dashboards interface {
	Dashboard(orgID id.OrganizationID) (aggregate.Dashboard, error)
	Contractor(contractorID id.ContractorID) (aggregate.ContractorSummary, error)
}

// Handler wires classification endpoints to the service and the aggregate
// reader. It is the whole HTTP surface of this subsystem; the platform's full
// API layer lives elsewhere.
type Handler struct {
	service    Service
	dashboards Dashboards
	logger     *slog.Logger
}

// New constructs a classification handler with its dependencies.
func New(service Service, dashboards Dashboards, logger *slog.Logger) *Handler {
	return &Handler{
		service:    service,
		dashboards: dashboards,
		logger:     logger,
	}
}

// Register mounts classification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/contractors/{contractorID}/factors", h.HandleSubmitFactor)
	r.Post("/contractors/{contractorID}/assessments", h.HandleAssess)
	r.Get("/contractors/{contractorID}/assessments", h.HandleHistory)
	r.Get("/contractors/{contractorID}/summary", h.HandleContractorSummary)
	r.Get("/organizations/{organizationID}/dashboard", h.HandleDashboard)
}

// HandleSubmitFactor handles POST /contractors/{contractorID}/factors.
func (h *Handler) HandleSubmitFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	contractorID, ok := h.contractorID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SubmitFactorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	category, err := models.ParseFactorCategory(req.Category)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	source, err := models.ParseFactorSource(req.Source)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	factor, err := h.service.SubmitFactor(ctx, service.SubmitFactorRequest{
		ContractorID: contractorID,
		Category:     category,
		Value:        req.FactorValue(),
		Period:       req.Period(),
		Source:       source,
	})
	if err != nil {
		h.logError(ctx, "factor submission failed", requestID, contractorID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromFactor(factor))
}

// HandleAssess handles POST /contractors/{contractorID}/assessments.
func (h *Handler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	contractorID, ok := h.contractorID(w, r)
	if !ok {
		return
	}

	assessment, err := h.service.Assess(ctx, contractorID)
	if err != nil {
		h.logError(ctx, "assessment failed", requestID, contractorID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromAssessment(assessment))
}

// HandleHistory handles GET /contractors/{contractorID}/assessments.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	contractorID, ok := h.contractorID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	history, err := h.service.History(ctx, contractorID, limit)
	if err != nil {
		h.logError(ctx, "history lookup failed", requestID, contractorID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromHistory(history))
}

// HandleContractorSummary handles GET /contractors/{contractorID}/summary.
func (h *Handler) HandleContractorSummary(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := h.contractorID(w, r)
	if !ok {
		return
	}

	summary, err := h.dashboards.Contractor(contractorID)
	if err != nil {
		httputil.WriteError(w, translateAggregateErr(err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, summary)
}

// HandleDashboard handles GET /organizations/{organizationID}/dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	orgID, err := id.ParseOrganizationID(chi.URLParam(r, "organizationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid organization id"))
		return
	}

	dashboard, err := h.dashboards.Dashboard(orgID)
	if err != nil {
		httputil.WriteError(w, translateAggregateErr(err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromDashboard(dashboard))
}

func (h *Handler) contractorID(w http.ResponseWriter, r *http.Request) (id.ContractorID, bool) {
	contractorID, err := id.ParseContractorID(chi.URLParam(r, "contractorID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid contractor id"))
		return id.ContractorID{}, false
	}
	return contractorID, true
}

func (h *Handler) logError(ctx context.Context, msg, requestID string, contractorID id.ContractorID, err error) {
	if h.logger == nil {
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestID,
		"contractor_id", contractorID,
		"error", err,
	)
}

func translateAggregateErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "contractor not in aggregate view")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.New(dErrors.CodeUnavailable, "aggregate view not built yet")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "aggregate lookup failed")
	}
}
