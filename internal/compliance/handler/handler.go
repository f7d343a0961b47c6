package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"frontier/internal/compliance/models"
	hazardmodels "frontier/internal/hazard/models"
	"frontier/pkg/platform/httputil"
	"frontier/pkg/requestcontext"
)

type Service interface {
	DashboardMetrics(ctx context.Context) (*models.Dashboard, error)
	AuditReport(ctx context.Context) (*models.AuditReport, error)
	Inspections(ctx context.Context) ([]*models.Inspection, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard", h.HandleDashboard)
	r.Get("/reports/audit", h.HandleAuditReport)
	r.Get("/inspections", h.HandleInspections)
}

// HandleDashboard handles GET /dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := h.service.DashboardMetrics(ctx)
	if err != nil {
		h.fail(ctx, w, "dashboard", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

// HandleAuditReport handles GET /reports/audit.
func (h *Handler) HandleAuditReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := h.service.AuditReport(ctx)
	if err != nil {
		h.fail(ctx, w, "audit report", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AuditReportResponse{
		AuditReport: report,
		GeneratedAt: requestcontext.Now(ctx).UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// HandleInspections handles GET /inspections.
func (h *Handler) HandleInspections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	inspections, err := h.service.Inspections(ctx)
	if err != nil {
		h.fail(ctx, w, "inspections", err)
		return
	}
	resp := InspectionListResponse{Inspections: make([]InspectionResponse, 0, len(inspections))}
	for _, i := range inspections {
		resp.Inspections = append(resp.Inspections, InspectionResponse{
			Inspection: *i,
			StatusTone: hazardmodels.ToneOf(i.Status),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, what string, err error) {
	h.logger.ErrorContext(ctx, what+" failed",
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}

type AuditReportResponse struct {
	*models.AuditReport
	GeneratedAt string `json:"generatedAt"`
}

type InspectionResponse struct {
	models.Inspection
	StatusTone hazardmodels.Tone `json:"statusTone"`
}

type InspectionListResponse struct {
	Inspections []InspectionResponse `json:"inspections"`
}
