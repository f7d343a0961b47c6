package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"frontier/internal/acknowledgment/models"
	dErrors "frontier/pkg/domain-errors"
	"frontier/pkg/platform/httputil"
	"frontier/pkg/requestcontext"
)

// Service defines the acknowledgment operations exposed over HTTP.
type Service interface {
	Acknowledge(ctx context.Context, policyID string, user models.Acknowledger) (*models.PolicyAcknowledgment, error)
	ListAcknowledgments(ctx context.Context, policyID string) ([]*models.PolicyAcknowledgment, error)
	HasAcknowledged(ctx context.Context, policyID, userID string) (bool, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts acknowledgment endpoints on the router. Callers apply auth.
func (h *Handler) Register(r chi.Router) {
	r.Post("/policies/{policyID}/acknowledgments", h.HandleAcknowledge)
	r.Get("/policies/{policyID}/acknowledgments", h.HandleList)
	r.Get("/policies/{policyID}/acknowledgments/me", h.HandleMine)
}

// HandleAcknowledge handles POST /policies/{policyID}/acknowledgments for the caller.
func (h *Handler) HandleAcknowledge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	policyID := chi.URLParam(r, "policyID")

	userID := requestcontext.UserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	ack, err := h.service.Acknowledge(ctx, policyID, models.Acknowledger{
		UserID: userID,
		Email:  requestcontext.Email(ctx),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "acknowledgment failed",
			"request_id", requestID,
			"policy_id", policyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromAcknowledgment(ack))
}

// HandleList handles GET /policies/{policyID}/acknowledgments.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policyID := chi.URLParam(r, "policyID")

	acks, err := h.service.ListAcknowledgments(ctx, policyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp := ListResponse{PolicyID: policyID, Acknowledgments: make([]AcknowledgmentResponse, 0, len(acks))}
	for _, a := range acks {
		resp.Acknowledgments = append(resp.Acknowledgments, FromAcknowledgment(a))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleMine handles GET /policies/{policyID}/acknowledgments/me.
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policyID := chi.URLParam(r, "policyID")

	userID := requestcontext.UserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	ok, err := h.service.HasAcknowledged(ctx, policyID, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{PolicyID: policyID, Acknowledged: ok})
}

type AcknowledgmentResponse struct {
	PolicyID       string    `json:"policyId"`
	UserID         string    `json:"userId"`
	Email          string    `json:"email"`
	AcknowledgedAt time.Time `json:"acknowledgedAt"`
}

type ListResponse struct {
	PolicyID        string                   `json:"policyId"`
	Acknowledgments []AcknowledgmentResponse `json:"acknowledgments"`
}

type StatusResponse struct {
	PolicyID     string `json:"policyId"`
	Acknowledged bool   `json:"acknowledged"`
}

func FromAcknowledgment(a *models.PolicyAcknowledgment) AcknowledgmentResponse {
	return AcknowledgmentResponse{
		PolicyID:       a.PolicyID,
		UserID:         a.UserID,
		Email:          a.Email,
		AcknowledgedAt: a.AcknowledgedAt,
	}
}
