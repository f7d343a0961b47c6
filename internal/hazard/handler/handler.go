package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"frontier/internal/hazard/models"
	"frontier/pkg/platform/httputil"
	"frontier/pkg/requestcontext"
)

// Service defines the hazard operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, in models.CreateInput) (*models.HazardReport, error)
	Transition(ctx context.Context, id, target string) (*models.HazardReport, error)
	Get(ctx context.Context, id string) (*models.HazardReport, error)
	List(ctx context.Context) ([]*models.HazardReport, error)
}

// Handler wires hazard endpoints to the lifecycle service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts hazard endpoints on the router. Callers apply auth.
func (h *Handler) Register(r chi.Router) {
	r.Post("/hazards", h.HandleCreate)
	r.Get("/hazards", h.HandleList)
	r.Get("/hazards/{id}", h.HandleGet)
	r.Post("/hazards/{id}/transition", h.HandleTransition)
}

// HandleCreate handles POST /hazards.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	hazard, err := h.service.Create(ctx, req.Input())
	if err != nil {
		h.logger.WarnContext(ctx, "hazard create failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromHazard(hazard))
}

// HandleList handles GET /hazards.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hazards, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "hazard list failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromHazards(hazards))
}

// HandleGet handles GET /hazards/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hazard, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromHazard(hazard))
}

// HandleTransition handles POST /hazards/{id}/transition.
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	req, ok := httputil.DecodeAndPrepare[TransitionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	hazard, err := h.service.Transition(ctx, id, req.Status)
	if err != nil {
		h.logger.WarnContext(ctx, "hazard transition refused",
			"request_id", requestID,
			"hazard_id", id,
			"target", req.Status,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromHazard(hazard))
}
