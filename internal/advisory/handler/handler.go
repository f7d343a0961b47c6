package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"frontier/internal/advisory"
	"frontier/pkg/platform/httputil"
	"frontier/pkg/requestcontext"
)

type Service interface {
	AnalyzeHazard(ctx context.Context, id string) (*advisory.Advice, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/hazards/{id}/advisory", h.HandleAnalyze)
}

// HandleAnalyze handles POST /hazards/{id}/advisory.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	advice, err := h.service.AnalyzeHazard(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "hazard advisory failed",
			"request_id", requestcontext.RequestID(ctx),
			"hazard_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, advice)
}
