package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"frontier/internal/user/models"
	dErrors "frontier/pkg/domain-errors"
	"frontier/pkg/platform/httputil"
	"frontier/pkg/requestcontext"
)

type Service interface {
	Profile(ctx context.Context, uid, email string) (*models.User, error)
}

// SignOutNotifier receives explicit sign-outs.
type SignOutNotifier interface {
	NotifyAbsent(uid string)
}

type Handler struct {
	service  Service
	signOuts SignOutNotifier
	logger   *slog.Logger
}

// New builds the profile handler. signOuts may be nil.
func New(service Service, signOuts SignOutNotifier, logger *slog.Logger) *Handler {
	return &Handler{service: service, signOuts: signOuts, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/me", h.HandleMe)
	r.Post("/me/signout", h.HandleSignOut)
}

// HandleMe handles GET /me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := requestcontext.UserID(ctx)
	if uid == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	u, err := h.service.Profile(ctx, uid, requestcontext.Email(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "profile lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", uid,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, u)
}

// HandleSignOut handles POST /me/signout. The bearer token stays valid;
// only the presence stream is told.
func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	uid := requestcontext.UserID(r.Context())
	if uid == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	if h.signOuts != nil {
		h.signOuts.NotifyAbsent(uid)
	}
	w.WriteHeader(http.StatusNoContent)
}
