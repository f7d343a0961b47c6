package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"frontier/internal/platform/metrics"
	platformmw "frontier/internal/platform/middleware"
	dErrors "frontier/pkg/domain-errors"
	"frontier/pkg/platform/httputil"
	"frontier/pkg/platform/middleware/auth"
	"frontier/pkg/platform/middleware/metadata"
	request "frontier/pkg/platform/middleware/request"
	"frontier/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by every module handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports whether the record store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Deps collects what the router needs. Metrics, Presence, Health and
// RateLimit may be nil.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Validator      auth.TokenValidator
	Presence       auth.PresenceNotifier
	Health         HealthChecker
	RateLimit      func(http.Handler) http.Handler
	RequestTimeout time.Duration
	Handlers       []Registrar
}

// NewRouter mounts ops endpoints unauthenticated and every module handler
// behind bearer-token auth.
func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(d.Logger))
	r.Use(request.Logger(d.Logger))
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(platformmw.LatencyMiddleware(d.Metrics))

	r.Get("/healthz", healthHandler(d.Health))
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(d.RequestTimeout))
		r.Use(request.ContentTypeJSON)
		r.Use(auth.RequireAuth(d.Validator, d.Presence, d.Logger))
		if d.RateLimit != nil {
			r.Use(d.RateLimit)
		}
		for _, h := range d.Handlers {
			h.Register(r)
		}
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	return r
}

func healthHandler(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health.Ping(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
