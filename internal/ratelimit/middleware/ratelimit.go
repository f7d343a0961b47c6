package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"frontier/internal/ratelimit/metrics"
	"frontier/internal/ratelimit/models"
	dErrors "frontier/pkg/domain-errors"
	"frontier/pkg/platform/httputil"
	"frontier/pkg/requestcontext"
)

// BucketStore admits or rejects one request against a keyed window.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit models.Limit) (*models.Result, error)
}

type Middleware struct {
	store   BucketStore
	limits  map[models.Class]models.Limit
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Middleware)

func WithMetrics(m *metrics.Metrics) Option {
	return func(mw *Middleware) {
		mw.metrics = m
	}
}

// New limits each class to its entry in limits. A class without an entry is
// not limited.
func New(store BucketStore, limits map[models.Class]models.Limit, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{store: store, limits: limits, logger: logger}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handler must run after authentication; callers are keyed by user id and
// fall back to client IP. A failing store lets the request through.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		class := models.ClassFor(r.Method)
		limit, ok := m.limits[class]
		if !ok || limit.Requests <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		caller := requestcontext.UserID(ctx)
		if caller == "" {
			caller = "ip:" + requestcontext.ClientIP(ctx)
		}

		result, err := m.store.Allow(ctx, models.Key(class, caller), limit)
		if err != nil {
			m.metrics.IncrementStoreErrors()
			m.logger.ErrorContext(ctx, "rate limit check failed",
				"error", err,
				"class", string(class),
				"request_id", requestcontext.RequestID(ctx),
			)
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if !result.Allowed {
			m.metrics.IncrementRejections(string(class))
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"user_id", requestcontext.UserID(ctx),
				"class", string(class),
				"request_id", requestcontext.RequestID(ctx),
			)
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
			httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many requests, try again later"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
