package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	request "frontier/pkg/platform/middleware/request"
	"frontier/pkg/requestcontext"
)

// TokenValidator verifies a bearer token issued by the authentication collaborator.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// PresenceNotifier is told about every authenticated caller so that
// first-login provisioning can run off the request path.
type PresenceNotifier interface {
	NotifyPresent(uid, email string)
}

// Claims is the identity the collaborator vouches for.
type Claims struct {
	UserID string
	Email  string
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAuth rejects requests without a valid bearer token and injects the
// caller identity into the request context. presence may be nil.
func RequireAuth(validator TokenValidator, presence PresenceNotifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", request.GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", request.GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}
			if claims.UserID == "" {
				logger.WarnContext(ctx, "unauthorized access - token without subject",
					"request_id", request.GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			if presence != nil {
				presence.NotifyPresent(claims.UserID, claims.Email)
			}

			ctx = requestcontext.WithIdentity(ctx, claims.UserID, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
