package testutil

import (
	"net/http"
	"time"

	"frontier/pkg/requestcontext"
)

// WithIdentity adds a caller identity to the request context.
// This simulates what the auth middleware does for authenticated requests.
func WithIdentity(req *http.Request, uid, email string) *http.Request {
	return req.WithContext(requestcontext.WithIdentity(req.Context(), uid, email))
}

// WithClock pins the request time and the caller's location.
// A nil location leaves the default UTC in place.
func WithClock(req *http.Request, now time.Time, loc *time.Location) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), now)
	if loc != nil {
		ctx = requestcontext.WithLocation(ctx, loc)
	}
	return req.WithContext(ctx)
}
