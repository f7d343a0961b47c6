// Package requesttime provides middleware for request-scoped time.
// All operations within a single HTTP request use the same "now" timestamp, and
// hazard dates are taken in the reporter's zone when the client sends one.
package requesttime

import (
	"net/http"
	"time"

	"frontier/pkg/requestcontext"
)

// TimezoneHeader carries an IANA zone name such as "America/Anchorage".
const TimezoneHeader = "X-Timezone"

// Middleware captures the current time at the start of the request and the
// caller's zone. Unknown zones fall back to UTC rather than failing the request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		if tz := r.Header.Get(TimezoneHeader); tz != "" {
			if loc, err := time.LoadLocation(tz); err == nil {
				ctx = requestcontext.WithLocation(ctx, loc)
			}
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
