// Package requestid assigns a correlation ID to every request so handlers,
// services, and audit events can be tied back to a single invocation.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"counsel/pkg/requestcontext"
)

// Header is the response header carrying the request ID back to the caller.
const Header = "X-Request-ID"

// Middleware reuses an incoming X-Request-ID when present, otherwise
// generates a fresh UUID. The ID is stored in the context and echoed on the
// response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
