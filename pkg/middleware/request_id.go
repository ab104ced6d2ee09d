package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/smartstow/move-planner/pkg/requestid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID takes the request ID from the X-Request-ID header, or from chi when
// its own middleware ran first, and generates one otherwise. The ID is stored in the
// request context and echoed back in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = middleware.GetReqID(r.Context())
		}
		if requestID == "" {
			requestID = requestid.Generate()
		}

		w.Header().Set(RequestIDHeader, requestID)
		r = r.WithContext(requestid.ToContext(r.Context(), requestID))

		next.ServeHTTP(w, r)
	})
}
