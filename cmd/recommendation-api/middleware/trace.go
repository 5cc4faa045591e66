package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopsense-ai/recommendation-engine/internal/observability"
)

// Trace assigns every request a trace ID, propagated through the context
// for log correlation and echoed in the X-Trace-ID response header.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		w.Header().Set("X-Trace-ID", traceID)

		ctx := observability.ContextWithTraceID(r.Context(), traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
