package http

import (
	"net/http"

	"github.com/google/uuid"
)

// withTraceID tags the request logger with the caller's X-Trace-ID, or a
// fresh one, and echoes it back.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(headerTraceID)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx, _ := h.logger.WithTraceID(r.Context(), traceID)

		w.Header().Set(headerTraceID, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
