package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vk/connectgrid/internal/ctxlog"
)

// requestMiddleware assigns each request an ID, embeds a request-scoped
// logger into the context, and writes one access-log line per request.
func (s *Server) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		logger := s.logger.With("request_id", requestID, "method", r.Method, "path", r.URL.Path)

		w.Header().Set("X-Request-Id", requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctxlog.WithLogger(r.Context(), logger)))

		logger.Info("Request handled.", "status", rec.status, "duration", time.Since(start))
	})
}

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
