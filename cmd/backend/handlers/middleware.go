package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hairizuan-noorazman/testcase-service/logger"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestMiddleware tags each request with an ID, recovers from panics and
// writes an access log entry.
type RequestMiddleware struct {
	logger logger.Logger
}

// NewRequestMiddleware creates a new request middleware.
func NewRequestMiddleware(log logger.Logger) *RequestMiddleware {
	return &RequestMiddleware{logger: log}
}

// Handler wraps an HTTP handler.
func (m *RequestMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := logger.ContextWithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				m.logger.Error(ctx, "panic while handling request", map[string]interface{}{
					"panic":  p,
					"method": r.Method,
					"path":   r.URL.Path,
				})
				if !rec.wroteHeader {
					respondError(rec, http.StatusInternalServerError, "internal server error")
				}
			}

			m.logger.Info(ctx, "request handled", map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"duration_ms": time.Since(start).Milliseconds(),
			})
		}()

		next.ServeHTTP(rec, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(b)
}
