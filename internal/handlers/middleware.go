package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gaia-platform/pkg/logging"
	"gaia-platform/pkg/metrics"
)

// RequestIDHeader carries the request ID in and out.
const RequestIDHeader = "X-Request-ID"

// RequestID tags the request context with the caller's X-Request-ID or a
// fresh UUID and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Instrument records request duration per route template and logs each request.
func Instrument(logger *logging.StructuredLogger, metricsCollector *metrics.Collector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			metricsCollector.ActiveRequests.Inc()
			defer metricsCollector.ActiveRequests.Dec()

			next.ServeHTTP(rec, r)

			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tpl
				}
			}
			duration := time.Since(start)
			metricsCollector.APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())

			logger.Info(r.Context(), "[API_REQUEST] Request served", logging.Fields{
				"method":      r.Method,
				"endpoint":    endpoint,
				"status":      rec.status,
				"duration_ms": duration.Milliseconds(),
			})
		})
	}
}

// Recover turns a panic that escaped a handler into a 500 JSON answer.
func Recover(logger *logging.StructuredLogger, metricsCollector *metrics.Collector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error(r.Context(), "[API_PANIC] Recovered panic in request", logging.Fields{
						"method": r.Method,
						"path":   r.URL.Path,
					}, fmt.Errorf("panic: %v", rec))
					metricsCollector.RecordAPIError("panic", r.URL.Path)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error":"Internal Server Error"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// NewRouter builds the router with middleware and every API route.
func NewRouter(h *Handler, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestID, Instrument(logger, metricsCollector), Recover(logger, metricsCollector))
	h.RegisterRoutes(router)
	return router
}
