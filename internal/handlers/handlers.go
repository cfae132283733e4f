package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"gaia-platform/internal/config"
	"gaia-platform/internal/export"
	"gaia-platform/internal/models"
	"gaia-platform/internal/reference"
	"gaia-platform/internal/services"
	"gaia-platform/pkg/logging"
	"gaia-platform/pkg/metrics"
)

// Handler serves the domain, assessment, export and chat endpoints.
type Handler struct {
	composer   *services.Composer
	offline    *services.Composer
	assessment *services.AssessmentService
	chat       *services.ChatService
	catalog    reference.Catalog
	defaults   config.DefaultsConfig
	logger     *logging.StructuredLogger
	metrics    *metrics.Collector
}

// NewHandler creates a new API handler
func NewHandler(
	composer *services.Composer,
	assessment *services.AssessmentService,
	chat *services.ChatService,
	catalog reference.Catalog,
	defaults config.DefaultsConfig,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *Handler {
	return &Handler{
		composer:   composer,
		offline:    composer.Offline(),
		assessment: assessment,
		chat:       chat,
		catalog:    catalog,
		defaults:   defaults,
		logger:     logger,
		metrics:    metricsCollector,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/carbon", h.domain("/api/carbon", func(c *services.Composer, ctx context.Context, q models.LocationQuery) (interface{}, error) {
		return c.Carbon(ctx, q)
	})).Methods("GET")
	router.HandleFunc("/api/climate", h.domain("/api/climate", func(c *services.Composer, ctx context.Context, q models.LocationQuery) (interface{}, error) {
		return c.Climate(ctx, q)
	})).Methods("GET")
	router.HandleFunc("/api/soil", h.domain("/api/soil", func(c *services.Composer, ctx context.Context, q models.LocationQuery) (interface{}, error) {
		return c.Soil(ctx, q)
	})).Methods("GET")
	router.HandleFunc("/api/forest", h.domain("/api/forest", func(c *services.Composer, ctx context.Context, q models.LocationQuery) (interface{}, error) {
		return c.Forest(ctx, q)
	})).Methods("GET")
	router.HandleFunc("/api/ocean", h.domain("/api/ocean", func(c *services.Composer, ctx context.Context, q models.LocationQuery) (interface{}, error) {
		return c.Ocean(ctx, q)
	})).Methods("GET")
	router.HandleFunc("/api/biodiversity", h.domain("/api/biodiversity", func(c *services.Composer, ctx context.Context, q models.LocationQuery) (interface{}, error) {
		return c.Biodiversity(ctx, q)
	})).Methods("GET")

	router.HandleFunc("/api/ocean/stations", h.GetStations).Methods("GET")
	router.HandleFunc("/api/assessment", h.GetAssessment).Methods("GET")
	router.HandleFunc("/api/assessment/export", h.ExportAssessment).Methods("GET")
	router.HandleFunc("/api/chat", h.PostChat).Methods("POST")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.HandleFunc("/api/docs", SwaggerUI).Methods("GET")
	router.HandleFunc("/api/docs/openapi.json", OpenAPISpec).Methods("GET")
}

type composeFunc func(c *services.Composer, ctx context.Context, q models.LocationQuery) (interface{}, error)

// domain serves one domain route. A panic in the live composer is answered
// from the offline composer so the route still returns 200.
func (h *Handler) domain(endpoint string, compose composeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		q, err := h.parseQuery(r)
		if err != nil {
			h.sendValidationError(w, r, endpoint, err)
			return
		}

		resp, err := h.safely(ctx, endpoint, func() (interface{}, error) { return compose(h.composer, ctx, q) })
		if err != nil {
			resp, err = compose(h.offline, ctx, q)
		}
		if err != nil {
			h.logger.Error(ctx, "[API_DOMAIN_ERROR] Domain could not be composed", logging.Fields{
				"endpoint": endpoint,
			}, err)
			h.metrics.RecordAPIError("internal_error", endpoint)
			h.sendError(w, r, endpoint, "failed to compose domain response", http.StatusInternalServerError)
			return
		}

		h.metrics.RecordAPIRequest(endpoint, r.Method, "200")
		h.sendJSON(w, resp, http.StatusOK)
	}
}

// safely runs fn, turning a panic into an error.
func (h *Handler) safely(ctx context.Context, endpoint string, fn func() (interface{}, error)) (resp interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
			h.metrics.RecordAPIError("panic", endpoint)
			h.logger.Error(ctx, "[API_PANIC] Recovered panic in handler", logging.Fields{
				"endpoint": endpoint,
			}, err)
		}
	}()
	return fn()
}

// GetStations handles GET /api/ocean/stations
func (h *Handler) GetStations(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordAPIRequest("/api/ocean/stations", r.Method, "200")
	h.sendJSON(w, map[string]interface{}{"stations": h.composer.Stations()}, http.StatusOK)
}

// GetAssessment handles GET /api/assessment
func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/assessment"

	q, err := h.parseQuery(r)
	if err != nil {
		h.sendValidationError(w, r, endpoint, err)
		return
	}

	report := h.assessment.Assess(r.Context(), q)
	h.metrics.RecordAPIRequest(endpoint, r.Method, "200")
	h.sendJSON(w, report, http.StatusOK)
}

// ExportAssessment handles GET /api/assessment/export
func (h *Handler) ExportAssessment(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/assessment/export"
	ctx := r.Context()

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.sendValidationError(w, r, endpoint, err)
		return
	}
	q, err := h.parseQuery(r)
	if err != nil {
		h.sendValidationError(w, r, endpoint, err)
		return
	}

	report := h.assessment.Assess(ctx, q)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(q.Name)))
	if err := export.Write(w, format, report); err != nil {
		// Headers are already out; the body is truncated.
		h.logger.Error(ctx, "[API_EXPORT_ERROR] Failed to write export", logging.Fields{
			"format": format,
		}, err)
		h.metrics.RecordAPIError("export_error", endpoint)
		return
	}
	h.metrics.RecordAPIRequest(endpoint, r.Method, "200")
}

// PostChat handles POST /api/chat
func (h *Handler) PostChat(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/chat"
	ctx := r.Context()

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.chatFailed(w, r, endpoint, fmt.Errorf("failed to decode chat request: %w", err))
		return
	}

	resp, err := h.safely(ctx, endpoint, func() (interface{}, error) { return h.chat.Respond(ctx, &req) })
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			h.sendValidationError(w, r, endpoint, err)
			return
		}
		h.chatFailed(w, r, endpoint, err)
		return
	}

	h.metrics.RecordAPIRequest(endpoint, r.Method, "200")
	h.sendJSON(w, resp, http.StatusOK)
}

// chatFailed answers 500 for unreadable bodies and internal chat failures.
func (h *Handler) chatFailed(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	h.logger.Error(r.Context(), "[API_CHAT_ERROR] Chat failed", logging.Fields{}, err)
	h.metrics.RecordAPIRequest(endpoint, r.Method, "500")
	h.sendJSON(w, models.ErrorResponse{Error: "Failed to process query"}, http.StatusInternalServerError)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// parseQuery reads location, lat, lon, country and station, falling back to
// the configured default location.
func (h *Handler) parseQuery(r *http.Request) (models.LocationQuery, error) {
	params := r.URL.Query()
	q := models.LocationQuery{
		Name:    h.defaults.Location,
		Lat:     h.defaults.Lat,
		Lon:     h.defaults.Lon,
		Country: params.Get("country"),
		Station: params.Get("station"),
	}
	if name := params.Get("location"); name != "" {
		q.Name = name
	}

	for _, p := range []struct {
		key string
		dst *float64
	}{{"lat", &q.Lat}, {"lon", &q.Lon}} {
		raw := params.Get(p.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, &models.ValidationError{Field: p.key, Value: raw, Message: p.key + " must be a number"}
		}
		*p.dst = v
	}
	if err := q.Validate(); err != nil {
		return q, err
	}

	if q.Station != "" {
		if _, err := h.catalog.Station(q.Station); err != nil {
			return q, &models.ValidationError{Field: "station", Value: q.Station, Message: "unknown station " + q.Station}
		}
	}
	return q, nil
}

// sendJSON sends a JSON response
func (h *Handler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, endpoint, message string, statusCode int) {
	h.metrics.RecordAPIRequest(endpoint, r.Method, strconv.Itoa(statusCode))

	response := models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

func (h *Handler) sendValidationError(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	h.metrics.RecordAPIError("validation", endpoint)
	h.sendError(w, r, endpoint, err.Error(), http.StatusBadRequest)
}
