package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	// API Metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	APIErrorsTotal     *prometheus.CounterVec

	// Upstream Metrics
	UpstreamRequestDuration *prometheus.HistogramVec
	UpstreamErrorsTotal     *prometheus.CounterVec
	UpstreamCacheHits       *prometheus.CounterVec

	// Pipeline Metrics
	DomainResponsesTotal *prometheus.CounterVec
	FallbacksTotal       *prometheus.CounterVec
	ValuationDuration    *prometheus.HistogramVec
	AssessmentDuration   prometheus.Histogram
	NaturalCapitalIndex  *prometheus.GaugeVec

	// System Metrics
	ActiveRequests prometheus.Gauge
}

// NewCollector creates a new metrics collector registered on reg.
// Pass prometheus.DefaultRegisterer for the process-wide /metrics endpoint
// and a fresh prometheus.NewRegistry() in tests.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by endpoint, method, and status",
			},
			[]string{"endpoint", "method", "status"},
		),

		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 20.0},
			},
			[]string{"endpoint"},
		),

		APIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Total number of API errors by type",
			},
			[]string{"error_type", "endpoint"},
		),

		UpstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream HTTP request duration in seconds by provider",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
			},
			[]string{"upstream"},
		),

		UpstreamErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_errors_total",
				Help:      "Total number of upstream failures by provider and type",
			},
			[]string{"upstream", "error_type"},
		),

		UpstreamCacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_cache_hits_total",
				Help:      "Upstream responses served from the in-process cache",
			},
			[]string{"upstream"},
		),

		DomainResponsesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "domain_responses_total",
				Help:      "Composed domain responses by domain and data origin",
			},
			[]string{"domain", "origin"}, // "live", "simulated"
		),

		FallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "domain_fallbacks_total",
				Help:      "Live fetch failures that fell back to simulated data",
			},
			[]string{"domain", "reason"},
		),

		ValuationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "valuation_duration_seconds",
				Help:      "Normalization and valuation time per domain",
				Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
			},
			[]string{"domain"},
		),

		AssessmentDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "assessment_duration_seconds",
				Help:      "Duration of the six-domain assessment fan-out",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15, 20},
			},
		),

		NaturalCapitalIndex: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "natural_capital_index",
				Help:      "Most recent Natural Capital Index computed per rating band",
			},
			[]string{"rating"},
		),

		ActiveRequests: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_requests",
				Help:      "Number of in-flight API requests",
			},
		),
	}
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func (c *Collector) NewTimer(histogram prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: histogram,
	}
}

// ObserveDuration records the elapsed time since timer creation
func (t *Timer) ObserveDuration() time.Duration {
	duration := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(duration.Seconds())
	}
	return duration
}

// RecordAPIRequest increments API request counter
func (c *Collector) RecordAPIRequest(endpoint, method, status string) {
	c.APIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}

// RecordAPIError increments API error counter
func (c *Collector) RecordAPIError(errorType, endpoint string) {
	c.APIErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}

// RecordUpstreamError increments the upstream failure counter
func (c *Collector) RecordUpstreamError(upstream, errorType string) {
	c.UpstreamErrorsTotal.WithLabelValues(upstream, errorType).Inc()
}

// RecordDomainResponse counts a composed response by its data origin
func (c *Collector) RecordDomainResponse(domain string, simulated bool) {
	origin := "live"
	if simulated {
		origin = "simulated"
	}
	c.DomainResponsesTotal.WithLabelValues(domain, origin).Inc()
}

// RecordFallback counts a live-to-simulated fallback
func (c *Collector) RecordFallback(domain, reason string) {
	c.FallbacksTotal.WithLabelValues(domain, reason).Inc()
}
