package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gaia-platform/pkg/logging"
	"gaia-platform/pkg/metrics"
)

// Config holds upstream HTTP client configuration
type Config struct {
	UserAgent      string
	DefaultTimeout time.Duration
	MaxBodyBytes   int64
}

// Request describes a single upstream GET.
type Request struct {
	Upstream string // metrics/log label, e.g. "soilgrids"
	URL      string
	Timeout  time.Duration
	Headers  map[string]string
	CacheTTL time.Duration // zero disables caching
}

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Upstream   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Upstream, e.StatusCode)
}

// IsTransient reports whether retrying later could succeed.
func (e *StatusError) IsTransient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// ErrEmptyBody is returned when an upstream answers 2xx with no payload.
var ErrEmptyBody = errors.New("empty response body")

// Client wraps http.Client with per-request timeouts, a response cache and metrics
type Client struct {
	http    *http.Client
	cache   *Cache
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
	config  Config
}

// NewClient creates a new upstream client. cache may be nil.
func NewClient(cfg Config, cache *Cache, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *Client {
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = 10 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 4 << 20
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "gaia-platform/1.0"
	}

	return &Client{
		http:    &http.Client{},
		cache:   cache,
		logger:  logger,
		metrics: metricsCollector,
		config:  cfg,
	}
}

// Get performs the request and returns the response body.
// Timeouts, transport errors, non-2xx statuses and empty bodies are all errors;
// callers decide how to degrade.
func (c *Client) Get(ctx context.Context, req Request) ([]byte, error) {
	if c.cache != nil && req.CacheTTL > 0 {
		if data, ok := c.cache.Get(req.URL); ok {
			c.metrics.UpstreamCacheHits.WithLabelValues(req.Upstream).Inc()
			return data, nil
		}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.config.DefaultTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		duration := time.Since(start)
		c.metrics.UpstreamRequestDuration.WithLabelValues(req.Upstream).Observe(duration.Seconds())

		c.logger.Debug(ctx, "[UPSTREAM_REQUEST] Upstream request finished", logging.Fields{
			"upstream":    req.Upstream,
			"url":         req.URL,
			"duration_ms": duration.Milliseconds(),
		})
	}()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, req.URL, nil)
	if err != nil {
		c.metrics.RecordUpstreamError(req.Upstream, "bad_request")
		return nil, fmt.Errorf("creating request for %s: %w", req.Upstream, err)
	}
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		errType := "network"
		if errors.Is(err, context.DeadlineExceeded) {
			errType = "timeout"
		}
		c.metrics.RecordUpstreamError(req.Upstream, errType)
		return nil, fmt.Errorf("fetching %s: %w", req.Upstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.RecordUpstreamError(req.Upstream, fmt.Sprintf("status_%d", resp.StatusCode))
		return nil, &StatusError{Upstream: req.Upstream, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes))
	if err != nil {
		c.metrics.RecordUpstreamError(req.Upstream, "read")
		return nil, fmt.Errorf("reading response from %s: %w", req.Upstream, err)
	}
	if len(body) == 0 {
		c.metrics.RecordUpstreamError(req.Upstream, "empty")
		return nil, fmt.Errorf("%s: %w", req.Upstream, ErrEmptyBody)
	}

	if c.cache != nil && req.CacheTTL > 0 {
		c.cache.Set(req.URL, body, req.CacheTTL)
	}
	return body, nil
}

// GetJSON performs the request and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, req Request, out interface{}) error {
	if req.Headers == nil {
		req.Headers = map[string]string{}
	}
	if _, ok := req.Headers["Accept"]; !ok {
		req.Headers["Accept"] = "application/json"
	}

	body, err := c.Get(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.metrics.RecordUpstreamError(req.Upstream, "decode")
		return fmt.Errorf("decoding %s response: %w", req.Upstream, err)
	}
	return nil
}
