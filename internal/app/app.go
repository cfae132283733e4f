// Package app wires configuration into the composer, assessment and chat
// services shared by the server and the CLI.
package app

import (
	"time"

	"gaia-platform/internal/config"
	"gaia-platform/internal/reference"
	"gaia-platform/internal/services"
	"gaia-platform/internal/sources"
	"gaia-platform/pkg/logging"
	"gaia-platform/pkg/metrics"
	"gaia-platform/pkg/upstream"
)

// cacheSweepInterval is how often expired upstream responses are purged.
const cacheSweepInterval = 5 * time.Minute

// App holds the wired services.
type App struct {
	Catalog    reference.Catalog
	Composer   *services.Composer
	Assessment *services.AssessmentService
	Chat       *services.ChatService

	cache *upstream.Cache
}

// New wires the services. With live data disabled no upstream is called:
// every domain is simulated and countries resolve from bounding boxes.
func New(cfg *config.Config, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *App {
	catalog := reference.NewStatic()
	now := sources.SystemClock

	a := &App{Catalog: catalog}

	live := sources.Set{}
	var client *upstream.Client
	if !cfg.Upstreams.DisableLiveData {
		a.cache = upstream.NewCache(cacheSweepInterval)
		client = upstream.NewClient(upstream.Config{
			UserAgent:      cfg.Upstreams.UserAgent,
			DefaultTimeout: cfg.Upstreams.DefaultTimeout.Std(),
		}, a.cache, logger, metricsCollector)
		live = sources.NewLiveSet(cfg.Upstreams, client, catalog, now)
	}

	resolver := sources.NewCountryResolver(client, sources.Endpoint{
		BaseURL: cfg.Upstreams.ReverseGeoURL,
		Timeout: cfg.Upstreams.GeocodeTimeout.Std(),
	}, cfg.Upstreams.GeocodeCacheTTL.Std(), catalog, logger)

	a.Composer = services.NewComposer(live, resolver, catalog, now, logger, metricsCollector)
	a.Assessment = services.NewAssessmentService(a.Composer, logger, metricsCollector)
	a.Chat = services.NewChatService(a.Assessment, logger)
	return a
}

// Close stops the upstream cache sweeper.
func (a *App) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}
