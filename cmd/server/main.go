package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gaia-platform/internal/app"
	"gaia-platform/internal/config"
	"gaia-platform/internal/handlers"
	"gaia-platform/pkg/logging"
	"gaia-platform/pkg/metrics"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Optional JSON configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewStructuredLogger("gaia-api", version, logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()
	logger.Info(ctx, "[STARTUP] Starting GAIA natural capital API server", logging.Fields{
		"version":           version,
		"server_host":       cfg.Server.Host,
		"server_port":       cfg.Server.Port,
		"live_data":         !cfg.Upstreams.DisableLiveData,
		"forest_watch_key":  cfg.Upstreams.ForestWatchKey != "",
		"default_location":  cfg.Defaults.Location,
		"upstream_timeout":  cfg.Upstreams.DefaultTimeout.Std().String(),
		"geocode_cache_ttl": cfg.Upstreams.GeocodeCacheTTL.Std().String(),
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("gaia", prometheus.DefaultRegisterer)

	services := app.New(cfg, logger, metricsCollector)
	defer services.Close()

	handler := handlers.NewHandler(services.Composer, services.Assessment, services.Chat,
		services.Catalog, cfg.Defaults, logger, metricsCollector)

	// Setup router
	router := handlers.NewRouter(handler, logger, metricsCollector)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
		IdleTimeout:  cfg.Server.IdleTimeout.Std(),
	}

	// Start server in goroutine
	go func() {
		logger.Info(ctx, "[SERVER_START] HTTP server listening", logging.Fields{
			"address": server.Addr,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "[SERVER_ERROR] Server failed", logging.Fields{}, err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "[SHUTDOWN] Shutting down server...", logging.Fields{})

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "[SHUTDOWN_ERROR] Server forced to shutdown", logging.Fields{}, err)
	}

	logger.Info(ctx, "[SHUTDOWN_COMPLETE] Server stopped", logging.Fields{})
}
