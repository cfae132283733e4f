package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gaia-platform/internal/app"
	"gaia-platform/internal/config"
	"gaia-platform/internal/export"
	"gaia-platform/internal/models"
	"gaia-platform/internal/valuation"
	"gaia-platform/pkg/logging"
	"gaia-platform/pkg/metrics"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Optional JSON configuration file")
	location := flag.String("location", "", "Location display name (default from configuration)")
	lat := flag.Float64("lat", 0, "Latitude in decimal degrees")
	lon := flag.Float64("lon", 0, "Longitude in decimal degrees")
	country := flag.String("country", "", "Country name or ISO code; resolved when empty")
	station := flag.String("station", "", "NDBC station override for the ocean domain")
	offline := flag.Bool("offline", false, "Use simulated data only")
	format := flag.String("format", "csv", "Export format: csv, xlsx or pdf")
	out := flag.String("out", "", "Write the report export to this file")
	timeout := flag.Duration("timeout", 60*time.Second, "Overall assessment timeout")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *offline {
		cfg.Upstreams.DisableLiveData = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	q := models.LocationQuery{
		Name:    cfg.Defaults.Location,
		Lat:     cfg.Defaults.Lat,
		Lon:     cfg.Defaults.Lon,
		Country: *country,
		Station: *station,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "location":
			q.Name = *location
		case "lat":
			q.Lat = *lat
		case "lon":
			q.Lon = *lon
		}
	})
	if err := q.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid location: %v\n", err)
		os.Exit(2)
	}

	exportFormat, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		os.Exit(2)
	}

	logger := logging.NewStructuredLogger("gaia-assess", "1.0.0", logging.ParseLevel(cfg.Logging.Level))
	logger.SetOutput(os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	logger.Info(ctx, "[ASSESS_START] Starting assessment", logging.Fields{
		"location":  q.Name,
		"lat":       q.Lat,
		"lon":       q.Lon,
		"live_data": !cfg.Upstreams.DisableLiveData,
	})

	metricsCollector := metrics.NewCollector("gaia_assess", prometheus.NewRegistry())
	services := app.New(cfg, logger, metricsCollector)
	defer services.Close()

	report := services.Assessment.Assess(ctx, q)
	printReport(report)

	if *out != "" {
		if err := writeExport(*out, exportFormat, report); err != nil {
			logger.Error(ctx, "[EXPORT_ERROR] Failed to write report", logging.Fields{
				"path": *out,
			}, err)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", *out)
	}

	logger.Info(ctx, "[ASSESS_COMPLETE] Assessment completed", logging.Fields{
		"index_score":  report.Index.Score,
		"index_rating": report.Index.Rating,
	})
}

func printReport(a *models.Assessment) {
	s := a.Summary

	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("NATURAL CAPITAL ASSESSMENT: %s\n", s.Location)
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Country / Region:       %s / %s\n", a.Location.Country, a.Location.Region)
	fmt.Printf("Coordinates:            %.4f, %.4f\n", a.Location.Lat, a.Location.Lon)
	fmt.Printf("Natural Capital Index:  %.1f (%s, coverage %.0f%%)\n", a.Index.Score, a.Index.Rating, a.Index.Coverage*100)
	fmt.Printf("Total Asset Value:      %s\n", s.TotalAssetValueFormatted)
	fmt.Printf("Total Annual Value:     %s/year\n", s.TotalAnnualValueFormatted)

	fmt.Println("\nDomains:")
	for _, d := range models.Domains {
		src, ok := a.Sources[d]
		if !ok {
			fmt.Printf("  %-14s unavailable\n", d)
			continue
		}
		fmt.Printf("  %-14s %s\n", d, src)
	}

	fmt.Println("\nRisks (per year):")
	fmt.Printf("  Climate change:       %s\n", valuation.FormatCurrency(s.Risks.ClimateChange))
	fmt.Printf("  Degradation:          %s\n", valuation.FormatCurrency(s.Risks.Degradation))
	fmt.Printf("  Pollution:            %s\n", valuation.FormatCurrency(s.Risks.Pollution))

	fmt.Println("\nOpportunities (per year):")
	fmt.Printf("  Restoration:          %s\n", valuation.FormatCurrency(s.Opportunities.Restoration))
	fmt.Printf("  Conservation:         %s\n", valuation.FormatCurrency(s.Opportunities.Conservation))
}

func writeExport(path string, f export.Format, a *models.Assessment) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.Write(file, f, a); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
