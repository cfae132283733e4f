package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gaia-platform/internal/models"
	"gaia-platform/internal/normalize"
	"gaia-platform/internal/reference"
	"gaia-platform/internal/sources"
	"gaia-platform/internal/valuation"
	"gaia-platform/pkg/logging"
	"gaia-platform/pkg/metrics"
	"gaia-platform/pkg/upstream"
)

// LocalAreaHa is the area soil and biodiversity services are valued over,
// the 10 km occurrence disc.
var LocalAreaHa = normalize.BiodiversityAreaHa

// Composer builds domain responses: live reading first, simulated reading on
// any failure, then normalization and valuation.
type Composer struct {
	live      sources.Set
	simulated sources.Set
	resolver  *sources.CountryResolver
	catalog   reference.Catalog
	now       sources.Clock
	logger    *logging.StructuredLogger
	metrics   *metrics.Collector
}

// NewComposer creates a composer. Domains without a live source in live are
// always simulated.
func NewComposer(live sources.Set, resolver *sources.CountryResolver, catalog reference.Catalog, now sources.Clock, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *Composer {
	return &Composer{
		live:      live,
		simulated: sources.NewSimulatedSet(catalog, now),
		resolver:  resolver,
		catalog:   catalog,
		now:       now,
		logger:    logger,
		metrics:   metricsCollector,
	}
}

// Carbon composes the carbon and air quality response.
func (c *Composer) Carbon(ctx context.Context, q models.LocationQuery) (*models.CarbonResponse, error) {
	q.Country = c.resolver.Resolve(ctx, q)
	return compose(ctx, c, models.DomainCarbon, c.live.Carbon, c.simulated.Carbon, q,
		func(r models.CarbonReading) (models.CarbonMetrics, valuation.CarbonValuation) {
			m := normalize.Carbon(q, q.Country, r, c.catalog, c.now())
			v := valuation.ValueCarbonBalance(valuation.CarbonInput{
				AreaHectares:        normalize.AssessmentAreaHa,
				ForestCarbonPerHa:   m.Sequestration.ForestCarbon,
				SoilCarbonPerHa:     m.Sequestration.SoilCarbon,
				ForestFactor:        m.Sequestration.ForestFactor,
				PerCapitaEmissions:  m.Emissions.PerCapita,
				NetBalancePerCapita: m.Sequestration.NetBalance,
			})
			return m, v
		})
}

// Climate composes the climate response.
func (c *Composer) Climate(ctx context.Context, q models.LocationQuery) (*models.ClimateResponse, error) {
	return compose(ctx, c, models.DomainClimate, c.live.Climate, c.simulated.Climate, q,
		func(r models.ClimateReading) (models.ClimateMetrics, valuation.ClimateValuation) {
			m := normalize.Climate(r)
			v := valuation.ValueClimateRegulation(valuation.ClimateInput{
				AreaHectares:       normalize.AssessmentAreaHa,
				ResilienceScore:    m.ResilienceScore,
				WaterSecurityScore: m.WaterSecurityScore,
			})
			return m, v
		})
}

// Soil composes the soil response.
func (c *Composer) Soil(ctx context.Context, q models.LocationQuery) (*models.SoilResponse, error) {
	return compose(ctx, c, models.DomainSoil, c.live.Soil, c.simulated.Soil, q,
		func(r models.SoilReading) (models.SoilMetrics, valuation.SoilValuation) {
			m := normalize.Soil(r)
			var carbonPerHa float64
			if m.CarbonContent != nil {
				carbonPerHa = *m.CarbonContent
			}
			v := valuation.ValueSoilEcosystem(valuation.SoilInput{
				AreaHectares:      LocalAreaHa,
				HealthScore:       m.HealthScore,
				CarbonTonnesPerHa: carbonPerHa,
				ErosionRisk:       m.ErosionRisk,
			})
			return m, v
		})
}

// Forest composes the forest and deforestation response.
func (c *Composer) Forest(ctx context.Context, q models.LocationQuery) (*models.ForestResponse, error) {
	q.Country = c.resolver.Resolve(ctx, q)
	return compose(ctx, c, models.DomainForest, c.live.Forest, c.simulated.Forest, q,
		func(r models.ForestReading) (models.ForestMetrics, valuation.ForestValuation) {
			m := normalize.Forest(q, r)
			v := valuation.ValueForestEcosystem(valuation.ForestInput{
				AreaHectares:       m.ForestAreaHa,
				ForestType:         m.Biome,
				CarbonStockTonnes:  m.CarbonStockTonnes,
				ProtectedPercent:   r.ProtectedPercent,
				AnnualLossHectares: m.AnnualLossHa,
				CarbonDensity:      m.CarbonDensity,
			})
			return m, v
		})
}

// Ocean composes the marine response for the requested or nearest station.
func (c *Composer) Ocean(ctx context.Context, q models.LocationQuery) (*models.OceanResponse, error) {
	return compose(ctx, c, models.DomainOcean, c.live.Ocean, c.simulated.Ocean, q,
		func(r models.OceanReading) (models.OceanMetrics, valuation.OceanValuation) {
			m := normalize.Ocean(q, r)
			v := valuation.ValueOceanEcosystem(valuation.OceanInput{
				AreaKm2:    m.AreaKm2,
				Coastal:    m.Coastal,
				WaterTempC: m.WaterTempC,
			})
			return m, v
		})
}

// Biodiversity composes the species occurrence response.
func (c *Composer) Biodiversity(ctx context.Context, q models.LocationQuery) (*models.BiodiversityResponse, error) {
	return compose(ctx, c, models.DomainBiodiversity, c.live.Biodiversity, c.simulated.Biodiversity, q,
		func(r models.BiodiversityReading) (models.BiodiversityMetrics, valuation.BiodiversityValuation) {
			m := normalize.Biodiversity(r)
			v := valuation.ValueBiodiversity(m.UniqueSpecies, m.AreaHectares, m.AtRiskSpecies)
			return m, v
		})
}

// Offline returns a composer over the same catalog and clock that never
// calls an upstream: every domain is simulated and countries resolve from
// bounding boxes.
func (c *Composer) Offline() *Composer {
	return NewComposer(sources.Set{}, sources.NewCountryResolver(nil, sources.Endpoint{}, 0, c.catalog, c.logger),
		c.catalog, c.now, c.logger, c.metrics)
}

// Stations lists the buoys the ocean domain can read.
func (c *Composer) Stations() []reference.Station {
	return c.catalog.Stations()
}

// compose runs one domain chain. The live attempt covers fetch, normalize
// and valuation, so a panic anywhere in it falls back like a failed fetch.
// An error is returned only when the simulated chain fails as well.
func compose[R, M, V any](
	ctx context.Context,
	c *Composer,
	domain models.Domain,
	live, simulated sources.DomainSource[R],
	q models.LocationQuery,
	build func(R) (M, V),
) (*models.DomainResponse[R, M, V], error) {
	if live != nil {
		resp, err := attempt(ctx, c, domain, live, q, build)
		if err == nil {
			c.metrics.RecordDomainResponse(string(domain), false)
			return resp, nil
		}

		reason := fallbackReason(err)
		c.metrics.RecordFallback(string(domain), reason)
		log := c.logger.WithFields(logging.Fields{"domain": domain, "reason": reason})
		log.Warn(ctx, "[DOMAIN_FALLBACK] Live source failed, using simulated data", logging.Fields{
			"source": live.Name(),
			"error":  err.Error(),
			"lat":    q.Lat,
			"lon":    q.Lon,
		})
	}

	resp, err := attempt(ctx, c, domain, simulated, q, build)
	if err != nil {
		return nil, fmt.Errorf("simulated %s chain failed: %w", domain, err)
	}
	c.metrics.RecordDomainResponse(string(domain), true)
	return resp, nil
}

// errPanic marks a recovered panic inside a domain chain.
var errPanic = errors.New("panic in domain chain")

func attempt[R, M, V any](
	ctx context.Context,
	c *Composer,
	domain models.Domain,
	src sources.DomainSource[R],
	q models.LocationQuery,
	build func(R) (M, V),
) (resp *models.DomainResponse[R, M, V], err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("%w: %v", errPanic, r)
		}
	}()

	reading, err := src.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	timer := c.metrics.NewTimer(c.metrics.ValuationDuration.WithLabelValues(string(domain)))
	m, v := build(reading)
	timer.ObserveDuration()

	return &models.DomainResponse[R, M, V]{
		Location:    c.location(q),
		Reading:     reading,
		Metrics:     m,
		Valuation:   v,
		LastUpdated: c.now().Format(time.RFC3339),
		Source:      src.Name(),
	}, nil
}

func (c *Composer) location(q models.LocationQuery) models.Location {
	return models.Location{
		Name:    q.Name,
		Lat:     q.Lat,
		Lon:     q.Lon,
		Country: q.Country,
		Region:  c.resolver.Region(q.Country, q),
	}
}

func fallbackReason(err error) string {
	var statusErr *upstream.StatusError
	switch {
	case errors.Is(err, sources.ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, sources.ErrNoData), errors.Is(err, upstream.ErrEmptyBody):
		return "no_data"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, errPanic):
		return "panic"
	case errors.As(err, &statusErr):
		return "upstream_status"
	default:
		return "error"
	}
}
