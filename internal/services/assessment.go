package services

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"gaia-platform/internal/models"
	"gaia-platform/internal/valuation"
	"gaia-platform/pkg/logging"
	"gaia-platform/pkg/metrics"
)

// Natural Capital Index weights, in percent.
const (
	WeightEcosystemHealth   = 22.0
	WeightBiodiversity      = 20.0
	WeightCarbonCapture     = 18.0
	WeightWaterSecurity     = 18.0
	WeightSoilViability     = 12.0
	WeightClimateResilience = 10.0
)

// RatingInsufficientData is the index rating when no weighted domain is present.
const RatingInsufficientData = "Insufficient data"

// AssessmentService fans the six domains out concurrently and rolls them
// into the Natural Capital Index and summary.
type AssessmentService struct {
	composer *Composer
	logger   *logging.StructuredLogger
	metrics  *metrics.Collector
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(composer *Composer, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *AssessmentService {
	return &AssessmentService{
		composer: composer,
		logger:   logger,
		metrics:  metricsCollector,
	}
}

// Aggregate composes every domain concurrently. A domain whose chain fails
// entirely is left absent; the others are unaffected.
func (s *AssessmentService) Aggregate(ctx context.Context, q models.LocationQuery) *models.Aggregate {
	// Resolve once so the country-aware domains share one geocode.
	q.Country = s.composer.resolver.Resolve(ctx, q)

	agg := &models.Aggregate{}
	var g errgroup.Group

	g.Go(func() error {
		agg.Carbon = keep(ctx, s.logger.WithFields(logging.Fields{"domain": models.DomainCarbon}), func() (*models.CarbonResponse, error) { return s.composer.Carbon(ctx, q) })
		return nil
	})
	g.Go(func() error {
		agg.Climate = keep(ctx, s.logger.WithFields(logging.Fields{"domain": models.DomainClimate}), func() (*models.ClimateResponse, error) { return s.composer.Climate(ctx, q) })
		return nil
	})
	g.Go(func() error {
		agg.Soil = keep(ctx, s.logger.WithFields(logging.Fields{"domain": models.DomainSoil}), func() (*models.SoilResponse, error) { return s.composer.Soil(ctx, q) })
		return nil
	})
	g.Go(func() error {
		agg.Forest = keep(ctx, s.logger.WithFields(logging.Fields{"domain": models.DomainForest}), func() (*models.ForestResponse, error) { return s.composer.Forest(ctx, q) })
		return nil
	})
	g.Go(func() error {
		agg.Ocean = keep(ctx, s.logger.WithFields(logging.Fields{"domain": models.DomainOcean}), func() (*models.OceanResponse, error) { return s.composer.Ocean(ctx, q) })
		return nil
	})
	g.Go(func() error {
		agg.Biodiversity = keep(ctx, s.logger.WithFields(logging.Fields{"domain": models.DomainBiodiversity}), func() (*models.BiodiversityResponse, error) {
			return s.composer.Biodiversity(ctx, q)
		})
		return nil
	})

	_ = g.Wait()
	return agg
}

// keep runs one branch, logging and dropping its failure.
func keep[T any](ctx context.Context, logger logging.Logger, fn func() (*T, error)) *T {
	resp, err := fn()
	if err != nil {
		logger.Error(ctx, "[ASSESSMENT_DOMAIN_ERROR] Domain omitted from assessment", logging.Fields{}, err)
		return nil
	}
	return resp
}

// Assess builds the full report for a location.
func (s *AssessmentService) Assess(ctx context.Context, q models.LocationQuery) *models.Assessment {
	startTime := time.Now()

	s.metrics.ActiveRequests.Inc()
	defer s.metrics.ActiveRequests.Dec()

	q.Country = s.composer.resolver.Resolve(ctx, q)
	agg := s.Aggregate(ctx, q)
	index := NaturalCapitalIndex(agg)
	summary := Summarize(q.Name, agg)

	duration := time.Since(startTime)
	s.metrics.AssessmentDuration.Observe(duration.Seconds())
	s.metrics.NaturalCapitalIndex.WithLabelValues(index.Rating).Set(index.Score)

	s.logger.Info(ctx, "[ASSESSMENT_COMPLETE] Assessment composed", logging.Fields{
		"location":         q.Name,
		"index_score":      index.Score,
		"index_rating":     index.Rating,
		"domains_present":  len(agg.Present()),
		"duration_seconds": duration.Seconds(),
	})

	return &models.Assessment{
		Location:    s.composer.location(q),
		Index:       index,
		Summary:     summary,
		Domains:     *agg,
		Sources:     agg.Sources(),
		LastUpdated: s.composer.now().Format(time.RFC3339),
	}
}

// NaturalCapitalIndex weights the present domain scores, renormalizing the
// weights over what is present.
func NaturalCapitalIndex(agg *models.Aggregate) models.NaturalCapitalIndex {
	score := func(present bool, v func() float64) *float64 {
		if !present {
			return nil
		}
		x := math.Max(0, math.Min(100, v()))
		return &x
	}

	components := []models.IndexComponent{
		{Metric: "ecosystemHealth", Domain: models.DomainForest, Weight: WeightEcosystemHealth,
			Score: score(agg.Has(models.DomainForest), func() float64 { return agg.Forest.Metrics.Score })},
		{Metric: "biodiversity", Domain: models.DomainBiodiversity, Weight: WeightBiodiversity,
			Score: score(agg.Has(models.DomainBiodiversity), func() float64 { return agg.Biodiversity.Metrics.DiversityScore })},
		{Metric: "carbonCapture", Domain: models.DomainCarbon, Weight: WeightCarbonCapture,
			Score: score(agg.Has(models.DomainCarbon), func() float64 { return agg.Carbon.Metrics.CaptureScore })},
		{Metric: "waterSecurity", Domain: models.DomainClimate, Weight: WeightWaterSecurity,
			Score: score(agg.Has(models.DomainClimate), func() float64 { return agg.Climate.Metrics.WaterSecurityScore })},
		{Metric: "soilViability", Domain: models.DomainSoil, Weight: WeightSoilViability,
			Score: score(agg.Has(models.DomainSoil), func() float64 { return agg.Soil.Metrics.HealthScore })},
		{Metric: "climateResilience", Domain: models.DomainClimate, Weight: WeightClimateResilience,
			Score: score(agg.Has(models.DomainClimate), func() float64 { return agg.Climate.Metrics.ResilienceScore })},
	}

	var weighted, presentWeight float64
	for i := range components {
		c := &components[i]
		if c.Score == nil {
			continue
		}
		c.Contribution = math.Round(c.Weight**c.Score) / 100
		weighted += c.Weight * *c.Score
		presentWeight += c.Weight
	}

	index := models.NaturalCapitalIndex{
		Rating:     RatingInsufficientData,
		Coverage:   presentWeight / 100,
		Components: components,
	}
	if presentWeight > 0 {
		index.Score = math.Round(weighted/presentWeight*10) / 10
		index.Rating = IndexRating(index.Score)
	}
	return index
}

// IndexRating bands an index score.
func IndexRating(score float64) string {
	switch {
	case score >= 90:
		return "Exceptional"
	case score >= 75:
		return "Strong"
	case score >= 60:
		return "Moderate"
	case score >= 40:
		return "At Risk"
	default:
		return "Critical"
	}
}

// Summarize rolls the present domains' valuations into one statement.
func Summarize(locationName string, agg *models.Aggregate) models.NaturalCapitalSummary {
	var (
		breakdown     models.ValueBreakdown
		risks         models.Risks
		opportunities models.Opportunities
		annual        float64
	)

	if f := agg.Forest; f != nil {
		breakdown.Forest = f.Valuation.NaturalCapital.Total
		annual += f.Valuation.AnnualServices.Total
		risks.Degradation += f.Valuation.DeforestationCost.AnnualLoss
		opportunities.Conservation += f.Valuation.DeforestationCost.LostServices
	}
	if s := agg.Soil; s != nil {
		breakdown.Soil = s.Valuation.NaturalCapital.Total
		annual += s.Valuation.AnnualServices.Total
		risks.Degradation += s.Valuation.Degradation.AnnualCost
		opportunities.Restoration += s.Valuation.Restoration.Potential
	}
	if o := agg.Ocean; o != nil {
		breakdown.Water = o.Valuation.NaturalCapital.Total
		annual += o.Valuation.AnnualServices.Total
		risks.ClimateChange += o.Valuation.ClimateRisks.AcidificationCost + o.Valuation.ClimateRisks.TemperatureStressCost
		risks.Pollution += o.Valuation.ClimateRisks.PollutionCost
	}
	if b := agg.Biodiversity; b != nil {
		breakdown.Biodiversity = b.Valuation.NaturalCapital.Total
		annual += b.Valuation.AnnualServices.Total
		opportunities.Conservation += b.Valuation.ExtinctionRisk.PotentialLossValue
	}
	if c := agg.Carbon; c != nil {
		breakdown.Carbon = c.Valuation.NaturalCapital.Total
		annual += c.Valuation.AnnualServices.Total
		risks.Pollution += c.Valuation.EmissionsCost.SocialCost
	}
	if c := agg.Climate; c != nil {
		breakdown.Climate = c.Valuation.NaturalCapital.Total
		annual += c.Valuation.AnnualServices.Total
		risks.ClimateChange += c.Valuation.AdaptationGap.AnnualCost
	}

	asset := agg.NaturalCapitalTotal()

	return models.NaturalCapitalSummary{
		Location:                  locationName,
		TotalAnnualValue:          annual,
		TotalAnnualValueFormatted: valuation.FormatCurrency(annual),
		TotalAssetValue:           asset,
		TotalAssetValueFormatted:  valuation.FormatCurrency(asset),
		Breakdown:                 breakdown,
		Risks:                     risks,
		Opportunities:             opportunities,
	}
}
