package normalize

import (
	"math"

	"gaia-platform/internal/models"
)

// AssessmentRadiusKm is the radius of the forest assessment disc.
const AssessmentRadiusKm = 50.0

// AssessmentAreaHa is the area of the forest assessment disc in hectares.
var AssessmentAreaHa = math.Pi * AssessmentRadiusKm * AssessmentRadiusKm * 100

type biomeDefaults struct {
	name              string
	carbonDensity     float64 // t/ha
	biodiversityIndex float64
}

// Biome classifies the forest biome from latitude.
func Biome(lat float64) (name string, carbonDensity, biodiversityIndex float64) {
	b := biomeFor(lat)
	return b.name, b.carbonDensity, b.biodiversityIndex
}

func biomeFor(lat float64) biomeDefaults {
	abs := math.Abs(lat)
	switch {
	case abs < 23.5:
		return biomeDefaults{"tropical", 250, 90}
	case abs < 45:
		return biomeDefaults{"temperate", 180, 65}
	case abs <= 55:
		return biomeDefaults{"mixed", 160, 60}
	default:
		return biomeDefaults{"boreal", 120, 45}
	}
}

// Forest normalizes national forest statistics onto the assessment area.
func Forest(q models.LocationQuery, r models.ForestReading) models.ForestMetrics {
	b := biomeFor(q.Lat)
	cover := clampScore(r.CoverPercent)
	lossRate := math.Max(0, r.LossRatePercent)
	gainRate := math.Max(0, r.GainRatePercent)

	forestArea := AssessmentAreaHa * cover / 100
	loss := forestArea * lossRate / 100
	gain := forestArea * gainRate / 100
	net := gain - loss
	trend := ForestTrend(net, lossRate)

	return models.ForestMetrics{
		Biome:             b.name,
		CarbonDensity:     b.carbonDensity,
		BiodiversityIndex: b.biodiversityIndex,
		AssessmentAreaHa:  math.Round(AssessmentAreaHa),
		ForestAreaHa:      math.Round(forestArea),
		CoverPercent:      round1(cover),
		AnnualLossHa:      math.Round(loss),
		AnnualGainHa:      math.Round(gain),
		NetChangeHa:       math.Round(net),
		LossRatePercent:   round2(lossRate),
		Trend:             trend,
		HealthRating:      ForestHealthRating(cover, trend),
		Score:             math.Round(clampScore(cover*1.2 - lossRate*20 + gainRate*10)),
		CarbonStockTonnes: math.Round(forestArea * b.carbonDensity),
	}
}

// ForestTrend classifies loss: decreasing when gain offsets it, accelerating
// above 0.5%/yr, otherwise stable.
func ForestTrend(netChangeHa, lossRatePercent float64) string {
	switch {
	case netChangeHa >= 0:
		return "decreasing"
	case lossRatePercent > 0.5:
		return "accelerating"
	default:
		return "stable"
	}
}

// ForestHealthRating rates cover, downgrading accelerating loss.
func ForestHealthRating(coverPercent float64, trend string) string {
	switch {
	case coverPercent > 70 && trend != "accelerating":
		return "Healthy"
	case coverPercent > 50:
		return "Moderate Concern"
	case coverPercent > 30:
		return "At Risk"
	default:
		return "Critical"
	}
}
