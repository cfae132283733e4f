package normalize

import (
	"math"

	"gaia-platform/internal/models"
)

const (
	FieldCapacityPct = 45.0
	WiltingPointPct  = 15.0

	// tonnes of carbon per hectare per 1% organic carbon over 0-30 cm at bulk density 1.3
	carbonPerOCPercent = 39.0
)

// Soil normalizes topsoil properties.
func Soil(r models.SoilReading) models.SoilMetrics {
	texture := SoilTexture(r.ClayPct, r.SandPct, r.SiltPct)
	score := SoilHealthScore(r)

	m := models.SoilMetrics{
		Texture:       texture,
		Drainage:      drainageFor(texture),
		PHDescription: PHDescription(r.PH),
		HealthScore:   score,
		Rating:        soilRating(score),
		Biodiversity:  soilBiodiversity(r.OrganicCarbonPct),
		ErosionRisk:   ErosionRisk(r.ClayPct, r.SandPct, r.SiltPct, r.OrganicCarbonPct),
		Moisture: models.SoilMoisture{
			FieldCapacity: FieldCapacityPct,
			WiltingPoint:  WiltingPointPct,
			Status:        MoistureStatus(r.MoisturePct),
		},
	}
	if oc, ok := finite(r.OrganicCarbonPct); ok {
		m.CarbonContent = ptr(round1(math.Max(0, oc) * carbonPerOCPercent))
	}
	if v, ok := finite(r.MoisturePct); ok {
		m.Moisture.Current = ptr(round1(v))
	}
	return m
}

// SoilTexture classifies clay/sand/silt percentages into a USDA texture class.
func SoilTexture(clayPct, sandPct, siltPct *float64) string {
	clay, okC := finite(clayPct)
	sand, okS := finite(sandPct)
	silt, okT := finite(siltPct)
	if !okC || !okS || !okT {
		return Unknown
	}

	switch {
	case sand >= 85:
		return "Sand"
	case sand >= 70 && clay < 15:
		return "Loamy sand"
	case clay >= 40:
		if silt >= 40 {
			return "Silty clay"
		}
		if sand > 45 {
			return "Sandy clay"
		}
		return "Clay"
	case clay >= 35 && sand > 45:
		return "Sandy clay"
	case clay >= 27:
		if sand <= 20 {
			return "Silty clay loam"
		}
		if sand > 45 {
			return "Sandy clay loam"
		}
		return "Clay loam"
	case clay >= 20 && sand > 45 && silt < 28:
		return "Sandy clay loam"
	case silt >= 80 && clay < 12:
		return "Silt"
	case silt >= 50:
		return "Silt loam"
	case clay >= 7 && silt >= 28 && sand <= 52:
		return "Loam"
	default:
		return "Sandy loam"
	}
}

// SoilHealthScore is base 50 plus organic carbon, pH, CEC and texture
// balance contributions, clamped to 0-100.
func SoilHealthScore(r models.SoilReading) float64 {
	score := 50.0

	if oc, ok := finite(r.OrganicCarbonPct); ok {
		score += math.Max(0, math.Min(oc*5, 15))
	}
	if ph, ok := finite(r.PH); ok {
		switch {
		case ph >= 6.0 && ph <= 7.5:
			score += 15
		case ph >= 5.5 && ph <= 8.0:
			score += 8
		case ph >= 4.5 && ph <= 8.5:
		default:
			score -= 10
		}
	}
	if cec, ok := finite(r.CEC); ok {
		score += math.Max(0, math.Min(cec/2, 10))
	}
	clay, okC := finite(r.ClayPct)
	sand, okS := finite(r.SandPct)
	if okC && okS && clay >= 10 && clay <= 30 && sand >= 20 && sand <= 60 {
		score += 10
	}

	return math.Round(clampScore(score))
}

func soilRating(score float64) string {
	switch {
	case score > 75:
		return "excellent"
	case score > 50:
		return "good"
	case score > 25:
		return "fair"
	default:
		return "poor"
	}
}

// ErosionRisk tiers erosion susceptibility: low, moderate, high, severe,
// or unknown when any input is missing.
func ErosionRisk(clayPct, sandPct, siltPct, ocPct *float64) string {
	clay, okC := finite(clayPct)
	sand, okS := finite(sandPct)
	silt, okT := finite(siltPct)
	oc, okO := finite(ocPct)
	if !okC || !okS || !okT || !okO {
		return "unknown"
	}

	switch {
	case sand >= 70 && oc < 1:
		return "severe"
	case (sand >= 55 && oc < 2) || (silt >= 60 && oc < 1.5):
		return "high"
	case sand >= 40 || oc < 2 || clay < 10:
		return "moderate"
	default:
		return "low"
	}
}

// MoistureStatus bands volumetric moisture against field capacity.
func MoistureStatus(moisturePct *float64) string {
	m, ok := finite(moisturePct)
	if !ok {
		return "unknown"
	}
	switch {
	case m < WiltingPointPct:
		return "dry"
	case m < 30:
		return "adequate"
	case m < FieldCapacityPct:
		return "wet"
	default:
		return "saturated"
	}
}

// PHDescription names a pH band.
func PHDescription(phValue *float64) string {
	ph, ok := finite(phValue)
	if !ok {
		return Unknown
	}
	switch {
	case ph < 5.5:
		return "Strongly Acidic"
	case ph < 6.0:
		return "Moderately Acidic"
	case ph < 6.5:
		return "Slightly Acidic"
	case ph < 7.5:
		return "Neutral"
	case ph < 8.0:
		return "Slightly Alkaline"
	default:
		return "Alkaline"
	}
}

func drainageFor(texture string) string {
	switch texture {
	case "Sand", "Loamy sand":
		return "excessive"
	case "Sandy loam", "Loam":
		return "good"
	case "Silt loam", "Silt", "Sandy clay loam":
		return "moderate"
	case Unknown:
		return "unknown"
	default:
		return "poor"
	}
}

func soilBiodiversity(ocPct *float64) string {
	oc, _ := finite(ocPct)
	switch {
	case oc > 5:
		return "high"
	case oc > 3:
		return "moderate"
	default:
		return "low"
	}
}
