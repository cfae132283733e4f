package normalize

import (
	"math"

	"gaia-platform/internal/models"
)

const (
	hotDayC      = 30.0
	frostDayC    = 0.0
	dryDayMm     = 1.0
	aridPrecipMm = 250.0
)

// Climate summarizes a daily archive into extremes and 0-100 scores.
func Climate(r models.ClimateReading) models.ClimateMetrics {
	var (
		sumMax, sumMin    float64
		nMax, nMin        int
		precip            float64
		hot, frost        int
		drySpell, longest int
	)

	for _, d := range r.Days {
		if v, ok := finite(d.TempMax); ok {
			sumMax += v
			nMax++
			if v > hotDayC {
				hot++
			}
		}
		if v, ok := finite(d.TempMin); ok {
			sumMin += v
			nMin++
			if v < frostDayC {
				frost++
			}
		}
		if v, ok := finite(d.Precipitation); ok {
			precip += math.Max(0, v)
			if v < dryDayMm {
				drySpell++
				longest = max(longest, drySpell)
			} else {
				drySpell = 0
			}
		} else {
			drySpell = 0
		}
	}

	m := models.ClimateMetrics{
		TotalPrecipitation: round1(precip),
		HotDays:            hot,
		FrostDays:          frost,
		LongestDrySpell:    longest,
		DataPoints:         len(r.Days),
		ResilienceScore:    ResilienceScore(hot, frost, longest, precip),
		WaterSecurityScore: math.Round(clampScore(precip / 10)),
	}
	if nMax > 0 {
		m.AvgTempMax = ptr(round1(sumMax / float64(nMax)))
	}
	if nMin > 0 {
		m.AvgTempMin = ptr(round1(sumMin / float64(nMin)))
	}
	return m
}

// ResilienceScore penalizes heat, frost, dry spells beyond two weeks and
// arid totals.
func ResilienceScore(hotDays, frostDays, longestDrySpell int, totalPrecipMm float64) float64 {
	score := 100 - float64(hotDays)*0.5 - float64(frostDays)*0.2 - math.Max(0, float64(longestDrySpell-14))
	if totalPrecipMm < aridPrecipMm {
		score -= 20
	}
	return math.Round(clampScore(score))
}
