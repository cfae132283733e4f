package normalize

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"gaia-platform/internal/models"
	"gaia-platform/internal/reference"
)

const (
	knotsPerMS       = 1.94384
	coastalRadiusKm  = 100.0
	marineRadiusKm   = 10.0
	unknownCondition = "Unknown"
)

// MarineAreaKm2 is the ocean assessment area around a station.
var MarineAreaKm2 = math.Pi * marineRadiusKm * marineRadiusKm

// NearestStation returns the station closest to p and its distance in km.
func NearestStation(stations []reference.Station, p orb.Point) (reference.Station, float64) {
	var best reference.Station
	bestKm := math.Inf(1)
	for _, s := range stations {
		if d := geo.Distance(p, s.Point()) / 1000; d < bestKm {
			best, bestKm = s, d
		}
	}
	return best, bestKm
}

// Ocean normalizes the latest buoy observation.
func Ocean(q models.LocationQuery, r models.OceanReading) models.OceanMetrics {
	distance := geo.Distance(q.Point(), r.Station.Point()) / 1000
	latest, _ := r.Latest()

	m := models.OceanMetrics{
		Station:     r.Station,
		DistanceKm:  round1(distance),
		Coastal:     distance <= coastalRadiusKm,
		AreaKm2:     round2(MarineAreaKm2),
		SeaState:    SeaState(latest.WaveHeightM),
		WindCompass: unknownCondition,
		WaveHeightM: latest.WaveHeightM,
		WaterTempC:  latest.WaterTempC,
	}

	if ms, ok := finite(latest.WindSpeedMS); ok {
		m.WindKnots = ptr(round1(ms * knotsPerMS))
	}
	m.Beaufort = BeaufortScale(latest.WindSpeedMS)
	if deg, ok := finite(latest.WindDirDeg); ok {
		m.WindCompass = Compass(deg)
	}
	m.MarineScore = marineScore(latest)
	return m
}

// SeaState classifies wave height in metres.
func SeaState(waveHeightM *float64) string {
	h, ok := finite(waveHeightM)
	if !ok {
		return unknownCondition
	}
	switch {
	case h < 0.1:
		return "Calm (glassy)"
	case h < 0.5:
		return "Calm (rippled)"
	case h < 1.25:
		return "Smooth"
	case h < 2.5:
		return "Slight"
	case h < 4:
		return "Moderate"
	case h < 6:
		return "Rough"
	case h < 9:
		return "Very rough"
	case h < 14:
		return "High"
	default:
		return "Very high"
	}
}

var beaufortTiers = []struct {
	maxKnots    float64
	description string
}{
	{1, "Calm"},
	{4, "Light air"},
	{7, "Light breeze"},
	{11, "Gentle breeze"},
	{17, "Moderate breeze"},
	{22, "Fresh breeze"},
	{28, "Strong breeze"},
	{34, "Near gale"},
	{41, "Gale"},
	{48, "Strong gale"},
	{56, "Storm"},
	{64, "Violent storm"},
}

// BeaufortScale classifies a wind speed in m/s. Force is -1 when unknown.
func BeaufortScale(windSpeedMS *float64) models.Beaufort {
	ms, ok := finite(windSpeedMS)
	if !ok {
		return models.Beaufort{Force: -1, Description: unknownCondition}
	}
	knots := math.Max(0, ms) * knotsPerMS
	for force, tier := range beaufortTiers {
		if knots < tier.maxKnots {
			return models.Beaufort{Force: force, Description: tier.description}
		}
	}
	return models.Beaufort{Force: 12, Description: "Hurricane force"}
}

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass names the 16-point bearing of a direction in degrees.
func Compass(degrees float64) string {
	idx := int(math.Round(math.Mod(degrees, 360)/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}

// marineScore penalizes water far from 15 °C and seas above 2.5 m.
func marineScore(obs models.OceanObservation) float64 {
	score := 100.0
	if t, ok := finite(obs.WaterTempC); ok {
		score -= math.Abs(t-15) * 2
	}
	if h, ok := finite(obs.WaveHeightM); ok {
		score -= math.Max(0, h-2.5) * 10
	}
	return math.Round(clampScore(score))
}
