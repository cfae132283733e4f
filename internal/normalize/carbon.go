package normalize

import (
	"math"
	"time"

	"gaia-platform/internal/models"
	"gaia-platform/internal/reference"
	"gaia-platform/internal/valuation"
)

const (
	historyYears      = 10
	co2GrowthPPMPerYr = 2.5
	oceanCarbonPerHa  = 25.0
)

// Carbon normalizes the atmosphere, emissions and sequestration picture.
// country selects the per-capita table entry; unlisted countries fall back
// to the world average.
func Carbon(q models.LocationQuery, country string, r models.CarbonReading, cat reference.Catalog, now time.Time) models.CarbonMetrics {
	co2, co2Source := EstimateCO2(q, r.CO2Hourly)
	emissions := PerCapitaEmissions(cat, country)
	factor := ForestFactor(q.Lat)
	net := round1(emissions.PerCapita - factor*8)

	status := valuation.CarbonSource
	if net < 0 {
		status = valuation.CarbonSink
	}

	history := make([]models.CarbonHistoryPoint, 0, historyYears+1)
	for i := historyYears; i >= 0; i-- {
		history = append(history, models.CarbonHistoryPoint{
			Year:      now.Year() - i,
			CO2:       round1(reference.GlobalCO2PPM - float64(i)*co2GrowthPPMPerYr),
			Emissions: round1(emissions.PerCapita * (1 + float64(historyYears-i)*0.01)),
		})
	}

	capture := 100.0
	if emissions.PerCapita > 0 {
		capture = factor * 8 / emissions.PerCapita * 100
	}

	return models.CarbonMetrics{
		Atmosphere: models.Atmosphere{
			CO2PPM:               co2,
			CO2Source:            co2Source,
			CH4PPB:               reference.GlobalMethanePPB,
			GlobalAvgCO2:         reference.GlobalCO2PPM,
			PreIndustrialCO2:     reference.PreIndustrialCO2PPM,
			AboveBaselinePercent: round1((co2 - reference.PreIndustrialCO2PPM) / reference.PreIndustrialCO2PPM * 100),
		},
		Emissions: emissions,
		Sequestration: models.Sequestration{
			ForestFactor: factor,
			ForestCarbon: round1(factor * 150),
			SoilCarbon:   round1(factor * 80),
			OceanCarbon:  oceanCarbonPerHa,
			NetBalance:   net,
			Status:       status,
		},
		AirQuality:   AirQualityFor(r.Pollutants, cat.WHOLimits()),
		History:      history,
		CaptureScore: math.Round(clampScore(capture)),
	}
}

// EstimateCO2 averages hourly station values, or falls back to the global
// baseline with an urban adjustment.
func EstimateCO2(q models.LocationQuery, hourly []float64) (ppm float64, source string) {
	var sum float64
	var n int
	for _, v := range hourly {
		if !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 {
			sum += v
			n++
		}
	}
	if n > 0 {
		return round1(sum / float64(n)), "station"
	}
	ppm = reference.GlobalCO2PPM
	if q.MentionsUrban() {
		ppm += reference.UrbanCO2AdjustmentPP
	}
	return ppm, "baseline"
}

// PerCapitaEmissions looks the country up, defaulting to the world average.
func PerCapitaEmissions(cat reference.Catalog, country string) models.EmissionsProfile {
	e, err := cat.Emissions(country)
	fromTable := err == nil
	if err != nil {
		e = reference.Emissions{
			PerCapitaTonnes: reference.DefaultPerCapitaEmissions,
			Trend:           "stable",
		}
	}
	pc := e.PerCapitaTonnes
	return models.EmissionsProfile{
		PerCapita:     pc,
		Methane:       round1(pc * 0.15),
		TotalGHG:      round1(pc * 1.2),
		Trend:         e.Trend,
		ChangePercent: e.ChangePercent,
		Rating:        EmissionRating(pc),
		FromTable:     fromTable,
	}
}

// EmissionRating bands per-capita tonnes.
func EmissionRating(perCapita float64) string {
	switch {
	case perCapita < 2:
		return "Very Low"
	case perCapita < 5:
		return "Low"
	case perCapita < 10:
		return "Moderate"
	case perCapita < 15:
		return "High"
	default:
		return "Very High"
	}
}

// ForestFactor is a coarse latitude-banded share of land acting as a forest sink.
func ForestFactor(lat float64) float64 {
	switch {
	case lat > 45:
		return 0.6
	case lat > 30:
		return 0.3
	case lat > 0:
		return 0.4
	default:
		return 0.5
	}
}

type aqiBreakpoint struct {
	low, high       float64
	aqiLow, aqiHigh float64
}

// US EPA PM2.5 breakpoints.
var pm25Breakpoints = []aqiBreakpoint{
	{0, 12, 0, 50},
	{12.1, 35.4, 51, 100},
	{35.5, 55.4, 101, 150},
	{55.5, 150.4, 151, 200},
	{150.5, 250.4, 201, 300},
	{250.5, 500, 301, 500},
}

// PM25AQI converts a PM2.5 concentration to the US AQI. Concentrations are
// truncated to 0.1 µg/m³ before lookup.
func PM25AQI(pm25 float64) float64 {
	c := math.Floor(math.Max(0, pm25)*10) / 10
	for _, bp := range pm25Breakpoints {
		if c >= bp.low && c <= bp.high {
			return math.Round((bp.aqiHigh-bp.aqiLow)/(bp.high-bp.low)*(c-bp.low) + bp.aqiLow)
		}
	}
	return 500
}

// AQILevel names an AQI band.
func AQILevel(aqi float64) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

// AirQualityFor compares pollutants with WHO guidelines. CO arrives in µg/m³
// and is compared in mg/m³.
func AirQualityFor(p models.Pollutants, limits reference.WHOLimits) models.AirQuality {
	aq := models.AirQuality{
		Level:       Unknown,
		WHOLimits:   limits,
		Exceedances: []string{},
	}
	if v, ok := finite(p.PM25); ok {
		aqi := PM25AQI(v)
		aq.AQI = &aqi
		aq.Level = AQILevel(aqi)
	}

	ratio := func(name string, v *float64, limit, scale float64) *float64 {
		c, ok := finite(v)
		if !ok || limit <= 0 {
			return nil
		}
		r := round2(c * scale / limit)
		if r > 1 {
			aq.Exceedances = append(aq.Exceedances, name)
		}
		return &r
	}
	aq.WHORatios = models.PollutantRatios{
		PM25: ratio("pm25", p.PM25, limits.PM25, 1),
		PM10: ratio("pm10", p.PM10, limits.PM10, 1),
		O3:   ratio("o3", p.O3, limits.O3, 1),
		NO2:  ratio("no2", p.NO2, limits.NO2, 1),
		SO2:  ratio("so2", p.SO2, limits.SO2, 1),
		CO:   ratio("co", p.CO, limits.CO, 0.001),
	}
	return aq
}
