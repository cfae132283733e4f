package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"gaia-platform/internal/models"
	"gaia-platform/pkg/upstream"
)

const airQualityVariables = "carbon_dioxide,pm2_5,pm10,ozone,nitrogen_dioxide,sulphur_dioxide,carbon_monoxide"

// AirQuality reads CAMS carbon dioxide and pollutants from Open-Meteo.
type AirQuality struct {
	client   *upstream.Client
	endpoint Endpoint
	now      Clock
}

// NewAirQuality creates the live carbon source.
func NewAirQuality(client *upstream.Client, endpoint Endpoint, now Clock) *AirQuality {
	return &AirQuality{client: client, endpoint: endpoint, now: now}
}

func (s *AirQuality) Name() string { return "Open-Meteo Air Quality (CAMS)" }

type airQualityPayload struct {
	Hourly struct {
		Time []string   `json:"time"`
		CO2  []*float64 `json:"carbon_dioxide"`
		PM25 []*float64 `json:"pm2_5"`
		PM10 []*float64 `json:"pm10"`
		O3   []*float64 `json:"ozone"`
		NO2  []*float64 `json:"nitrogen_dioxide"`
		SO2  []*float64 `json:"sulphur_dioxide"`
		CO   []*float64 `json:"carbon_monoxide"`
	} `json:"hourly"`
}

// Fetch returns the past day's hourly CO2 and the latest pollutant levels.
func (s *AirQuality) Fetch(ctx context.Context, q models.LocationQuery) (models.CarbonReading, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", q.Lat))
	params.Set("longitude", fmt.Sprintf("%.4f", q.Lon))
	params.Set("hourly", airQualityVariables)
	params.Set("past_days", "1")
	params.Set("forecast_days", "1")
	params.Set("timezone", "GMT")

	var payload airQualityPayload
	err := s.client.GetJSON(ctx, upstream.Request{
		Upstream: "open_meteo_air_quality",
		URL:      s.endpoint.BaseURL + "?" + params.Encode(),
		Timeout:  s.endpoint.Timeout,
	}, &payload)
	if err != nil {
		return models.CarbonReading{}, wrap(s.Name(), err)
	}

	// Forecast hours are dropped; only observed hours count.
	cutoff := len(payload.Hourly.Time)
	now := s.now()
	for i, ts := range payload.Hourly.Time {
		t, err := time.Parse("2006-01-02T15:04", ts)
		if err != nil {
			return models.CarbonReading{}, wrap(s.Name(), fmt.Errorf("invalid hourly time %q: %w", ts, err))
		}
		if t.After(now) {
			cutoff = i
			break
		}
	}

	h := payload.Hourly
	reading := models.CarbonReading{
		CO2Hourly: present(h.CO2, cutoff),
		Pollutants: models.Pollutants{
			PM25: latest(h.PM25, cutoff),
			PM10: latest(h.PM10, cutoff),
			O3:   latest(h.O3, cutoff),
			NO2:  latest(h.NO2, cutoff),
			SO2:  latest(h.SO2, cutoff),
			CO:   latest(h.CO, cutoff),
		},
	}

	p := reading.Pollutants
	if len(reading.CO2Hourly) == 0 && p.PM25 == nil && p.PM10 == nil && p.O3 == nil &&
		p.NO2 == nil && p.SO2 == nil && p.CO == nil {
		return models.CarbonReading{}, wrap(s.Name(), ErrNoData)
	}
	return reading, nil
}

// present keeps the non-null values of series[:limit] in order.
func present(series []*float64, limit int) []float64 {
	out := make([]float64, 0, len(series))
	for i, v := range series {
		if i >= limit {
			break
		}
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// latest returns the last non-null value of series[:limit].
func latest(series []*float64, limit int) *float64 {
	if limit > len(series) {
		limit = len(series)
	}
	for i := limit - 1; i >= 0; i-- {
		if series[i] != nil {
			return ptr(*series[i])
		}
	}
	return nil
}
