package sources

import (
	"context"
	"fmt"
	"net/url"

	"gaia-platform/internal/models"
	"gaia-platform/pkg/upstream"
)

const (
	dateLayout = "2006-01-02"

	// The ERA5 archive lags real time by about five days.
	archiveLagDays    = 5
	archiveWindowDays = 365
)

// ClimateArchive reads a year of daily weather from the Open-Meteo archive.
type ClimateArchive struct {
	client   *upstream.Client
	endpoint Endpoint
	now      Clock
}

// NewClimateArchive creates the live climate source.
func NewClimateArchive(client *upstream.Client, endpoint Endpoint, now Clock) *ClimateArchive {
	return &ClimateArchive{client: client, endpoint: endpoint, now: now}
}

func (s *ClimateArchive) Name() string { return "Open-Meteo Historical Archive (ERA5)" }

type archivePayload struct {
	Daily struct {
		Time          []string   `json:"time"`
		TempMax       []*float64 `json:"temperature_2m_max"`
		TempMin       []*float64 `json:"temperature_2m_min"`
		Precipitation []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// Fetch returns the archived daily window ending archiveLagDays ago.
func (s *ClimateArchive) Fetch(ctx context.Context, q models.LocationQuery) (models.ClimateReading, error) {
	end := s.now().AddDate(0, 0, -archiveLagDays)
	start := end.AddDate(0, 0, -archiveWindowDays)

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", q.Lat))
	params.Set("longitude", fmt.Sprintf("%.4f", q.Lon))
	params.Set("start_date", start.Format(dateLayout))
	params.Set("end_date", end.Format(dateLayout))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	params.Set("timezone", "UTC")

	var payload archivePayload
	err := s.client.GetJSON(ctx, upstream.Request{
		Upstream: "open_meteo_archive",
		URL:      s.endpoint.BaseURL + "?" + params.Encode(),
		Timeout:  s.endpoint.Timeout,
	}, &payload)
	if err != nil {
		return models.ClimateReading{}, wrap(s.Name(), err)
	}

	d := payload.Daily
	days := make([]models.ClimateDay, 0, len(d.Time))
	for i, date := range d.Time {
		day := models.ClimateDay{
			Date:          date,
			TempMax:       at(d.TempMax, i),
			TempMin:       at(d.TempMin, i),
			Precipitation: at(d.Precipitation, i),
		}
		if day.TempMax == nil && day.TempMin == nil && day.Precipitation == nil {
			continue
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return models.ClimateReading{}, wrap(s.Name(), ErrNoData)
	}

	return models.ClimateReading{
		StartDate: days[0].Date,
		EndDate:   days[len(days)-1].Date,
		Days:      days,
	}, nil
}

func at(series []*float64, i int) *float64 {
	if i >= len(series) || series[i] == nil {
		return nil
	}
	return ptr(*series[i])
}
