package sources

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"gaia-platform/internal/models"
	"gaia-platform/internal/reference"
	"gaia-platform/pkg/upstream"
)

const (
	forestWatchDataset = "gadm__tcl__iso_change"

	// Tree cover loss is averaged over the most recent years.
	lossWindowYears = 5
)

// ForestWatch reads national tree cover loss from the Global Forest Watch data API.
type ForestWatch struct {
	client   *upstream.Client
	endpoint Endpoint
	apiKey   string
	catalog  reference.Catalog
}

// NewForestWatch creates the live forest source. Without an API key every
// fetch fails with ErrNotConfigured.
func NewForestWatch(client *upstream.Client, endpoint Endpoint, apiKey string, catalog reference.Catalog) *ForestWatch {
	return &ForestWatch{client: client, endpoint: endpoint, apiKey: apiKey, catalog: catalog}
}

func (s *ForestWatch) Name() string { return "Global Forest Watch" }

type forestWatchPayload struct {
	Status string `json:"status"`
	Data   []struct {
		Year   int     `json:"umd_tree_cover_loss__year"`
		LossHa float64 `json:"loss_ha"`
	} `json:"data"`
}

// Fetch expects q.Country to be resolved already.
func (s *ForestWatch) Fetch(ctx context.Context, q models.LocationQuery) (models.ForestReading, error) {
	if s.apiKey == "" {
		return models.ForestReading{}, wrap(s.Name(), ErrNotConfigured)
	}

	country, err := s.catalog.Country(q.Country)
	if err != nil {
		return models.ForestReading{}, wrap(s.Name(), err)
	}
	profile, err := s.catalog.ForestProfile(country.Name)
	if err != nil {
		return models.ForestReading{}, wrap(s.Name(), err)
	}

	sql := fmt.Sprintf("SELECT umd_tree_cover_loss__year, SUM(umd_tree_cover_loss__ha) AS loss_ha "+
		"FROM data WHERE iso = '%s' AND umd_tree_cover_density_2000__threshold = 30 "+
		"GROUP BY umd_tree_cover_loss__year", country.ISO3)
	params := url.Values{}
	params.Set("sql", sql)

	var payload forestWatchPayload
	err = s.client.GetJSON(ctx, upstream.Request{
		Upstream: "global_forest_watch",
		URL:      fmt.Sprintf("%s/dataset/%s/latest/query/json?%s", s.endpoint.BaseURL, forestWatchDataset, params.Encode()),
		Timeout:  s.endpoint.Timeout,
		Headers:  map[string]string{"x-api-key": s.apiKey},
	}, &payload)
	if err != nil {
		return models.ForestReading{}, wrap(s.Name(), err)
	}
	if len(payload.Data) == 0 {
		return models.ForestReading{}, wrap(s.Name(), ErrNoData)
	}

	history := make([]models.ForestLossYear, 0, len(payload.Data))
	for _, row := range payload.Data {
		history = append(history, models.ForestLossYear{Year: row.Year, LossHa: row.LossHa})
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Year < history[j].Year })

	return models.ForestReading{
		Country:          country.Name,
		ISO3:             country.ISO3,
		CoverPercent:     profile.CoverPercent,
		LossRatePercent:  lossRate(history, profile.ForestAreaHa, profile.LossRatePercent),
		GainRatePercent:  profile.GainRatePercent,
		ProtectedPercent: profile.ProtectedPercent,
		LossHistory:      history,
	}, nil
}

// lossRate is the mean yearly loss of the last lossWindowYears as a share of
// national forest area, or fallback when the area is unknown.
func lossRate(history []models.ForestLossYear, forestAreaHa, fallback float64) float64 {
	if forestAreaHa <= 0 || len(history) == 0 {
		return fallback
	}
	recent := history
	if len(recent) > lossWindowYears {
		recent = recent[len(recent)-lossWindowYears:]
	}
	var sum float64
	for _, y := range recent {
		sum += y.LossHa
	}
	return round2(sum / float64(len(recent)) / forestAreaHa * 100)
}
