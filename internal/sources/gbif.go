package sources

import (
	"context"
	"fmt"
	"net/url"

	"gaia-platform/internal/models"
	"gaia-platform/pkg/upstream"
)

const (
	// occurrenceSpanDeg is the half-width of the search box, about 10 km.
	occurrenceSpanDeg = 0.09

	// GBIF caps a single page at 300 records.
	occurrenceLimit = 300
)

// GBIF samples species occurrences around a location.
type GBIF struct {
	client   *upstream.Client
	endpoint Endpoint
}

// NewGBIF creates the live biodiversity source.
func NewGBIF(client *upstream.Client, endpoint Endpoint) *GBIF {
	return &GBIF{client: client, endpoint: endpoint}
}

func (s *GBIF) Name() string { return "GBIF" }

type gbifPayload struct {
	Count   int `json:"count"`
	Results []struct {
		ScientificName string `json:"scientificName"`
		Species        string `json:"species"`
		VernacularName string `json:"vernacularName"`
		Kingdom        string `json:"kingdom"`
		EventDate      string `json:"eventDate"`
	} `json:"results"`
}

// Fetch returns one page of georeferenced occurrences.
func (s *GBIF) Fetch(ctx context.Context, q models.LocationQuery) (models.BiodiversityReading, error) {
	params := url.Values{}
	params.Set("decimalLatitude", fmt.Sprintf("%.4f,%.4f", q.Lat-occurrenceSpanDeg, q.Lat+occurrenceSpanDeg))
	params.Set("decimalLongitude", fmt.Sprintf("%.4f,%.4f", q.Lon-occurrenceSpanDeg, q.Lon+occurrenceSpanDeg))
	params.Set("hasCoordinate", "true")
	params.Set("limit", fmt.Sprint(occurrenceLimit))

	var payload gbifPayload
	err := s.client.GetJSON(ctx, upstream.Request{
		Upstream: "gbif",
		URL:      s.endpoint.BaseURL + "/occurrence/search?" + params.Encode(),
		Timeout:  s.endpoint.Timeout,
	}, &payload)
	if err != nil {
		return models.BiodiversityReading{}, wrap(s.Name(), err)
	}

	occurrences := make([]models.Occurrence, 0, len(payload.Results))
	for _, r := range payload.Results {
		name := r.Species
		if name == "" {
			name = r.ScientificName
		}
		if name == "" {
			continue
		}
		occurrences = append(occurrences, models.Occurrence{
			ScientificName: name,
			VernacularName: r.VernacularName,
			Kingdom:        r.Kingdom,
			EventDate:      r.EventDate,
		})
	}
	if len(occurrences) == 0 {
		return models.BiodiversityReading{}, wrap(s.Name(), ErrNoData)
	}

	total := payload.Count
	if total < len(occurrences) {
		total = len(occurrences)
	}
	return models.BiodiversityReading{TotalOccurrences: total, Occurrences: occurrences}, nil
}
