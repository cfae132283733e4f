package sources

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"gaia-platform/internal/models"
	"gaia-platform/internal/normalize"
	"gaia-platform/internal/reference"
	"gaia-platform/pkg/upstream"
)

// MaxBuoyObservations caps the returned series to roughly the last day of
// 30-minute rows.
const MaxBuoyObservations = 48

// NDBC reads realtime2 standard meteorological files from NOAA buoys.
type NDBC struct {
	client   *upstream.Client
	endpoint Endpoint
	catalog  reference.Catalog
}

// NewNDBC creates the live ocean source.
func NewNDBC(client *upstream.Client, endpoint Endpoint, catalog reference.Catalog) *NDBC {
	return &NDBC{client: client, endpoint: endpoint, catalog: catalog}
}

func (s *NDBC) Name() string { return "NOAA National Data Buoy Center" }

// Fetch reads the requested station, or the nearest listed one.
func (s *NDBC) Fetch(ctx context.Context, q models.LocationQuery) (models.OceanReading, error) {
	station := StationFor(s.catalog, q)

	body, err := s.client.Get(ctx, upstream.Request{
		Upstream: "ndbc",
		URL:      fmt.Sprintf("%s/%s.txt", s.endpoint.BaseURL, station.ID),
		Timeout:  s.endpoint.Timeout,
		Headers:  map[string]string{"Accept": "text/plain"},
	})
	if err != nil {
		return models.OceanReading{}, wrap(s.Name(), err)
	}

	observations, err := ParseBuoyFile(bytes.NewReader(body), MaxBuoyObservations)
	if err != nil {
		return models.OceanReading{}, wrap(s.Name(), err)
	}
	return models.OceanReading{Station: station, Observations: observations}, nil
}

// StationFor resolves q.Station against the catalog, falling back to the
// station nearest the query point.
func StationFor(cat reference.Catalog, q models.LocationQuery) reference.Station {
	if q.Station != "" {
		if st, err := cat.Station(q.Station); err == nil {
			return st
		}
	}
	st, _ := normalize.NearestStation(cat.Stations(), q.Point())
	return st
}

// ParseBuoyFile reads an NDBC realtime2 file, newest row first, and returns
// up to limit observations oldest first. Header rows and rows with another
// column count are skipped.
func ParseBuoyFile(r io.Reader, limit int) ([]models.OceanObservation, error) {
	var newestFirst []models.OceanObservation

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		record := models.RawBuoyRecord{Fields: strings.Fields(line)}
		observation, err := record.ToObservation()
		if err != nil {
			continue
		}

		newestFirst = append(newestFirst, *observation)
		if limit > 0 && len(newestFirst) == limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading buoy file: %w", err)
	}
	if len(newestFirst) == 0 {
		return nil, ErrNoData
	}

	observations := make([]models.OceanObservation, len(newestFirst))
	for i, o := range newestFirst {
		observations[len(newestFirst)-1-i] = o
	}
	return observations, nil
}
