package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gaia-platform/internal/models"
	"gaia-platform/internal/reference"
	"gaia-platform/pkg/logging"
	"gaia-platform/pkg/upstream"
)

// CountryResolver names the country of a query point.
type CountryResolver struct {
	client   *upstream.Client
	endpoint Endpoint
	cacheTTL time.Duration
	catalog  reference.Catalog
	logger   *logging.StructuredLogger
}

// NewCountryResolver creates a resolver that reverse geocodes through client.
// A nil client resolves from the catalog's bounding boxes only.
func NewCountryResolver(client *upstream.Client, endpoint Endpoint, cacheTTL time.Duration, catalog reference.Catalog, logger *logging.StructuredLogger) *CountryResolver {
	return &CountryResolver{
		client:   client,
		endpoint: endpoint,
		cacheTTL: cacheTTL,
		catalog:  catalog,
		logger:   logger,
	}
}

type reverseGeocodePayload struct {
	Error   string `json:"error"`
	Address struct {
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Resolve returns the explicit country when given, else the reverse geocoded
// one, else the bounding-box match, else reference.UnknownCountry. Listed
// countries come back under their catalog name.
func (r *CountryResolver) Resolve(ctx context.Context, q models.LocationQuery) string {
	if q.Country != "" {
		return r.canonical(q.Country)
	}

	if r.client != nil {
		name, err := r.reverseGeocode(ctx, q)
		if err == nil {
			return name
		}
		r.logger.Warn(ctx, "[GEOCODE_FALLBACK] Reverse geocoding failed, using bounding boxes", logging.Fields{
			"lat":   q.Lat,
			"lon":   q.Lon,
			"error": err.Error(),
		})
	}

	if name, ok := r.catalog.CountryAt(q.Point()); ok {
		return name
	}
	return reference.UnknownCountry
}

// Region is the listed country's region, else the coarse region of the point.
func (r *CountryResolver) Region(country string, q models.LocationQuery) string {
	if c, err := r.catalog.Country(country); err == nil {
		return c.Region
	}
	return r.catalog.RegionAt(q.Point())
}

func (r *CountryResolver) reverseGeocode(ctx context.Context, q models.LocationQuery) (string, error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", fmt.Sprintf("%.4f", q.Lat))
	params.Set("lon", fmt.Sprintf("%.4f", q.Lon))
	params.Set("zoom", "3")
	params.Set("accept-language", "en")

	var payload reverseGeocodePayload
	err := r.client.GetJSON(ctx, upstream.Request{
		Upstream: "nominatim",
		URL:      r.endpoint.BaseURL + "?" + params.Encode(),
		Timeout:  r.endpoint.Timeout,
		CacheTTL: r.cacheTTL,
	}, &payload)
	if err != nil {
		return "", err
	}
	if payload.Error != "" {
		return "", fmt.Errorf("reverse geocode: %s", payload.Error)
	}
	if code := payload.Address.CountryCode; code != "" {
		if c, err := r.catalog.Country(code); err == nil {
			return c.Name, nil
		}
	}
	if payload.Address.Country == "" {
		return "", ErrNoData
	}
	return r.canonical(payload.Address.Country), nil
}

func (r *CountryResolver) canonical(name string) string {
	if c, err := r.catalog.Country(name); err == nil {
		return c.Name
	}
	return strings.TrimSpace(name)
}
