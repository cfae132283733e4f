package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
)

// Domain names one environmental data category.
type Domain string

const (
	DomainCarbon       Domain = "carbon"
	DomainClimate      Domain = "climate"
	DomainSoil         Domain = "soil"
	DomainForest       Domain = "forest"
	DomainOcean        Domain = "ocean"
	DomainBiodiversity Domain = "biodiversity"
)

// Domains lists every domain in display order.
var Domains = []Domain{DomainCarbon, DomainClimate, DomainSoil, DomainForest, DomainOcean, DomainBiodiversity}

// LocationQuery is the spatial anchor of one request.
type LocationQuery struct {
	Name    string
	Lat     float64
	Lon     float64
	Country string // optional; resolved when empty
	Station string // optional NDBC station override
}

// Point returns the query position as lon/lat.
func (q LocationQuery) Point() orb.Point {
	return orb.Point{q.Lon, q.Lat}
}

// Validate rejects coordinates outside WGS84 bounds.
func (q LocationQuery) Validate() error {
	if math.IsNaN(q.Lat) || math.IsInf(q.Lat, 0) || q.Lat < -90 || q.Lat > 90 {
		return &ValidationError{
			Field:   "lat",
			Value:   fmt.Sprint(q.Lat),
			Message: "lat must be a number between -90 and 90",
		}
	}
	if math.IsNaN(q.Lon) || math.IsInf(q.Lon, 0) || q.Lon < -180 || q.Lon > 180 {
		return &ValidationError{
			Field:   "lon",
			Value:   fmt.Sprint(q.Lon),
			Message: "lon must be a number between -180 and 180",
		}
	}
	return nil
}

// MentionsUrban reports whether the location name describes a city centre.
func (q LocationQuery) MentionsUrban() bool {
	name := strings.ToLower(q.Name)
	for _, kw := range []string{"city", "urban", "downtown"} {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// Location is the location echo carried by every response.
type Location struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	Region  string  `json:"region"`
}

// ValidationError represents invalid caller input.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsTransient returns false as validation errors are permanent
func (e *ValidationError) IsTransient() bool {
	return false
}
