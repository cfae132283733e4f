// Package reference holds the read-only lookup tables shared by every
// domain: country facts, per-capita emissions, forest profiles, buoy
// stations and air-quality limits.
package reference

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Atmospheric baselines.
const (
	GlobalCO2PPM         = 421.5
	PreIndustrialCO2PPM  = 280.0
	GlobalMethanePPB     = 1920.0
	UrbanCO2AdjustmentPP = 15.0

	// DefaultPerCapitaEmissions is the world average used for unlisted countries, tCO2/yr.
	DefaultPerCapitaEmissions = 4.5

	UnknownCountry = "Unknown"
)

// Catalog is the reference data consumed by normalizers and sources.
type Catalog interface {
	// Country resolves a name, alias or ISO 3166 alpha-2/alpha-3 code.
	Country(nameOrCode string) (Country, error)
	Emissions(country string) (Emissions, error)
	ForestProfile(country string) (ForestProfile, error)
	// CountryAt returns the first country whose bounding box contains p.
	CountryAt(p orb.Point) (string, bool)
	// RegionAt is a coarse continental region for coordinates with no known country.
	RegionAt(p orb.Point) string
	Stations() []Station
	Station(id string) (Station, error)
	WHOLimits() WHOLimits
}

// Country is a listed country.
type Country struct {
	Name   string `json:"name"`
	ISO2   string `json:"iso2"`
	ISO3   string `json:"iso3"`
	Region string `json:"region"`
}

// Emissions is a country's per-capita CO2 profile. Trend and ChangePercent
// are fixed published figures, not derived from a series.
type Emissions struct {
	PerCapitaTonnes float64 `json:"perCapitaTonnes"`
	Trend           string  `json:"trend"` // increasing, stable, decreasing
	ChangePercent   float64 `json:"changePercent"`
}

// ForestProfile is a country's national forest statistics.
type ForestProfile struct {
	CoverPercent     float64 `json:"coverPercent"`
	LossRatePercent  float64 `json:"lossRatePercent"` // of forest area per year
	GainRatePercent  float64 `json:"gainRatePercent"`
	ProtectedPercent float64 `json:"protectedPercent"`
	ForestAreaHa     float64 `json:"forestAreaHa"`
}

// Station is an NDBC buoy.
type Station struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Point returns the station position.
func (s Station) Point() orb.Point { return orb.Point{s.Lon, s.Lat} }

// WHOLimits are WHO 2021 guideline values in µg/m³ (CO in mg/m³).
type WHOLimits struct {
	PM25 float64 `json:"pm25"`
	PM10 float64 `json:"pm10"`
	O3   float64 `json:"o3"`
	NO2  float64 `json:"no2"`
	SO2  float64 `json:"so2"`
	CO   float64 `json:"co"`
}

// NotFoundError reports a key absent from a reference table.
type NotFoundError struct {
	Table string
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reference: %s has no entry for %q", e.Table, e.Key)
}

// IsTransient returns false; reference data does not change at runtime.
func (e *NotFoundError) IsTransient() bool {
	return false
}
