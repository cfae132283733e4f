package reference

import (
	"strings"

	"github.com/paulmach/orb"
)

type countryRecord struct {
	Country
	aliases   []string
	emissions Emissions
	forest    ForestProfile
}

// Per-capita figures: Global Carbon Project 2023. Forest figures: FAO FRA 2020.
var countries = []countryRecord{
	{
		Country:   Country{Name: "Canada", ISO2: "CA", ISO3: "CAN", Region: "North America"},
		emissions: Emissions{PerCapitaTonnes: 14.2, Trend: "decreasing", ChangePercent: -1.8},
		forest:    ForestProfile{CoverPercent: 38.7, LossRatePercent: 0.35, GainRatePercent: 0.2, ProtectedPercent: 9, ForestAreaHa: 346_900_000},
	},
	{
		Country:   Country{Name: "United States", ISO2: "US", ISO3: "USA", Region: "North America"},
		aliases:   []string{"united states of america", "america"},
		emissions: Emissions{PerCapitaTonnes: 14.9, Trend: "decreasing", ChangePercent: -2.1},
		forest:    ForestProfile{CoverPercent: 33.9, LossRatePercent: 0.4, GainRatePercent: 0.25, ProtectedPercent: 9, ForestAreaHa: 309_800_000},
	},
	{
		Country:   Country{Name: "Brazil", ISO2: "BR", ISO3: "BRA", Region: "South America"},
		aliases:   []string{"brasil"},
		emissions: Emissions{PerCapitaTonnes: 2.2, Trend: "stable", ChangePercent: 0.4},
		forest:    ForestProfile{CoverPercent: 59.4, LossRatePercent: 0.9, GainRatePercent: 0.1, ProtectedPercent: 30, ForestAreaHa: 496_600_000},
	},
	{
		Country:   Country{Name: "Indonesia", ISO2: "ID", ISO3: "IDN", Region: "Asia"},
		emissions: Emissions{PerCapitaTonnes: 2.6, Trend: "increasing", ChangePercent: 3.2},
		forest:    ForestProfile{CoverPercent: 49.1, LossRatePercent: 1.1, GainRatePercent: 0.15, ProtectedPercent: 23, ForestAreaHa: 92_100_000},
	},
	{
		Country:   Country{Name: "China", ISO2: "CN", ISO3: "CHN", Region: "Asia"},
		aliases:   []string{"people's republic of china", "prc"},
		emissions: Emissions{PerCapitaTonnes: 8.0, Trend: "increasing", ChangePercent: 1.1},
		forest:    ForestProfile{CoverPercent: 23.3, LossRatePercent: 0.2, GainRatePercent: 0.6, ProtectedPercent: 17, ForestAreaHa: 220_000_000},
	},
	{
		Country:   Country{Name: "India", ISO2: "IN", ISO3: "IND", Region: "Asia"},
		aliases:   []string{"bharat"},
		emissions: Emissions{PerCapitaTonnes: 2.0, Trend: "increasing", ChangePercent: 5.1},
		forest:    ForestProfile{CoverPercent: 24.3, LossRatePercent: 0.15, GainRatePercent: 0.3, ProtectedPercent: 6, ForestAreaHa: 72_200_000},
	},
	{
		Country:   Country{Name: "Russia", ISO2: "RU", ISO3: "RUS", Region: "Europe"},
		aliases:   []string{"russian federation"},
		emissions: Emissions{PerCapitaTonnes: 11.4, Trend: "stable", ChangePercent: 0.6},
		forest:    ForestProfile{CoverPercent: 49.8, LossRatePercent: 0.3, GainRatePercent: 0.15, ProtectedPercent: 12, ForestAreaHa: 815_300_000},
	},
	{
		Country:   Country{Name: "Australia", ISO2: "AU", ISO3: "AUS", Region: "Oceania"},
		emissions: Emissions{PerCapitaTonnes: 14.9, Trend: "decreasing", ChangePercent: -1.2},
		forest:    ForestProfile{CoverPercent: 17.4, LossRatePercent: 0.5, GainRatePercent: 0.2, ProtectedPercent: 21, ForestAreaHa: 134_000_000},
	},
	{
		Country:   Country{Name: "Germany", ISO2: "DE", ISO3: "DEU", Region: "Europe"},
		aliases:   []string{"deutschland"},
		emissions: Emissions{PerCapitaTonnes: 8.0, Trend: "decreasing", ChangePercent: -4.5},
		forest:    ForestProfile{CoverPercent: 32.7, LossRatePercent: 0.3, GainRatePercent: 0.25, ProtectedPercent: 38, ForestAreaHa: 11_400_000},
	},
	{
		Country:   Country{Name: "United Kingdom", ISO2: "GB", ISO3: "GBR", Region: "Europe"},
		aliases:   []string{"uk", "great britain", "britain", "england", "scotland", "wales"},
		emissions: Emissions{PerCapitaTonnes: 4.7, Trend: "decreasing", ChangePercent: -3.4},
		forest:    ForestProfile{CoverPercent: 13.2, LossRatePercent: 0.2, GainRatePercent: 0.3, ProtectedPercent: 25, ForestAreaHa: 3_200_000},
	},
}

type countryBox struct {
	country string
	bound   orb.Bound
}

func box(country string, minLon, minLat, maxLon, maxLat float64) countryBox {
	return countryBox{country: country, bound: orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}}
}

// First match wins, so the Canadian boxes below 49N precede the contiguous US.
var countryBoxes = []countryBox{
	box("Canada", -125.5, 48.3, -123.2, 49.0),
	box("Canada", -81.5, 43.35, -77.5, 45.0),
	box("Canada", -76.5, 45.0, -71.5, 47.5),
	box("United Kingdom", -8.65, 49.9, 1.77, 60.85),
	box("Germany", 5.87, 47.27, 15.04, 55.06),
	box("United States", -124.8, 24.5, -66.9, 49.0),
	box("United States", -168.0, 54.5, -141.0, 71.4),
	box("Canada", -141.0, 41.7, -52.6, 83.1),
	box("Brazil", -73.99, -33.75, -34.79, 5.27),
	box("Indonesia", 95.0, -11.0, 141.0, 6.1),
	box("India", 68.1, 6.7, 97.4, 35.5),
	box("China", 73.5, 18.2, 134.8, 53.6),
	box("Australia", 112.9, -43.7, 153.6, -10.7),
	box("Russia", 27.3, 41.2, 180.0, 81.9),
}

var stations = []Station{
	{ID: "46237", Name: "San Francisco Bar", Lat: 37.786, Lon: -122.634},
	{ID: "44013", Name: "Boston", Lat: 42.346, Lon: -70.651},
	{ID: "41009", Name: "Canaveral", Lat: 28.508, Lon: -80.185},
	{ID: "46025", Name: "Santa Monica Basin", Lat: 33.749, Lon: -119.053},
	{ID: "44025", Name: "Long Island", Lat: 40.251, Lon: -73.164},
	{ID: "46026", Name: "San Francisco", Lat: 37.759, Lon: -122.833},
	{ID: "41047", Name: "Cape Hatteras", Lat: 33.848, Lon: -75.998},
	{ID: "46029", Name: "Columbia River Bar", Lat: 46.163, Lon: -124.514},
}

var whoLimits = WHOLimits{PM25: 15, PM10: 45, O3: 100, NO2: 25, SO2: 40, CO: 4}

// Static is the compiled-in Catalog.
type Static struct {
	index map[string]*countryRecord
}

// NewStatic builds the lookup index over the compiled-in tables.
func NewStatic() *Static {
	s := &Static{index: make(map[string]*countryRecord)}
	for i := range countries {
		rec := &countries[i]
		keys := append([]string{rec.Name, rec.ISO2, rec.ISO3}, rec.aliases...)
		for _, k := range keys {
			s.index[normalizeKey(k)] = rec
		}
	}
	return s
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *Static) lookup(table, key string) (*countryRecord, error) {
	rec, ok := s.index[normalizeKey(key)]
	if !ok {
		return nil, &NotFoundError{Table: table, Key: key}
	}
	return rec, nil
}

func (s *Static) Country(nameOrCode string) (Country, error) {
	rec, err := s.lookup("countries", nameOrCode)
	if err != nil {
		return Country{}, err
	}
	return rec.Country, nil
}

func (s *Static) Emissions(country string) (Emissions, error) {
	rec, err := s.lookup("emissions", country)
	if err != nil {
		return Emissions{}, err
	}
	return rec.emissions, nil
}

func (s *Static) ForestProfile(country string) (ForestProfile, error) {
	rec, err := s.lookup("forest profiles", country)
	if err != nil {
		return ForestProfile{}, err
	}
	return rec.forest, nil
}

func (s *Static) CountryAt(p orb.Point) (string, bool) {
	for _, b := range countryBoxes {
		if b.bound.Contains(p) {
			return b.country, true
		}
	}
	return "", false
}

func (s *Static) RegionAt(p orb.Point) string {
	lon, lat := p.Lon(), p.Lat()
	switch {
	case lat < -10 && lon > 100:
		return "Oceania"
	case lat < 35 && lat > -35 && lon > -20 && lon < 55:
		return "Africa"
	case lon > -30 && lon < 60:
		return "Europe"
	case lon >= 60:
		return "Asia"
	case lat < 0 && lon < -30:
		return "South America"
	default:
		return "North America"
	}
}

func (s *Static) Stations() []Station {
	out := make([]Station, len(stations))
	copy(out, stations)
	return out
}

func (s *Static) Station(id string) (Station, error) {
	for _, st := range stations {
		if st.ID == strings.TrimSpace(id) {
			return st, nil
		}
	}
	return Station{}, &NotFoundError{Table: "stations", Key: id}
}

func (s *Static) WHOLimits() WHOLimits { return whoLimits }
