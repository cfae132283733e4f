package sources

import (
	"context"
	"math"
	"time"

	"gaia-platform/internal/models"
	"gaia-platform/internal/normalize"
	"gaia-platform/internal/reference"
)

// Simulated sources never fail and never touch the network. Each draws from
// a generator seeded by the location, so a location always simulates the
// same reading for a given clock.

// SimulatedCarbon generates pollutant levels with no CO2 series, so the
// carbon normalizer falls back to the global baseline.
type SimulatedCarbon struct{}

func (SimulatedCarbon) Name() string { return SimulatedName }

func (s SimulatedCarbon) Fetch(_ context.Context, q models.LocationQuery) (models.CarbonReading, error) {
	r := rngFor("carbon", q)
	load := 1.0
	if q.MentionsUrban() {
		load = 1.5
	}
	return models.CarbonReading{
		CO2Hourly: []float64{},
		Pollutants: models.Pollutants{
			PM25: ptr(round1(between(r, 4, 18) * load)),
			PM10: ptr(round1(between(r, 8, 30) * load)),
			O3:   ptr(round1(between(r, 40, 90))),
			NO2:  ptr(round1(between(r, 5, 30) * load)),
			SO2:  ptr(round1(between(r, 1, 8) * load)),
			CO:   ptr(round1(between(r, 150, 400) * load)),
		},
	}, nil
}

// SimulatedClimate generates daily points on a seasonal sine over the same
// window the archive source requests.
type SimulatedClimate struct {
	Now Clock
}

func (SimulatedClimate) Name() string { return SimulatedName }

func (s SimulatedClimate) Fetch(_ context.Context, q models.LocationQuery) (models.ClimateReading, error) {
	r := rngFor("climate", q)
	end := s.Now().Truncate(24*time.Hour).AddDate(0, 0, -archiveLagDays)
	start := end.AddDate(0, 0, -archiveWindowDays)

	// Seasons are opposite south of the equator.
	phase := -math.Pi / 2
	if q.Lat < 0 {
		phase = math.Pi / 2
	}

	days := make([]models.ClimateDay, 0, archiveWindowDays+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		base := 15 + 10*math.Sin(float64(d.YearDay())/365*2*math.Pi+phase)
		variation := between(r, -3, 3)
		precip := 0.0
		if r.Float64() > 0.65 {
			precip = round1(r.Float64() * 15)
		}
		days = append(days, models.ClimateDay{
			Date:          d.Format(dateLayout),
			TempMax:       ptr(round1(base + 5 + variation)),
			TempMin:       ptr(round1(base - 5 + variation)),
			Precipitation: ptr(precip),
		})
	}

	return models.ClimateReading{
		StartDate: start.Format(dateLayout),
		EndDate:   days[len(days)-1].Date,
		Days:      days,
	}, nil
}

// SimulatedSoil generates a loam with regional pH and organic carbon.
type SimulatedSoil struct {
	Now Clock
}

func (SimulatedSoil) Name() string { return SimulatedName }

func (s SimulatedSoil) Fetch(_ context.Context, q models.LocationQuery) (models.SoilReading, error) {
	r := rngFor("soil", q)

	ph, organicMatter := 6.5, 4.5
	// Pacific Northwest temperate rainforest soils are acidic and rich.
	if q.Lat > 45 && q.Lon < -120 {
		ph, organicMatter = 5.8, 6.2
	}

	clay := round1(between(r, 18, 22))
	sand := round1(between(r, 38, 44))
	silt := round1(100 - clay - sand)

	return models.SoilReading{
		Depth:            SoilDepth,
		ClayPct:          ptr(clay),
		SandPct:          ptr(sand),
		SiltPct:          ptr(silt),
		OrganicCarbonPct: ptr(round2(organicMatter / 1.724)),
		PH:               ptr(ph),
		CEC:              ptr(round1(between(r, 12, 25))),
		NitrogenGKg:      ptr(round2(between(r, 1.2, 1.8))),
		MoisturePct:      ptr(seasonalMoisture(s.Now())),
	}, nil
}

// SimulatedForest uses the country's forest profile when listed, otherwise
// latitude heuristics favouring the Pacific Northwest.
type SimulatedForest struct {
	Catalog reference.Catalog
	Now     Clock
}

func (SimulatedForest) Name() string { return SimulatedName }

// simulatedLossYears is the length of the generated loss history.
const simulatedLossYears = 24

func (s SimulatedForest) Fetch(_ context.Context, q models.LocationQuery) (models.ForestReading, error) {
	r := rngFor("forest", q)

	reading := models.ForestReading{Country: q.Country}
	var forestAreaHa float64

	if profile, err := s.Catalog.ForestProfile(q.Country); err == nil {
		if c, err := s.Catalog.Country(q.Country); err == nil {
			reading.Country = c.Name
			reading.ISO3 = c.ISO3
		}
		reading.CoverPercent = profile.CoverPercent
		reading.LossRatePercent = profile.LossRatePercent
		reading.GainRatePercent = profile.GainRatePercent
		reading.ProtectedPercent = profile.ProtectedPercent
		forestAreaHa = profile.ForestAreaHa
	} else {
		baseline := 45.0
		if q.Lat > 45 && q.Lon < -115 {
			baseline = 82
		}
		reading.CoverPercent = round1(baseline - between(r, 2, 7))
		reading.LossRatePercent = round2(between(r, 0.3, 0.7))
		reading.GainRatePercent = round2(reading.LossRatePercent * 0.4)
		reading.ProtectedPercent = 28
		forestAreaHa = normalize.AssessmentAreaHa * reading.CoverPercent / 100
	}
	if reading.Country == "" {
		reading.Country = reference.UnknownCountry
	}

	yearlyLoss := forestAreaHa * reading.LossRatePercent / 100
	lastYear := s.Now().Year() - 1
	reading.LossHistory = make([]models.ForestLossYear, 0, simulatedLossYears)
	for year := lastYear - simulatedLossYears + 1; year <= lastYear; year++ {
		reading.LossHistory = append(reading.LossHistory, models.ForestLossYear{
			Year:   year,
			LossHa: math.Round(yearlyLoss * between(r, 0.8, 1.2)),
		})
	}
	return reading, nil
}

// SimulatedOcean generates a day of hourly buoy rows for the requested or
// nearest station.
type SimulatedOcean struct {
	Catalog reference.Catalog
	Now     Clock
}

func (SimulatedOcean) Name() string { return SimulatedName }

// simulatedBuoyHours is the number of generated hourly rows.
const simulatedBuoyHours = 25

func (s SimulatedOcean) Fetch(_ context.Context, q models.LocationQuery) (models.OceanReading, error) {
	station := StationFor(s.Catalog, q)
	r := rngFor("ocean:"+station.ID, q)

	now := s.Now().Truncate(time.Hour)
	baseTemp := 15 + math.Sin(float64(now.Month()-1)/12*2*math.Pi)*5
	waveVariation := r.Float64() * 2

	observations := make([]models.OceanObservation, 0, simulatedBuoyHours)
	for i := simulatedBuoyHours - 1; i >= 0; i-- {
		wind := round1(between(r, 5, 15))
		observations = append(observations, models.OceanObservation{
			Timestamp:      now.Add(-time.Duration(i) * time.Hour),
			WindDirDeg:     ptr(math.Floor(r.Float64() * 360)),
			WindSpeedMS:    ptr(wind),
			WindGustMS:     ptr(round1(wind * 1.3)),
			WaveHeightM:    ptr(round1(1.5 + math.Sin(float64(i)/6)*0.5 + waveVariation)),
			DominantPeriod: ptr(round1(between(r, 8, 12))),
			AveragePeriod:  ptr(round1(between(r, 5, 8))),
			WaveDirDeg:     ptr(math.Floor(r.Float64() * 360)),
			PressureHPa:    ptr(round1(between(r, 1003, 1023))),
			AirTempC:       ptr(round1(baseTemp + between(r, 2, 5))),
			WaterTempC:     ptr(round1(baseTemp + between(r, -1, 1))),
			DewPointC:      ptr(round1(baseTemp - between(r, 1, 4))),
			VisibilityNmi:  ptr(round1(between(r, 8, 12))),
		})
	}
	return models.OceanReading{Station: station, Observations: observations}, nil
}

// SimulatedBiodiversity returns a fixed temperate species sample with
// sightings spread over the last 30 days.
type SimulatedBiodiversity struct {
	Now Clock
}

func (SimulatedBiodiversity) Name() string { return SimulatedName }

var simulatedSpecies = []struct {
	scientific, common, kingdom string
	count                       int
}{
	{"Passer domesticus", "House Sparrow", "Animalia", 42},
	{"Sturnus vulgaris", "European Starling", "Animalia", 38},
	{"Quercus robur", "English Oak", "Plantae", 25},
	{"Columba livia", "Rock Pigeon", "Animalia", 31},
	{"Corvus corax", "Common Raven", "Animalia", 18},
	{"Acer pseudoplatanus", "Sycamore Maple", "Plantae", 22},
	{"Taraxacum officinale", "Common Dandelion", "Plantae", 156},
	{"Sciurus carolinensis", "Eastern Gray Squirrel", "Animalia", 27},
	{"Junco hyemalis", "Dark-eyed Junco", "Animalia", 34},
	{"Turdus migratorius", "American Robin", "Animalia", 29},
}

func (s SimulatedBiodiversity) Fetch(_ context.Context, q models.LocationQuery) (models.BiodiversityReading, error) {
	r := rngFor("biodiversity", q)
	now := s.Now()

	var occurrences []models.Occurrence
	for _, sp := range simulatedSpecies {
		for range sp.count {
			seen := now.Add(-time.Duration(r.Float64() * float64(30*24*time.Hour)))
			occurrences = append(occurrences, models.Occurrence{
				ScientificName: sp.scientific,
				VernacularName: sp.common,
				Kingdom:        sp.kingdom,
				EventDate:      seen.Format(dateLayout),
			})
		}
	}
	return models.BiodiversityReading{
		TotalOccurrences: len(occurrences),
		Occurrences:      occurrences,
	}, nil
}
