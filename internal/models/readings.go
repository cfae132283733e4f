package models

import (
	"strconv"
	"strings"
	"time"

	"gaia-platform/internal/reference"
)

// Pollutants are surface concentrations in µg/m³.
type Pollutants struct {
	PM25 *float64 `json:"pm25"`
	PM10 *float64 `json:"pm10"`
	O3   *float64 `json:"o3"`
	NO2  *float64 `json:"no2"`
	SO2  *float64 `json:"so2"`
	CO   *float64 `json:"co"`
}

// CarbonReading is an hourly CO2 series plus the latest pollutant levels.
type CarbonReading struct {
	CO2Hourly  []float64  `json:"co2Hourly"` // ppm, chronological
	Pollutants Pollutants `json:"pollutants"`
}

// ClimateDay is one day of archived weather.
type ClimateDay struct {
	Date          string   `json:"date"`
	TempMax       *float64 `json:"tempMax"`       // °C
	TempMin       *float64 `json:"tempMin"`       // °C
	Precipitation *float64 `json:"precipitation"` // mm
}

// ClimateReading is a daily archive window.
type ClimateReading struct {
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
	Days      []ClimateDay `json:"days"`
}

// SoilReading holds 0-30 cm topsoil properties in conventional units.
type SoilReading struct {
	Depth            string   `json:"depth"`
	ClayPct          *float64 `json:"clayPct"`
	SandPct          *float64 `json:"sandPct"`
	SiltPct          *float64 `json:"siltPct"`
	OrganicCarbonPct *float64 `json:"organicCarbonPct"`
	PH               *float64 `json:"ph"`
	CEC              *float64 `json:"cec"`      // cmol(c)/kg
	NitrogenGKg      *float64 `json:"nitrogen"` // g/kg
	MoisturePct      *float64 `json:"moisturePct"`
}

// ForestLossYear is tree cover loss for one year.
type ForestLossYear struct {
	Year   int     `json:"year"`
	LossHa float64 `json:"lossHa"`
}

// ForestReading is national forest cover with the recent loss series.
type ForestReading struct {
	Country          string           `json:"country"`
	ISO3             string           `json:"iso3"`
	CoverPercent     float64          `json:"coverPercent"`
	LossRatePercent  float64          `json:"lossRatePercent"`
	GainRatePercent  float64          `json:"gainRatePercent"`
	ProtectedPercent float64          `json:"protectedPercent"`
	LossHistory      []ForestLossYear `json:"lossHistory"`
}

// OceanObservation is one NDBC standard meteorological row.
type OceanObservation struct {
	Timestamp      time.Time `json:"timestamp"`
	WindDirDeg     *float64  `json:"windDirDeg"`
	WindSpeedMS    *float64  `json:"windSpeedMs"`
	WindGustMS     *float64  `json:"windGustMs"`
	WaveHeightM    *float64  `json:"waveHeightM"`
	DominantPeriod *float64  `json:"dominantPeriodS"`
	AveragePeriod  *float64  `json:"averagePeriodS"`
	WaveDirDeg     *float64  `json:"waveDirDeg"`
	PressureHPa    *float64  `json:"pressureHpa"`
	AirTempC       *float64  `json:"airTempC"`
	WaterTempC     *float64  `json:"waterTempC"`
	DewPointC      *float64  `json:"dewPointC"`
	VisibilityNmi  *float64  `json:"visibilityNmi"`
	TideFt         *float64  `json:"tideFt"`
}

// OceanReading is a buoy's recent observations, oldest first.
type OceanReading struct {
	Station      reference.Station  `json:"station"`
	Observations []OceanObservation `json:"observations"`
}

// Latest returns the newest observation, filling each missing field from the
// newest earlier row that reported it.
func (r OceanReading) Latest() (OceanObservation, bool) {
	if len(r.Observations) == 0 {
		return OceanObservation{}, false
	}
	latest := r.Observations[len(r.Observations)-1]
	for i := len(r.Observations) - 2; i >= 0; i-- {
		o := r.Observations[i]
		fill(&latest.WindDirDeg, o.WindDirDeg)
		fill(&latest.WindSpeedMS, o.WindSpeedMS)
		fill(&latest.WindGustMS, o.WindGustMS)
		fill(&latest.WaveHeightM, o.WaveHeightM)
		fill(&latest.DominantPeriod, o.DominantPeriod)
		fill(&latest.AveragePeriod, o.AveragePeriod)
		fill(&latest.WaveDirDeg, o.WaveDirDeg)
		fill(&latest.PressureHPa, o.PressureHPa)
		fill(&latest.AirTempC, o.AirTempC)
		fill(&latest.WaterTempC, o.WaterTempC)
		fill(&latest.DewPointC, o.DewPointC)
		fill(&latest.VisibilityNmi, o.VisibilityNmi)
		fill(&latest.TideFt, o.TideFt)
	}
	return latest, true
}

func fill(dst **float64, src *float64) {
	if *dst == nil && src != nil {
		*dst = src
	}
}

// Occurrence is one species sighting.
type Occurrence struct {
	ScientificName string `json:"scientificName"`
	VernacularName string `json:"vernacularName"`
	Kingdom        string `json:"kingdom"`
	EventDate      string `json:"eventDate"`
}

// BiodiversityReading is an occurrence sample around the location.
type BiodiversityReading struct {
	TotalOccurrences int          `json:"totalOccurrences"`
	Occurrences      []Occurrence `json:"occurrences"`
}

// BuoyColumns is the column count of an NDBC realtime2 standard row.
const BuoyColumns = 19

// RawBuoyRecord is one whitespace-split line of an NDBC realtime2 file:
// YY MM DD hh mm WDIR WSPD GST WVHT DPD APD MWD PRES ATMP WTMP DEWP VIS PTDY TIDE
type RawBuoyRecord struct {
	Fields []string
}

// ToObservation converts the row, mapping NDBC missing markers to nil.
func (r RawBuoyRecord) ToObservation() (*OceanObservation, error) {
	if len(r.Fields) != BuoyColumns {
		return nil, &ValidationError{
			Field:   "row",
			Value:   strings.Join(r.Fields, " "),
			Message: "expected 19 columns",
		}
	}

	ts, err := time.Parse("2006 01 02 15 04", strings.Join(r.Fields[0:5], " "))
	if err != nil {
		return nil, &ValidationError{
			Field:   "timestamp",
			Value:   strings.Join(r.Fields[0:5], " "),
			Message: "invalid timestamp, expected YYYY MM DD hh mm",
		}
	}

	f := r.Fields
	return &OceanObservation{
		Timestamp:      ts.UTC(),
		WindDirDeg:     buoyValue(f[5]),
		WindSpeedMS:    buoyValue(f[6]),
		WindGustMS:     buoyValue(f[7]),
		WaveHeightM:    buoyValue(f[8]),
		DominantPeriod: buoyValue(f[9]),
		AveragePeriod:  buoyValue(f[10]),
		WaveDirDeg:     buoyValue(f[11]),
		PressureHPa:    buoyValue(f[12]),
		AirTempC:       buoyValue(f[13]),
		WaterTempC:     buoyValue(f[14]),
		DewPointC:      buoyValue(f[15]),
		VisibilityNmi:  buoyValue(f[16]),
		TideFt:         buoyValue(f[18]),
	}, nil
}

func buoyValue(s string) *float64 {
	switch s {
	case "MM", "999", "99.0", "99.00":
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
