package models

import "gaia-platform/internal/reference"

// Atmosphere compares local CO2 with the global and pre-industrial baselines.
type Atmosphere struct {
	CO2PPM               float64 `json:"co2ppm"`
	CO2Source            string  `json:"co2Source"` // station or baseline
	CH4PPB               float64 `json:"ch4ppb"`
	GlobalAvgCO2         float64 `json:"globalAvgCO2"`
	PreIndustrialCO2     float64 `json:"preIndustrialCO2"`
	AboveBaselinePercent float64 `json:"aboveBaselinePercent"`
}

// EmissionsProfile is the per-capita greenhouse gas profile.
type EmissionsProfile struct {
	PerCapita     float64 `json:"perCapita"` // tCO2 per person per year
	Methane       float64 `json:"methane"`
	TotalGHG      float64 `json:"totalGHG"`
	Trend         string  `json:"trend"`
	ChangePercent float64 `json:"changePercent"`
	Rating        string  `json:"rating"`
	FromTable     bool    `json:"fromTable"`
}

// Sequestration holds per-hectare carbon stores and the net balance.
type Sequestration struct {
	ForestFactor float64 `json:"forestFactor"`
	ForestCarbon float64 `json:"forestCarbon"`
	SoilCarbon   float64 `json:"soilCarbon"`
	OceanCarbon  float64 `json:"oceanCarbon"`
	NetBalance   float64 `json:"netBalance"`
	Status       string  `json:"status"`
}

// PollutantRatios are concentrations divided by their WHO guideline.
type PollutantRatios struct {
	PM25 *float64 `json:"pm25"`
	PM10 *float64 `json:"pm10"`
	O3   *float64 `json:"o3"`
	NO2  *float64 `json:"no2"`
	SO2  *float64 `json:"so2"`
	CO   *float64 `json:"co"`
}

// AirQuality is the pollutant block of the carbon domain.
type AirQuality struct {
	AQI         *float64            `json:"aqi"` // US EPA, from PM2.5
	Level       string              `json:"level"`
	WHOLimits   reference.WHOLimits `json:"whoLimits"`
	WHORatios   PollutantRatios     `json:"whoRatios"`
	Exceedances []string            `json:"exceedances"`
}

// CarbonHistoryPoint is one year of the trend series.
type CarbonHistoryPoint struct {
	Year      int     `json:"year"`
	CO2       float64 `json:"co2"`
	Emissions float64 `json:"emissions"`
}

// CarbonMetrics is the normalized carbon domain.
type CarbonMetrics struct {
	Atmosphere    Atmosphere           `json:"atmosphere"`
	Emissions     EmissionsProfile     `json:"emissions"`
	Sequestration Sequestration        `json:"sequestration"`
	AirQuality    AirQuality           `json:"airQuality"`
	History       []CarbonHistoryPoint `json:"history"`
	CaptureScore  float64              `json:"captureScore"`
}

// ClimateMetrics summarizes a daily archive window.
type ClimateMetrics struct {
	AvgTempMax         *float64 `json:"avgTempMax"`
	AvgTempMin         *float64 `json:"avgTempMin"`
	TotalPrecipitation float64  `json:"totalPrecipitation"`
	HotDays            int      `json:"hotDays"`
	FrostDays          int      `json:"frostDays"`
	LongestDrySpell    int      `json:"longestDrySpell"`
	DataPoints         int      `json:"dataPoints"`
	ResilienceScore    float64  `json:"resilienceScore"`
	WaterSecurityScore float64  `json:"waterSecurityScore"`
}

// SoilMoisture bands current moisture against field capacity.
type SoilMoisture struct {
	Current       *float64 `json:"current"`
	FieldCapacity float64  `json:"fieldCapacity"`
	WiltingPoint  float64  `json:"wiltingPoint"`
	Status        string   `json:"status"`
}

// SoilMetrics is the normalized soil domain.
type SoilMetrics struct {
	Texture       string       `json:"texture"`
	Drainage      string       `json:"drainage"`
	PHDescription string       `json:"phDescription"`
	HealthScore   float64      `json:"healthScore"`
	Rating        string       `json:"rating"`
	CarbonContent *float64     `json:"carbonContent"` // t/ha, 0-30 cm
	Biodiversity  string       `json:"biodiversity"`
	ErosionRisk   string       `json:"erosionRisk"`
	Moisture      SoilMoisture `json:"moisture"`
}

// ForestMetrics is the normalized forest domain over the assessment area.
type ForestMetrics struct {
	Biome             string  `json:"biome"`
	CarbonDensity     float64 `json:"carbonDensity"` // t/ha
	BiodiversityIndex float64 `json:"biodiversityIndex"`
	AssessmentAreaHa  float64 `json:"assessmentAreaHa"`
	ForestAreaHa      float64 `json:"forestAreaHa"`
	CoverPercent      float64 `json:"coverPercent"`
	AnnualLossHa      float64 `json:"annualLossHa"`
	AnnualGainHa      float64 `json:"annualGainHa"`
	NetChangeHa       float64 `json:"netChangeHa"`
	LossRatePercent   float64 `json:"lossRatePercent"`
	Trend             string  `json:"trend"`
	HealthRating      string  `json:"healthRating"`
	Score             float64 `json:"score"`
	CarbonStockTonnes float64 `json:"carbonStockTonnes"`
}

// Beaufort is a wind force classification.
type Beaufort struct {
	Force       int    `json:"force"`
	Description string `json:"description"`
}

// OceanMetrics is the normalized marine domain.
type OceanMetrics struct {
	Station     reference.Station `json:"station"`
	DistanceKm  float64           `json:"distanceKm"`
	Coastal     bool              `json:"coastal"`
	AreaKm2     float64           `json:"areaKm2"`
	SeaState    string            `json:"seaState"`
	Beaufort    Beaufort          `json:"beaufort"`
	WindKnots   *float64          `json:"windKnots"`
	WindCompass string            `json:"windCompass"`
	WaveHeightM *float64          `json:"waveHeightM"`
	WaterTempC  *float64          `json:"waterTempC"`
	MarineScore float64           `json:"marineScore"`
}

// SpeciesCount aggregates occurrences of one species.
type SpeciesCount struct {
	ScientificName string `json:"scientificName"`
	CommonName     string `json:"commonName"`
	Kingdom        string `json:"kingdom"`
	Count          int    `json:"count"`
	LastSeen       string `json:"lastSeen"`
}

// BiodiversityMetrics is the normalized biodiversity domain.
type BiodiversityMetrics struct {
	TotalOccurrences int            `json:"totalOccurrences"`
	SampledRecords   int            `json:"sampledRecords"`
	UniqueSpecies    int            `json:"uniqueSpecies"`
	Species          []SpeciesCount `json:"species"`
	Kingdoms         map[string]int `json:"kingdoms"`
	ShannonIndex     float64        `json:"shannonIndex"`
	DiversityScore   float64        `json:"diversityScore"`
	AtRiskSpecies    int            `json:"atRiskSpecies"`
	AreaHectares     float64        `json:"areaHectares"`
}
