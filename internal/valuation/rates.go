package valuation

// Reference rates in USD. Per-hectare and per-km2 values are annual
// benefit-transfer figures from TEEB global averages.

// CarbonPriceRegime names a $/tCO2 reference price.
type CarbonPriceRegime string

const (
	VoluntaryMarket CarbonPriceRegime = "voluntary_market"
	EUETS           CarbonPriceRegime = "eu_ets"
	SocialCost      CarbonPriceRegime = "social_cost"
	Conservative    CarbonPriceRegime = "conservative"
	PremiumVerified CarbonPriceRegime = "premium_verified"
)

// CarbonPrices per tonne CO2.
var CarbonPrices = map[CarbonPriceRegime]float64{
	VoluntaryMarket: 50,
	EUETS:           80,
	SocialCost:      185,
	Conservative:    30,
	PremiumVerified: 120,
}

const (
	// NPV horizon and discount rate applied to annual service flows.
	NPVYears        = 30
	NPVDiscountRate = 0.03
)

// ForestValuesPerHa per hectare per year.
var ForestValuesPerHa = []Rate{
	{"carbonSequestration", 150},
	{"waterRegulation", 245},
	{"waterSupply", 98},
	{"erosionControl", 86},
	{"biodiversityHabitat", 120},
	{"recreationTourism", 65},
	{"timberNontimber", 180},
	{"airQuality", 45},
	{"climateRegulation", 95},
	{"pollination", 35},
}

// Biome multipliers applied to every forest service.
var ForestTypeMultipliers = map[string]float64{
	"tropical":  1.8,
	"temperate": 1.0,
	"boreal":    0.7,
	"mixed":     1.1,
}

// SoilValuesPerHa per hectare per year.
var SoilValuesPerHa = []Rate{
	{"carbonStorage", 45},
	{"nutrientCycling", 85},
	{"waterFiltration", 120},
	{"erosionPrevention", 65},
	{"foodProduction", 450},
	{"biodiversitySupport", 35},
}

// ErosionMultipliers scale erosion prevention; unknown tiers use DefaultErosionMultiplier.
var ErosionMultipliers = map[string]float64{
	"low":      1.0,
	"moderate": 0.85,
	"high":     0.6,
	"severe":   0.3,
}

const DefaultErosionMultiplier = 0.7

// OceanValuesPerKm2 per square kilometre per year.
var OceanValuesPerKm2 = []Rate{
	{"carbonSequestration", 2500},
	{"fisheries", 15000},
	{"coastalProtection", 8000},
	{"nutrientCycling", 3500},
	{"recreationTourism", 12000},
	{"biodiversity", 4500},
	{"waterPurification", 2000},
}

// Biodiversity rates: per species for existence/genetic value, per hectare otherwise.
const (
	SpeciesExistenceValue = 500
	GeneticResourcesValue = 150
	PollinationPerHa      = 200
	PestControlPerHa      = 85
	SeedDispersalPerHa    = 45
)

// Carbon domain sequestration rates, tCO2 per hectare per year at forest factor 1.
const (
	ForestSequestrationRate = 8
	SoilSequestrationRate   = 1
)

// Climate domain regulation rates per hectare per year, shared with the forest table.
const (
	ClimateRegulationPerHa = 95
	WaterRegulationPerHa   = 245
	WaterSupplyPerHa       = 98
)

// Rate is a named per-unit reference value.
type Rate struct {
	Name  string
	Value float64
}

func rateOf(rates []Rate, name string) float64 {
	for _, r := range rates {
		if r.Name == name {
			return r.Value
		}
	}
	return 0
}

func sumRates(rates []Rate) float64 {
	var total float64
	for _, r := range rates {
		total += r.Value
	}
	return total
}
