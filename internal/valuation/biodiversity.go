package valuation

// BiodiversityValuation prices species richness and habitat services.
type BiodiversityValuation struct {
	UniqueSpecies  int            `json:"uniqueSpecies"`
	AreaHectares   float64        `json:"areaHectares"`
	AnnualServices Services       `json:"annualServices"`
	NaturalCapital NaturalCapital `json:"naturalCapital"`
	ExtinctionRisk ExtinctionRisk `json:"extinctionRisk"`
	Methodology    string         `json:"methodology"`
}

// ExtinctionRisk is the existence and genetic value carried by at-risk species.
type ExtinctionRisk struct {
	AtRiskSpecies               int     `json:"atRiskSpecies"`
	PotentialLossValue          float64 `json:"potentialLossValue"`
	PotentialLossValueFormatted string  `json:"potentialLossValueFormatted"`
}

// ValueBiodiversity prices an assessment area's biodiversity.
func ValueBiodiversity(uniqueSpecies int, areaHectares float64, atRiskSpecies int) BiodiversityValuation {
	if uniqueSpecies < 0 {
		uniqueSpecies = 0
	}
	if atRiskSpecies < 0 {
		atRiskSpecies = 0
	}
	area := nonNegative(areaHectares)
	species := float64(uniqueSpecies)

	services := newServices(
		service{"existenceValue", species * SpeciesExistenceValue},
		service{"geneticResources", species * GeneticResourcesValue},
		service{"pollination", area * PollinationPerHa},
		service{"pestControl", area * PestControlPerHa},
		service{"seedDispersal", area * SeedDispersalPerHa},
	)

	loss := Round(float64(atRiskSpecies) * (SpeciesExistenceValue + GeneticResourcesValue))

	return BiodiversityValuation{
		UniqueSpecies:  uniqueSpecies,
		AreaHectares:   Round(area),
		AnnualServices: services,
		NaturalCapital: newNaturalCapital(0, services.Total),
		ExtinctionRisk: ExtinctionRisk{
			AtRiskSpecies:               atRiskSpecies,
			PotentialLossValue:          loss,
			PotentialLossValueFormatted: FormatCurrency(loss),
		},
		Methodology: "Per-species existence and genetic value plus per-hectare pollination, pest control and seed dispersal",
	}
}
