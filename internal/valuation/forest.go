package valuation

// ForestInput carries the normalized forest quantities to price.
type ForestInput struct {
	AreaHectares       float64
	ForestType         string // tropical, temperate, boreal, mixed
	CarbonStockTonnes  float64
	ProtectedPercent   float64
	AnnualLossHectares float64
	CarbonDensity      float64 // tCO2 per hectare
}

// ForestValuation prices forest ecosystem services and deforestation losses.
type ForestValuation struct {
	AreaHectares      float64           `json:"areaHectares"`
	ForestType        string            `json:"forestType"`
	ProtectedPercent  float64           `json:"protectedPercent"`
	AnnualServices    Services          `json:"annualServices"`
	CarbonStock       CarbonStock       `json:"carbonStock"`
	NaturalCapital    NaturalCapital    `json:"naturalCapital"`
	DeforestationCost DeforestationCost `json:"deforestationCost"`
	Methodology       string            `json:"methodology"`
}

// DeforestationCost is the yearly value lost to forest loss: foregone
// services plus released carbon at the social cost.
type DeforestationCost struct {
	AnnualLossHectares       float64 `json:"annualLossHectares"`
	LostServices             float64 `json:"lostServices"`
	LostServicesFormatted    string  `json:"lostServicesFormatted"`
	CarbonEmissionsTonnes    float64 `json:"carbonEmissionsTonnes"`
	CarbonEmissionsValue     float64 `json:"carbonEmissionsValue"`
	CarbonEmissionsFormatted string  `json:"carbonEmissionsFormatted"`
	AnnualLoss               float64 `json:"annualLoss"`
	AnnualLossFormatted      string  `json:"annualLossFormatted"`
}

// ForestTypeMultiplier returns the biome multiplier, 1.0 for unknown biomes.
func ForestTypeMultiplier(forestType string) float64 {
	if m, ok := ForestTypeMultipliers[forestType]; ok {
		return m
	}
	return 1.0
}

// ValueForestEcosystem prices a forest.
func ValueForestEcosystem(in ForestInput) ForestValuation {
	area := nonNegative(in.AreaHectares)
	protected := clampPercent(in.ProtectedPercent)
	multiplier := ForestTypeMultiplier(in.ForestType)
	protectedBonus := 1 + (protected/100)*0.3

	perHa := func(name string) float64 { return area * rateOf(ForestValuesPerHa, name) * multiplier }

	services := newServices(
		service{"carbonSequestration", perHa("carbonSequestration")},
		service{"waterRegulation", perHa("waterRegulation")},
		service{"waterSupply", perHa("waterSupply")},
		service{"erosionControl", perHa("erosionControl")},
		service{"biodiversityHabitat", perHa("biodiversityHabitat") * protectedBonus},
		service{"recreationTourism", perHa("recreationTourism")},
		service{"timberNontimber", perHa("timberNontimber") * (1 - protected/100)},
		service{"airQuality", perHa("airQuality")},
		service{"climateRegulation", perHa("climateRegulation")},
		service{"pollination", perHa("pollination")},
	)

	stock := newCarbonStock(in.CarbonStockTonnes)

	lossHa := nonNegative(in.AnnualLossHectares)
	lostServices := Round(lossHa * sumRates(ForestValuesPerHa) * multiplier)
	emittedTonnes := lossHa * nonNegative(in.CarbonDensity)
	emissionsValue := Round(ValueCarbonStorage(emittedTonnes, SocialCost))
	annualLoss := lostServices + emissionsValue

	return ForestValuation{
		AreaHectares:     Round(area),
		ForestType:       in.ForestType,
		ProtectedPercent: protected,
		AnnualServices:   services,
		CarbonStock:      stock,
		NaturalCapital:   newNaturalCapital(stock.Value, services.Total),
		DeforestationCost: DeforestationCost{
			AnnualLossHectares:       Round(lossHa),
			LostServices:             lostServices,
			LostServicesFormatted:    FormatCurrency(lostServices),
			CarbonEmissionsTonnes:    Round(emittedTonnes),
			CarbonEmissionsValue:     emissionsValue,
			CarbonEmissionsFormatted: FormatCurrency(emissionsValue),
			AnnualLoss:               annualLoss,
			AnnualLossFormatted:      FormatCurrency(annualLoss),
		},
		Methodology: "TEEB per-hectare benefit transfer with biome multipliers; carbon at voluntary market price, emissions at social cost",
	}
}
