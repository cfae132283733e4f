package valuation

// ClimateInput carries the normalized climate scores to price.
type ClimateInput struct {
	AreaHectares       float64
	ResilienceScore    float64 // 0-100
	WaterSecurityScore float64 // 0-100
}

// ClimateValuation prices climate and water regulation for an area.
type ClimateValuation struct {
	AreaHectares   float64        `json:"areaHectares"`
	AnnualServices Services       `json:"annualServices"`
	NaturalCapital NaturalCapital `json:"naturalCapital"`
	AdaptationGap  AdaptationGap  `json:"adaptationGap"`
	Methodology    string         `json:"methodology"`
}

// AdaptationGap is the regulation value forgone below full resilience.
type AdaptationGap struct {
	AnnualCost          float64 `json:"annualCost"`
	AnnualCostFormatted string  `json:"annualCostFormatted"`
}

// ValueClimateRegulation prices an area's climate services.
func ValueClimateRegulation(in ClimateInput) ClimateValuation {
	area := nonNegative(in.AreaHectares)
	resilience := clampPercent(in.ResilienceScore) / 100
	water := clampPercent(in.WaterSecurityScore) / 100

	services := newServices(
		service{"climateRegulation", area * ClimateRegulationPerHa * resilience},
		service{"waterRegulation", area * WaterRegulationPerHa * water},
		service{"waterSupply", area * WaterSupplyPerHa * water},
	)

	optimal := area * (ClimateRegulationPerHa + WaterRegulationPerHa + WaterSupplyPerHa)
	gap := Round(nonNegative(optimal - services.Total))

	return ClimateValuation{
		AreaHectares:   Round(area),
		AnnualServices: services,
		NaturalCapital: newNaturalCapital(0, services.Total),
		AdaptationGap: AdaptationGap{
			AnnualCost:          gap,
			AnnualCostFormatted: FormatCurrency(gap),
		},
		Methodology: "Per-hectare climate and water regulation scaled by resilience and water security scores",
	}
}
