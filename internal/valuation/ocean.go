package valuation

// OceanInput carries the normalized marine quantities to price.
type OceanInput struct {
	AreaKm2    float64
	Coastal    bool
	WaterTempC *float64 // nil when the buoy reported no water temperature
}

// OceanValuation prices marine services and their climate risk.
type OceanValuation struct {
	AreaKm2        float64        `json:"areaKm2"`
	CoastalZone    bool           `json:"coastalZone"`
	AnnualServices Services       `json:"annualServices"`
	NaturalCapital NaturalCapital `json:"naturalCapital"`
	ClimateRisks   ClimateRisks   `json:"climateRisks"`
	Methodology    string         `json:"methodology"`
}

// ClimateRisks are yearly service losses attributed to ocean stressors.
type ClimateRisks struct {
	AcidificationCost              float64 `json:"acidificationCost"`
	AcidificationCostFormatted     string  `json:"acidificationCostFormatted"`
	TemperatureStressCost          float64 `json:"temperatureStressCost"`
	TemperatureStressCostFormatted string  `json:"temperatureStressCostFormatted"`
	PollutionCost                  float64 `json:"pollutionCost"`
	PollutionCostFormatted         string  `json:"pollutionCostFormatted"`
	TotalAnnualRisk                float64 `json:"totalAnnualRisk"`
	TotalAnnualRiskFormatted       string  `json:"totalAnnualRiskFormatted"`
}

// TemperatureStress is the productivity multiplier for a water temperature.
func TemperatureStress(waterTempC *float64) float64 {
	if waterTempC == nil {
		return 1.0
	}
	switch t := *waterTempC; {
	case t > 25:
		return 0.85
	case t < 5:
		return 0.9
	default:
		return 1.0
	}
}

// ValueOceanEcosystem prices an ocean area.
func ValueOceanEcosystem(in OceanInput) OceanValuation {
	area := nonNegative(in.AreaKm2)
	coastalMult := 0.8
	protectionMult := 0.1
	if in.Coastal {
		coastalMult = 1.5
		protectionMult = 1
	}
	stress := TemperatureStress(in.WaterTempC)

	perKm2 := func(name string) float64 { return area * rateOf(OceanValuesPerKm2, name) }

	services := newServices(
		service{"carbonSequestration", perKm2("carbonSequestration") * stress},
		service{"fisheries", perKm2("fisheries") * coastalMult * stress},
		service{"coastalProtection", perKm2("coastalProtection") * protectionMult},
		service{"nutrientCycling", perKm2("nutrientCycling") * stress},
		service{"recreationTourism", perKm2("recreationTourism") * coastalMult},
		service{"biodiversity", perKm2("biodiversity") * stress},
		service{"waterPurification", perKm2("waterPurification") * stress},
	)

	tempRiskShare := 0.0
	if in.WaterTempC != nil && *in.WaterTempC > 22 {
		tempRiskShare = 0.03
	}
	acidification := Round(services.Total * 0.02)
	tempStress := Round(services.Total * tempRiskShare)
	pollution := Round(services.Total * 0.01)
	totalRisk := acidification + tempStress + pollution

	return OceanValuation{
		AreaKm2:        area,
		CoastalZone:    in.Coastal,
		AnnualServices: services,
		NaturalCapital: newNaturalCapital(0, services.Total),
		ClimateRisks: ClimateRisks{
			AcidificationCost:              acidification,
			AcidificationCostFormatted:     FormatCurrency(acidification),
			TemperatureStressCost:          tempStress,
			TemperatureStressCostFormatted: FormatCurrency(tempStress),
			PollutionCost:                  pollution,
			PollutionCostFormatted:         FormatCurrency(pollution),
			TotalAnnualRisk:                totalRisk,
			TotalAnnualRiskFormatted:       FormatCurrency(totalRisk),
		},
		Methodology: "Per-km2 marine service values with coastal and temperature-stress multipliers",
	}
}
