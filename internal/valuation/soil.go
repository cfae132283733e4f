package valuation

// SoilInput carries the normalized soil quantities to price.
type SoilInput struct {
	AreaHectares      float64
	HealthScore       float64 // 0-100
	CarbonTonnesPerHa float64
	ErosionRisk       string // low, moderate, high, severe; anything else is unknown
}

// SoilValuation prices soil services, their degradation and restoration upside.
type SoilValuation struct {
	AreaHectares   float64        `json:"areaHectares"`
	HealthScore    float64        `json:"healthScore"`
	AnnualServices Services       `json:"annualServices"`
	CarbonStock    CarbonStock    `json:"carbonStock"`
	NaturalCapital NaturalCapital `json:"naturalCapital"`
	Degradation    Degradation    `json:"degradation"`
	Restoration    Restoration    `json:"restoration"`
	Methodology    string         `json:"methodology"`
}

// Degradation is the yearly service value lost at a 5% annual health decline.
type Degradation struct {
	AnnualCost          float64 `json:"annualCost"`
	AnnualCostFormatted string  `json:"annualCostFormatted"`
}

// Restoration is the service value regained by restoring full health.
type Restoration struct {
	Potential          float64 `json:"potential"`
	PotentialFormatted string  `json:"potentialFormatted"`
}

// ErosionMultiplier returns the erosion-prevention multiplier for a risk tier.
func ErosionMultiplier(tier string) float64 {
	if m, ok := ErosionMultipliers[tier]; ok {
		return m
	}
	return DefaultErosionMultiplier
}

// ValueSoilEcosystem prices soil.
func ValueSoilEcosystem(in SoilInput) SoilValuation {
	area := nonNegative(in.AreaHectares)
	health := clampPercent(in.HealthScore)
	healthMult := health / 100
	erosionMult := ErosionMultiplier(in.ErosionRisk)

	perHa := func(name string) float64 { return area * rateOf(SoilValuesPerHa, name) }

	services := newServices(
		service{"carbonStorage", perHa("carbonStorage") * healthMult},
		service{"nutrientCycling", perHa("nutrientCycling") * healthMult},
		service{"waterFiltration", perHa("waterFiltration") * healthMult},
		service{"erosionPrevention", perHa("erosionPrevention") * erosionMult},
		service{"foodProduction", perHa("foodProduction") * healthMult},
		service{"biodiversitySupport", perHa("biodiversitySupport") * healthMult},
	)

	stock := newCarbonStock(nonNegative(in.CarbonTonnesPerHa) * area)

	optimal := area * sumRates(SoilValuesPerHa)
	degradation := Round(optimal * 0.05)
	restoration := Round(nonNegative(optimal - services.Total))

	return SoilValuation{
		AreaHectares:   Round(area),
		HealthScore:    health,
		AnnualServices: services,
		CarbonStock:    stock,
		NaturalCapital: newNaturalCapital(stock.Value, services.Total),
		Degradation: Degradation{
			AnnualCost:          degradation,
			AnnualCostFormatted: FormatCurrency(degradation),
		},
		Restoration: Restoration{
			Potential:          restoration,
			PotentialFormatted: FormatCurrency(restoration),
		},
		Methodology: "TEEB per-hectare soil services scaled by health score; erosion prevention scaled by erosion tier",
	}
}
