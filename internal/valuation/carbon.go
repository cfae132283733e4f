package valuation

// CarbonInput carries the normalized carbon-balance quantities to price.
type CarbonInput struct {
	AreaHectares        float64
	ForestCarbonPerHa   float64 // tCO2 per hectare held in vegetation
	SoilCarbonPerHa     float64 // tCO2 per hectare held in soil
	ForestFactor        float64 // 0-1 share of land acting as forest sink
	PerCapitaEmissions  float64 // tCO2 per person per year
	NetBalancePerCapita float64 // tCO2 per person per year, negative is a sink
}

// CarbonValuation prices stored carbon, yearly uptake and per-capita emissions.
type CarbonValuation struct {
	AreaHectares   float64        `json:"areaHectares"`
	CarbonStock    CarbonStock    `json:"carbonStock"`
	PriceRegimes   PriceRegimes   `json:"priceRegimes"`
	AnnualServices Services       `json:"annualServices"`
	NaturalCapital NaturalCapital `json:"naturalCapital"`
	EmissionsCost  EmissionsCost  `json:"emissionsCost"`
	NetPosition    NetPosition    `json:"netPosition"`
	Methodology    string         `json:"methodology"`
}

// PriceRegimes values the same carbon stock under each reference price.
type PriceRegimes struct {
	VoluntaryMarket          float64 `json:"voluntaryMarket"`
	VoluntaryMarketFormatted string  `json:"voluntaryMarketFormatted"`
	EUETS                    float64 `json:"euEts"`
	EUETSFormatted           string  `json:"euEtsFormatted"`
	SocialCost               float64 `json:"socialCost"`
	SocialCostFormatted      string  `json:"socialCostFormatted"`
}

// EmissionsCost is the yearly cost of one resident's emissions.
type EmissionsCost struct {
	PerCapitaTonnes     float64 `json:"perCapitaTonnes"`
	MarketCost          float64 `json:"marketCost"`
	MarketCostFormatted string  `json:"marketCostFormatted"`
	SocialCost          float64 `json:"socialCost"`
	SocialCostFormatted string  `json:"socialCostFormatted"`
}

// NetPosition prices the per-capita net balance at the social cost of carbon.
type NetPosition struct {
	TonnesPerCapita float64 `json:"tonnesPerCapita"`
	Status          string  `json:"status"`
	Value           float64 `json:"value"`
	ValueFormatted  string  `json:"valueFormatted"`
}

// Net balance labels.
const (
	CarbonSink   = "Carbon sink"
	CarbonSource = "Carbon source"
)

// ValueCarbonBalance prices a location's carbon stock and flows.
func ValueCarbonBalance(in CarbonInput) CarbonValuation {
	area := nonNegative(in.AreaHectares)
	factor := nonNegative(in.ForestFactor)
	if factor > 1 {
		factor = 1
	}

	stockTonnes := area * (nonNegative(in.ForestCarbonPerHa) + nonNegative(in.SoilCarbonPerHa))
	stock := newCarbonStock(stockTonnes)
	regimes := newPriceRegimes(stockTonnes)

	price := CarbonPrices[VoluntaryMarket]
	services := newServices(
		service{"forestSequestration", area * factor * ForestSequestrationRate * price},
		service{"soilSequestration", area * factor * SoilSequestrationRate * price},
	)

	perCapita := nonNegative(in.PerCapitaEmissions)
	marketCost := Round(ValueCarbonStorage(perCapita, VoluntaryMarket))
	socialCost := Round(ValueCarbonStorage(perCapita, SocialCost))

	net := in.NetBalancePerCapita
	status := CarbonSource
	if net < 0 {
		status = CarbonSink
		net = -net
	}
	netValue := Round(ValueCarbonStorage(net, SocialCost))

	return CarbonValuation{
		AreaHectares:   Round(area),
		CarbonStock:    stock,
		PriceRegimes:   regimes,
		AnnualServices: services,
		NaturalCapital: newNaturalCapital(stock.Value, services.Total),
		EmissionsCost: EmissionsCost{
			PerCapitaTonnes:     perCapita,
			MarketCost:          marketCost,
			MarketCostFormatted: FormatCurrency(marketCost),
			SocialCost:          socialCost,
			SocialCostFormatted: FormatCurrency(socialCost),
		},
		NetPosition: NetPosition{
			TonnesPerCapita: nonNegativeOrSigned(in.NetBalancePerCapita),
			Status:          status,
			Value:           netValue,
			ValueFormatted:  FormatCurrency(netValue),
		},
		Methodology: "Stock at voluntary, EU ETS and social cost prices; sequestration at voluntary price; emissions at market and social cost",
	}
}

func newPriceRegimes(tonnes float64) PriceRegimes {
	voluntary := Round(ValueCarbonStorage(tonnes, VoluntaryMarket))
	ets := Round(ValueCarbonStorage(tonnes, EUETS))
	social := Round(ValueCarbonStorage(tonnes, SocialCost))
	return PriceRegimes{
		VoluntaryMarket:          voluntary,
		VoluntaryMarketFormatted: FormatCurrency(voluntary),
		EUETS:                    ets,
		EUETSFormatted:           FormatCurrency(ets),
		SocialCost:               social,
		SocialCostFormatted:      FormatCurrency(social),
	}
}

// nonNegativeOrSigned keeps a signed balance but drops NaN and Inf.
func nonNegativeOrSigned(v float64) float64 {
	if v < 0 {
		return -nonNegative(-v)
	}
	return nonNegative(v)
}
