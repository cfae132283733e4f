package valuation

import "math"

// Services is an annual ecosystem-service breakdown. Total is always the
// exact sum of Items: every item is rounded to whole dollars first.
type Services struct {
	Items          map[string]float64 `json:"items"`
	Formatted      map[string]string  `json:"formatted"`
	Total          float64            `json:"total"`
	TotalFormatted string             `json:"totalFormatted"`
}

type service struct {
	name  string
	value float64
}

func newServices(items ...service) Services {
	s := Services{
		Items:     make(map[string]float64, len(items)),
		Formatted: make(map[string]string, len(items)),
	}
	for _, it := range items {
		v := Round(nonNegative(it.value))
		s.Items[it.name] = v
		s.Formatted[it.name] = FormatCurrency(v)
		s.Total += v
	}
	s.TotalFormatted = FormatCurrency(s.Total)
	return s
}

// Sum recomputes the total from Items.
func (s Services) Sum() float64 {
	var total float64
	for _, v := range s.Items {
		total += v
	}
	return total
}

// NaturalCapital is the asset view of a domain: a standing stock plus the
// present value of its annual service flow.
type NaturalCapital struct {
	AnnualTotal          float64 `json:"annualTotal"`
	AnnualTotalFormatted string  `json:"annualTotalFormatted"`
	StockValue           float64 `json:"stockValue"`
	StockValueFormatted  string  `json:"stockValueFormatted"`
	Total                float64 `json:"total"`
	TotalFormatted       string  `json:"totalFormatted"`
}

func newNaturalCapital(stockValue, annualTotal float64) NaturalCapital {
	stockValue = Round(nonNegative(stockValue))
	annualTotal = nonNegative(annualTotal)
	total := Round(stockValue + PresentValue(annualTotal, NPVYears, NPVDiscountRate))
	return NaturalCapital{
		AnnualTotal:          annualTotal,
		AnnualTotalFormatted: FormatCurrency(annualTotal),
		StockValue:           stockValue,
		StockValueFormatted:  FormatCurrency(stockValue),
		Total:                total,
		TotalFormatted:       FormatCurrency(total),
	}
}

// CarbonStock is a standing carbon stock priced at the voluntary market rate.
type CarbonStock struct {
	Tonnes         float64 `json:"tonnes"`
	Value          float64 `json:"value"`
	ValueFormatted string  `json:"valueFormatted"`
}

func newCarbonStock(tonnes float64) CarbonStock {
	tonnes = nonNegative(tonnes)
	value := Round(ValueCarbonStorage(tonnes, VoluntaryMarket))
	return CarbonStock{
		Tonnes:         math.Round(tonnes*10) / 10,
		Value:          value,
		ValueFormatted: FormatCurrency(value),
	}
}

// ValueCarbonStorage prices a carbon stock under one regime.
func ValueCarbonStorage(tonnesCO2 float64, regime CarbonPriceRegime) float64 {
	return nonNegative(tonnesCO2) * CarbonPrices[regime]
}

// ValueCarbonSequestration is the NPV of a yearly sequestration flow at the voluntary price.
func ValueCarbonSequestration(tonnesCO2PerYear float64, years int, discountRate float64) float64 {
	return PresentValue(nonNegative(tonnesCO2PerYear)*CarbonPrices[VoluntaryMarket], years, discountRate)
}

// PresentValue discounts a constant annual amount received at the end of each year.
func PresentValue(annual float64, years int, discountRate float64) float64 {
	var npv float64
	for year := 1; year <= years; year++ {
		npv += annual / math.Pow(1+discountRate, float64(year))
	}
	return npv
}
