package models

// Aggregate holds whichever domain responses are available for a location.
// A nil field is an absent domain.
type Aggregate struct {
	Carbon       *CarbonResponse       `json:"carbon"`
	Climate      *ClimateResponse      `json:"climate"`
	Soil         *SoilResponse         `json:"soil"`
	Forest       *ForestResponse       `json:"forest"`
	Ocean        *OceanResponse        `json:"ocean"`
	Biodiversity *BiodiversityResponse `json:"biodiversity"`
}

// Has reports whether a domain is present.
func (a *Aggregate) Has(d Domain) bool {
	if a == nil {
		return false
	}
	switch d {
	case DomainCarbon:
		return a.Carbon != nil
	case DomainClimate:
		return a.Climate != nil
	case DomainSoil:
		return a.Soil != nil
	case DomainForest:
		return a.Forest != nil
	case DomainOcean:
		return a.Ocean != nil
	case DomainBiodiversity:
		return a.Biodiversity != nil
	}
	return false
}

// Present lists the present domains in display order.
func (a *Aggregate) Present() []Domain {
	var out []Domain
	for _, d := range Domains {
		if a.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// NaturalCapitalTotal sums each present domain's natural capital.
func (a *Aggregate) NaturalCapitalTotal() float64 {
	if a == nil {
		return 0
	}
	var total float64
	if a.Carbon != nil {
		total += a.Carbon.Valuation.NaturalCapital.Total
	}
	if a.Climate != nil {
		total += a.Climate.Valuation.NaturalCapital.Total
	}
	if a.Soil != nil {
		total += a.Soil.Valuation.NaturalCapital.Total
	}
	if a.Forest != nil {
		total += a.Forest.Valuation.NaturalCapital.Total
	}
	if a.Ocean != nil {
		total += a.Ocean.Valuation.NaturalCapital.Total
	}
	if a.Biodiversity != nil {
		total += a.Biodiversity.Valuation.NaturalCapital.Total
	}
	return total
}

// Sources maps each present domain to its source string.
func (a *Aggregate) Sources() map[Domain]string {
	out := make(map[Domain]string)
	if a == nil {
		return out
	}
	if a.Carbon != nil {
		out[DomainCarbon] = a.Carbon.Source
	}
	if a.Climate != nil {
		out[DomainClimate] = a.Climate.Source
	}
	if a.Soil != nil {
		out[DomainSoil] = a.Soil.Source
	}
	if a.Forest != nil {
		out[DomainForest] = a.Forest.Source
	}
	if a.Ocean != nil {
		out[DomainOcean] = a.Ocean.Source
	}
	if a.Biodiversity != nil {
		out[DomainBiodiversity] = a.Biodiversity.Source
	}
	return out
}
