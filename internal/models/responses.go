package models

import "gaia-platform/internal/valuation"

// SourceSimulated marks a response built from a simulated reading.
const SourceSimulated = "simulated"

// DomainResponse is the payload of one domain route. Live and simulated
// responses share the type, so their JSON key sets never differ.
type DomainResponse[R, M, V any] struct {
	Location    Location `json:"location"`
	Reading     R        `json:"reading"`
	Metrics     M        `json:"metrics"`
	Valuation   V        `json:"valuation"`
	LastUpdated string   `json:"lastUpdated"`
	Source      string   `json:"source"`
}

// Simulated reports whether the reading came from a simulated source.
func (r DomainResponse[R, M, V]) Simulated() bool {
	return r.Source == SourceSimulated
}

type (
	CarbonResponse       = DomainResponse[CarbonReading, CarbonMetrics, valuation.CarbonValuation]
	ClimateResponse      = DomainResponse[ClimateReading, ClimateMetrics, valuation.ClimateValuation]
	SoilResponse         = DomainResponse[SoilReading, SoilMetrics, valuation.SoilValuation]
	ForestResponse       = DomainResponse[ForestReading, ForestMetrics, valuation.ForestValuation]
	OceanResponse        = DomainResponse[OceanReading, OceanMetrics, valuation.OceanValuation]
	BiodiversityResponse = DomainResponse[BiodiversityReading, BiodiversityMetrics, valuation.BiodiversityValuation]
)

// ErrorResponse is the body of every non-200 answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
