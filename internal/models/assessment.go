package models

// IndexComponent is one weighted metric of the Natural Capital Index.
type IndexComponent struct {
	Metric       string   `json:"metric"`
	Domain       Domain   `json:"domain"`
	Weight       float64  `json:"weight"`
	Score        *float64 `json:"score"` // nil when the domain is absent
	Contribution float64  `json:"contribution"`
}

// NaturalCapitalIndex is the weighted 0-100 composite over present domains.
type NaturalCapitalIndex struct {
	Score      float64          `json:"score"`
	Rating     string           `json:"rating"`
	Coverage   float64          `json:"coverage"` // share of total weight present, 0-1
	Components []IndexComponent `json:"components"`
}

// ValueBreakdown is natural capital per domain in USD.
type ValueBreakdown struct {
	Forest       float64 `json:"forest"`
	Soil         float64 `json:"soil"`
	Water        float64 `json:"water"`
	Biodiversity float64 `json:"biodiversity"`
	Carbon       float64 `json:"carbon"`
	Climate      float64 `json:"climate"`
}

// Risks are yearly value at risk in USD.
type Risks struct {
	ClimateChange float64 `json:"climateChange"`
	Degradation   float64 `json:"degradation"`
	Pollution     float64 `json:"pollution"`
}

// Opportunities are yearly value recoverable in USD.
type Opportunities struct {
	Restoration  float64 `json:"restoration"`
	Conservation float64 `json:"conservation"`
}

// NaturalCapitalSummary rolls every present domain into one statement.
type NaturalCapitalSummary struct {
	Location                  string         `json:"location"`
	TotalAnnualValue          float64        `json:"totalAnnualValue"`
	TotalAnnualValueFormatted string         `json:"totalAnnualValueFormatted"`
	TotalAssetValue           float64        `json:"totalAssetValue"`
	TotalAssetValueFormatted  string         `json:"totalAssetValueFormatted"`
	Breakdown                 ValueBreakdown `json:"breakdown"`
	Risks                     Risks          `json:"risks"`
	Opportunities             Opportunities  `json:"opportunities"`
}

// Assessment is the all-domain report for one location.
type Assessment struct {
	Location    Location              `json:"location"`
	Index       NaturalCapitalIndex   `json:"index"`
	Summary     NaturalCapitalSummary `json:"summary"`
	Domains     Aggregate             `json:"domains"`
	Sources     map[Domain]string     `json:"sources"`
	LastUpdated string                `json:"lastUpdated"`
}

// ChatLocation is the location block of a chat request.
type ChatLocation struct {
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
	Name string   `json:"name"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Query             string        `json:"query"`
	Location          *ChatLocation `json:"location"`
	EnvironmentalData *Aggregate    `json:"environmentalData,omitempty"`
}

// Validate checks the required chat fields.
func (r *ChatRequest) Validate() error {
	if r.Query == "" {
		return &ValidationError{Field: "query", Message: "query is required"}
	}
	if r.Location == nil {
		return &ValidationError{Field: "location", Message: "location is required"}
	}
	return nil
}

// ChatResponse is the body returned by POST /api/chat.
type ChatResponse struct {
	Response   string     `json:"response"`
	SourceData *Aggregate `json:"sourceData,omitempty"`
}
