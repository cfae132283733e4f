package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gaia-platform/internal/models"
	"gaia-platform/internal/reference"
	"gaia-platform/internal/valuation"
	"gaia-platform/pkg/logging"
)

// notableSpecies is how many species a biodiversity answer lists.
const notableSpecies = 8

// ChatService answers free-text questions with Markdown reports over an
// aggregate of domain responses. The first matching topic wins.
type ChatService struct {
	assessment *AssessmentService
	logger     *logging.StructuredLogger
	printer    *message.Printer
}

// NewChatService creates a chat service. When a request carries no
// environmental data and assessment is non-nil, the aggregate is composed
// for the request location.
func NewChatService(assessment *AssessmentService, logger *logging.StructuredLogger) *ChatService {
	return &ChatService{
		assessment: assessment,
		logger:     logger,
		printer:    message.NewPrinter(language.English),
	}
}

type chatTopic struct {
	name     string
	keywords []string
	render   func(s *ChatService, loc string, agg *models.Aggregate) string
}

var chatTopics = []chatTopic{
	{"natural_capital", []string{"natural capital", "total value", "worth", "how much"}, (*ChatService).naturalCapital},
	{"carbon", []string{"carbon", "co2", "emission", "sequestration"}, (*ChatService).carbon},
	{"biodiversity", []string{"species", "biodiversity", "wildlife", "animals", "plants"}, (*ChatService).biodiversity},
	{"forest", []string{"forest", "tree", "deforestation", "logging"}, (*ChatService).forest},
	{"soil", []string{"soil", "ground", "earth"}, (*ChatService).soil},
	{"ocean", []string{"ocean", "marine", "sea", "coastal", "wave"}, (*ChatService).ocean},
	{"climate", []string{"climate", "weather", "temperature", "forecast"}, (*ChatService).climate},
	{"risk", []string{"risk", "threat", "danger", "vulnerability"}, (*ChatService).risk},
	{"ecosystem", []string{"ecosystem", "service"}, (*ChatService).ecosystem},
}

// Respond answers a validated chat request.
func (s *ChatService) Respond(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	agg := req.EnvironmentalData
	var fetched *models.Aggregate
	if agg == nil && s.assessment != nil && req.Location.Lat != nil && req.Location.Lon != nil {
		q := models.LocationQuery{Name: req.Location.Name, Lat: *req.Location.Lat, Lon: *req.Location.Lon}
		if err := q.Validate(); err != nil {
			return nil, err
		}
		fetched = s.assessment.Aggregate(ctx, q)
		agg = fetched
	}
	if agg == nil {
		agg = &models.Aggregate{}
	}

	topic := MatchTopic(req.Query)
	loc := locationLabel(req.Location)

	s.logger.Debug(ctx, "[CHAT_QUERY] Answering chat query", logging.Fields{
		"topic":           topic,
		"domains_present": len(agg.Present()),
		"fetched":         fetched != nil,
	})

	response := helpListing(loc)
	for _, t := range chatTopics {
		if t.name == topic {
			response = t.render(s, loc, agg)
			break
		}
	}
	return &models.ChatResponse{Response: response, SourceData: fetched}, nil
}

// MatchTopic returns the first topic whose keyword appears in the query, or
// "help".
func MatchTopic(query string) string {
	q := strings.ToLower(query)
	for _, t := range chatTopics {
		for _, kw := range t.keywords {
			if strings.Contains(q, kw) {
				return t.name
			}
		}
	}
	return "help"
}

func locationLabel(loc *models.ChatLocation) string {
	if loc.Name != "" {
		return loc.Name
	}
	if loc.Lat != nil && loc.Lon != nil {
		return fmt.Sprintf("%.4f°, %.4f°", *loc.Lat, *loc.Lon)
	}
	return "Unknown location"
}

func header(title, loc string) *strings.Builder {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n**Location:** %s\n\n", title, loc)
	return &b
}

func num(v *float64, prec int) string {
	if v == nil {
		return valuation.Missing
	}
	return fmt.Sprintf("%.*f", prec, *v)
}

func (s *ChatService) naturalCapital(loc string, agg *models.Aggregate) string {
	b := header("Natural Capital Assessment", loc)

	total := agg.NaturalCapitalTotal()
	if total <= 0 {
		b.WriteString("Natural capital data is being calculated. Please check the data panel for live updates.")
		return b.String()
	}

	fmt.Fprintf(b, "### Total Natural Capital Value\n**%s** (%d-year NPV at %.0f%%)\n\n",
		valuation.FormatCurrency(total), valuation.NPVYears, valuation.NPVDiscountRate*100)
	b.WriteString("### Breakdown by Category\n")
	if f := agg.Forest; f != nil {
		fmt.Fprintf(b, "- **Forest Capital:** %s\n", f.Valuation.NaturalCapital.TotalFormatted)
	}
	if so := agg.Soil; so != nil {
		fmt.Fprintf(b, "- **Soil Capital:** %s\n", so.Valuation.NaturalCapital.TotalFormatted)
	}
	if bio := agg.Biodiversity; bio != nil {
		fmt.Fprintf(b, "- **Biodiversity Services:** %s/year\n", bio.Valuation.AnnualServices.TotalFormatted)
	}
	if o := agg.Ocean; o != nil {
		fmt.Fprintf(b, "- **Marine Services:** %s/year\n", o.Valuation.AnnualServices.TotalFormatted)
	}
	if c := agg.Carbon; c != nil {
		fmt.Fprintf(b, "- **Carbon Capital:** %s\n", c.Valuation.NaturalCapital.TotalFormatted)
	}
	if c := agg.Climate; c != nil {
		fmt.Fprintf(b, "- **Climate Regulation:** %s/year\n", c.Valuation.AnnualServices.TotalFormatted)
	}
	b.WriteString("\n*Methodology: TEEB + Natural Capital Protocol*")
	return b.String()
}

func (s *ChatService) carbon(loc string, agg *models.Aggregate) string {
	b := header("Carbon Analysis", loc)

	c := agg.Carbon
	if c == nil {
		b.WriteString("Carbon data is being loaded for this location.")
		return b.String()
	}

	m := c.Metrics
	b.WriteString("### Atmospheric Data\n")
	fmt.Fprintf(b, "- **Current CO₂:** %.1f ppm (%s)\n", m.Atmosphere.CO2PPM, m.Atmosphere.CO2Source)
	fmt.Fprintf(b, "- **Methane (CH₄):** %s ppb\n", s.printer.Sprintf("%.0f", m.Atmosphere.CH4PPB))
	fmt.Fprintf(b, "- **Air Quality:** %s (AQI %s)\n\n", m.AirQuality.Level, num(m.AirQuality.AQI, 0))

	b.WriteString("### Regional Emissions\n")
	fmt.Fprintf(b, "- **Per Capita:** %.1f tonnes CO₂/year\n", m.Emissions.PerCapita)
	fmt.Fprintf(b, "- **Trend:** %s\n\n", m.Emissions.Trend)

	v := c.Valuation
	b.WriteString("### Carbon Economics\n")
	fmt.Fprintf(b, "- **Sequestration Value:** %s/year\n", v.AnnualServices.TotalFormatted)
	fmt.Fprintf(b, "- **Social Cost of Emissions:** %s/year\n", v.EmissionsCost.SocialCostFormatted)
	fmt.Fprintf(b, "- **Net Position:** %s\n", v.NetPosition.Status)
	return b.String()
}

func (s *ChatService) biodiversity(loc string, agg *models.Aggregate) string {
	b := header("Biodiversity Report", loc)

	bio := agg.Biodiversity
	if bio == nil {
		b.WriteString("Biodiversity data is being loaded from GBIF.")
		return b.String()
	}

	m := bio.Metrics
	b.WriteString("### Summary\n")
	fmt.Fprintf(b, "- **Unique Species:** %d\n", m.UniqueSpecies)
	fmt.Fprintf(b, "- **Total Observations:** %s\n", s.printer.Sprintf("%d", m.TotalOccurrences))
	fmt.Fprintf(b, "- **Data Source:** %s\n\n", bio.Source)

	if len(m.Species) > 0 {
		b.WriteString("### Notable Species\n")
		for i, sp := range m.Species {
			if i == notableSpecies {
				break
			}
			common := ""
			if sp.CommonName != "" {
				common = " (" + sp.CommonName + ")"
			}
			fmt.Fprintf(b, "- *%s*%s - %s observations\n", sp.ScientificName, common, s.printer.Sprintf("%d", sp.Count))
		}
	}

	v := bio.Valuation
	b.WriteString("\n### Ecosystem Service Value\n")
	fmt.Fprintf(b, "- **Annual Services:** %s/year\n", v.AnnualServices.TotalFormatted)
	fmt.Fprintf(b, "- **At-Risk Species:** %d\n", v.ExtinctionRisk.AtRiskSpecies)
	fmt.Fprintf(b, "- **Potential Loss if Degraded:** %s\n", v.ExtinctionRisk.PotentialLossValueFormatted)
	return b.String()
}

func (s *ChatService) forest(loc string, agg *models.Aggregate) string {
	b := header("Forest Analysis", loc)

	f := agg.Forest
	if f == nil {
		b.WriteString("Forest data is being loaded for this location.")
		return b.String()
	}

	m := f.Metrics
	b.WriteString("### Current Status\n")
	fmt.Fprintf(b, "- **Forest Cover:** %.1f%%\n", m.CoverPercent)
	fmt.Fprintf(b, "- **Forest Area:** %s ha\n", s.printer.Sprintf("%.0f", m.ForestAreaHa))
	fmt.Fprintf(b, "- **Biome:** %s\n", m.Biome)
	fmt.Fprintf(b, "- **Health:** %s\n\n", m.HealthRating)

	b.WriteString("### Deforestation\n")
	fmt.Fprintf(b, "- **Annual Loss:** %s ha/year\n", s.printer.Sprintf("%.0f", m.AnnualLossHa))
	fmt.Fprintf(b, "- **Loss Rate:** %.2f%%/year\n", m.LossRatePercent)
	fmt.Fprintf(b, "- **Trend:** %s\n\n", m.Trend)

	v := f.Valuation
	b.WriteString("### Natural Capital Value\n")
	fmt.Fprintf(b, "- **Total Forest Capital:** %s\n", v.NaturalCapital.TotalFormatted)
	fmt.Fprintf(b, "- **Annual Ecosystem Services:** %s/year\n", v.AnnualServices.TotalFormatted)
	fmt.Fprintf(b, "- **Cost of Deforestation:** %s/year\n", v.DeforestationCost.AnnualLossFormatted)
	return b.String()
}

func (s *ChatService) soil(loc string, agg *models.Aggregate) string {
	b := header("Soil Analysis", loc)

	so := agg.Soil
	if so == nil {
		b.WriteString("Soil data is being loaded from SoilGrids.")
		return b.String()
	}

	m := so.Metrics
	b.WriteString("### Soil Health\n")
	fmt.Fprintf(b, "- **Health Score:** %.0f/100 (%s)\n", m.HealthScore, m.Rating)
	fmt.Fprintf(b, "- **Carbon Content:** %s tonnes/hectare\n", num(m.CarbonContent, 1))
	fmt.Fprintf(b, "- **pH Level:** %s (%s)\n\n", num(so.Reading.PH, 1), m.PHDescription)

	b.WriteString("### Classification\n")
	fmt.Fprintf(b, "- **Texture:** %s\n", m.Texture)
	fmt.Fprintf(b, "- **Drainage:** %s\n", m.Drainage)
	fmt.Fprintf(b, "- **Erosion Risk:** %s\n\n", m.ErosionRisk)

	v := so.Valuation
	b.WriteString("### Carbon Stock Value\n")
	fmt.Fprintf(b, "- **Total Value:** %s\n", v.CarbonStock.ValueFormatted)
	fmt.Fprintf(b, "- **Annual Services:** %s/year\n", v.AnnualServices.TotalFormatted)
	fmt.Fprintf(b, "- **Restoration Potential:** +%s\n", v.Restoration.PotentialFormatted)
	return b.String()
}

func (s *ChatService) ocean(loc string, agg *models.Aggregate) string {
	b := header("Marine Conditions", loc)

	o := agg.Ocean
	if o == nil {
		b.WriteString("Ocean data is being loaded from NOAA buoys.")
		return b.String()
	}

	m := o.Metrics
	b.WriteString("### Current Conditions\n")
	fmt.Fprintf(b, "- **Station:** %s (%s, %.0f km away)\n", m.Station.Name, m.Station.ID, m.DistanceKm)
	fmt.Fprintf(b, "- **Sea Temperature:** %s°C\n", num(m.WaterTempC, 1))
	fmt.Fprintf(b, "- **Wave Height:** %s m\n", num(m.WaveHeightM, 1))
	fmt.Fprintf(b, "- **Sea State:** %s\n", m.SeaState)
	fmt.Fprintf(b, "- **Wind:** %s (Beaufort %d)\n\n", m.Beaufort.Description, m.Beaufort.Force)

	v := o.Valuation
	b.WriteString("### Marine Ecosystem Value\n")
	fmt.Fprintf(b, "- **Annual Services:** %s/year\n", v.AnnualServices.TotalFormatted)
	fmt.Fprintf(b, "- **Climate Risks:** %s/year\n", v.ClimateRisks.TotalAnnualRiskFormatted)
	return b.String()
}

func (s *ChatService) climate(loc string, agg *models.Aggregate) string {
	b := header("Climate & Weather", loc)

	if c := agg.Climate; c != nil {
		m := c.Metrics
		fmt.Fprintf(b, "### Past Year (%s to %s)\n", c.Reading.StartDate, c.Reading.EndDate)
		fmt.Fprintf(b, "- **Average High:** %s°C\n", num(m.AvgTempMax, 1))
		fmt.Fprintf(b, "- **Average Low:** %s°C\n", num(m.AvgTempMin, 1))
		fmt.Fprintf(b, "- **Total Precipitation:** %s mm\n", s.printer.Sprintf("%.0f", m.TotalPrecipitation))
		fmt.Fprintf(b, "- **Hot Days / Frost Days:** %d / %d\n", m.HotDays, m.FrostDays)
		fmt.Fprintf(b, "- **Resilience Score:** %.0f/100\n", m.ResilienceScore)
	} else {
		b.WriteString("Climate data is being loaded for this location.\n")
	}

	if c := agg.Carbon; c != nil {
		co2 := c.Metrics.Atmosphere.CO2PPM
		b.WriteString("\n### Climate Context\n")
		fmt.Fprintf(b, "- **Atmospheric CO₂:** %.1f ppm\n", co2)
		fmt.Fprintf(b, "- **Pre-industrial CO₂:** %.0f ppm\n", reference.PreIndustrialCO2PPM)
		fmt.Fprintf(b, "- **Change:** +%.0f ppm (+%.0f%%)\n",
			co2-reference.PreIndustrialCO2PPM, (co2/reference.PreIndustrialCO2PPM-1)*100)
	}
	return b.String()
}

func (s *ChatService) risk(loc string, agg *models.Aggregate) string {
	b := header("Risk Assessment", loc)
	b.WriteString("### Environmental Risks\n")

	if f := agg.Forest; f != nil {
		level := "LOW"
		switch f.Metrics.Trend {
		case "accelerating":
			level = "HIGH"
		case "stable":
			level = "MODERATE"
		}
		fmt.Fprintf(b, "- **Deforestation Risk:** %s\n", level)
	}
	if o := agg.Ocean; o != nil {
		fmt.Fprintf(b, "- **Coastal Climate Risk:** %s/year\n", o.Valuation.ClimateRisks.TotalAnnualRiskFormatted)
	}
	if bio := agg.Biodiversity; bio != nil {
		fmt.Fprintf(b, "- **Species at Risk:** %d\n", bio.Valuation.ExtinctionRisk.AtRiskSpecies)
		fmt.Fprintf(b, "- **Potential Value Loss:** %s\n", bio.Valuation.ExtinctionRisk.PotentialLossValueFormatted)
	}
	if c := agg.Carbon; c != nil {
		fmt.Fprintf(b, "- **Emissions Social Cost:** %s/year\n", c.Valuation.EmissionsCost.SocialCostFormatted)
	}

	b.WriteString("\n*Risk valuations based on current environmental trends and TEEB methodology.*")
	return b.String()
}

func (s *ChatService) ecosystem(loc string, agg *models.Aggregate) string {
	b := header("Ecosystem Services", loc)

	b.WriteString("### Provisioning Services\n")
	b.WriteString("- Food and freshwater production\n")
	b.WriteString("- Raw materials and genetic resources\n\n")

	b.WriteString("### Regulating Services\n")
	b.WriteString("- Carbon sequestration and storage\n")
	b.WriteString("- Water purification and regulation\n")
	b.WriteString("- Climate regulation and air quality\n")
	b.WriteString("- Pollination and pest control\n\n")

	b.WriteString("### Cultural Services\n")
	b.WriteString("- Recreation and ecotourism\n")
	b.WriteString("- Aesthetic and spiritual values\n")
	b.WriteString("- Education and research\n\n")

	b.WriteString("### Supporting Services\n")
	b.WriteString("- Nutrient cycling\n")
	b.WriteString("- Soil formation\n")
	b.WriteString("- Habitat provision\n\n")

	if total := agg.NaturalCapitalTotal(); total > 0 {
		fmt.Fprintf(b, "**Total Valued Services:** %s (%d-year NPV)", valuation.FormatCurrency(total), valuation.NPVYears)
	}
	return b.String()
}

func helpListing(loc string) string {
	b := header("GAIA AI - Environmental Intelligence", loc)
	b.WriteString("I can provide detailed analysis on:\n\n")
	b.WriteString("- **Natural Capital** - Total ecosystem value and breakdown\n")
	b.WriteString("- **Carbon** - Emissions, sequestration, and carbon economics\n")
	b.WriteString("- **Biodiversity** - Species data, observations, and conservation value\n")
	b.WriteString("- **Forest** - Cover, deforestation trends, and forest capital\n")
	b.WriteString("- **Soil** - Health, carbon storage, and agricultural potential\n")
	b.WriteString("- **Ocean** - Marine conditions and coastal ecosystem services\n")
	b.WriteString("- **Climate** - Weather data and climate context\n")
	b.WriteString("- **Risks** - Environmental threats and vulnerability assessment\n\n")
	b.WriteString(`Try asking: "What is the natural capital value?" or "Show me the biodiversity data"`)
	return b.String()
}
