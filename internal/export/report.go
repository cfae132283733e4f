// Package export renders an assessment report as CSV, XLSX or PDF.
package export

import (
	"fmt"
	"io"
	"strings"

	"gaia-platform/internal/models"
	"gaia-platform/internal/valuation"
)

// Format is a report file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts a format name case-insensitively. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", &models.ValidationError{
		Field:   "format",
		Value:   s,
		Message: "format must be one of csv, xlsx, pdf",
	}
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename builds the download name for a location.
func (f Format) Filename(location string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, location)
	slug = strings.Trim(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	if slug == "" {
		slug = "location"
	}
	return fmt.Sprintf("natural-capital-%s.%s", slug, f)
}

// Write renders the assessment in the given format.
func Write(w io.Writer, f Format, a *models.Assessment) error {
	tables := Tables(a)
	switch f {
	case FormatCSV:
		return WriteCSV(w, tables)
	case FormatXLSX:
		return WriteXLSX(w, tables)
	case FormatPDF:
		return WritePDF(w, a.Summary.Location, a.LastUpdated, tables)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// Table is one section of the report. Cells are strings, float64 or int.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]interface{}
}

// Tables lays the assessment out as summary, index and domain sections.
func Tables(a *models.Assessment) []Table {
	s := a.Summary
	summary := Table{
		Title:   "Summary",
		Columns: []string{"Metric", "Value"},
		Rows: [][]interface{}{
			{"Location", s.Location},
			{"Country", a.Location.Country},
			{"Region", a.Location.Region},
			{"Latitude", a.Location.Lat},
			{"Longitude", a.Location.Lon},
			{"Natural Capital Index", a.Index.Score},
			{"Rating", a.Index.Rating},
			{"Coverage", a.Index.Coverage},
			{"Total Annual Value (USD)", s.TotalAnnualValue},
			{"Total Asset Value (USD)", s.TotalAssetValue},
			{"Climate Change Risk (USD/yr)", s.Risks.ClimateChange},
			{"Degradation Risk (USD/yr)", s.Risks.Degradation},
			{"Pollution Risk (USD/yr)", s.Risks.Pollution},
			{"Restoration Opportunity (USD/yr)", s.Opportunities.Restoration},
			{"Conservation Opportunity (USD/yr)", s.Opportunities.Conservation},
			{"Last Updated", a.LastUpdated},
		},
	}

	index := Table{
		Title:   "Index",
		Columns: []string{"Metric", "Domain", "Weight", "Score", "Contribution"},
	}
	for _, c := range a.Index.Components {
		var score interface{} = valuation.Missing
		if c.Score != nil {
			score = *c.Score
		}
		index.Rows = append(index.Rows, []interface{}{c.Metric, string(c.Domain), c.Weight, score, c.Contribution})
	}

	domains := Table{
		Title:   "Domains",
		Columns: []string{"Domain", "Source", "Annual Services (USD)", "Stock Value (USD)", "Natural Capital (USD)", "Natural Capital"},
	}
	for _, d := range models.Domains {
		row, ok := domainRow(&a.Domains, d)
		if ok {
			domains.Rows = append(domains.Rows, row)
		}
	}

	return []Table{summary, index, domains}
}

func domainRow(agg *models.Aggregate, d models.Domain) ([]interface{}, bool) {
	var (
		source string
		annual valuation.Services
		nc     valuation.NaturalCapital
	)
	switch d {
	case models.DomainCarbon:
		if agg.Carbon == nil {
			return nil, false
		}
		source, annual, nc = agg.Carbon.Source, agg.Carbon.Valuation.AnnualServices, agg.Carbon.Valuation.NaturalCapital
	case models.DomainClimate:
		if agg.Climate == nil {
			return nil, false
		}
		source, annual, nc = agg.Climate.Source, agg.Climate.Valuation.AnnualServices, agg.Climate.Valuation.NaturalCapital
	case models.DomainSoil:
		if agg.Soil == nil {
			return nil, false
		}
		source, annual, nc = agg.Soil.Source, agg.Soil.Valuation.AnnualServices, agg.Soil.Valuation.NaturalCapital
	case models.DomainForest:
		if agg.Forest == nil {
			return nil, false
		}
		source, annual, nc = agg.Forest.Source, agg.Forest.Valuation.AnnualServices, agg.Forest.Valuation.NaturalCapital
	case models.DomainOcean:
		if agg.Ocean == nil {
			return nil, false
		}
		source, annual, nc = agg.Ocean.Source, agg.Ocean.Valuation.AnnualServices, agg.Ocean.Valuation.NaturalCapital
	case models.DomainBiodiversity:
		if agg.Biodiversity == nil {
			return nil, false
		}
		source, annual, nc = agg.Biodiversity.Source, agg.Biodiversity.Valuation.AnnualServices, agg.Biodiversity.Valuation.NaturalCapital
	default:
		return nil, false
	}
	return []interface{}{string(d), source, annual.Total, nc.StockValue, nc.Total, nc.TotalFormatted}, true
}
