package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gaia-platform/internal/models"
	"gaia-platform/internal/reference"
	"gaia-platform/internal/services"
	"gaia-platform/internal/sources"
	"gaia-platform/pkg/logging"
	"gaia-platform/pkg/metrics"
)

func testAssessment(t *testing.T) *models.Assessment {
	t.Helper()
	now := func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	logger := logging.NewNopLogger()
	collector := metrics.NewCollector("gaia_test", prometheus.NewRegistry())
	catalog := reference.NewStatic()
	resolver := sources.NewCountryResolver(nil, sources.Endpoint{}, 0, catalog, logger)
	composer := services.NewComposer(sources.Set{}, resolver, catalog, now, logger, collector)

	return services.NewAssessmentService(composer, logger, collector).Assess(context.Background(),
		models.LocationQuery{Name: "Salt Spring Island, BC", Lat: 48.8167, Lon: -123.5})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{" xlsx ", FormatXLSX, false},
		{"pdf", FormatPDF, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				var ve *models.ValidationError
				assert.ErrorAs(t, err, &ve)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Filename(t *testing.T) {
	assert.Equal(t, "natural-capital-salt-spring-island-bc.csv", FormatCSV.Filename("Salt Spring Island, BC"))
	assert.Equal(t, "natural-capital-location.pdf", FormatPDF.Filename("!!"))
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
}

func TestTables(t *testing.T) {
	tables := Tables(testAssessment(t))
	require.Len(t, tables, 3)

	assert.Equal(t, "Summary", tables[0].Title)
	assert.Equal(t, []interface{}{"Location", "Salt Spring Island, BC"}, tables[0].Rows[0])

	assert.Len(t, tables[1].Rows, 6)
	assert.Len(t, tables[2].Rows, 6)
	for _, row := range tables[2].Rows {
		assert.Len(t, row, len(tables[2].Columns))
		assert.Equal(t, models.SourceSimulated, row[1])
	}
}

func TestTables_AbsentDomains(t *testing.T) {
	a := &models.Assessment{Index: services.NaturalCapitalIndex(&models.Aggregate{})}
	tables := Tables(a)

	assert.Empty(t, tables[2].Rows)
	for _, row := range tables[1].Rows {
		assert.Equal(t, "—", row[3])
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, testAssessment(t)))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Summary"}, records[0])
	assert.Equal(t, []string{"Metric", "Value"}, records[1])
	assert.Equal(t, []string{"Location", "Salt Spring Island, BC"}, records[2])

	var titles []string
	for _, rec := range records {
		if len(rec) == 1 && rec[0] != "" {
			titles = append(titles, rec[0])
		}
	}
	assert.Equal(t, []string{"Summary", "Index", "Domains"}, titles)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, testAssessment(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Index", "Domains"}, f.GetSheetList())

	v, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Salt Spring Island, BC", v)

	rows, err := f.GetRows("Domains")
	require.NoError(t, err)
	assert.Len(t, rows, 7)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPDF, testAssessment(t)))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}
