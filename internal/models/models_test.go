package models

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawBuoyRecord_ToObservation(t *testing.T) {
	tests := []struct {
		name        string
		fields      string
		wantErr     bool
		checkValues func(*testing.T, *OceanObservation)
	}{
		{
			name:   "complete row",
			fields: "2024 05 01 12 30 270 5.1 7.2 1.4 10 6.1 280 1016.2 11.8 10.9 8.1 MM +0.3 MM",
			checkValues: func(t *testing.T, obs *OceanObservation) {
				want := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
				if !obs.Timestamp.Equal(want) {
					t.Errorf("Timestamp = %v, want %v", obs.Timestamp, want)
				}
				if obs.WaveHeightM == nil || *obs.WaveHeightM != 1.4 {
					t.Errorf("WaveHeightM = %v, want 1.4", obs.WaveHeightM)
				}
				if obs.WaterTempC == nil || *obs.WaterTempC != 10.9 {
					t.Errorf("WaterTempC = %v, want 10.9", obs.WaterTempC)
				}
				if obs.VisibilityNmi != nil {
					t.Error("VisibilityNmi should be nil for MM")
				}
				if obs.TideFt != nil {
					t.Error("TideFt should be nil for MM")
				}
			},
		},
		{
			name:   "sentinel values",
			fields: "2024 05 01 12 30 999 99.0 99.00 MM 99.00 MM 999 MM MM MM MM MM MM MM",
			checkValues: func(t *testing.T, obs *OceanObservation) {
				if obs.WindDirDeg != nil || obs.WindSpeedMS != nil || obs.WindGustMS != nil {
					t.Error("wind fields should be nil for sentinels")
				}
				if obs.WaveHeightM != nil || obs.DominantPeriod != nil || obs.WaveDirDeg != nil {
					t.Error("wave fields should be nil for sentinels")
				}
			},
		},
		{
			name:    "short row",
			fields:  "2024 05 01 12 30 270 5.1",
			wantErr: true,
		},
		{
			name:    "bad timestamp",
			fields:  "2024 13 01 12 30 270 5.1 7.2 1.4 10 6.1 280 1016.2 11.8 10.9 8.1 MM +0.3 MM",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := RawBuoyRecord{Fields: strings.Fields(tt.fields)}
			obs, err := rec.ToObservation()

			if (err != nil) != tt.wantErr {
				t.Errorf("ToObservation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.checkValues != nil {
				tt.checkValues(t, obs)
			}
		})
	}
}

func TestLocationQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       LocationQuery
		wantErr string
	}{
		{"default location", LocationQuery{Lat: 48.8167, Lon: -123.5}, ""},
		{"poles and antimeridian", LocationQuery{Lat: -90, Lon: 180}, ""},
		{"lat out of range", LocationQuery{Lat: 91, Lon: 0}, "lat"},
		{"lon out of range", LocationQuery{Lat: 0, Lon: -181}, "lon"},
		{"NaN lat", LocationQuery{Lat: math.NaN(), Lon: 0}, "lat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantErr, ve.Field)
			assert.False(t, ve.IsTransient())
		})
	}
}

func TestOceanReading_Latest(t *testing.T) {
	v := func(x float64) *float64 { return &x }
	at := func(min int) time.Time { return time.Date(2025, 6, 15, 11, min, 0, 0, time.UTC) }

	tests := []struct {
		name        string
		rows        []OceanObservation
		wantOK      bool
		checkValues func(*testing.T, OceanObservation)
	}{
		{
			name: "no rows",
		},
		{
			name:   "newest row complete",
			rows:   []OceanObservation{{Timestamp: at(40), WaveHeightM: v(0.9)}, {Timestamp: at(50), WaveHeightM: v(1.1)}},
			wantOK: true,
			checkValues: func(t *testing.T, o OceanObservation) {
				assert.Equal(t, 1.1, *o.WaveHeightM)
			},
		},
		{
			name: "trailing row all missing",
			rows: []OceanObservation{
				{Timestamp: at(30), WaveHeightM: v(2.6), WindSpeedMS: v(3)},
				{Timestamp: at(40), WaveHeightM: v(1.8), WaterTempC: v(12.4)},
				{Timestamp: at(50)},
			},
			wantOK: true,
			checkValues: func(t *testing.T, o OceanObservation) {
				assert.Equal(t, at(50), o.Timestamp)
				require.NotNil(t, o.WaveHeightM)
				assert.Equal(t, 1.8, *o.WaveHeightM)
				require.NotNil(t, o.WaterTempC)
				assert.Equal(t, 12.4, *o.WaterTempC)
				require.NotNil(t, o.WindSpeedMS)
				assert.Equal(t, 3.0, *o.WindSpeedMS)
				assert.Nil(t, o.TideFt)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := OceanReading{Observations: tt.rows}
			got, ok := r.Latest()
			assert.Equal(t, tt.wantOK, ok)
			if tt.checkValues != nil {
				tt.checkValues(t, got)
			}
		})
	}
}

func TestLocationQuery_MentionsUrban(t *testing.T) {
	assert.True(t, LocationQuery{Name: "Vancouver Downtown"}.MentionsUrban())
	assert.True(t, LocationQuery{Name: "Mexico CITY"}.MentionsUrban())
	assert.False(t, LocationQuery{Name: "Salt Spring Island, BC"}.MentionsUrban())
}

func TestAggregate_Present(t *testing.T) {
	var nilAgg *Aggregate
	assert.Empty(t, nilAgg.Present())
	assert.Zero(t, nilAgg.NaturalCapitalTotal())

	agg := &Aggregate{
		Soil:  &SoilResponse{Source: "SoilGrids (ISRIC)"},
		Ocean: &OceanResponse{Source: SourceSimulated},
	}
	agg.Soil.Valuation.NaturalCapital.Total = 100
	agg.Ocean.Valuation.NaturalCapital.Total = 50

	assert.Equal(t, []Domain{DomainSoil, DomainOcean}, agg.Present())
	assert.Equal(t, 150.0, agg.NaturalCapitalTotal())
	assert.True(t, agg.Ocean.Simulated())
	assert.Equal(t, map[Domain]string{
		DomainSoil:  "SoilGrids (ISRIC)",
		DomainOcean: SourceSimulated,
	}, agg.Sources())
}

func TestChatRequest_Validate(t *testing.T) {
	assert.Error(t, (&ChatRequest{Location: &ChatLocation{}}).Validate())
	assert.Error(t, (&ChatRequest{Query: "carbon"}).Validate())
	assert.NoError(t, (&ChatRequest{Query: "carbon", Location: &ChatLocation{Name: "x"}}).Validate())
}

// TestValidationError tests error handling
func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "lat",
		Value:   "abc",
		Message: "lat must be a number between -90 and 90",
	}

	if err.Error() != "lat must be a number between -90 and 90" {
		t.Errorf("Error() = %v, want %v", err.Error(), "lat must be a number between -90 and 90")
	}

	if err.IsTransient() {
		t.Error("ValidationError should not be transient")
	}
}
