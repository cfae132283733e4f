package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gaia-platform/internal/models"
)

func f(v float64) *float64 { return &v }

func TestSoilTexture(t *testing.T) {
	tests := []struct {
		name             string
		clay, sand, silt float64
		want             string
	}{
		{"sand", 10, 85, 5, "Sand"},
		{"clay loam", 30, 30, 40, "Clay loam"},
		{"loamy sand", 10, 75, 15, "Loamy sand"},
		{"silty clay", 45, 5, 50, "Silty clay"},
		{"sandy clay", 42, 50, 8, "Sandy clay"},
		{"clay", 60, 20, 20, "Clay"},
		{"silty clay loam", 30, 10, 60, "Silty clay loam"},
		{"sandy clay loam", 25, 60, 15, "Sandy clay loam"},
		{"silt", 5, 5, 90, "Silt"},
		{"silt loam", 15, 20, 65, "Silt loam"},
		{"loam", 20, 40, 40, "Loam"},
		{"sandy loam", 10, 60, 30, "Sandy loam"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SoilTexture(f(tt.clay), f(tt.sand), f(tt.silt))
			if got != tt.want {
				t.Errorf("SoilTexture(%v, %v, %v) = %q, want %q", tt.clay, tt.sand, tt.silt, got, tt.want)
			}
		})
	}

	if got := SoilTexture(nil, f(10), f(10)); got != Unknown {
		t.Errorf("SoilTexture(nil) = %q, want %q", got, Unknown)
	}
}

func TestSoilHealthScore(t *testing.T) {
	ideal := models.SoilReading{
		ClayPct: f(20), SandPct: f(40), SiltPct: f(40),
		OrganicCarbonPct: f(3), PH: f(6.5), CEC: f(20),
	}
	assert.Equal(t, 100.0, SoilHealthScore(ideal))

	assert.Equal(t, 50.0, SoilHealthScore(models.SoilReading{}))

	acidic := models.SoilReading{PH: f(3.9)}
	assert.Equal(t, 40.0, SoilHealthScore(acidic))

	marginal := models.SoilReading{PH: f(5.7), OrganicCarbonPct: f(1), CEC: f(4)}
	assert.Equal(t, 50.0+5+8+2, SoilHealthScore(marginal))
}

func TestSoilHealthScore_AlwaysClamped(t *testing.T) {
	extremes := []float64{-1e9, -100, -1, 0, 0.5, 7, 50, 100, 1e9}
	for _, oc := range extremes {
		for _, ph := range extremes {
			for _, cec := range extremes {
				for _, clay := range extremes {
					r := models.SoilReading{
						OrganicCarbonPct: f(oc), PH: f(ph), CEC: f(cec),
						ClayPct: f(clay), SandPct: f(clay), SiltPct: f(clay),
					}
					score := SoilHealthScore(r)
					if score < 0 || score > 100 {
						t.Fatalf("score %v out of range for %+v", score, r)
					}
				}
			}
		}
	}
}

func TestErosionRisk(t *testing.T) {
	tests := []struct {
		name                 string
		clay, sand, silt, oc *float64
		want                 string
	}{
		{"severe", f(5), f(80), f(15), f(0.5), "severe"},
		{"high sandy", f(10), f(60), f(30), f(1.5), "high"},
		{"high silty", f(10), f(20), f(70), f(1), "high"},
		{"moderate", f(25), f(45), f(30), f(3), "moderate"},
		{"low", f(25), f(30), f(45), f(3), "low"},
		{"unknown", nil, f(30), f(45), f(3), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErosionRisk(tt.clay, tt.sand, tt.silt, tt.oc))
		})
	}
}

func TestSoil(t *testing.T) {
	m := Soil(models.SoilReading{
		ClayPct: f(18), SandPct: f(42), SiltPct: f(40),
		OrganicCarbonPct: f(6.2), PH: f(5.8), CEC: f(24), MoisturePct: f(22.5),
	})

	assert.Equal(t, "Loam", m.Texture)
	assert.Equal(t, "good", m.Drainage)
	assert.Equal(t, "Moderately Acidic", m.PHDescription)
	assert.Equal(t, 93.0, m.HealthScore)
	assert.Equal(t, "excellent", m.Rating)
	assert.Equal(t, "high", m.Biodiversity)
	assert.Equal(t, "moderate", m.ErosionRisk)
	assert.Equal(t, "adequate", m.Moisture.Status)
	if assert.NotNil(t, m.CarbonContent) {
		assert.Equal(t, 241.8, *m.CarbonContent)
	}

	empty := Soil(models.SoilReading{})
	assert.Nil(t, empty.CarbonContent)
	assert.Nil(t, empty.Moisture.Current)
	assert.Equal(t, "unknown", empty.Moisture.Status)
	assert.Equal(t, Unknown, empty.PHDescription)
	assert.Equal(t, "unknown", empty.ErosionRisk)
}

func TestMoistureStatus(t *testing.T) {
	assert.Equal(t, "dry", MoistureStatus(f(10)))
	assert.Equal(t, "adequate", MoistureStatus(f(15)))
	assert.Equal(t, "wet", MoistureStatus(f(30)))
	assert.Equal(t, "saturated", MoistureStatus(f(45)))
}
