package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func assertServicesConsistent(t *testing.T, s Services) {
	t.Helper()
	assert.Equal(t, s.Sum(), s.Total, "items must sum to total")
	assert.Len(t, s.Formatted, len(s.Items))
	for name, v := range s.Items {
		assert.GreaterOrEqual(t, v, 0.0, "service %s", name)
		assert.Equal(t, FormatCurrency(v), s.Formatted[name])
	}
	assert.Equal(t, FormatCurrency(s.Total), s.TotalFormatted)
}

func TestPresentValue(t *testing.T) {
	assert.InDelta(t, 19.6004, PresentValue(1, 30, 0.03), 1e-3)
	assert.Equal(t, 0.0, PresentValue(100, 0, 0.03))
}

func TestValueForestEcosystem(t *testing.T) {
	tests := []struct {
		name        string
		in          ForestInput
		checkValues func(*testing.T, ForestValuation)
	}{
		{
			name: "one temperate hectare",
			in:   ForestInput{AreaHectares: 1, ForestType: "temperate"},
			checkValues: func(t *testing.T, v ForestValuation) {
				assert.Equal(t, 1119.0, v.AnnualServices.Total)
				assert.Equal(t, 180.0, v.AnnualServices.Items["timberNontimber"])
			},
		},
		{
			name: "fully protected shifts timber into habitat",
			in:   ForestInput{AreaHectares: 10, ForestType: "temperate", ProtectedPercent: 100},
			checkValues: func(t *testing.T, v ForestValuation) {
				assert.Equal(t, 0.0, v.AnnualServices.Items["timberNontimber"])
				assert.Equal(t, 1560.0, v.AnnualServices.Items["biodiversityHabitat"])
			},
		},
		{
			name: "tropical multiplier and deforestation",
			in: ForestInput{
				AreaHectares: 100, ForestType: "tropical", CarbonStockTonnes: 1000,
				AnnualLossHectares: 2, CarbonDensity: 250,
			},
			checkValues: func(t *testing.T, v ForestValuation) {
				assert.Equal(t, 270.0*100, v.AnnualServices.Items["carbonSequestration"])
				assert.Equal(t, 50000.0, v.CarbonStock.Value)
				assert.Equal(t, Round(2*1119*1.8), v.DeforestationCost.LostServices)
				assert.Equal(t, 92500.0, v.DeforestationCost.CarbonEmissionsValue)
				assert.Equal(t, v.DeforestationCost.LostServices+92500, v.DeforestationCost.AnnualLoss)
			},
		},
		{
			name: "negative quantities value to zero",
			in:   ForestInput{AreaHectares: -500, CarbonStockTonnes: -10, AnnualLossHectares: -3, ProtectedPercent: -20},
			checkValues: func(t *testing.T, v ForestValuation) {
				assert.Zero(t, v.AnnualServices.Total)
				assert.Zero(t, v.CarbonStock.Value)
				assert.Zero(t, v.NaturalCapital.Total)
				assert.Zero(t, v.DeforestationCost.AnnualLoss)
				assert.Equal(t, "$0", v.NaturalCapital.TotalFormatted)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValueForestEcosystem(tt.in)
			assertServicesConsistent(t, v.AnnualServices)
			tt.checkValues(t, v)
		})
	}
}

func TestValueSoilEcosystem(t *testing.T) {
	v := ValueSoilEcosystem(SoilInput{AreaHectares: 1, HealthScore: 100, ErosionRisk: "low"})
	assertServicesConsistent(t, v.AnnualServices)
	assert.Equal(t, 800.0, v.AnnualServices.Total)
	assert.Equal(t, 40.0, v.Degradation.AnnualCost)
	assert.Zero(t, v.Restoration.Potential)

	unknown := ValueSoilEcosystem(SoilInput{AreaHectares: 100, HealthScore: 250, ErosionRisk: ""})
	assert.Equal(t, 100.0, unknown.HealthScore)
	assert.Equal(t, 4550.0, unknown.AnnualServices.Items["erosionPrevention"])

	neg := ValueSoilEcosystem(SoilInput{AreaHectares: 100, HealthScore: -40, CarbonTonnesPerHa: -3})
	assertServicesConsistent(t, neg.AnnualServices)
	assert.Zero(t, neg.CarbonStock.Value)
	assert.GreaterOrEqual(t, neg.NaturalCapital.Total, 0.0)
}

func TestValueOceanEcosystem(t *testing.T) {
	coastal := ValueOceanEcosystem(OceanInput{AreaKm2: 1, Coastal: true})
	assertServicesConsistent(t, coastal.AnnualServices)
	assert.Equal(t, 60500.0, coastal.AnnualServices.Total)
	assert.Equal(t, 1210.0, coastal.ClimateRisks.AcidificationCost)
	assert.Zero(t, coastal.ClimateRisks.TemperatureStressCost)
	assert.Equal(t, 1815.0, coastal.ClimateRisks.TotalAnnualRisk)

	warm := ValueOceanEcosystem(OceanInput{AreaKm2: 1, WaterTempC: ptr(26)})
	assertServicesConsistent(t, warm.AnnualServices)
	assert.Greater(t, warm.ClimateRisks.TemperatureStressCost, 0.0)
	assert.Equal(t, 800.0, warm.AnnualServices.Items["coastalProtection"])

	assert.Equal(t, 0.9, TemperatureStress(ptr(2)))
	assert.Equal(t, 1.0, TemperatureStress(nil))
}

func TestValueBiodiversity(t *testing.T) {
	v := ValueBiodiversity(10, 0, 2)
	assertServicesConsistent(t, v.AnnualServices)
	assert.Equal(t, 6500.0, v.AnnualServices.Total)
	assert.Equal(t, 1300.0, v.ExtinctionRisk.PotentialLossValue)

	neg := ValueBiodiversity(-4, -10, -1)
	assert.Zero(t, neg.AnnualServices.Total)
	assert.Zero(t, neg.ExtinctionRisk.AtRiskSpecies)
}

func TestValueCarbonBalance(t *testing.T) {
	v := ValueCarbonBalance(CarbonInput{
		AreaHectares:        10,
		ForestCarbonPerHa:   90,
		SoilCarbonPerHa:     48,
		ForestFactor:        0.6,
		PerCapitaEmissions:  14.2,
		NetBalancePerCapita: -2,
	})
	assertServicesConsistent(t, v.AnnualServices)
	require.Equal(t, 1380.0, v.CarbonStock.Tonnes)
	assert.Equal(t, 69000.0, v.PriceRegimes.VoluntaryMarket)
	assert.Equal(t, 110400.0, v.PriceRegimes.EUETS)
	assert.Equal(t, 255300.0, v.PriceRegimes.SocialCost)
	assert.Equal(t, 2400.0, v.AnnualServices.Items["forestSequestration"])
	assert.Equal(t, 710.0, v.EmissionsCost.MarketCost)
	assert.Equal(t, CarbonSink, v.NetPosition.Status)
	assert.Equal(t, -2.0, v.NetPosition.TonnesPerCapita)
	assert.Equal(t, 370.0, v.NetPosition.Value)

	source := ValueCarbonBalance(CarbonInput{NetBalancePerCapita: 3})
	assert.Equal(t, CarbonSource, source.NetPosition.Status)
}

func TestValueClimateRegulation(t *testing.T) {
	v := ValueClimateRegulation(ClimateInput{AreaHectares: 1, ResilienceScore: 100, WaterSecurityScore: 100})
	assertServicesConsistent(t, v.AnnualServices)
	assert.Equal(t, 438.0, v.AnnualServices.Total)
	assert.Zero(t, v.AdaptationGap.AnnualCost)

	half := ValueClimateRegulation(ClimateInput{AreaHectares: 100, ResilienceScore: 50, WaterSecurityScore: 0})
	assert.Equal(t, 4750.0, half.AnnualServices.Total)
	assert.Equal(t, 43800.0-4750.0, half.AdaptationGap.AnnualCost)
}

func TestNaturalCapitalTotal(t *testing.T) {
	nc := newNaturalCapital(1000, 100)
	assert.Equal(t, Round(1000+PresentValue(100, NPVYears, NPVDiscountRate)), nc.Total)
	assert.Equal(t, FormatCurrency(nc.Total), nc.TotalFormatted)
}
