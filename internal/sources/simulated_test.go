package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaia-platform/internal/models"
	"gaia-platform/internal/normalize"
	"gaia-platform/internal/reference"
)

func TestSimulatedSources_Deterministic(t *testing.T) {
	cat := reference.NewStatic()
	ctx := context.Background()

	check := func(t *testing.T, fetch func() (any, error)) {
		t.Helper()
		first, err := fetch()
		require.NoError(t, err)
		second, err := fetch()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}

	t.Run("carbon", func(t *testing.T) {
		check(t, func() (any, error) { return SimulatedCarbon{}.Fetch(ctx, saltSpring) })
	})
	t.Run("climate", func(t *testing.T) {
		check(t, func() (any, error) { return SimulatedClimate{Now: fixedClock}.Fetch(ctx, saltSpring) })
	})
	t.Run("soil", func(t *testing.T) {
		check(t, func() (any, error) { return SimulatedSoil{Now: fixedClock}.Fetch(ctx, saltSpring) })
	})
	t.Run("forest", func(t *testing.T) {
		check(t, func() (any, error) {
			return SimulatedForest{Catalog: cat, Now: fixedClock}.Fetch(ctx, saltSpring)
		})
	})
	t.Run("ocean", func(t *testing.T) {
		check(t, func() (any, error) {
			return SimulatedOcean{Catalog: cat, Now: fixedClock}.Fetch(ctx, saltSpring)
		})
	})
	t.Run("biodiversity", func(t *testing.T) {
		check(t, func() (any, error) { return SimulatedBiodiversity{Now: fixedClock}.Fetch(ctx, saltSpring) })
	})
}

func TestSimulatedSources_VaryByLocation(t *testing.T) {
	ctx := context.Background()
	other := models.LocationQuery{Name: "Berlin", Lat: 52.52, Lon: 13.405}

	a, err := SimulatedCarbon{}.Fetch(ctx, saltSpring)
	require.NoError(t, err)
	b, err := SimulatedCarbon{}.Fetch(ctx, other)
	require.NoError(t, err)

	assert.NotEqual(t, *a.Pollutants.PM25, *b.Pollutants.PM25)
}

func TestSimulatedCarbon_NoStationSeries(t *testing.T) {
	reading, err := SimulatedCarbon{}.Fetch(context.Background(), models.LocationQuery{Name: "Downtown Vancouver", Lat: 49.28, Lon: -123.12})
	require.NoError(t, err)

	assert.NotNil(t, reading.CO2Hourly)
	assert.Empty(t, reading.CO2Hourly)

	ppm, source := normalize.EstimateCO2(models.LocationQuery{Name: "Downtown Vancouver"}, reading.CO2Hourly)
	assert.Equal(t, 436.5, ppm)
	assert.Equal(t, "baseline", source)
}

func TestSimulatedClimate_Window(t *testing.T) {
	reading, err := SimulatedClimate{Now: fixedClock}.Fetch(context.Background(), saltSpring)
	require.NoError(t, err)

	// Same daily window as the archive source.
	assert.Equal(t, "2024-06-10", reading.StartDate)
	assert.Equal(t, "2025-06-10", reading.EndDate)
	assert.Len(t, reading.Days, archiveWindowDays+1)
	assert.Equal(t, "2024-06-11", reading.Days[1].Date)
	for _, d := range reading.Days {
		require.NotNil(t, d.TempMax)
		require.NotNil(t, d.TempMin)
		assert.Greater(t, *d.TempMax, *d.TempMin)
		assert.GreaterOrEqual(t, *d.Precipitation, 0.0)
	}
}

func TestSimulatedSoil_Regional(t *testing.T) {
	tests := []struct {
		name        string
		query       models.LocationQuery
		checkValues func(t *testing.T, r models.SoilReading)
	}{
		{
			name:  "pacific northwest",
			query: saltSpring,
			checkValues: func(t *testing.T, r models.SoilReading) {
				assert.Equal(t, 5.8, *r.PH)
				assert.Equal(t, 3.6, *r.OrganicCarbonPct)
			},
		},
		{
			name:  "elsewhere",
			query: models.LocationQuery{Lat: 51.5, Lon: -0.12},
			checkValues: func(t *testing.T, r models.SoilReading) {
				assert.Equal(t, 6.5, *r.PH)
				assert.Equal(t, 2.61, *r.OrganicCarbonPct)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := SimulatedSoil{Now: fixedClock}.Fetch(context.Background(), tt.query)
			require.NoError(t, err)

			assert.Equal(t, "Loam", normalize.SoilTexture(r.ClayPct, r.SandPct, r.SiltPct))
			assert.InDelta(t, 100, *r.ClayPct+*r.SandPct+*r.SiltPct, 0.15)
			tt.checkValues(t, r)
		})
	}
}

func TestSimulatedForest(t *testing.T) {
	cat := reference.NewStatic()
	src := SimulatedForest{Catalog: cat, Now: fixedClock}

	t.Run("listed country uses profile", func(t *testing.T) {
		q := saltSpring
		q.Country = "Canada"
		r, err := src.Fetch(context.Background(), q)
		require.NoError(t, err)

		assert.Equal(t, "Canada", r.Country)
		assert.Equal(t, "CAN", r.ISO3)
		assert.Equal(t, 38.7, r.CoverPercent)
		require.Len(t, r.LossHistory, simulatedLossYears)
		assert.Equal(t, 2024, r.LossHistory[len(r.LossHistory)-1].Year)
	})

	t.Run("unlisted country uses latitude heuristics", func(t *testing.T) {
		q := saltSpring
		q.Country = reference.UnknownCountry
		r, err := src.Fetch(context.Background(), q)
		require.NoError(t, err)

		assert.Equal(t, reference.UnknownCountry, r.Country)
		assert.Empty(t, r.ISO3)
		assert.GreaterOrEqual(t, r.CoverPercent, 75.0)
		assert.LessOrEqual(t, r.CoverPercent, 80.0)
		assert.Equal(t, 28.0, r.ProtectedPercent)
	})
}

func TestSimulatedOcean(t *testing.T) {
	r, err := SimulatedOcean{Catalog: reference.NewStatic(), Now: fixedClock}.Fetch(context.Background(), saltSpring)
	require.NoError(t, err)

	require.Len(t, r.Observations, simulatedBuoyHours)
	for i := 1; i < len(r.Observations); i++ {
		assert.True(t, r.Observations[i].Timestamp.After(r.Observations[i-1].Timestamp))
	}
	latest, ok := r.Latest()
	require.True(t, ok)
	assert.Equal(t, fixedNow, latest.Timestamp)
	assert.Nil(t, latest.TideFt)
}

func TestSimulatedBiodiversity(t *testing.T) {
	r, err := SimulatedBiodiversity{Now: fixedClock}.Fetch(context.Background(), saltSpring)
	require.NoError(t, err)

	assert.Equal(t, 422, r.TotalOccurrences)
	assert.Len(t, r.Occurrences, 422)

	m := normalize.Biodiversity(r)
	assert.Equal(t, 10, m.UniqueSpecies)
}
