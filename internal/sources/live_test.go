package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaia-platform/internal/models"
	"gaia-platform/internal/reference"
	"gaia-platform/pkg/logging"
	"gaia-platform/pkg/metrics"
	"gaia-platform/pkg/upstream"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestClient() *upstream.Client {
	return upstream.NewClient(upstream.Config{UserAgent: "gaia-test"}, upstream.NewCache(time.Minute),
		logging.NewNopLogger(), metrics.NewCollector("gaia_test", prometheus.NewRegistry()))
}

func serve(t *testing.T, handler http.HandlerFunc) Endpoint {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return Endpoint{BaseURL: srv.URL, Timeout: 2 * time.Second}
}

var saltSpring = models.LocationQuery{Name: "Salt Spring Island, BC", Lat: 48.8167, Lon: -123.5}

func TestAirQuality_Fetch(t *testing.T) {
	endpoint := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "48.8167", r.URL.Query().Get("latitude"))
		assert.Contains(t, r.URL.Query().Get("hourly"), "carbon_dioxide")
		w.Write([]byte(`{"hourly": {
			"time": ["2025-06-15T10:00", "2025-06-15T11:00", "2025-06-15T12:00", "2025-06-15T13:00"],
			"carbon_dioxide": [420.1, null, 421.3, 425.0],
			"pm2_5": [5.0, 6.0, null, 9.0],
			"pm10": [null, null, null, null],
			"ozone": [60, 61, 62, 63],
			"nitrogen_dioxide": [10, 11, 12, 13],
			"sulphur_dioxide": [1, 1, 1, 1],
			"carbon_monoxide": [200, 210, 220, 230]
		}}`))
	})

	reading, err := NewAirQuality(newTestClient(), endpoint, fixedClock).Fetch(context.Background(), saltSpring)
	require.NoError(t, err)

	assert.Equal(t, []float64{420.1, 421.3}, reading.CO2Hourly)
	require.NotNil(t, reading.Pollutants.PM25)
	assert.Equal(t, 6.0, *reading.Pollutants.PM25)
	assert.Nil(t, reading.Pollutants.PM10)
	require.NotNil(t, reading.Pollutants.CO)
	assert.Equal(t, 220.0, *reading.Pollutants.CO)
}

func TestAirQuality_EmptySeries(t *testing.T) {
	endpoint := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hourly": {"time": []}}`))
	})

	_, err := NewAirQuality(newTestClient(), endpoint, fixedClock).Fetch(context.Background(), saltSpring)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestClimateArchive_Fetch(t *testing.T) {
	endpoint := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-06-10", r.URL.Query().Get("end_date"))
		assert.Equal(t, "2024-06-10", r.URL.Query().Get("start_date"))
		w.Write([]byte(`{"daily": {
			"time": ["2024-06-10", "2024-06-11", "2024-06-12"],
			"temperature_2m_max": [18.2, null, 21.0],
			"temperature_2m_min": [9.1, null, 11.5],
			"precipitation_sum": [0.0, null, 3.4]
		}}`))
	})

	reading, err := NewClimateArchive(newTestClient(), endpoint, fixedClock).Fetch(context.Background(), saltSpring)
	require.NoError(t, err)

	require.Len(t, reading.Days, 2)
	assert.Equal(t, "2024-06-10", reading.StartDate)
	assert.Equal(t, "2024-06-12", reading.EndDate)
	assert.Equal(t, 3.4, *reading.Days[1].Precipitation)
}

func TestClimateArchive_UpstreamFailure(t *testing.T) {
	endpoint := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := NewClimateArchive(newTestClient(), endpoint, fixedClock).Fetch(context.Background(), saltSpring)
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "Open-Meteo Historical Archive (ERA5)", upstreamErr.Source)
	assert.True(t, upstreamErr.IsTransient())
}

func TestSoilGrids_Fetch(t *testing.T) {
	endpoint := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.ElementsMatch(t, soilProperties, r.URL.Query()["property"])
		w.Write([]byte(`{"properties": {"layers": [
			{"name": "clay", "unit_measure": {"d_factor": 10}, "depths": [
				{"label": "0-5cm", "range": {"top_depth": 0, "bottom_depth": 5}, "values": {"mean": 250}},
				{"label": "5-15cm", "range": {"top_depth": 5, "bottom_depth": 15}, "values": {"mean": 250}},
				{"label": "15-30cm", "range": {"top_depth": 15, "bottom_depth": 30}, "values": {"mean": 250}}
			]},
			{"name": "soc", "unit_measure": {"d_factor": 10}, "depths": [
				{"label": "0-5cm", "range": {"top_depth": 0, "bottom_depth": 5}, "values": {"mean": 300}}
			]},
			{"name": "phh2o", "unit_measure": {"d_factor": 10}, "depths": [
				{"label": "0-5cm", "range": {"top_depth": 0, "bottom_depth": 5}, "values": {"mean": 65}},
				{"label": "5-15cm", "range": {"top_depth": 5, "bottom_depth": 15}, "values": {"mean": null}}
			]},
			{"name": "sand", "unit_measure": {"d_factor": 10}, "depths": [
				{"label": "0-5cm", "range": {"top_depth": 0, "bottom_depth": 5}, "values": {"mean": null}}
			]}
		]}}`))
	})

	reading, err := NewSoilGrids(newTestClient(), endpoint, fixedClock).Fetch(context.Background(), saltSpring)
	require.NoError(t, err)

	assert.Equal(t, SoilDepth, reading.Depth)
	require.NotNil(t, reading.ClayPct)
	assert.InDelta(t, 25.0, *reading.ClayPct, 1e-9)
	require.NotNil(t, reading.OrganicCarbonPct)
	assert.InDelta(t, 3.0, *reading.OrganicCarbonPct, 1e-9)
	require.NotNil(t, reading.PH)
	assert.InDelta(t, 6.5, *reading.PH, 1e-9)
	assert.Nil(t, reading.SandPct)
	assert.Nil(t, reading.SiltPct)
	require.NotNil(t, reading.MoisturePct)
	assert.InDelta(t, 10.8, *reading.MoisturePct, 0.05)
}

func TestSoilGrids_NoLayers(t *testing.T) {
	endpoint := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"properties": {"layers": []}}`))
	})

	_, err := NewSoilGrids(newTestClient(), endpoint, fixedClock).Fetch(context.Background(), saltSpring)
	assert.ErrorIs(t, err, ErrNoData)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.False(t, upstreamErr.IsTransient())
}

func TestForestWatch_NotConfigured(t *testing.T) {
	src := NewForestWatch(newTestClient(), Endpoint{BaseURL: "http://127.0.0.1:0"}, "", reference.NewStatic())

	_, err := src.Fetch(context.Background(), models.LocationQuery{Lat: 51, Lon: 10, Country: "Germany"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestForestWatch_Fetch(t *testing.T) {
	endpoint := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.True(t, strings.HasPrefix(r.URL.Path, "/dataset/"+forestWatchDataset))
		assert.Contains(t, r.URL.Query().Get("sql"), "iso = 'DEU'")
		w.Write([]byte(`{"status": "success", "data": [
			{"umd_tree_cover_loss__year": 2023, "loss_ha": 34200},
			{"umd_tree_cover_loss__year": 2018, "loss_ha": 99999},
			{"umd_tree_cover_loss__year": 2019, "loss_ha": 34200},
			{"umd_tree_cover_loss__year": 2020, "loss_ha": 34200},
			{"umd_tree_cover_loss__year": 2021, "loss_ha": 34200},
			{"umd_tree_cover_loss__year": 2022, "loss_ha": 34200}
		]}`))
	})

	src := NewForestWatch(newTestClient(), endpoint, "secret", reference.NewStatic())
	reading, err := src.Fetch(context.Background(), models.LocationQuery{Lat: 51, Lon: 10, Country: "de"})
	require.NoError(t, err)

	assert.Equal(t, "Germany", reading.Country)
	assert.Equal(t, "DEU", reading.ISO3)
	assert.Equal(t, 32.7, reading.CoverPercent)
	assert.InDelta(t, 0.3, reading.LossRatePercent, 1e-9)
	require.Len(t, reading.LossHistory, 6)
	assert.Equal(t, 2018, reading.LossHistory[0].Year)
	assert.Equal(t, 2023, reading.LossHistory[5].Year)
}

func TestForestWatch_UnlistedCountry(t *testing.T) {
	src := NewForestWatch(newTestClient(), Endpoint{BaseURL: "http://127.0.0.1:0"}, "secret", reference.NewStatic())

	_, err := src.Fetch(context.Background(), models.LocationQuery{Lat: 0, Lon: 0, Country: "Atlantis"})
	var notFound *reference.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

const buoyFile = `#YY  MM DD hh mm WDIR WSPD GST  WVHT   DPD   APD MWD   PRES  ATMP  WTMP  DEWP  VIS PTDY  TIDE
#yr  mo dy hr mn degT m/s  m/s     m   sec   sec degT   hPa  degC  degC  degC  nmi  hPa    ft
2025 06 15 11 50 290  7.0  9.0   1.8    10   6.1 285 1015.2  13.1  12.4  10.2   MM -0.6    MM
2025 06 15 11 20 280  6.0  8.0    MM    MM    MM 999 1015.4  13.0  12.5  10.1   MM   MM    MM
2025 06 15 10 50 270  5.0
2025 06 15 10 20 270  5.5  7.0  99.00   9    5.9 280 1015.8  12.8  12.3  10.0   MM   MM    MM
`

func TestParseBuoyFile(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		limit       int
		wantErr     error
		checkValues func(t *testing.T, obs []models.OceanObservation)
	}{
		{
			name:  "chronological with malformed rows skipped",
			input: buoyFile,
			checkValues: func(t *testing.T, obs []models.OceanObservation) {
				require.Len(t, obs, 3)
				assert.Equal(t, time.Date(2025, 6, 15, 10, 20, 0, 0, time.UTC), obs[0].Timestamp)
				assert.Equal(t, time.Date(2025, 6, 15, 11, 50, 0, 0, time.UTC), obs[2].Timestamp)
				assert.Nil(t, obs[0].WaveHeightM)
				assert.Nil(t, obs[1].WaveDirDeg)
				require.NotNil(t, obs[2].WaveHeightM)
				assert.Equal(t, 1.8, *obs[2].WaveHeightM)
			},
		},
		{
			name:  "limit keeps the newest rows",
			input: buoyFile,
			limit: 2,
			checkValues: func(t *testing.T, obs []models.OceanObservation) {
				require.Len(t, obs, 2)
				assert.Equal(t, 11, obs[0].Timestamp.Hour())
				assert.Equal(t, 20, obs[0].Timestamp.Minute())
			},
		},
		{
			name:    "headers only",
			input:   "#YY MM DD\n#yr mo dy\n",
			wantErr: ErrNoData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := ParseBuoyFile(strings.NewReader(tt.input), tt.limit)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			if tt.checkValues != nil {
				tt.checkValues(t, obs)
			}
		})
	}
}

func TestNDBC_Fetch(t *testing.T) {
	endpoint := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/46029.txt", r.URL.Path)
		w.Write([]byte(buoyFile))
	})

	q := models.LocationQuery{Name: "Astoria", Lat: 46.2, Lon: -123.9, Station: "46029"}
	reading, err := NewNDBC(newTestClient(), endpoint, reference.NewStatic()).Fetch(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "46029", reading.Station.ID)
	assert.Len(t, reading.Observations, 3)
}

func TestStationFor(t *testing.T) {
	cat := reference.NewStatic()

	st := StationFor(cat, models.LocationQuery{Lat: 42.35, Lon: -70.69})
	assert.Equal(t, "44013", st.ID)

	st = StationFor(cat, models.LocationQuery{Lat: 42.35, Lon: -70.69, Station: "41009"})
	assert.Equal(t, "41009", st.ID)

	st = StationFor(cat, models.LocationQuery{Lat: 42.35, Lon: -70.69, Station: "00000"})
	assert.Equal(t, "44013", st.ID)
}

func TestGBIF_Fetch(t *testing.T) {
	endpoint := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/occurrence/search", r.URL.Path)
		assert.Equal(t, "300", r.URL.Query().Get("limit"))
		assert.Equal(t, "48.7267,48.9067", r.URL.Query().Get("decimalLatitude"))
		w.Write([]byte(`{"count": 1520, "results": [
			{"scientificName": "Quercus garryana Douglas ex Hook.", "species": "Quercus garryana", "kingdom": "Plantae", "eventDate": "2024-05-01"},
			{"scientificName": "Haliaeetus leucocephalus", "vernacularName": "Bald Eagle", "kingdom": "Animalia"},
			{"kingdom": "Fungi"}
		]}`))
	})

	reading, err := NewGBIF(newTestClient(), endpoint).Fetch(context.Background(), saltSpring)
	require.NoError(t, err)

	assert.Equal(t, 1520, reading.TotalOccurrences)
	require.Len(t, reading.Occurrences, 2)
	assert.Equal(t, "Quercus garryana", reading.Occurrences[0].ScientificName)
	assert.Equal(t, "Bald Eagle", reading.Occurrences[1].VernacularName)
}

func TestGBIF_NoResults(t *testing.T) {
	endpoint := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "results": []}`))
	})

	_, err := NewGBIF(newTestClient(), endpoint).Fetch(context.Background(), saltSpring)
	assert.ErrorIs(t, err, ErrNoData)
}
