package sources

import (
	"context"
	"fmt"
	"net/url"

	"gaia-platform/internal/models"
	"gaia-platform/pkg/upstream"
)

// SoilDepth is the topsoil interval averaged from SoilGrids layers.
const SoilDepth = "0-30cm"

var (
	soilProperties = []string{"clay", "sand", "silt", "soc", "phh2o", "cec", "nitrogen"}
	soilDepths     = []string{"0-5cm", "5-15cm", "15-30cm"}
)

// SoilGrids reads modelled topsoil properties from ISRIC SoilGrids.
type SoilGrids struct {
	client   *upstream.Client
	endpoint Endpoint
	now      Clock
}

// NewSoilGrids creates the live soil source.
func NewSoilGrids(client *upstream.Client, endpoint Endpoint, now Clock) *SoilGrids {
	return &SoilGrids{client: client, endpoint: endpoint, now: now}
}

func (s *SoilGrids) Name() string { return "SoilGrids (ISRIC)" }

type soilGridsPayload struct {
	Properties struct {
		Layers []soilLayer `json:"layers"`
	} `json:"properties"`
}

type soilLayer struct {
	Name        string `json:"name"`
	UnitMeasure struct {
		DFactor float64 `json:"d_factor"`
	} `json:"unit_measure"`
	Depths []struct {
		Label string `json:"label"`
		Range struct {
			Top    float64 `json:"top_depth"`
			Bottom float64 `json:"bottom_depth"`
		} `json:"range"`
		Values struct {
			Mean *float64 `json:"mean"`
		} `json:"values"`
	} `json:"depths"`
}

// mean averages the layer over its depths weighted by thickness, in the
// layer's conventional unit.
func (l soilLayer) mean() *float64 {
	var sum, weight float64
	for _, d := range l.Depths {
		if d.Values.Mean == nil {
			continue
		}
		thickness := d.Range.Bottom - d.Range.Top
		if thickness <= 0 {
			thickness = 1
		}
		sum += *d.Values.Mean * thickness
		weight += thickness
	}
	if weight == 0 {
		return nil
	}
	factor := l.UnitMeasure.DFactor
	if factor == 0 {
		factor = 1
	}
	return ptr(sum / weight / factor)
}

// Fetch returns the 0-30 cm averages. SoilGrids has no moisture, so that
// field is the seasonal estimate.
func (s *SoilGrids) Fetch(ctx context.Context, q models.LocationQuery) (models.SoilReading, error) {
	params := url.Values{}
	params.Set("lon", fmt.Sprintf("%.4f", q.Lon))
	params.Set("lat", fmt.Sprintf("%.4f", q.Lat))
	for _, p := range soilProperties {
		params.Add("property", p)
	}
	for _, d := range soilDepths {
		params.Add("depth", d)
	}
	params.Set("value", "mean")

	var payload soilGridsPayload
	err := s.client.GetJSON(ctx, upstream.Request{
		Upstream: "soilgrids",
		URL:      s.endpoint.BaseURL + "?" + params.Encode(),
		Timeout:  s.endpoint.Timeout,
	}, &payload)
	if err != nil {
		return models.SoilReading{}, wrap(s.Name(), err)
	}

	values := make(map[string]*float64, len(payload.Properties.Layers))
	for _, layer := range payload.Properties.Layers {
		values[layer.Name] = layer.mean()
	}

	reading := models.SoilReading{
		Depth:       SoilDepth,
		ClayPct:     values["clay"],
		SandPct:     values["sand"],
		SiltPct:     values["silt"],
		PH:          values["phh2o"],
		CEC:         values["cec"],
		NitrogenGKg: values["nitrogen"],
		MoisturePct: ptr(seasonalMoisture(s.now())),
	}
	// soc arrives in g/kg.
	if soc := values["soc"]; soc != nil {
		reading.OrganicCarbonPct = ptr(*soc / 10)
	}

	if reading.ClayPct == nil && reading.SandPct == nil && reading.SiltPct == nil &&
		reading.OrganicCarbonPct == nil && reading.PH == nil {
		return models.SoilReading{}, wrap(s.Name(), ErrNoData)
	}
	return reading, nil
}
