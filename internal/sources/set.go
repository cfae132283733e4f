package sources

import (
	"gaia-platform/internal/config"
	"gaia-platform/internal/models"
	"gaia-platform/internal/reference"
	"gaia-platform/pkg/upstream"
)

// Set holds one source per domain. A nil field means the domain has no
// source of that kind.
type Set struct {
	Carbon       DomainSource[models.CarbonReading]
	Climate      DomainSource[models.ClimateReading]
	Soil         DomainSource[models.SoilReading]
	Forest       DomainSource[models.ForestReading]
	Ocean        DomainSource[models.OceanReading]
	Biodiversity DomainSource[models.BiodiversityReading]
}

// NewLiveSet wires the upstream providers from configuration.
func NewLiveSet(cfg config.UpstreamsConfig, client *upstream.Client, catalog reference.Catalog, now Clock) Set {
	standard := func(base string) Endpoint {
		return Endpoint{BaseURL: base, Timeout: cfg.DefaultTimeout.Std()}
	}

	return Set{
		Carbon:       NewAirQuality(client, standard(cfg.AirQualityURL), now),
		Climate:      NewClimateArchive(client, Endpoint{BaseURL: cfg.ClimateURL, Timeout: cfg.ArchiveTimeout.Std()}, now),
		Soil:         NewSoilGrids(client, standard(cfg.SoilGridsURL), now),
		Forest:       NewForestWatch(client, standard(cfg.ForestWatchURL), cfg.ForestWatchKey, catalog),
		Ocean:        NewNDBC(client, standard(cfg.NDBCURL), catalog),
		Biodiversity: NewGBIF(client, standard(cfg.GBIFURL)),
	}
}

// NewSimulatedSet returns the simulated source of every domain.
func NewSimulatedSet(catalog reference.Catalog, now Clock) Set {
	return Set{
		Carbon:       SimulatedCarbon{},
		Climate:      SimulatedClimate{Now: now},
		Soil:         SimulatedSoil{Now: now},
		Forest:       SimulatedForest{Catalog: catalog, Now: now},
		Ocean:        SimulatedOcean{Catalog: catalog, Now: now},
		Biodiversity: SimulatedBiodiversity{Now: now},
	}
}
