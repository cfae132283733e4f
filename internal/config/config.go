package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `json:"server"`
	Logging   LoggingConfig   `json:"logging"`
	Upstreams UpstreamsConfig `json:"upstreams"`
	Defaults  DefaultsConfig  `json:"defaults"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string   `json:"host"`
	Port         int      `json:"port"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
	IdleTimeout  Duration `json:"idle_timeout"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// UpstreamsConfig holds base URLs, timeouts and credentials of the data providers.
type UpstreamsConfig struct {
	UserAgent       string   `json:"user_agent"`
	DefaultTimeout  Duration `json:"default_timeout"`
	GeocodeTimeout  Duration `json:"geocode_timeout"`
	ArchiveTimeout  Duration `json:"archive_timeout"`
	GeocodeCacheTTL Duration `json:"geocode_cache_ttl"`

	AirQualityURL   string `json:"air_quality_url"`
	ClimateURL      string `json:"climate_url"`
	SoilGridsURL    string `json:"soilgrids_url"`
	ForestWatchURL  string `json:"forest_watch_url"`
	ForestWatchKey  string `json:"forest_watch_key"`
	NDBCURL         string `json:"ndbc_url"`
	GBIFURL         string `json:"gbif_url"`
	ReverseGeoURL   string `json:"reverse_geocode_url"`
	DisableLiveData bool   `json:"disable_live_data"`
}

// DefaultsConfig is the location used when a request omits one.
type DefaultsConfig struct {
	Location string  `json:"location"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// Duration decodes either a Go duration string ("15s") or integer seconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("duration must be a string or number of seconds: %w", err)
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  Duration(15 * time.Second),
			WriteTimeout: Duration(45 * time.Second),
			IdleTimeout:  Duration(60 * time.Second),
		},
		Logging: LoggingConfig{Level: "info"},
		Upstreams: UpstreamsConfig{
			UserAgent:       "gaia-platform/1.0 (natural capital engine)",
			DefaultTimeout:  Duration(10 * time.Second),
			GeocodeTimeout:  Duration(5 * time.Second),
			ArchiveTimeout:  Duration(15 * time.Second),
			GeocodeCacheTTL: Duration(time.Hour),
			AirQualityURL:   "https://air-quality-api.open-meteo.com/v1/air-quality",
			ClimateURL:      "https://archive-api.open-meteo.com/v1/archive",
			SoilGridsURL:    "https://rest.isric.org/soilgrids/v2.0/properties/query",
			ForestWatchURL:  "https://data-api.globalforestwatch.org",
			NDBCURL:         "https://www.ndbc.noaa.gov/data/realtime2",
			GBIFURL:         "https://api.gbif.org/v1",
			ReverseGeoURL:   "https://nominatim.openstreetmap.org/reverse",
		},
		Defaults: DefaultsConfig{
			Location: "Salt Spring Island, BC",
			Lat:      48.8167,
			Lon:      -123.5,
		},
	}
}

// LoadConfig loads configuration from an optional JSON file, a .env file
// in the working directory and environment variables, in increasing order
// of precedence.
func LoadConfig(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := overrideWithEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overrideWithEnv(cfg *Config) error {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if key := os.Getenv("GFW_API_KEY"); key != "" {
		cfg.Upstreams.ForestWatchKey = key
	}
	if ua := os.Getenv("UPSTREAM_USER_AGENT"); ua != "" {
		cfg.Upstreams.UserAgent = ua
	}
	if v := os.Getenv("DISABLE_LIVE_DATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DISABLE_LIVE_DATA %q: %w", v, err)
		}
		cfg.Upstreams.DisableLiveData = b
	}
	return nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Upstreams.DefaultTimeout <= 0 || c.Upstreams.GeocodeTimeout <= 0 || c.Upstreams.ArchiveTimeout <= 0 {
		problems = append(problems, "upstream timeouts must be positive")
	}
	if c.Defaults.Lat < -90 || c.Defaults.Lat > 90 {
		problems = append(problems, fmt.Sprintf("defaults.lat %v out of range", c.Defaults.Lat))
	}
	if c.Defaults.Lon < -180 || c.Defaults.Lon > 180 {
		problems = append(problems, fmt.Sprintf("defaults.lon %v out of range", c.Defaults.Lon))
	}
	if !c.Upstreams.DisableLiveData {
		for name, u := range map[string]string{
			"air_quality_url":     c.Upstreams.AirQualityURL,
			"climate_url":         c.Upstreams.ClimateURL,
			"soilgrids_url":       c.Upstreams.SoilGridsURL,
			"forest_watch_url":    c.Upstreams.ForestWatchURL,
			"ndbc_url":            c.Upstreams.NDBCURL,
			"gbif_url":            c.Upstreams.GBIFURL,
			"reverse_geocode_url": c.Upstreams.ReverseGeoURL,
		} {
			if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
				problems = append(problems, fmt.Sprintf("upstreams.%s must be an http(s) URL", name))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
