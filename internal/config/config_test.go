package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "Salt Spring Island, BC", cfg.Defaults.Location)
	assert.Equal(t, 48.8167, cfg.Defaults.Lat)
	assert.Equal(t, -123.5, cfg.Defaults.Lon)
	assert.Equal(t, 5*time.Second, cfg.Upstreams.GeocodeTimeout.Std())
	assert.Equal(t, 15*time.Second, cfg.Upstreams.ArchiveTimeout.Std())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "gaia.json")
	body := `{
		"server": {"port": 9090, "read_timeout": "5s"},
		"logging": {"level": "debug"},
		"upstreams": {"archive_timeout": 20}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("GFW_API_KEY", "secret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, 20*time.Second, cfg.Upstreams.ArchiveTimeout.Std())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "secret", cfg.Upstreams.ForestWatchKey)
	// Untouched values keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.Upstreams.DefaultTimeout.Std())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=warn\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig("does-not-exist.json")
	assert.Error(t, err)

	t.Setenv("SERVER_PORT", "eighty")
	_, err = LoadConfig("")
	assert.ErrorContains(t, err, "SERVER_PORT")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid defaults", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
		{name: "zero timeout", mutate: func(c *Config) { c.Upstreams.GeocodeTimeout = 0 }, wantErr: "timeouts"},
		{name: "bad latitude", mutate: func(c *Config) { c.Defaults.Lat = 91 }, wantErr: "defaults.lat"},
		{name: "bad url", mutate: func(c *Config) { c.Upstreams.GBIFURL = "ftp://gbif" }, wantErr: "gbif_url"},
		{
			name: "urls ignored when live data disabled",
			mutate: func(c *Config) {
				c.Upstreams.DisableLiveData = true
				c.Upstreams.GBIFURL = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
