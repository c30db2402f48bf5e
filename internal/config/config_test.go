package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_SampleConfig(t *testing.T) {
	cfg, err := Load("../../config.toml")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, StorageFile, cfg.Storage.Driver)
	assert.Equal(t, "data/eventos.json", cfg.Storage.File.Path)
	assert.Equal(t, 365, cfg.Planner.MaxAdvanceDays)
}

func TestLoad_DefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "data/recursos.json", cfg.Planner.CatalogFile)
	assert.Equal(t, 365, cfg.Planner.SearchHorizonDays)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "file"

[storage.mongo]
uri = "mongodb://localhost:27017"
`)
	t.Setenv("PLANNER_STORAGE_DRIVER", "mongo")
	t.Setenv("PLANNER_SERVER_HTTP_PORT", "8181")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StorageMongo, cfg.Storage.Driver)
	assert.Equal(t, 8181, cfg.Server.HTTPPort)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `[server`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `
[storage]
driver = "redis"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port out of range", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }},
		{name: "no rules file", mutate: func(c *Config) { c.Planner.RulesFile = "" }},
		{name: "zero advance days", mutate: func(c *Config) { c.Planner.MaxAdvanceDays = 0 }},
		{name: "zero horizon", mutate: func(c *Config) { c.Planner.SearchHorizonDays = 0 }},
		{name: "zero storage timeout", mutate: func(c *Config) { c.Storage.Timeout = 0 }},
		{name: "postgres without dbname", mutate: func(c *Config) { c.Storage.Driver = StoragePostgres }},
		{name: "mongo without uri", mutate: func(c *Config) { c.Storage.Driver = StorageMongo }},
		{name: "s3 without bucket", mutate: func(c *Config) { c.Storage.Driver = StorageS3 }},
		{name: "file without path", mutate: func(c *Config) { c.Storage.File.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "planner", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=planner sslmode=disable", c.DSN())
}
