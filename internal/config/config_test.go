package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[scheduling]
timezone = "Europe/Moscow"

[reconciliation]
interval = "1h"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "Europe/Moscow", cfg.Scheduling.Timezone)
	assert.Equal(t, time.Hour, cfg.Reconciliation.Interval.Duration)
	assert.Equal(t, 24*time.Hour, cfg.Reconciliation.GracePeriod.Duration)
	assert.Equal(t, 20, cfg.Reconciliation.BatchSize)
	assert.Equal(t, 1, cfg.Reconciliation.LookbackMonths)
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoad_EnvOverridesDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Contains(t, cfg.Database.DSN(), "password=secret")
}

func TestLoad_InvalidTimezone(t *testing.T) {
	_, err := Load(writeConfig(t, `
[scheduling]
timezone = "Mars/Olympus"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate_Reconciliation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero batch", func(c *Config) { c.Reconciliation.BatchSize = 0 }},
		{"zero interval", func(c *Config) { c.Reconciliation.Interval = Duration{} }},
		{"negative grace", func(c *Config) { c.Reconciliation.GracePeriod = Duration{-time.Hour} }},
		{"zero lookback", func(c *Config) { c.Reconciliation.LookbackMonths = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
