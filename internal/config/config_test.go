package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// No config file in the package directory, so discovery falls through to
	// the built-in defaults.
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8086, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	assert.True(t, cfg.NATS.Enabled)
	assert.Equal(t, -1, cfg.NATS.MaxReconnects)
	assert.Equal(t, 5*time.Second, cfg.RPC.Timeout(), "broker reply wait defaults to five seconds")
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Forecast.Timeout())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9000
rpc:
  timeout_millis: 1500
databases:
  catalog_url: postgres://db/catalog
  inventory_url: postgres://db/inventory
redis:
  enabled: true
  addr: localhost:6379
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.RPC.Timeout())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "postgres://db/catalog", cfg.Databases.CatalogURL)
}

func TestDomainURLFallsBackToCatalog(t *testing.T) {
	d := DatabasesConfig{CatalogURL: "postgres://db/catalog"}
	assert.Equal(t, "postgres://db/catalog", d.DomainURL(""))
	assert.Equal(t, "postgres://db/manufacturing", d.DomainURL("postgres://db/manufacturing"))
}
