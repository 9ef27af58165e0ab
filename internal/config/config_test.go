package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, CatalogStatic, cfg.Catalog.Source)
	assert.Equal(t, 1000.0, cfg.Promotion.Threshold)
	assert.False(t, cfg.Log.Development)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CART_HTTP__ADDR", ":9090")
	t.Setenv("CART_HTTP__READ_TIMEOUT", "3s")
	t.Setenv("CART_LOG__DEVELOPMENT", "true")
	t.Setenv("CART_CATALOG__SOURCE", "postgres")
	t.Setenv("CART_PROMOTION__THRESHOLD", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, CatalogPostgres, cfg.Catalog.Source)
	assert.Equal(t, 250.0, cfg.Promotion.Threshold)
}

func TestLoad_RejectsUnknownCatalogSource(t *testing.T) {
	t.Setenv("CART_CATALOG__SOURCE", "redis")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid config")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.HTTP.Addr = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Promotion.Threshold = 0
	assert.Error(t, cfg.Validate())
}
