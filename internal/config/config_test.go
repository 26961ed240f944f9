package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PARKCLI_STATE_PATH", filepath.Join(t.TempDir(), "state.db"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Equal(t, "@every 30s", cfg.WatchSpec)
	assert.False(t, cfg.Debug)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PARKCLI_STATE_PATH", filepath.Join(t.TempDir(), "state.db"))
	t.Setenv("PARKCLI_BASE_URL", "https://parking.example.com/api")
	t.Setenv("PARKCLI_DEBUG", "true")
	t.Setenv("PARKCLI_HTTP_TIMEOUT", "15s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://parking.example.com/api", cfg.BaseURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "15s", cfg.HTTPTimeout.String())
}
