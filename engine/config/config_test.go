package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.NotNil(t, Default().BackgroundColor())
}

func TestLoadKeepsDefaultsForMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scion.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_name: demo\nframe_limiter:\n  tick_rate: 30\n  fixed_update_rate: 10\n  render_rate: 30\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.AppName)
	assert.Equal(t, 30, cfg.FrameLimiter.TickRate)
	assert.Equal(t, "info", cfg.Logger.Level)
	require.NotNil(t, cfg.Window)
}

func TestLoadRejectsInvalidRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scion.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frame_limiter:\n  tick_rate: 0\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrCreateDefaultWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scion.yaml")

	cfg, err := LoadOrCreateDefault(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.FileExists(t, path)

	again, err := LoadOrCreateDefault(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestValidateWindow(t *testing.T) {
	cfg := Default()
	cfg.Window.BackgroundColor = "nope"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Window = nil
	assert.NoError(t, cfg.Validate())
	assert.Nil(t, cfg.BackgroundColor())
}
