package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/char5742/tspress/internal/calib"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, calib.DefaultGeometry(), cfg.Geometry())
	assert.True(t, cfg.ShowButtons())
	assert.True(t, cfg.Touch.Enabled)
	assert.True(t, cfg.Window.Borderless)
}

func TestShowButtons(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Width = 400
	assert.False(t, cfg.ShowButtons())
	cfg.Window.Width = 401
	assert.True(t, cfg.ShowButtons())
}

func TestLoadConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[window]
width = 320
fullscreen = true

[touch]
device = "ADS7846 Touchscreen"
grab = true
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.True(t, cfg.Window.Fullscreen)
	assert.False(t, cfg.ShowButtons())
	assert.Equal(t, "ADS7846 Touchscreen", cfg.Touch.Device)
	assert.True(t, cfg.Touch.Grab)
	assert.True(t, cfg.Touch.Enabled)
	assert.Equal(t, calib.DefaultGeometry(), cfg.Geometry())
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window\nwidth = "), 0644))

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Calibration.Step = 50
	cfg.Touch.Device = "/dev/input/event3"
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
