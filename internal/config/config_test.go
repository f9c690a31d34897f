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
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":28416", cfg.Server.Addr)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 520, cfg.Render.Width)
	assert.Equal(t, 550, cfg.Render.Height)
	assert.Equal(t, 2, cfg.Render.Bands)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "molmap.yaml")
	data := []byte("server:\n  addr: \":9000\"\n  mode: debug\nrender:\n  width: 300\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 300, cfg.Render.Width)
	// untouched keys keep their defaults
	assert.Equal(t, 550, cfg.Render.Height)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Addr: ":1", Mode: "release"},
			Render: RenderConfig{Width: 100, Height: 100, Bands: 2},
		}
	}
	assert.NoError(t, valid().Validate())

	c := valid()
	c.Server.Addr = ""
	assert.Error(t, c.Validate())

	c = valid()
	c.Server.Mode = "verbose"
	assert.Error(t, c.Validate())

	c = valid()
	c.Render.Width = 0
	assert.Error(t, c.Validate())

	c = valid()
	c.Render.Bands = -1
	assert.Error(t, c.Validate())
}
