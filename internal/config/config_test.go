package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glwrapper.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 1280
title = "quad"

[camera]
horizontal_fov = 75.5

[assets]
texture = "textures/other.png"
hot_reload = true

[render]
clear_color = [0.0, 0.0, 0.0, 1.0]

[logging]
level = "debug"
`)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1280, s.Window.Width)
	assert.Equal(t, 600, s.Window.Height)
	assert.Equal(t, "quad", s.Window.Title)
	assert.Equal(t, float32(75.5), s.Camera.HorizontalFOV)
	assert.Equal(t, "textures/other.png", s.Assets.Texture)
	assert.Equal(t, "shaders/textured.vert", s.Assets.VertexShader)
	assert.True(t, s.Assets.HotReload)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, s.Render.ClearColor)
	assert.Equal(t, slog.LevelDebug, s.LogLevel())
}

func TestLoadClamps(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 10
height = 100000

[camera]
horizontal_fov = 500
near = -1
far = 0

[render]
fps_limit = -5
`)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 160, s.Window.Width)
	assert.Equal(t, 4320, s.Window.Height)
	assert.Equal(t, float32(150), s.Camera.HorizontalFOV)
	assert.Equal(t, float32(0.1), s.Camera.Near)
	assert.InDelta(t, 100, s.Camera.Far, 1e-3)
	assert.Equal(t, 0, s.Render.FPSLimit)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[window\nwidth = "))
	assert.Error(t, err)
}

func TestUnknownLogLevel(t *testing.T) {
	s := Default()
	s.Logging.Level = "chatty"
	assert.Equal(t, slog.LevelInfo, s.LogLevel())
}

func TestAspect(t *testing.T) {
	assert.Equal(t, float32(1.5), Default().Window.Aspect())
}

func TestRuntimeSettings(t *testing.T) {
	SetFPSLimit(5000)
	assert.Equal(t, 1000, GetFPSLimit())
	SetFPSLimit(60)
	assert.Equal(t, 60, GetFPSLimit())

	before := GetShowProfiling()
	assert.Equal(t, !before, ToggleShowProfiling())
	ToggleShowProfiling()
	assert.Equal(t, before, GetShowProfiling())
}
