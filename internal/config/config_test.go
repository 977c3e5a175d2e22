package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orbit.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndResolve(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 1024
height = 768

[camera]
position = [0.0, 2.0, 8.0]

[curve]
sampling = "uniform"
control = [[0.0, 0.0, 0.0], [1.0, 1.0, 0.0], [2.0, 1.0, 0.0], [3.0, 0.0, 0.0]]

[shaders]
dir = "glsl"

[snapshot]
output_dir = "/tmp/frames"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{})
	require.NoError(t, cfg.Validate())

	dir := filepath.Dir(path)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.Equal(t, [3]float64{0, 2, 8}, cfg.Camera.Position)
	assert.Equal(t, [3]float64{0, 0, -1}, cfg.Camera.Forward)
	assert.Equal(t, SamplingUniform, cfg.Curve.Sampling)
	assert.Len(t, cfg.Curve.Control, 4)
	assert.Equal(t, filepath.Join(dir, "glsl"), cfg.Shaders.Dir)
	assert.Equal(t, "/tmp/frames", cfg.Snapshot.OutputDir)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, 60.0, cfg.Window.FovY)
	assert.Equal(t, 0.01, cfg.Window.Near)
	assert.Equal(t, 1000.0, cfg.Window.Far)
	assert.Equal(t, 0.3, cfg.Window.Background)
	assert.Equal(t, [3]float64{0, 0, 5}, cfg.Camera.Position)
	assert.Equal(t, [3]float64{0, 1, 0}, cfg.Camera.Up)
	assert.Equal(t, 0.3, cfg.Sphere.Radius)
	assert.Equal(t, 5.0, cfg.Sphere.Step)
	assert.Equal(t, [3]float64{1, 0, 1}, cfg.Sphere.Color)
	assert.Equal(t, [3]float64{0, 1, 1}, cfg.Curve.Color)
	assert.Len(t, cfg.Curve.Control, 7)
	assert.Equal(t, SamplingLegacy, cfg.Curve.Sampling)
	assert.Equal(t, 100, cfg.Curve.LineBudget)
	assert.Equal(t, 0.01, cfg.Animation.Dt)
	assert.Equal(t, "shaders", cfg.Shaders.Dir)
	assert.Positive(t, cfg.Snapshot.Workers)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 1024

[snapshot]
frames = 12
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{Width: 640, Frames: 3, OutputDir: "out", Play: true})

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 3, cfg.Snapshot.Frames)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "out"), cfg.Snapshot.OutputDir)
	assert.True(t, cfg.Animation.Play)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, `
[window]
widht = 10
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"near beyond far", func(c *Config) { c.Window.Near = 2000 }},
		{"fov", func(c *Config) { c.Window.FovY = 200 }},
		{"negative step", func(c *Config) { c.Sphere.Step = -5 }},
		{"sampling", func(c *Config) { c.Curve.Sampling = "adaptive" }},
		{"budget", func(c *Config) { c.Curve.LineBudget = -1 }},
		{"samples per segment", func(c *Config) { c.Curve.SamplesPerSegment = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.Resolve(Flags{})
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestOpen(t *testing.T) {
	cfg, err := Open("", Flags{Sampling: SamplingUniform})
	require.NoError(t, err)
	assert.Equal(t, SamplingUniform, cfg.Curve.Sampling)

	_, err = Open("", Flags{Sampling: "spline"})
	assert.ErrorIs(t, err, ErrInvalid)

	path := writeConfig(t, "[sphere]\nradius = 2.0\n")
	cfg, err = Open(path, Flags{})
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Sphere.Radius)
}

func TestExampleConfig(t *testing.T) {
	cfg, err := Open(filepath.Join("..", "..", "orbit.toml"), Flags{})
	require.NoError(t, err)
	assert.Equal(t, [3]float64{0, 0, -5}, cfg.Camera.Forward)
	assert.Len(t, cfg.Curve.Control, 7)
	assert.Equal(t, 10.0, cfg.Snapshot.YawStep)
}
