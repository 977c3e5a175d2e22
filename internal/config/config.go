package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// Curve sampling modes.
const (
	SamplingLegacy  = "legacy"
	SamplingUniform = "uniform"
)

// ErrInvalid wraps every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds the viewer, scene and snapshot settings. Zero values are
// replaced with defaults by Resolve.
type Config struct {
	Window    Window    `toml:"window"`
	Camera    Camera    `toml:"camera"`
	Sphere    Sphere    `toml:"sphere"`
	Curve     Curve     `toml:"curve"`
	Shaders   Shaders   `toml:"shaders"`
	Animation Animation `toml:"animation"`
	Snapshot  Snapshot  `toml:"snapshot"`

	// Directory relative paths are resolved against. Set by Load.
	baseDir string
}

type Window struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Title      string  `toml:"title"`
	Samples    int     `toml:"samples"`
	FovY       float64 `toml:"fov"`
	Near       float64 `toml:"near"`
	Far        float64 `toml:"far"`
	Background float64 `toml:"background"`
}

type Camera struct {
	Position [3]float64 `toml:"position"`
	Forward  [3]float64 `toml:"forward"`
	Up       [3]float64 `toml:"up"`
}

type Sphere struct {
	Radius  float64    `toml:"radius"`
	Center  [3]float64 `toml:"center"`
	Step    float64    `toml:"step"`
	Color   [3]float64 `toml:"color"`
	Texture string     `toml:"texture"`
}

type Curve struct {
	Control           [][3]float64 `toml:"control"`
	Sampling          string       `toml:"sampling"`
	LineBudget        int          `toml:"line_budget"`
	SamplesPerSegment int          `toml:"samples_per_segment"`
	Color             [3]float64   `toml:"color"`
}

type Shaders struct {
	Dir   string `toml:"dir"`
	Watch bool   `toml:"watch"`
}

type Animation struct {
	Dt    float64 `toml:"dt"`
	Speed float64 `toml:"speed"`
	Play  bool    `toml:"play"`
}

type Snapshot struct {
	OutputDir   string  `toml:"output_dir"`
	Frames      int     `toml:"frames"`
	Size        int     `toml:"size"`
	Supersample int     `toml:"supersample"`
	YawStep     float64 `toml:"yaw_step"`
	Workers     int     `toml:"workers"`
}

// Load reads a TOML config file. Unknown keys are rejected.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("config: parse %s:%d:%d: %w", path, row, col, err)
		}
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		cfg.baseDir = filepath.Dir(abs)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	ShaderDir   string
	OutputDir   string
	Texture     string
	Width       int
	Height      int
	Frames      int
	Size        int
	Sampling    string
	Play        bool
	WatchShader bool
}

// Resolve applies flags, fills empty fields with defaults and resolves
// relative paths against the config file directory.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.ShaderDir != "" {
		c.Shaders.Dir = flags.ShaderDir
	}
	if flags.OutputDir != "" {
		c.Snapshot.OutputDir = flags.OutputDir
	}
	if flags.Texture != "" {
		c.Sphere.Texture = flags.Texture
	}
	if flags.Width > 0 {
		c.Window.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Window.Height = flags.Height
	}
	if flags.Frames > 0 {
		c.Snapshot.Frames = flags.Frames
	}
	if flags.Size > 0 {
		c.Snapshot.Size = flags.Size
	}
	if flags.Sampling != "" {
		c.Curve.Sampling = flags.Sampling
	}
	if flags.Play {
		c.Animation.Play = true
	}
	if flags.WatchShader {
		c.Shaders.Watch = true
	}

	c.defaults()

	c.Shaders.Dir = c.path(c.Shaders.Dir)
	c.Snapshot.OutputDir = c.path(c.Snapshot.OutputDir)
	if c.Sphere.Texture != "" {
		c.Sphere.Texture = c.path(c.Sphere.Texture)
	}
}

func (c *Config) defaults() {
	w := &c.Window
	if w.Width <= 0 {
		w.Width = 800
	}
	if w.Height <= 0 {
		w.Height = 600
	}
	if w.Title == "" {
		w.Title = "orbit-renderer"
	}
	if w.Samples <= 0 {
		w.Samples = 4
	}
	if w.FovY <= 0 {
		w.FovY = 60
	}
	if w.Near <= 0 {
		w.Near = 0.01
	}
	if w.Far <= 0 {
		w.Far = 1000
	}
	if w.Background <= 0 {
		w.Background = 0.3
	}

	cam := &c.Camera
	if cam.Position == [3]float64{} {
		cam.Position = [3]float64{0, 0, 5}
	}
	if cam.Forward == [3]float64{} {
		cam.Forward = [3]float64{0, 0, -1}
	}
	if cam.Up == [3]float64{} {
		cam.Up = [3]float64{0, 1, 0}
	}

	s := &c.Sphere
	if s.Radius <= 0 {
		s.Radius = 0.3
	}
	if s.Step == 0 {
		s.Step = 5
	}
	if s.Color == [3]float64{} {
		s.Color = [3]float64{1, 0, 1}
	}

	cv := &c.Curve
	if len(cv.Control) == 0 {
		cv.Control = [][3]float64{
			{0, 0, 0}, {5, 5, 0}, {5, 5, 5}, {0, 0, 5},
			{-5, 5, 5}, {-5, 5, 0}, {0, 0, 0},
		}
	}
	if cv.Sampling == "" {
		cv.Sampling = SamplingLegacy
	}
	if cv.LineBudget == 0 {
		cv.LineBudget = 100
	}
	if cv.SamplesPerSegment == 0 {
		cv.SamplesPerSegment = 64
	}
	if cv.Color == [3]float64{} {
		cv.Color = [3]float64{0, 1, 1}
	}

	if c.Shaders.Dir == "" {
		c.Shaders.Dir = "shaders"
	}

	a := &c.Animation
	if a.Dt <= 0 {
		a.Dt = 0.01
	}
	if a.Speed <= 0 {
		a.Speed = 10
	}

	sn := &c.Snapshot
	if sn.OutputDir == "" {
		sn.OutputDir = "snapshots"
	}
	if sn.Frames <= 0 {
		sn.Frames = 36
	}
	if sn.Size <= 0 {
		sn.Size = 256
	}
	if sn.Supersample <= 0 {
		sn.Supersample = 2
	}
	if sn.YawStep == 0 {
		sn.YawStep = 10
	}
	if sn.Workers <= 0 {
		sn.Workers = runtime.NumCPU()
	}
}

func (c *Config) path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// Validate reports settings that would make startup fail. Control point
// counts are checked by the geometry package.
func (c *Config) Validate() error {
	switch {
	case c.Window.Near >= c.Window.Far:
		return fmt.Errorf("%w: window.near %g must be below window.far %g", ErrInvalid, c.Window.Near, c.Window.Far)
	case c.Window.FovY >= 180:
		return fmt.Errorf("%w: window.fov %g must be below 180", ErrInvalid, c.Window.FovY)
	case c.Sphere.Step <= 0:
		return fmt.Errorf("%w: sphere.step %g must be positive", ErrInvalid, c.Sphere.Step)
	case c.Curve.Sampling != SamplingLegacy && c.Curve.Sampling != SamplingUniform:
		return fmt.Errorf("%w: curve.sampling %q must be %q or %q", ErrInvalid, c.Curve.Sampling, SamplingLegacy, SamplingUniform)
	case c.Curve.LineBudget <= 0:
		return fmt.Errorf("%w: curve.line_budget %d must be positive", ErrInvalid, c.Curve.LineBudget)
	case c.Curve.SamplesPerSegment < 2:
		return fmt.Errorf("%w: curve.samples_per_segment %d must be at least 2", ErrInvalid, c.Curve.SamplesPerSegment)
	}
	return nil
}

// Open loads path when non-empty, then resolves flags and validates. An
// empty path yields the defaults.
func Open(path string, flags Flags) (Config, error) {
	var cfg Config
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return Config{}, err
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
