// Package app owns the per-frame orchestration: it maps input to camera
// commands, advances the animation, recomputes transforms and issues draw
// calls against a render.Device.
package app

import (
	"fmt"
	"log/slog"

	"orbit-renderer/internal/camera"
	"orbit-renderer/internal/config"
	"orbit-renderer/internal/geometry"
	"orbit-renderer/internal/input"
	"orbit-renderer/internal/mathutil"
	"orbit-renderer/internal/render"
)

// State is everything the frame loop mutates. It is owned by a single
// goroutine; nothing in it is safe for concurrent use.
type State struct {
	Camera *camera.Camera
	Input  *input.State

	Sphere *geometry.Mesh
	Curve  []mathutil.Vec3

	// P, V and M compose to MVP = P * V * M for the sphere; CurveM replaces
	// M for the curve.
	P, V, M, CurveM mathutil.Mat4

	// T is the animation parameter, advanced by Dt per frame while playing.
	T float64

	Width, Height int

	win         config.Window
	anim        config.Animation
	curveLength float64
	background  render.Color
	sphereColor render.Color
	curveColor  render.Color
	sphereBuf   render.Buffer
	curveBuf    render.Buffer
}

// New builds the scene from cfg: the sphere mesh, the sampled curve and the
// camera. cfg must already be resolved. Invalid sphere steps and control
// polygons are returned as errors.
func New(cfg config.Config) (*State, error) {
	sphere, err := geometry.GenerateSphere(cfg.Sphere.Radius, mathutil.Vec3(cfg.Sphere.Center), cfg.Sphere.Step)
	if err != nil {
		return nil, fmt.Errorf("app: sphere: %w", err)
	}

	curve, err := SampleCurve(cfg.Curve)
	if err != nil {
		return nil, fmt.Errorf("app: curve: %w", err)
	}

	s := &State{
		Camera: camera.New(
			mathutil.Vec3(cfg.Camera.Position),
			mathutil.Vec3(cfg.Camera.Forward),
			mathutil.Vec3(cfg.Camera.Up),
		),
		Input:       input.NewState(),
		Sphere:      sphere,
		Curve:       curve,
		M:           mathutil.Mat4Identity(),
		CurveM:      mathutil.Mat4Identity(),
		win:         cfg.Window,
		anim:        cfg.Animation,
		curveLength: geometry.PolylineLength(curve),
		background:  render.Grey(cfg.Window.Background),
		sphereColor: color(cfg.Sphere.Color),
		curveColor:  color(cfg.Curve.Color),
	}
	s.Input.Play = cfg.Animation.Play
	s.V = s.Camera.LookAtMatrix()
	s.Resize(cfg.Window.Width, cfg.Window.Height)
	return s, nil
}

// SampleCurve flattens the configured control polygon with the configured
// sampling mode.
func SampleCurve(c config.Curve) ([]mathutil.Vec3, error) {
	control := make([]mathutil.Vec3, len(c.Control))
	for i, p := range c.Control {
		control[i] = p
	}
	if c.Sampling == config.SamplingUniform {
		return geometry.SampleCurveUniform(control, c.SamplesPerSegment)
	}
	return geometry.SampleCurve(control, c.LineBudget)
}

func color(c [3]float64) render.Color {
	return render.Color{R: c[0], G: c[1], B: c[2]}
}

// Init uploads the sphere and curve once. Buffers stay read-only afterwards.
func (s *State) Init(dev render.Device) error {
	var err error
	s.sphereBuf, err = dev.Upload(s.Sphere.Positions, s.Sphere.UVs)
	if err != nil {
		return fmt.Errorf("app: upload sphere: %w", err)
	}
	s.curveBuf, err = dev.Upload(s.Curve, nil)
	if err != nil {
		return fmt.Errorf("app: upload curve: %w", err)
	}
	slog.Debug("geometry uploaded",
		"sphere_vertices", s.sphereBuf.Len(),
		"curve_vertices", s.curveBuf.Len(),
		"curve_length", s.curveLength)
	return nil
}

// Resize recomputes the projection for a w×h framebuffer and reports
// whether the size changed. Non-positive sizes (a minimized window) are
// ignored.
func (s *State) Resize(w, h int) bool {
	if w <= 0 || h <= 0 || (w == s.Width && h == s.Height) {
		return false
	}
	s.Width, s.Height = w, h
	s.P = mathutil.Perspective(s.win.FovY, float64(w)/float64(h), s.win.Near, s.win.Far)
	return true
}

// Frame applies events, advances the animation, updates the camera and
// draws the scene.
func (s *State) Frame(dev render.Device, events []input.Event) {
	s.Update(events)
	s.Draw(dev)
}

// Update runs the non-drawing half of a frame.
func (s *State) Update(events []input.Event) {
	wasPlaying := s.Input.Play
	s.Input.Apply(events)
	if s.Input.Play != wasPlaying {
		slog.Debug("animation toggled", "play", s.Input.Play, "t", s.T)
	}

	if s.Input.Play {
		s.T += s.anim.Dt
		s.animate()
	}

	s.moveCamera()
	s.V = s.Camera.LookAtMatrix()
}

// animate moves the sphere along the curve at a constant arc-length speed.
func (s *State) animate() {
	p := geometry.PointAtDistance(s.Curve, s.T*s.anim.Speed)
	s.M = mathutil.Translate(p)
}

func (s *State) moveCamera() {
	in := s.Input
	cam := s.Camera

	if in.RotateUpDown != 0 {
		cam.RotateUpDown(float64(in.RotateUpDown) * in.RotationSpeed)
	}
	if in.RotateLeftRight != 0 {
		cam.RotateLeftRight(float64(in.RotateLeftRight) * in.RotationSpeed)
	}
	if in.RotateRoll != 0 {
		cam.RotateRoll(float64(in.RotateRoll) * in.RotationSpeed)
	}
	if in.Moving() {
		cam.Move(mathutil.Vec3{
			float64(in.MoveLeftRight) * in.PanningSpeed,
			float64(in.MoveUpDown) * in.PanningSpeed,
			float64(in.MoveBackForward) * in.PanningSpeed,
		})
	}

	if dx, dy := in.TakeOrbit(); dx != 0 || dy != 0 {
		cam.RotateAroundFocus(dx, dy)
	}
	if z := in.TakeZoom(); z != 0 {
		cam.Zoom(z)
	}
}

// MVP returns P * V * model.
func (s *State) MVP(model mathutil.Mat4) mathutil.Mat4 {
	return mathutil.Mat4Mul(s.P, mathutil.Mat4Mul(s.V, model))
}

// Draw clears the target and draws the sphere then the curve.
func (s *State) Draw(dev render.Device) {
	dev.Clear(s.background)

	dev.SetMatrix(render.UniformMVP, s.MVP(s.M))
	dev.SetColor(render.UniformColor, s.sphereColor)
	dev.Draw(s.sphereBuf, render.TriangleList, s.sphereBuf.Len())

	dev.SetMatrix(render.UniformMVP, s.MVP(s.CurveM))
	dev.SetColor(render.UniformColor, s.curveColor)
	dev.Draw(s.curveBuf, render.LineStrip, s.curveBuf.Len())
}

// CurveLength is the arc length of the sampled curve.
func (s *State) CurveLength() float64 { return s.curveLength }
