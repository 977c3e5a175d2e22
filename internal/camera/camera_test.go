package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbit-renderer/internal/mathutil"
)

const eps = 1e-9

func newDefault() *Camera {
	return New(mathutil.Vec3{0, 0, 5}, mathutil.Vec3{0, 0, -1}, mathutil.Vec3{0, 1, 0})
}

func assertVec(t *testing.T, want, have mathutil.Vec3, msg string) {
	t.Helper()
	assert.True(t, want.ApproxEqual(have, 1e-9), "%s\nhave %v\nwant %v", msg, have, want)
}

func TestNew(t *testing.T) {
	c := New(mathutil.Vec3{0, 0, 5}, mathutil.Vec3{0, 0, -5}, mathutil.Vec3{0, 2, 0})

	assert.Equal(t, 5.0, c.FocusDistance())
	assertVec(t, mathutil.Vec3{0, 0, -1}, c.Forward(), "forward")
	assertVec(t, mathutil.Vec3{0, 1, 0}, c.Up(), "up")
	assertVec(t, mathutil.Origin, c.Focus(), "focus")
	assertVec(t, mathutil.Vec3{-1, 0, 0}, c.Binormal(), "binormal")
}

func TestRotateAroundFullTurn(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		axis := mathutil.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}.Normalize()
		v := mathutil.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		assertVec(t, v, RotateAround(v, axis, 2*math.Pi), "full turn")
	}
}

func TestRotateLeftRightThenMove(t *testing.T) {
	c := newDefault()

	c.RotateLeftRight(math.Pi / 2)
	assertVec(t, mathutil.Vec3{-1, 0, 0}, c.Forward(), "forward after yaw")
	assertVec(t, mathutil.Vec3{0, 1, 0}, c.Up(), "up after yaw")
	assertVec(t, mathutil.Vec3{0, 0, 5}, c.Position(), "yaw must not move the eye")

	c.Move(mathutil.Vec3{0, 0, 1})
	assertVec(t, mathutil.Vec3{-1, 0, 5}, c.Position(), "position after move")
}

func TestMoveLocalFrame(t *testing.T) {
	c := newDefault()
	c.Move(mathutil.Vec3{1, 2, 3})
	// binormal (-1,0,0), up (0,1,0), forward (0,0,-1)
	assertVec(t, mathutil.Vec3{-1, 2, 2}, c.Position(), "position")
}

func TestRotateUpDown(t *testing.T) {
	c := newDefault()
	c.RotateUpDown(math.Pi / 2)

	// Positive pitch about the binormal (-1,0,0) turns forward toward -y.
	assertVec(t, mathutil.Vec3{0, -1, 0}, c.Forward(), "forward")
	assertVec(t, mathutil.Vec3{0, 0, -1}, c.Up(), "up")
	assertVec(t, mathutil.Vec3{0, 0, 5}, c.Position(), "position")
}

func TestRotateRoll(t *testing.T) {
	c := newDefault()
	c.RotateRoll(math.Pi / 2)

	assertVec(t, mathutil.Vec3{0, 0, -1}, c.Forward(), "forward")
	assertVec(t, mathutil.Vec3{1, 0, 0}, c.Up(), "up")
}

func TestRotateAroundFocus(t *testing.T) {
	c := New(mathutil.Vec3{0, 0, 5}, mathutil.Vec3{0, 0, -5}, mathutil.Vec3{0, 1, 0})

	c.RotateAroundFocus(math.Pi/2, 0)
	assertVec(t, mathutil.Vec3{-5, 0, 0}, c.Position(), "position after yaw orbit")
	assertVec(t, mathutil.Vec3{1, 0, 0}, c.Forward(), "forward after yaw orbit")
	assertVec(t, mathutil.Origin, c.Focus(), "focus")

	c.RotateAroundFocus(0.3, -0.8)
	assert.InDelta(t, 5.0, c.Position().Len(), eps)
	assertVec(t, mathutil.Origin, c.Focus(), "focus after mixed orbit")
	assertVec(t, c.Position().Neg().Normalize(), c.Forward(), "forward faces focus")
}

func TestOrbitKeepsFocusFixed(t *testing.T) {
	c := newDefault()
	focus := c.Focus()
	for i := 0; i < 500; i++ {
		c.RotateAroundFocus(0.01, 0.02)
	}
	assert.True(t, focus.ApproxEqual(c.Focus(), 1e-9))
	assert.InDelta(t, 1.0, c.Position().Dist(focus), 1e-9)
}

func TestOrthonormalDrift(t *testing.T) {
	c := newDefault()
	rng := rand.New(rand.NewSource(42))
	angle := func() float64 { return (rng.Float64()*2 - 1) * math.Pi }

	for i := 0; i < 10000; i++ {
		switch rng.Intn(4) {
		case 0:
			c.RotateLeftRight(angle())
		case 1:
			c.RotateUpDown(angle())
		case 2:
			c.RotateRoll(angle())
		case 3:
			c.RotateAroundFocus(angle(), angle())
		}
		require.Less(t, math.Abs(c.Up().Dot(c.Forward())), 1e-9, "step %d", i)
		require.InDelta(t, 1.0, c.Up().Len(), 1e-9, "step %d", i)
		require.InDelta(t, 1.0, c.Forward().Len(), 1e-9, "step %d", i)
	}
}

func TestZoom(t *testing.T) {
	c := New(mathutil.Vec3{0, 0, 5}, mathutil.Vec3{0, 0, -5}, mathutil.Vec3{0, 1, 0})

	c.Zoom(1)
	assertVec(t, mathutil.Vec3{0, 0, 4}, c.Position(), "zoom in")
	assert.InDelta(t, 4.0, c.FocusDistance(), eps)
	assertVec(t, mathutil.Origin, c.Focus(), "focus after zoom")

	c.Zoom(-2)
	assert.InDelta(t, 6.0, c.FocusDistance(), eps)

	c.Zoom(100)
	assert.InDelta(t, MinFocusDistance, c.FocusDistance(), eps)
	assertVec(t, mathutil.Origin, c.Focus(), "focus after clamped zoom")
}

func TestLookAtMatrixTargetsOrigin(t *testing.T) {
	c := newDefault()
	v := c.LookAtMatrix()
	assertVec(t, mathutil.Vec3{0, 0, -5}, v.MulPoint(mathutil.Origin), "origin in view space")

	// Moving sideways keeps the origin on the view axis.
	c.Move(mathutil.Vec3{3, 0, 0})
	o := c.LookAtMatrix().MulPoint(mathutil.Origin)
	assert.InDelta(t, 0.0, o[0], eps)
	assert.InDelta(t, 0.0, o[1], eps)
}
