// Package camera implements the orbit / free-fly camera: a position plus an
// orthonormal forward/up basis that is updated incrementally by rotation and
// translation commands.
//
// Degenerate input (zero-length forward or up, NaN angles) is not guarded and
// propagates as NaN through the basis.
package camera

import (
	"orbit-renderer/internal/mathutil"
)

// MinFocusDistance is the closest Zoom lets the eye get to the focus point.
const MinFocusDistance = 0.05

// Camera holds the eye position and view basis. The zero value is not usable;
// construct with New.
type Camera struct {
	focusDist float64
	pos       mathutil.Vec3
	up        mathutil.Vec3
	forward   mathutil.Vec3
}

// New creates a camera at pos looking along forward. The focus distance is
// fixed here as len(forward); forward and up are then normalized.
func New(pos, forward, up mathutil.Vec3) *Camera {
	c := &Camera{
		focusDist: forward.Len(),
		pos:       pos,
		up:        up,
		forward:   forward,
	}
	c.orthonormalize()
	return c
}

// RotateAround rotates vec about axis by radians (right-hand rule) using the
// half-angle quaternion construction. axis need not be unit length.
func RotateAround(vec, axis mathutil.Vec3, radians float64) mathutil.Vec3 {
	return mathutil.QuatFromAxisAngle(axis, radians).Rotate(vec)
}

// RotateAroundFocus orbits the eye around the focus point
// position + forward*focusDistance: deltaX yaws about up, deltaY pitches
// about the binormal. The focus point does not move.
func (c *Camera) RotateAroundFocus(deltaX, deltaY float64) {
	focus := c.Focus()
	diff := c.pos.Sub(focus)

	diff = RotateAround(diff, c.up, -deltaX)
	c.forward = diff.Neg().Normalize()

	bi := c.up.Cross(c.forward).Normalize()

	diff = RotateAround(diff, bi, deltaY)
	c.up = RotateAround(c.up, bi, deltaY)
	c.forward = diff.Neg().Normalize()

	c.pos = focus.Add(diff)
	c.orthonormalize()
}

// RotateUpDown pitches forward about the binormal and re-derives up.
func (c *Camera) RotateUpDown(t float64) {
	bi := c.up.Cross(c.forward)
	c.forward = RotateAround(c.forward, bi, t).Normalize()
	c.up = c.forward.Cross(bi).Normalize()
	c.orthonormalize()
}

// RotateLeftRight yaws forward about up.
func (c *Camera) RotateLeftRight(t float64) {
	c.forward = RotateAround(c.forward, c.up, t).Normalize()
	c.orthonormalize()
}

// RotateRoll rolls up about forward.
func (c *Camera) RotateRoll(t float64) {
	c.up = RotateAround(c.up, c.forward, t).Normalize()
	c.orthonormalize()
}

// Move translates the eye in the local frame: offset.x along the binormal,
// offset.y along up and offset.z along forward.
func (c *Camera) Move(offset mathutil.Vec3) {
	bi := c.Binormal()
	c.pos = c.pos.
		Add(bi.Scale(offset[0])).
		Add(c.up.Scale(offset[1])).
		Add(c.forward.Scale(offset[2]))
}

// Zoom moves the eye delta units along forward, toward the focus for
// positive delta, keeping the focus point where it was.
func (c *Camera) Zoom(delta float64) {
	if c.focusDist-delta < MinFocusDistance {
		delta = c.focusDist - MinFocusDistance
	}
	c.pos = c.pos.Add(c.forward.Scale(delta))
	c.focusDist -= delta
}

// LookAtMatrix returns the view matrix. It aims at the world origin rather
// than the orbit focus: the scene holds a single object centred there.
func (c *Camera) LookAtMatrix() mathutil.Mat4 {
	return mathutil.LookAt(c.pos, mathutil.Origin, c.up)
}

func (c *Camera) FocusDistance() float64 { return c.focusDist }

func (c *Camera) Position() mathutil.Vec3 { return c.pos }

func (c *Camera) Forward() mathutil.Vec3 { return c.forward }

func (c *Camera) Up() mathutil.Vec3 { return c.up }

// Binormal returns normalize(up × forward). In this right-handed frame it
// points to the viewer's left.
func (c *Camera) Binormal() mathutil.Vec3 {
	return c.up.Cross(c.forward).Normalize()
}

// Focus returns the point the camera orbits around.
func (c *Camera) Focus() mathutil.Vec3 {
	return c.pos.Add(c.forward.Scale(c.focusDist))
}

// orthonormalize normalizes forward, then projects forward out of up
// (Gram-Schmidt) and normalizes up.
func (c *Camera) orthonormalize() {
	c.forward = c.forward.Normalize()
	c.up = c.up.Sub(c.forward.Scale(c.up.Dot(c.forward))).Normalize()
}
