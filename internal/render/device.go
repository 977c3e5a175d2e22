// Package render defines the contract between the frame loop and a graphics
// backend. The OpenGL window and the headless rasterizer both implement it.
package render

import "orbit-renderer/internal/mathutil"

// Uniform names shared by the shipped shaders and every Device.
const (
	UniformMVP   = "MVP"
	UniformColor = "inputColor"
)

// Topology selects how Draw assembles uploaded vertices.
type Topology int

const (
	TriangleList Topology = iota
	LineStrip
)

func (t Topology) String() string {
	switch t {
	case TriangleList:
		return "triangles"
	case LineStrip:
		return "line-strip"
	}
	return "unknown"
}

// Color is a linear RGB colour in [0, 1].
type Color struct {
	R, G, B float64
}

// Grey returns the colour (v, v, v).
func Grey(v float64) Color { return Color{v, v, v} }

// Buffer is an opaque handle to vertex data owned by a Device.
type Buffer interface {
	// Len is the number of vertices uploaded.
	Len() int
}

// Device is a minimal immediate-mode graphics context. Uniform state set
// through SetMatrix and SetColor applies to subsequent Draw calls.
type Device interface {
	Upload(positions []mathutil.Vec3, uvs []mathutil.Vec2) (Buffer, error)
	SetMatrix(name string, m mathutil.Mat4)
	SetColor(name string, c Color)
	Draw(b Buffer, topo Topology, count int)
	Clear(c Color)
}
