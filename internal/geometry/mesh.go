// Package geometry generates the procedural meshes the renderer draws: a
// UV-sphere triangle list and a line strip sampled from a piecewise cubic
// Bezier curve.
package geometry

import "orbit-renderer/internal/mathutil"

// Mesh is a flat, non-indexed triangle list. Every three consecutive
// positions form one triangle; shared vertices are repeated. UVs, when
// present, run parallel to Positions.
type Mesh struct {
	Positions []mathutil.Vec3
	UVs       []mathutil.Vec2
}

func (m *Mesh) VertexCount() int { return len(m.Positions) }

func (m *Mesh) TriangleCount() int { return len(m.Positions) / 3 }
