package geometry

import (
	"errors"
	"fmt"
	"math"

	"orbit-renderer/internal/mathutil"
)

// DefaultSphereStep is the angular step, in degrees, of the default sphere.
const DefaultSphereStep = 5

// ErrInvalidStep is returned for a sphere step that is not positive or does
// not divide 180 degrees evenly.
var ErrInvalidStep = errors.New("geometry: invalid sphere step")

// GenerateSphere tessellates a UV-sphere of the given radius around center.
//
// Polar angle j runs from 0 to 180 and azimuth i from 0 to 360, both
// inclusive, in steps of stepDeg degrees. Each (i, j) cell contributes its
// upper triangle; the lower triangle is skipped in the first and last polar
// band. The last band (j = 180, reaching past the pole) and the i = 360
// column overlap earlier geometry; both are part of the output layout.
//
// Texture coordinates come from a running (u, v) pair starting at (1, 1):
// u drops by stepDeg/360 per azimuth step and resets each band, v drops by
// twice that per band.
func GenerateSphere(radius float64, center mathutil.Vec3, stepDeg float64) (*Mesh, error) {
	bands, err := sphereBands(stepDeg)
	if err != nil {
		return nil, err
	}
	cols := 2 * bands

	n := vertexCount(bands)
	mesh := &Mesh{
		Positions: make([]mathutil.Vec3, 0, n),
		UVs:       make([]mathutil.Vec2, 0, n),
	}

	point := func(i, j float64) mathutil.Vec3 {
		ri, rj := mathutil.Deg2Rad(i), mathutil.Deg2Rad(j)
		return mathutil.Vec3{
			radius*math.Cos(ri)*math.Sin(rj) + center[0],
			radius*math.Cos(rj) + center[1],
			radius*math.Sin(ri)*math.Sin(rj) + center[2],
		}
	}

	inc := stepDeg / 360
	v := 1.0
	for b := 0; b <= bands; b++ {
		j := float64(b) * stepDeg
		u := 1.0
		for col := 0; col <= cols; col++ {
			i := float64(col) * stepDeg

			p1 := point(i, j)
			p2 := point(i, j+stepDeg)
			p3 := point(i+stepDeg, j+stepDeg)

			mesh.Positions = append(mesh.Positions, p1, p2, p3)
			mesh.UVs = append(mesh.UVs,
				mathutil.Vec2{u, v},
				mathutil.Vec2{u, v - 2*inc},
				mathutil.Vec2{u - inc, v - 2*inc},
			)

			if b != 0 && b != bands {
				p4 := point(i+stepDeg, j)
				mesh.Positions = append(mesh.Positions, p1, p3, p4)
				mesh.UVs = append(mesh.UVs,
					mathutil.Vec2{u, v},
					mathutil.Vec2{u - inc, v - 2*inc},
					mathutil.Vec2{u - inc, v},
				)
			}
			u -= inc
		}
		v -= 2 * inc
	}

	return mesh, nil
}

// SphereVertexCount returns the number of vertices GenerateSphere emits for
// stepDeg. It does not depend on radius or center. Steps GenerateSphere
// rejects are rejected here with the same error.
func SphereVertexCount(stepDeg float64) (int, error) {
	bands, err := sphereBands(stepDeg)
	if err != nil {
		return 0, err
	}
	return vertexCount(bands), nil
}

// sphereBands returns 180/stepDeg, requiring it to be a positive integer.
func sphereBands(stepDeg float64) (int, error) {
	if !(stepDeg > 0) || stepDeg > 180 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidStep, stepDeg)
	}
	bands := int(math.Round(180 / stepDeg))
	if math.Abs(float64(bands)*stepDeg-180) > 1e-9 {
		return 0, fmt.Errorf("%w: %v does not divide 180", ErrInvalidStep, stepDeg)
	}
	return bands, nil
}

func vertexCount(bands int) int {
	cols := 2 * bands
	// (bands+1) bands with an upper triangle, bands-1 of them with a lower one.
	return 6 * bands * (cols + 1)
}
