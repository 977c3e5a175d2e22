package geometry

import (
	"math"

	"orbit-renderer/internal/mathutil"
)

// PolylineLength returns the summed length of the segments of a line strip.
func PolylineLength(points []mathutil.Vec3) float64 {
	var l float64
	for i := 1; i < len(points); i++ {
		l += points[i].Dist(points[i-1])
	}
	return l
}

// PointAtDistance walks d units along the strip and returns the point
// reached. d wraps modulo the strip length, so a closed curve can be
// traversed indefinitely. An empty strip yields the origin.
func PointAtDistance(points []mathutil.Vec3, d float64) mathutil.Vec3 {
	switch len(points) {
	case 0:
		return mathutil.Origin
	case 1:
		return points[0]
	}

	total := PolylineLength(points)
	if total == 0 {
		return points[0]
	}
	d = math.Mod(d, total)
	if d < 0 {
		d += total
	}

	for i := 1; i < len(points); i++ {
		seg := points[i].Dist(points[i-1])
		if d <= seg {
			if seg == 0 {
				return points[i]
			}
			return mathutil.Lerp(points[i-1], points[i], d/seg)
		}
		d -= seg
	}
	return points[len(points)-1]
}
