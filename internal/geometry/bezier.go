package geometry

import (
	"errors"
	"fmt"

	"orbit-renderer/internal/mathutil"
)

const (
	// DefaultLineBudget is the nominal line count for SampleCurve.
	DefaultLineBudget = 100

	// CurveStep is the parameter increment between SampleCurve samples.
	CurveStep = 0.01
)

var (
	// ErrControlPointCount is matched by every *ControlPointError.
	ErrControlPointCount = errors.New("geometry: control point count is not 3n+1")

	// ErrInvalidBudget is returned for a non-positive sample budget.
	ErrInvalidBudget = errors.New("geometry: sample budget must be positive")
)

// ControlPointError reports a control polygon whose length is not 3n+1
// with n >= 1.
type ControlPointError struct {
	Count int
}

func (e *ControlPointError) Error() string {
	return fmt.Sprintf("geometry: %d control points, want 3n+1 (4, 7, 10, ...)", e.Count)
}

func (e *ControlPointError) Is(target error) bool {
	return target == ErrControlPointCount
}

// ValidateControlPoints checks the 3n+1 invariant and returns the segment
// count n.
func ValidateControlPoints(control []mathutil.Vec3) (int, error) {
	n := len(control)
	if n < 4 || (n-1)%3 != 0 {
		return 0, &ControlPointError{Count: n}
	}
	return (n - 1) / 3, nil
}

// CubicPoint evaluates the cubic Bezier p0..p3 at t by de Casteljau
// interpolation. t is not clamped.
func CubicPoint(p0, p1, p2, p3 mathutil.Vec3, t float64) mathutil.Vec3 {
	ab := mathutil.Lerp(p0, p1, t)
	bc := mathutil.Lerp(p1, p2, t)
	cd := mathutil.Lerp(p2, p3, t)
	abbc := mathutil.Lerp(ab, bc, t)
	bccd := mathutil.Lerp(bc, cd, t)
	return mathutil.Lerp(abbc, bccd, t)
}

// SampleCurve flattens a piecewise cubic Bezier into a line strip.
//
// Consecutive segments share an endpoint: segment k uses control points
// 3k..3k+3. Each segment is sampled 2*lineBudget/segments times at
// t = 0, 0.01, 0.02, ... so the parameter range covered depends on the
// segment count: two segments reach t = 0.99, one segment runs past t = 1
// (extrapolating), three or more stop short of the segment end.
// SampleCurveUniform always covers [0, 1].
func SampleCurve(control []mathutil.Vec3, lineBudget int) ([]mathutil.Vec3, error) {
	segments, err := ValidateControlPoints(control)
	if err != nil {
		return nil, err
	}
	if lineBudget <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBudget, lineBudget)
	}

	steps := 2 * lineBudget / segments
	if steps == 0 {
		return nil, fmt.Errorf("%w: %d lines for %d segments", ErrInvalidBudget, lineBudget, segments)
	}
	out := make([]mathutil.Vec3, 0, steps*segments)
	for s := 0; s < segments; s++ {
		p := control[3*s : 3*s+4]
		for k := 0; k < steps; k++ {
			out = append(out, CubicPoint(p[0], p[1], p[2], p[3], float64(k)*CurveStep))
		}
	}
	return out, nil
}

// SampleCurveUniform flattens the curve with samplesPerSegment evenly spaced
// parameters per segment covering [0, 1]. Joins between segments are
// emitted once.
func SampleCurveUniform(control []mathutil.Vec3, samplesPerSegment int) ([]mathutil.Vec3, error) {
	segments, err := ValidateControlPoints(control)
	if err != nil {
		return nil, err
	}
	if samplesPerSegment < 2 {
		return nil, fmt.Errorf("%w: %d samples per segment, want at least 2", ErrInvalidBudget, samplesPerSegment)
	}

	last := samplesPerSegment - 1
	out := make([]mathutil.Vec3, 0, segments*last+1)
	for s := 0; s < segments; s++ {
		p := control[3*s : 3*s+4]
		k := 0
		if s > 0 {
			k = 1
		}
		for ; k <= last; k++ {
			out = append(out, CubicPoint(p[0], p[1], p[2], p[3], float64(k)/float64(last)))
		}
	}
	return out, nil
}

// DefaultControlPolygon returns the closed seven-point control polygon of
// the default scene: two cubic segments starting and ending at the origin.
func DefaultControlPolygon() []mathutil.Vec3 {
	return []mathutil.Vec3{
		{0, 0, 0},
		{5, 5, 0},
		{5, 5, 5},
		{0, 0, 5},
		{-5, 5, 5},
		{-5, 5, 0},
		{0, 0, 0},
	}
}
