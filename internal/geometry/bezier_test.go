package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbit-renderer/internal/mathutil"
)

func TestCubicPoint(t *testing.T) {
	p0 := mathutil.Vec3{0, 0, 0}
	p1 := mathutil.Vec3{1, 0, 0}
	p2 := mathutil.Vec3{2, 0, 0}
	p3 := mathutil.Vec3{3, 0, 0}

	assert.Equal(t, p0, CubicPoint(p0, p1, p2, p3, 0))
	assert.True(t, p3.ApproxEqual(CubicPoint(p0, p1, p2, p3, 1), 1e-12))
	assert.True(t, mathutil.Vec3{1.5, 0, 0}.ApproxEqual(CubicPoint(p0, p1, p2, p3, 0.5), 1e-12))
}

func TestSampleCurveDefault(t *testing.T) {
	control := DefaultControlPolygon()
	pts, err := SampleCurve(control, DefaultLineBudget)
	require.NoError(t, err)

	// Two segments, 2*100/2 samples each.
	require.Len(t, pts, 200)

	// t = 0 of each segment reproduces its first control point.
	assert.True(t, control[0].ApproxEqual(pts[0], 1e-12))
	assert.True(t, control[3].ApproxEqual(pts[100], 1e-12))

	// The last sample of segment 0 (t = 0.99) lies near the shared point.
	assert.Less(t, pts[99].Dist(pts[100]), 0.25)
	assert.Less(t, pts[199].Dist(control[6]), 0.25)
}

func TestSampleCurveSingleSegmentExtrapolates(t *testing.T) {
	control := DefaultControlPolygon()[:4]
	pts, err := SampleCurve(control, DefaultLineBudget)
	require.NoError(t, err)
	require.Len(t, pts, 200)
	for _, p := range pts {
		for _, c := range p {
			require.False(t, math.IsNaN(c) || math.IsInf(c, 0))
		}
	}
}

func TestSampleCurveRejectsBadCount(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 5, 6, 8} {
		control := make([]mathutil.Vec3, n)
		_, err := SampleCurve(control, DefaultLineBudget)
		require.Error(t, err, "n = %d", n)
		assert.True(t, errors.Is(err, ErrControlPointCount))

		var cpe *ControlPointError
		require.True(t, errors.As(err, &cpe))
		assert.Equal(t, n, cpe.Count)

		_, err = SampleCurveUniform(control, 10)
		assert.True(t, errors.Is(err, ErrControlPointCount))
	}
}

func TestSampleCurveRejectsBudget(t *testing.T) {
	_, err := SampleCurve(DefaultControlPolygon(), 0)
	assert.True(t, errors.Is(err, ErrInvalidBudget))

	_, err = SampleCurveUniform(DefaultControlPolygon(), 1)
	assert.True(t, errors.Is(err, ErrInvalidBudget))

	// Three segments with a budget of one line: 2*1/3 samples per segment
	// truncates to zero.
	control := make([]mathutil.Vec3, 10)
	for i := range control {
		control[i] = mathutil.Vec3{float64(i), 0, 0}
	}
	pts, err := SampleCurve(control, 1)
	assert.True(t, errors.Is(err, ErrInvalidBudget), "err %v", err)
	assert.Empty(t, pts)

	pts, err = SampleCurve(control, 2)
	require.NoError(t, err)
	assert.Len(t, pts, 3)
}

func TestSampleCurveUniform(t *testing.T) {
	control := DefaultControlPolygon()
	pts, err := SampleCurveUniform(control, 50)
	require.NoError(t, err)

	require.Len(t, pts, 2*49+1)
	assert.True(t, control[0].ApproxEqual(pts[0], 1e-12))
	assert.True(t, control[3].ApproxEqual(pts[49], 1e-12))
	assert.True(t, control[6].ApproxEqual(pts[len(pts)-1], 1e-12))
}

func TestPolyline(t *testing.T) {
	pts := []mathutil.Vec3{{0, 0, 0}, {3, 0, 0}, {3, 4, 0}}

	assert.InDelta(t, 7.0, PolylineLength(pts), 1e-12)

	tests := []struct {
		d    float64
		want mathutil.Vec3
	}{
		{0, mathutil.Vec3{0, 0, 0}},
		{1.5, mathutil.Vec3{1.5, 0, 0}},
		{5, mathutil.Vec3{3, 2, 0}},
		{12, mathutil.Vec3{3, 2, 0}},
		{-2, mathutil.Vec3{3, 2, 0}},
	}
	for _, tt := range tests {
		got := PointAtDistance(pts, tt.d)
		assert.True(t, tt.want.ApproxEqual(got, 1e-12), "d=%v have %v want %v", tt.d, got, tt.want)
	}

	assert.Equal(t, mathutil.Origin, PointAtDistance(nil, 3))
	assert.Equal(t, pts[1], PointAtDistance(pts[1:2], 3))
}
