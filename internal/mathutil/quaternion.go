package mathutil

import "math"

// Quat represents a quaternion (x, y, z, w).
type Quat [4]float64

// QuatFromAxisAngle returns the rotation of rad radians about axis using
// the half-angle form (n·sin(rad/2), cos(rad/2)). axis is normalized here.
func QuatFromAxisAngle(axis Vec3, rad float64) Quat {
	half := rad * 0.5
	s, c := math.Sin(half), math.Cos(half)
	n := axis.Normalize()
	return Quat{n[0] * s, n[1] * s, n[2] * s, c}
}

// Rotate returns q v q*.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q[0], q[1], q[2]}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q[3])).Add(u.Cross(t))
}

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}
