// Package so3 implements the closed-form maps between the rotation group
// SO(3) and its tangent space so(3), together with their Jacobians and
// uniform random sampling on the group.
//
// A tangent vector is a 3-vector whose direction is the rotation axis and
// whose magnitude is the rotation angle in radians. Quaternion and matrix
// arguments are assumed valid (unit norm, orthonormal); no validation is
// performed. All functions are pure and generic over float32 and float64,
// with branch thresholds scaled to the machine epsilon of the scalar type.
package so3

import (
	"so3kit/linalg"
)

// Uncross converts a skew-symmetric (cross) matrix to a compact vector; the
// "vee" operator, inverse of linalg.Skew. Only the three independent
// off-diagonal entries are read.
func Uncross[T linalg.Float](m linalg.Mat3[T]) linalg.Vec3[T] {
	return linalg.V3(m[2][1], m[0][2], m[1][0])
}

// Exp calculates the exponential map of a rotation vector into a unit
// quaternion.
//
// Based on: F. S. Grassia, "Practical parameterization of rotations using
// the exponential map," Journal of graphics tools, 1998. Near zero angle the
// closed form degenerates, so a second-order Taylor expansion takes over;
// the switch tests angle^4 against the machine epsilon so both branches
// agree at the boundary.
func Exp[T linalg.Float](v linalg.Vec3[T]) linalg.Quat[T] {
	angle2 := v.SquaredNorm()
	angle := linalg.Sqrt(angle2)

	var s, c T
	if angle2*angle2 > linalg.Eps[T]() {
		s = linalg.Sin(angle/2) / angle
		c = linalg.Cos(angle / 2)
	} else {
		s = 0.5 + angle2/48
		c = 1 - angle2/8
	}

	return linalg.Quat[T]{V: v.Scale(s), W: c}
}

// Log calculates the logarithmic map of a unit quaternion, obtaining a
// rotation vector. The sign of the scalar part is folded into the result via
// copysign so the returned angle stays in a consistent half-range:
// Log(q) == Log(q.Neg()).
func Log[T linalg.Float](q linalg.Quat[T]) linalg.Vec3[T] {
	norm := q.V.Norm()
	if norm > linalg.Eps[T]() {
		return q.V.Scale(2 * linalg.Atan2(norm, linalg.Abs(q.W)) / linalg.Copysign(norm, q.W))
	}
	// limit as q.W -> 1
	return q.V.Scale(2)
}

// LogMat calculates the logarithmic map of a rotation matrix, obtaining a
// rotation vector.
//
// From http://ethaneade.com/lie.pdf
func LogMat[T linalg.Float](m linalg.Mat3[T]) linalg.Vec3[T] {
	angle := linalg.Acos((m.Trace() - 1) / 2)

	if angle*angle > linalg.Eps[T]() {
		return Uncross(m.Sub(m.Transpose()).Scale(angle / (2 * linalg.Sin(angle))))
	}
	// very small angle
	return Uncross(m.Sub(m.Transpose()).Scale(0.5))
}

// LogJacobian returns the local Jacobian of the logarithmic map of a
// rotation, evaluated at the rotation vector that is the logmap's result.
// The Jacobian is independent of the original rotation's parametrization.
//
// From http://ethaneade.org/exp_diff.pdf. Below the epsilon threshold the
// coefficient (B - A/2)/(1 - cos theta) is replaced by its theta -> 0 limit
// of 1/12.
func LogJacobian[T linalg.Float](v linalg.Vec3[T]) linalg.Mat3[T] {
	theta2 := v.SquaredNorm()
	px := linalg.Skew(v)
	px2 := px.MulMat(px)

	if theta2 > linalg.Eps[T]() {
		theta := linalg.Sqrt(theta2)
		a := linalg.Sin(theta) / theta
		b := (1 - linalg.Cos(theta)) / theta2
		k := (b - a/2) / (1 - linalg.Cos(theta))
		return linalg.Ident3[T]().Sub(px.Scale(0.5)).Add(px2.Scale(k))
	}
	return linalg.Ident3[T]().Sub(px.Scale(0.5)).Add(px2.Scale(1.0 / 12))
}

// ExpJacobian returns the local Jacobian of the exponential map of a
// rotation, expressed in the tangent parametrization of the result.
//
// m is the result of the exponential map as a rotation matrix; v is the
// input rotation vector. Bloesch et al, "A Primer on the Differential
// Calculus of 3D Orientations", equation 80, with an adjustment for the
// near-zero case.
func ExpJacobian[T linalg.Float](m linalg.Mat3[T], v linalg.Vec3[T]) linalg.Mat3[T] {
	px := linalg.Skew(v)
	n2 := v.SquaredNorm()

	if n2 > linalg.Eps[T]() {
		return linalg.Ident3[T]().Sub(m).MulMat(px).Add(linalg.Outer(v, v)).Scale(1 / n2)
	}
	return linalg.Ident3[T]().Add(px.Scale(0.5))
}
