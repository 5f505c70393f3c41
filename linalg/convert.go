package linalg

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"
)

// Conversions between the generic float64 types and the mathgl / gonum types
// used by the entity layer. mgl64 matrices are column-major; gonum
// quaternions store the scalar part first. Both differences are confined to
// this file.

// MglVec converts a vector to its mgl64 form.
func MglVec(v Vec3[float64]) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

// VecFromMgl converts an mgl64 vector.
func VecFromMgl(v mgl64.Vec3) Vec3[float64] {
	return Vec3[float64]{v[0], v[1], v[2]}
}

// MglMat converts a row-major matrix to column-major mgl64 form.
func MglMat(m Mat3[float64]) mgl64.Mat3 {
	return mgl64.Mat3{
		m[0][0], m[1][0], m[2][0],
		m[0][1], m[1][1], m[2][1],
		m[0][2], m[1][2], m[2][2],
	}
}

// MatFromMgl converts an mgl64 matrix.
func MatFromMgl(m mgl64.Mat3) Mat3[float64] {
	var r Mat3[float64]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m.At(i, j)
		}
	}
	return r
}

// Number converts a quaternion to gonum's scalar-first form.
func Number(q Quat[float64]) quat.Number {
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

// QuatFromNumber converts a gonum quaternion.
func QuatFromNumber(n quat.Number) Quat[float64] {
	return Quat[float64]{V: Vec3[float64]{n.Imag, n.Jmag, n.Kmag}, W: n.Real}
}
