package expr

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"

	"so3kit/linalg"
)

// Rotation is an SO(3) element stored as a unit quaternion. It is the result
// type of the exponential map and the operand type of composition, inversion
// and the logarithmic map.
type Rotation struct {
	q quat.Number
}

// RotationIdentity returns the identity rotation.
func RotationIdentity() Rotation {
	return Rotation{q: quat.Number{Real: 1}}
}

// RotationFromQuat constructs a rotation from a unit quaternion. The norm is
// not checked.
func RotationFromQuat(q quat.Number) Rotation {
	return Rotation{q: q}
}

// Kind implements Entity.
func (r Rotation) Kind() Kind { return KindRotation }

// RotationQuat implements Rotational.
func (r Rotation) RotationQuat() quat.Number { return r.q }

// Matrix returns the rotation as an orthonormal 3x3 matrix.
func (r Rotation) Matrix() mgl64.Mat3 {
	return linalg.MglMat(linalg.QuatFromNumber(r.q).Mat())
}
