package expr

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// RelativeRotation is a small rotation or difference between orientations,
// an element of so(3). This representation is minimal and unique: every
// 3-vector is a valid relative rotation, and every relative rotation maps to
// exactly one value, unlike quaternions or matrices which must stay
// normalized and can encode one rotation two ways.
type RelativeRotation struct {
	v mgl64.Vec3
}

// NewRelativeRotation constructs a relative rotation from three components.
func NewRelativeRotation(x, y, z float64) RelativeRotation {
	return RelativeRotation{v: mgl64.Vec3{x, y, z}}
}

// RelativeRotationFromVec constructs a relative rotation from a 3-vector.
func RelativeRotationFromVec(v mgl64.Vec3) RelativeRotation {
	return RelativeRotation{v: v}
}

// RelativeRotationFromSlice constructs a relative rotation from a 3-element
// slice.
func RelativeRotationFromSlice(s []float64) (RelativeRotation, error) {
	if len(s) != 3 {
		return RelativeRotation{}, fmt.Errorf("expr: relative rotation needs 3 components, got %d", len(s))
	}
	return RelativeRotation{v: mgl64.Vec3{s[0], s[1], s[2]}}, nil
}

// RelativeRotationFromAngleAxis returns a rotation of angle radians about
// axis. The axis does not have to be normalized; it must not be zero.
func RelativeRotationFromAngleAxis(angle float64, axis mgl64.Vec3) RelativeRotation {
	return RelativeRotation{v: axis.Normalize().Mul(angle)}
}

// Kind implements Entity.
func (r RelativeRotation) Kind() Kind { return KindRelativeRotation }

// TangentVector implements Tangent.
func (r RelativeRotation) TangentVector() mgl64.Vec3 { return r.v }

// AngleAxis returns the rotation angle and the normalized axis. The axis of
// a zero rotation is the zero vector.
func (r RelativeRotation) AngleAxis() (float64, mgl64.Vec3) {
	angle := r.v.Len()
	if angle == 0 {
		return 0, mgl64.Vec3{}
	}
	return angle, r.v.Mul(1 / angle)
}
