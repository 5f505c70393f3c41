// Package expr defines the leaf entities of rotation expressions and the
// per-operation evaluation and differentiation contract they plug into.
//
// Entities are immutable values. A composition engine walking an expression
// tree selects implementations by entity capability and operation code
// through the registry in this package, never by concrete type switches of
// its own.
package expr

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"
)

// Kind identifies a concrete entity type in the operation registry.
type Kind string

const (
	KindRelativeRotation Kind = "relative-rotation"
	KindRotation         Kind = "rotation"
)

// Entity is a value usable as an operand in a rotation expression.
type Entity interface {
	Kind() Kind
}

// Tangent is the capability of entities living in the tangent space so(3):
// 3-vectors whose direction is a rotation axis and whose magnitude is an
// angle in radians. Jacobians of rotation expressions are expressed in this
// parametrization.
type Tangent interface {
	Entity
	TangentVector() mgl64.Vec3
}

// Rotational is the capability of entities representing an SO(3) element.
type Rotational interface {
	Entity
	RotationQuat() quat.Number
	Matrix() mgl64.Mat3
}
