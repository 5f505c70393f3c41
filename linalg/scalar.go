// Package linalg provides the small fixed-size linear algebra used by the
// rotation kernel: 3-vectors, 3x3 matrices and quaternions, generic over
// float32 and float64. The float64 types convert to and from the
// go-gl/mathgl and gonum quaternion types at the package boundary.
package linalg

import (
	"math"

	"github.com/chewxy/math32"
)

// Float is the set of scalar types the kernel is generic over.
type Float interface {
	~float32 | ~float64
}

// Eps returns the machine epsilon of T: 2^-23 for float32, 2^-52 for float64.
func Eps[T Float]() T {
	if _, ok := any(T(0)).(float32); ok {
		return T(0x1p-23)
	}
	return T(0x1p-52)
}

// MaxValue returns the largest finite value of T.
func MaxValue[T Float]() T {
	if _, ok := any(T(0)).(float32); ok {
		v := float32(math32.MaxFloat32)
		return T(v)
	}
	v := math.MaxFloat64
	return T(v)
}

// Sqrt returns the square root of x.
func Sqrt[T Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Sqrt(v))
	}
	return T(math.Sqrt(float64(x)))
}

// Sin returns the sine of x (radians).
func Sin[T Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Sin(v))
	}
	return T(math.Sin(float64(x)))
}

// Cos returns the cosine of x (radians).
func Cos[T Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Cos(v))
	}
	return T(math.Cos(float64(x)))
}

// Acos returns the arccosine of x.
func Acos[T Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Acos(v))
	}
	return T(math.Acos(float64(x)))
}

// Atan2 returns the arctangent of y/x, using the signs of both to pick the
// quadrant.
func Atan2[T Float](y, x T) T {
	if v, ok := any(y).(float32); ok {
		return T(math32.Atan2(v, float32(x)))
	}
	return T(math.Atan2(float64(y), float64(x)))
}

// Abs returns the absolute value of x.
func Abs[T Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Copysign returns a value with the magnitude of mag and the sign of sign.
func Copysign[T Float](mag, sign T) T {
	if v, ok := any(mag).(float32); ok {
		return T(math32.Copysign(v, float32(sign)))
	}
	return T(math.Copysign(float64(mag), float64(sign)))
}

// Nextafter returns the next representable value after x in the direction
// of y.
func Nextafter[T Float](x, y T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Nextafter(v, float32(y)))
	}
	return T(math.Nextafter(float64(x), float64(y)))
}
