package so3

import (
	"math"
	"math/rand"

	"so3kit/linalg"
)

// UniformRandom returns a real number drawn uniformly from the closed
// interval [a, b]. The upper bound is nudged to the next representable value
// before sampling so that b itself can be drawn, unlike the usual half-open
// convention. Assumes a <= b.
//
// The generator is passed explicitly; callers that sample concurrently must
// use one generator per goroutine or serialize access.
func UniformRandom[T linalg.Float](rng *rand.Rand, a, b T) T {
	closedB := linalg.Nextafter(b, linalg.MaxValue[T]())
	return a + (closedB-a)*T(rng.Float64())
}

// RandomQuaternion returns a unit quaternion drawn uniformly over SO(3)'s
// Haar measure.
//
// Implements Algorithm 2 from Kuffner, "Effective Sampling and Distance
// Metrics for 3D Rigid Body Path Planning", 2004: one draw picks the split
// between two orthogonal 2-planes, two more pick the phase within each.
func RandomQuaternion[T linalg.Float](rng *rand.Rand) linalg.Quat[T] {
	s := UniformRandom(rng, T(0), T(1))
	s1 := linalg.Sqrt(1 - s)
	s2 := linalg.Sqrt(s)
	t1 := 2 * T(math.Pi) * UniformRandom(rng, T(0), T(1))
	t2 := 2 * T(math.Pi) * UniformRandom(rng, T(0), T(1))

	return linalg.Quat[T]{
		V: linalg.V3(linalg.Sin(t1)*s1, linalg.Cos(t1)*s1, linalg.Sin(t2)*s2),
		W: linalg.Cos(t2) * s2,
	}
}
