package linalg

// Quat is a quaternion stored vector part first, matching the x, y, z, w
// coefficient order of the kernel's wire and storage formats. A unit Quat
// represents an element of SO(3); the functions here assume unit norm but do
// not enforce it.
type Quat[T Float] struct {
	V Vec3[T]
	W T
}

// QuatIdent returns the identity quaternion.
func QuatIdent[T Float]() Quat[T] {
	return Quat[T]{W: 1}
}

// Mul returns the Hamilton product q * r.
func (q Quat[T]) Mul(r Quat[T]) Quat[T] {
	return Quat[T]{
		V: r.V.Scale(q.W).Add(q.V.Scale(r.W)).Add(q.V.Cross(r.V)),
		W: q.W*r.W - q.V.Dot(r.V),
	}
}

// Conj returns the conjugate, which for a unit quaternion is the inverse
// rotation.
func (q Quat[T]) Conj() Quat[T] {
	return Quat[T]{V: q.V.Scale(-1), W: q.W}
}

// Neg returns the antipodal quaternion -q, which represents the same
// rotation.
func (q Quat[T]) Neg() Quat[T] {
	return Quat[T]{V: q.V.Scale(-1), W: -q.W}
}

// Norm returns the Euclidean norm of the 4 coefficients.
func (q Quat[T]) Norm() T {
	return Sqrt(q.V.SquaredNorm() + q.W*q.W)
}

// Normalize returns the quaternion scaled to unit norm.
func (q Quat[T]) Normalize() Quat[T] {
	n := q.Norm()
	if n == 0 {
		return QuatIdent[T]()
	}
	return Quat[T]{V: q.V.Scale(1 / n), W: q.W / n}
}

// Mat returns the rotation matrix of a unit quaternion.
func (q Quat[T]) Mat() Mat3[T] {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.W
	return Mat3[T]{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}

// Rotate applies the rotation to a vector: q * (v, 0) * q^-1.
func (q Quat[T]) Rotate(v Vec3[T]) Vec3[T] {
	t := q.V.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(q.V.Cross(t))
}
