package linalg

// Vec3 is a 3-component column vector.
type Vec3[T Float] [3]T

// V3 creates a vector from its components.
func V3[T Float](x, y, z T) Vec3[T] {
	return Vec3[T]{x, y, z}
}

// Add returns the sum of two vectors.
func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns the difference between two vectors.
func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale scales a vector by a scalar.
func (v Vec3[T]) Scale(k T) Vec3[T] {
	return Vec3[T]{v[0] * k, v[1] * k, v[2] * k}
}

// Dot returns the dot product of two vectors.
func (v Vec3[T]) Dot(o Vec3[T]) T {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product of two vectors.
func (v Vec3[T]) Cross(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// SquaredNorm returns the squared Euclidean norm.
func (v Vec3[T]) SquaredNorm() T {
	return v.Dot(v)
}

// Norm returns the Euclidean norm.
func (v Vec3[T]) Norm() T {
	return Sqrt(v.SquaredNorm())
}

// Normalize returns a unit vector in the same direction. The zero vector is
// returned unchanged.
func (v Vec3[T]) Normalize() Vec3[T] {
	n := v.Norm()
	if n == 0 {
		return Vec3[T]{}
	}
	return v.Scale(1 / n)
}
