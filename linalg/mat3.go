package linalg

// Mat3 is a 3x3 matrix stored row-major: m[row][col].
type Mat3[T Float] [3][3]T

// Ident3 returns the identity matrix.
func Ident3[T Float]() Mat3[T] {
	return Mat3[T]{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Skew returns the skew-symmetric (cross-product) matrix of v, so that
// Skew(v).MulVec(w) == v.Cross(w).
func Skew[T Float](v Vec3[T]) Mat3[T] {
	return Mat3[T]{
		{0, -v[2], v[1]},
		{v[2], 0, -v[0]},
		{-v[1], v[0], 0},
	}
}

// Outer returns the outer product a * b^T.
func Outer[T Float](a, b Vec3[T]) Mat3[T] {
	var m Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = a[i] * b[j]
		}
	}
	return m
}

// Add returns the sum of two matrices.
func (m Mat3[T]) Add(o Mat3[T]) Mat3[T] {
	var r Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] + o[i][j]
		}
	}
	return r
}

// Sub returns the difference between two matrices.
func (m Mat3[T]) Sub(o Mat3[T]) Mat3[T] {
	var r Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] - o[i][j]
		}
	}
	return r
}

// Scale scales every entry by k.
func (m Mat3[T]) Scale(k T) Mat3[T] {
	var r Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] * k
		}
	}
	return r
}

// MulMat returns the matrix product m * o.
func (m Mat3[T]) MulMat(o Mat3[T]) Mat3[T] {
	var r Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

// MulVec returns the matrix-vector product m * v.
func (m Mat3[T]) MulVec(v Vec3[T]) Vec3[T] {
	return Vec3[T]{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Transpose returns the transposed matrix.
func (m Mat3[T]) Transpose() Mat3[T] {
	var r Mat3[T]
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Trace returns the sum of the diagonal entries.
func (m Mat3[T]) Trace() T {
	return m[0][0] + m[1][1] + m[2][2]
}
