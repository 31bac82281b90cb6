package vec

import "math"

// Mat22 is a 2x2 matrix stored row-major: [[X1, Y1], [X2, Y2]].
type Mat22 struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Identity22 is the 2x2 identity matrix.
var Identity22 = Mat22{1, 0, 0, 1}

// NewMat22 builds a matrix from its four entries, row-major.
func NewMat22(x1, y1, x2, y2 float64) Mat22 {
	return Mat22{x1, y1, x2, y2}
}

// Mat22FromRows builds a matrix from two row vectors.
func Mat22FromRows(row1, row2 Vec2) Mat22 {
	return Mat22{row1.X, row1.Y, row2.X, row2.Y}
}

// Mat22FromAngle builds the rotation matrix for angle theta (radians):
// [[cos θ, -sin θ], [sin θ, cos θ]].
func Mat22FromAngle(theta float64) Mat22 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Mat22{c, -s, s, c}
}

// MulVec applies the matrix to a column vector.
func (m Mat22) MulVec(v Vec2) Vec2 {
	return Vec2{
		m.X1*v.X + m.Y1*v.Y,
		m.X2*v.X + m.Y2*v.Y,
	}
}

// Mul composes two matrices (m * n).
func (m Mat22) Mul(n Mat22) Mat22 {
	return Mat22{
		m.X1*n.X1 + m.Y1*n.X2, m.X1*n.Y1 + m.Y1*n.Y2,
		m.X2*n.X1 + m.Y2*n.X2, m.X2*n.Y1 + m.Y2*n.Y2,
	}
}

// Add sums two matrices element-wise.
func (m Mat22) Add(n Mat22) Mat22 {
	return Mat22{m.X1 + n.X1, m.Y1 + n.Y1, m.X2 + n.X2, m.Y2 + n.Y2}
}

// Scale multiplies every entry by s.
func (m Mat22) Scale(s float64) Mat22 {
	return Mat22{m.X1 * s, m.Y1 * s, m.X2 * s, m.Y2 * s}
}

// Transpose swaps the off-diagonal entries.
func (m Mat22) Transpose() Mat22 {
	return Mat22{m.X1, m.X2, m.Y1, m.Y2}
}

// Det is the determinant.
func (m Mat22) Det() float64 {
	return m.X1*m.Y2 - m.Y1*m.X2
}

// Inv returns the standard 2x2 inverse. The result is undefined (and will
// contain +/-Inf or NaN) for a singular matrix; callers in this package
// never invert a singular effective-mass matrix in practice.
func (m Mat22) Inv() Mat22 {
	det := m.Det()
	invDet := 1 / det
	return Mat22{
		invDet * m.Y2, -invDet * m.Y1,
		-invDet * m.X2, invDet * m.X1,
	}
}
