package kaleido

import "math"

// Matrix is a 2D affine transformation:
//
//	| XX  XY |   | x |   | X0 |
//	| YX  YY | * | y | + | Y0 |
//
// Translate, Rotate and Scale follow Cairo's convention: they modify the
// user space, so the most recently added operation is applied to a point
// first. T·R·S built as Identity().Translate(..).Rotate(..).Scale(..)
// scales, then rotates, then translates.
type Matrix struct {
	XX, XY float64
	YX, YY float64
	X0, Y0 float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{XX: 1, YY: 1}
}

// TranslateMatrix returns a matrix that translates by (tx, ty).
func TranslateMatrix(tx, ty float64) Matrix {
	return Matrix{XX: 1, YY: 1, X0: tx, Y0: ty}
}

// RotateMatrix returns a matrix that rotates by angle radians. With the y
// axis pointing down, positive angles turn clockwise on screen.
func RotateMatrix(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{XX: c, XY: -s, YX: s, YY: c}
}

// ScaleMatrix returns a matrix that scales by (sx, sy).
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{XX: sx, YY: sy}
}

// Translate returns m with a translation prepended in user space.
func (m Matrix) Translate(tx, ty float64) Matrix {
	m.X0 += m.XX*tx + m.XY*ty
	m.Y0 += m.YX*tx + m.YY*ty
	return m
}

// Rotate returns m with a rotation by angle radians prepended in user space.
func (m Matrix) Rotate(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{
		XX: m.XX*c + m.XY*s,
		XY: -m.XX*s + m.XY*c,
		YX: m.YX*c + m.YY*s,
		YY: -m.YX*s + m.YY*c,
		X0: m.X0,
		Y0: m.Y0,
	}
}

// Scale returns m with a scale prepended in user space.
func (m Matrix) Scale(sx, sy float64) Matrix {
	m.XX *= sx
	m.XY *= sy
	m.YX *= sx
	m.YY *= sy
	return m
}

// Multiply returns the matrix that first applies m and then other, so that
// m.Multiply(other).Apply(p) == other.Apply(m.Apply(p)).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		XX: other.XX*m.XX + other.XY*m.YX,
		XY: other.XX*m.XY + other.XY*m.YY,
		YX: other.YX*m.XX + other.YY*m.YX,
		YY: other.YX*m.XY + other.YY*m.YY,
		X0: other.XX*m.X0 + other.XY*m.Y0 + other.X0,
		Y0: other.YX*m.X0 + other.YY*m.Y0 + other.Y0,
	}
}

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.XX*p.X + m.XY*p.Y + m.X0,
		Y: m.YX*p.X + m.YY*p.Y + m.Y0,
	}
}

// ApplyDistance transforms the vector d, ignoring the translation part.
func (m Matrix) ApplyDistance(d Point) Point {
	return Point{
		X: m.XX*d.X + m.XY*d.Y,
		Y: m.YX*d.X + m.YY*d.Y,
	}
}

// Det returns the determinant of the linear part. Mirror transforms have a
// negative determinant.
func (m Matrix) Det() float64 {
	return m.XX*m.YY - m.XY*m.YX
}

// Invert returns the inverse of m. The boolean is false if m is singular.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Det()
	if det == 0 || math.IsInf(det, 0) || math.IsNaN(det) {
		return Matrix{}, false
	}
	inv := 1 / det
	return Matrix{
		XX: m.YY * inv,
		XY: -m.XY * inv,
		YX: -m.YX * inv,
		YY: m.XX * inv,
		X0: (m.XY*m.Y0 - m.YY*m.X0) * inv,
		Y0: (m.YX*m.X0 - m.XX*m.Y0) * inv,
	}, true
}
