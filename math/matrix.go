package math

import (
	"math"

	"ray-engine/core"
)

// Matrix is a 4x4 transform paired with its inverse. The pair is built once
// and never mutated; Inverse returns the other half of the same pair, so
// chaining Inverse twice lands back on the original. A nil *Matrix acts as
// the identity everywhere it is accepted.
type Matrix struct {
	m       [4][4]float64
	inverse *Matrix
}

func newMatrixPair(values, inverse [4][4]float64) *Matrix {
	pair := new([2]Matrix)
	pair[0].m = values
	pair[0].inverse = &pair[1]
	pair[1].m = inverse
	pair[1].inverse = &pair[0]
	return &pair[0]
}

// invert4x4 computes the inverse by in-place Gauss-Jordan elimination with
// full pivoting. Returns core.ErrArithmetic for singular input.
func invert4x4(values [4][4]float64) ([4][4]float64, error) {
	inverse := values

	var columnIndex, rowIndex, pivot [4]int

	for i := 0; i < 4; i++ {
		bestCandidate := 0.0
		bestColumn := 0
		bestRow := 0

		for j := 0; j < 4; j++ {
			if pivot[j] == 1 {
				continue
			}

			for k := 0; k < 4; k++ {
				if pivot[k] == 1 {
					continue
				}

				if pivot[k] > 1 {
					return inverse, core.ErrArithmetic
				}

				candidate := math.Abs(inverse[j][k])
				if candidate >= bestCandidate {
					bestCandidate = candidate
					bestRow = j
					bestColumn = k
				}
			}
		}

		pivot[bestColumn]++

		if bestRow != bestColumn {
			inverse[bestRow], inverse[bestColumn] =
				inverse[bestColumn], inverse[bestRow]
		}

		if inverse[bestColumn][bestColumn] == 0.0 {
			return inverse, core.ErrArithmetic
		}

		columnIndex[i] = bestColumn
		rowIndex[i] = bestRow

		divisor := inverse[bestColumn][bestColumn]
		inverse[bestColumn][bestColumn] = 1.0
		for j := 0; j < 4; j++ {
			inverse[bestColumn][j] /= divisor
		}

		for j := 0; j < 4; j++ {
			if j == bestColumn {
				continue
			}

			scalar := -inverse[j][bestColumn]
			inverse[j][bestColumn] = 0.0
			for k := 0; k < 4; k++ {
				inverse[j][k] += scalar * inverse[bestColumn][k]
			}
		}
	}

	// Undo the column swaps in reverse order of selection.
	for j := 3; j >= 0; j-- {
		if rowIndex[j] == columnIndex[j] {
			continue
		}

		for k := 0; k < 4; k++ {
			inverse[k][rowIndex[j]], inverse[k][columnIndex[j]] =
				inverse[k][columnIndex[j]], inverse[k][rowIndex[j]]
		}
	}

	return inverse, nil
}

// NewMatrix builds a matrix from row-major values, computing the inverse
// numerically. Argument positions in validation errors are the row-major
// entry indices 0 through 15.
func NewMatrix(values [4][4]float64) (*Matrix, error) {
	for row := 0; row < 4; row++ {
		for column := 0; column < 4; column++ {
			if !isFinite(values[row][column]) {
				return nil, core.InvalidArgument(row*4 + column)
			}
		}
	}

	inverse, err := invert4x4(values)
	if err != nil {
		return nil, err
	}

	return newMatrixPair(values, inverse), nil
}

// NewTranslation builds a translation; the inverse simply negates the
// translation column.
func NewTranslation(x, y, z float64) (*Matrix, error) {
	if !isFinite(x) {
		return nil, core.InvalidArgument(0)
	}

	if !isFinite(y) {
		return nil, core.InvalidArgument(1)
	}

	if !isFinite(z) {
		return nil, core.InvalidArgument(2)
	}

	values := [4][4]float64{
		{1, 0, 0, x},
		{0, 1, 0, y},
		{0, 0, 1, z},
		{0, 0, 0, 1},
	}
	inverse := [4][4]float64{
		{1, 0, 0, -x},
		{0, 1, 0, -y},
		{0, 0, 1, -z},
		{0, 0, 0, 1},
	}

	return newMatrixPair(values, inverse), nil
}

// NewScale builds a non-uniform scale; every axis must be finite and
// non-zero. The inverse uses reciprocals.
func NewScale(x, y, z float64) (*Matrix, error) {
	if !isFinite(x) || x == 0.0 {
		return nil, core.InvalidArgument(0)
	}

	if !isFinite(y) || y == 0.0 {
		return nil, core.InvalidArgument(1)
	}

	if !isFinite(z) || z == 0.0 {
		return nil, core.InvalidArgument(2)
	}

	values := [4][4]float64{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
		{0, 0, 0, 1},
	}
	inverse := [4][4]float64{
		{1 / x, 0, 0, 0},
		{0, 1 / y, 0, 0},
		{0, 0, 1 / z, 0},
		{0, 0, 0, 1},
	}

	return newMatrixPair(values, inverse), nil
}

// NewRotation builds a rotation of theta radians about the axis (x, y, z)
// using Rodrigues' formula. The axis is normalized internally; the inverse
// is the transpose.
func NewRotation(theta, x, y, z float64) (*Matrix, error) {
	if !isFinite(theta) {
		return nil, core.InvalidArgument(0)
	}

	if !isFinite(x) {
		return nil, core.InvalidArgument(1)
	}

	if !isFinite(y) {
		return nil, core.InvalidArgument(2)
	}

	if !isFinite(z) {
		return nil, core.InvalidArgument(3)
	}

	if x == 0.0 && y == 0.0 && z == 0.0 {
		return nil, core.InvalidArgumentCombination(0)
	}

	axis := NewVec3(x, y, z).Normalize()

	sinTheta := math.Sin(theta)
	cosTheta := math.Cos(theta)
	ic := 1.0 - cosTheta

	m00 := axis.X*axis.X*ic + cosTheta
	m01 := axis.X*axis.Y*ic - axis.Z*sinTheta
	m02 := axis.X*axis.Z*ic + axis.Y*sinTheta

	m10 := axis.Y*axis.X*ic + axis.Z*sinTheta
	m11 := axis.Y*axis.Y*ic + cosTheta
	m12 := axis.Y*axis.Z*ic - axis.X*sinTheta

	m20 := axis.Z*axis.X*ic - axis.Y*sinTheta
	m21 := axis.Z*axis.Y*ic + axis.X*sinTheta
	m22 := axis.Z*axis.Z*ic + cosTheta

	values := [4][4]float64{
		{m00, m01, m02, 0},
		{m10, m11, m12, 0},
		{m20, m21, m22, 0},
		{0, 0, 0, 1},
	}
	inverse := [4][4]float64{
		{m00, m10, m20, 0},
		{m01, m11, m21, 0},
		{m02, m12, m22, 0},
		{0, 0, 0, 1},
	}

	return newMatrixPair(values, inverse), nil
}

// NewOrthographic builds an OpenGL-style orthographic projection.
func NewOrthographic(left, right, bottom, top, near, far float64) (*Matrix, error) {
	if !isFinite(left) {
		return nil, core.InvalidArgument(0)
	}

	if !isFinite(right) {
		return nil, core.InvalidArgument(1)
	}

	if !isFinite(bottom) {
		return nil, core.InvalidArgument(2)
	}

	if !isFinite(top) {
		return nil, core.InvalidArgument(3)
	}

	if !isFinite(near) {
		return nil, core.InvalidArgument(4)
	}

	if !isFinite(far) {
		return nil, core.InvalidArgument(5)
	}

	if left == right {
		return nil, core.InvalidArgumentCombination(0)
	}

	if bottom == top {
		return nil, core.InvalidArgumentCombination(1)
	}

	if near == far {
		return nil, core.InvalidArgumentCombination(2)
	}

	tx := -(right + left) / (right - left)
	ty := -(top + bottom) / (top - bottom)
	tz := -(far + near) / (far - near)

	sx := 2.0 / (right - left)
	sy := 2.0 / (top - bottom)
	sz := -2.0 / (far - near)

	return NewMatrix([4][4]float64{
		{sx, 0, 0, tx},
		{0, sy, 0, ty},
		{0, 0, sz, tz},
		{0, 0, 0, 1},
	})
}

// NewFrustum builds an OpenGL-style perspective frustum projection. Near and
// far must be positive.
func NewFrustum(left, right, bottom, top, near, far float64) (*Matrix, error) {
	if !isFinite(left) {
		return nil, core.InvalidArgument(0)
	}

	if !isFinite(right) {
		return nil, core.InvalidArgument(1)
	}

	if !isFinite(bottom) {
		return nil, core.InvalidArgument(2)
	}

	if !isFinite(top) {
		return nil, core.InvalidArgument(3)
	}

	if !isFinite(near) || near <= 0.0 {
		return nil, core.InvalidArgument(4)
	}

	if !isFinite(far) || far <= 0.0 {
		return nil, core.InvalidArgument(5)
	}

	if left == right {
		return nil, core.InvalidArgumentCombination(0)
	}

	if bottom == top {
		return nil, core.InvalidArgumentCombination(1)
	}

	if near == far {
		return nil, core.InvalidArgumentCombination(2)
	}

	sx := (2.0 * near) / (right - left)
	sy := (2.0 * near) / (top - bottom)

	a := (right + left) / (right - left)
	b := (top + bottom) / (top - bottom)

	c := -(far + near) / (far - near)
	d := -2.0 * far * near / (far - near)

	return NewMatrix([4][4]float64{
		{sx, 0, a, 0},
		{0, sy, b, 0},
		{0, 0, c, d},
		{0, 0, -1, 0},
	})
}

// MatrixProduct returns left * right. The inverse is accumulated
// element-wise as right.inverse * left.inverse rather than re-inverted
// numerically, so products of well-conditioned transforms stay symmetric
// with their inverses. Either factor may be nil; nil * nil is nil and
// nil * m is m itself.
func MatrixProduct(left, right *Matrix) *Matrix {
	if left == nil {
		return right
	}

	if right == nil {
		return left
	}

	var values, inverse [4][4]float64
	for row := 0; row < 4; row++ {
		for column := 0; column < 4; column++ {
			values[row][column] = left.m[row][0]*right.m[0][column] +
				left.m[row][1]*right.m[1][column] +
				left.m[row][2]*right.m[2][column] +
				left.m[row][3]*right.m[3][column]

			inverse[row][column] = right.inverse.m[row][0]*left.inverse.m[0][column] +
				right.inverse.m[row][1]*left.inverse.m[1][column] +
				right.inverse.m[row][2]*left.inverse.m[2][column] +
				right.inverse.m[row][3]*left.inverse.m[3][column]
		}
	}

	return newMatrixPair(values, inverse)
}

// Inverse returns the other view of the pair. Inverse of nil is nil and
// m.Inverse().Inverse() is m itself.
func (m *Matrix) Inverse() *Matrix {
	if m == nil {
		return nil
	}
	return m.inverse
}

// Contents returns the row-major values; nil reads as the identity.
func (m *Matrix) Contents() [4][4]float64 {
	if m == nil {
		return [4][4]float64{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
		}
	}
	return m.m
}
