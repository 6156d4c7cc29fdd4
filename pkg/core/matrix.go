package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// InverseEpsilon is the smallest pivot magnitude Inverse accepts
const InverseEpsilon = 1e-5

var (
	// ErrDimensionMismatch is returned when matrix operands have incompatible shapes
	ErrDimensionMismatch = errors.New("matrix dimension mismatch")
	// ErrNotInvertible is returned when a matrix has no inverse
	ErrNotInvertible = errors.New("matrix is not invertible")
)

// Matrix is an immutable row-major matrix. Affine transforms are 4×4 with the
// translation in the last column; 3×3 matrices are linear only.
type Matrix struct {
	rows, cols int
	values     []float64
}

// NewMatrix creates a matrix from row slices. All rows must have the same
// non-zero length.
func NewMatrix(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Matrix{}, fmt.Errorf("empty matrix: %w", ErrDimensionMismatch)
	}
	cols := len(rows[0])
	values := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return Matrix{}, fmt.Errorf("row %d has %d columns, expected %d: %w", i, len(row), cols, ErrDimensionMismatch)
		}
		values = append(values, row...)
	}
	return Matrix{rows: len(rows), cols: cols, values: values}, nil
}

// Identity returns the n×n identity matrix
func Identity(n int) Matrix {
	m := Matrix{rows: n, cols: n, values: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		m.values[i*n+i] = 1
	}
	return m
}

func affine(rows [4][4]float64) Matrix {
	values := make([]float64, 0, 16)
	for _, row := range rows {
		values = append(values, row[:]...)
	}
	return Matrix{rows: 4, cols: 4, values: values}
}

// Translation creates a transform that translates by (x, y, z)
func Translation(x, y, z float64) Matrix {
	return affine([4][4]float64{
		{1, 0, 0, x},
		{0, 1, 0, y},
		{0, 0, 1, z},
		{0, 0, 0, 1},
	})
}

// Scale creates a transform that scales about the origin by (x, y, z)
func Scale(x, y, z float64) Matrix {
	return affine([4][4]float64{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
		{0, 0, 0, 1},
	})
}

// RotateX creates a right-handed rotation about the X axis by the given degrees
func RotateX(degrees float64) Matrix {
	sin, cos := math.Sincos(degreesToRadians(degrees))
	return affine([4][4]float64{
		{1, 0, 0, 0},
		{0, cos, -sin, 0},
		{0, sin, cos, 0},
		{0, 0, 0, 1},
	})
}

// RotateY creates a right-handed rotation about the Y axis by the given degrees
func RotateY(degrees float64) Matrix {
	sin, cos := math.Sincos(degreesToRadians(degrees))
	return affine([4][4]float64{
		{cos, 0, sin, 0},
		{0, 1, 0, 0},
		{-sin, 0, cos, 0},
		{0, 0, 0, 1},
	})
}

// RotateZ creates a right-handed rotation about the Z axis by the given degrees
func RotateZ(degrees float64) Matrix {
	sin, cos := math.Sincos(degreesToRadians(degrees))
	return affine([4][4]float64{
		{cos, -sin, 0, 0},
		{sin, cos, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Rows returns the number of rows
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns
func (m Matrix) Cols() int { return m.cols }

// At returns the element at row r, column c
func (m Matrix) At(r, c int) float64 {
	return m.values[r*m.cols+c]
}

// Multiply returns the matrix product m × other
func (m Matrix) Multiply(other Matrix) (Matrix, error) {
	if m.cols != other.rows {
		return Matrix{}, fmt.Errorf("cannot multiply %dx%d by %dx%d: %w",
			m.rows, m.cols, other.rows, other.cols, ErrDimensionMismatch)
	}

	result := Matrix{rows: m.rows, cols: other.cols, values: make([]float64, m.rows*other.cols)}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < other.cols; c++ {
			sum := 0.0
			for k := 0; k < m.cols; k++ {
				sum += m.At(r, k) * other.At(k, c)
			}
			result.values[r*result.cols+c] = sum
		}
	}
	return result, nil
}

// Times applies the matrix to a point. A 4×4 matrix is applied affinely
// (the point is extended with w=1 and w is dropped again); a 3×3 matrix is
// a plain linear product. Other shapes panic.
func (m Matrix) Times(v Vec3) Vec3 {
	switch {
	case m.rows == 4 && m.cols == 4:
		return m.LinearTimes(v).Add(Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)})
	case m.rows == 3 && m.cols == 3:
		return m.LinearTimes(v)
	default:
		panic(fmt.Sprintf("cannot apply %dx%d matrix to a 3-vector: %v", m.rows, m.cols, ErrDimensionMismatch))
	}
}

// LinearTimes applies only the upper-left 3×3 block, so translation is
// ignored. Used for directions and normals.
func (m Matrix) LinearTimes(v Vec3) Vec3 {
	if m.rows < 3 || m.cols < 3 {
		panic(fmt.Sprintf("cannot apply %dx%d matrix to a 3-vector: %v", m.rows, m.cols, ErrDimensionMismatch))
	}
	return Vec3{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

// Transpose returns the transposed matrix
func (m Matrix) Transpose() Matrix {
	result := Matrix{rows: m.cols, cols: m.rows, values: make([]float64, len(m.values))}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			result.values[c*result.cols+r] = m.At(r, c)
		}
	}
	return result
}

// Inverse returns the inverse using Gauss-Jordan elimination with partial
// pivoting and InverseEpsilon as the singularity threshold
func (m Matrix) Inverse() (Matrix, error) {
	return m.InverseWithTolerance(InverseEpsilon)
}

// InverseWithTolerance is Inverse with an explicit singularity threshold
func (m Matrix) InverseWithTolerance(epsilon float64) (Matrix, error) {
	if m.rows != m.cols {
		return Matrix{}, fmt.Errorf("cannot invert %dx%d matrix: %w", m.rows, m.cols, ErrDimensionMismatch)
	}
	n := m.rows

	// Augmented [m | I], reduced in place to [I | m⁻¹]
	width := 2 * n
	aug := make([]float64, n*width)
	for r := 0; r < n; r++ {
		copy(aug[r*width:r*width+n], m.values[r*n:(r+1)*n])
		aug[r*width+n+r] = 1
	}
	row := func(r int) []float64 { return aug[r*width : (r+1)*width] }

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(row(r)[col]) > math.Abs(row(pivot)[col]) {
				pivot = r
			}
		}
		if math.Abs(row(pivot)[col]) < epsilon {
			return Matrix{}, fmt.Errorf("pivot in column %d is below %g: %w", col, epsilon, ErrNotInvertible)
		}
		if pivot != col {
			tmp := make([]float64, width)
			copy(tmp, row(col))
			copy(row(col), row(pivot))
			copy(row(pivot), tmp)
		}

		pivotRow := row(col)
		scale := pivotRow[col]
		for c := range pivotRow {
			pivotRow[c] /= scale
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			current := row(r)
			factor := current[col]
			if factor == 0 {
				continue
			}
			for c := range current {
				current[c] -= factor * pivotRow[c]
			}
		}
	}

	result := Matrix{rows: n, cols: n, values: make([]float64, n*n)}
	for r := 0; r < n; r++ {
		copy(result.values[r*n:(r+1)*n], row(r)[n:])
	}
	return result, nil
}

// Equal reports exact element-wise equality
func (m Matrix) Equal(other Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.values {
		if m.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

// ApproxEqual reports element-wise equality within tolerance
func (m Matrix) ApproxEqual(other Matrix, tolerance float64) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.values {
		if math.Abs(m.values[i]-other.values[i]) > tolerance {
			return false
		}
	}
	return true
}

func (m Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		sb.WriteString(fmt.Sprint(m.values[r*m.cols : (r+1)*m.cols]))
		sb.WriteByte('\n')
	}
	return sb.String()
}
