// SPDX-License-Identifier: MIT
// Dense is a concrete, row-major implementation of the Matrix interface,
// storing elements in a flat slice for cache-friendly access.

package matrix

import "fmt"

// Dense is a row-major matrix of float64 values.
// r, c are dimensions; data holds r*c elements in row-major order.
type Dense struct {
	r, c int
	data []float64
}

// Compile-time assertion that *Dense satisfies Matrix.
var _ Matrix = (*Dense)(nil)

func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Complexity: O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf("At", row, col, ErrIndexOutOfBounds)
	}
	return row*m.c + col, nil
}

// At retrieves the element at (row, col). Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}
	return m.data[idx], nil
}

// Set assigns v at (row, col). Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// Clone returns a deep copy. Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)
	return &Dense{r: m.r, c: m.c, data: cp}
}

// MatVec returns A·x for an r×c matrix A and length-c vector x.
// Fast-paths *Dense for flat row-major dot products.
// Complexity: O(r*c).
func MatVec(A Matrix, x []float64) ([]float64, error) {
	if A.Cols() != len(x) {
		return nil, fmt.Errorf("matrix: MatVec: %w", ErrDimensionMismatch)
	}
	rows, cols := A.Rows(), A.Cols()
	y := make([]float64, rows)

	if d, ok := A.(*Dense); ok {
		for i := 0; i < d.r; i++ {
			base := i * d.c
			var acc float64
			for j := 0; j < d.c; j++ {
				if xv := x[j]; xv != 0 {
					acc += d.data[base+j] * xv
				}
			}
			y[i] = acc
		}
		return y, nil
	}

	for i := 0; i < rows; i++ {
		var acc float64
		for j := 0; j < cols; j++ {
			v, _ := A.At(i, j)
			acc += v * x[j]
		}
		y[i] = acc
	}
	return y, nil
}

// QuadForm returns xᵀAx for a square matrix A.
// Complexity: O(n²).
func QuadForm(A Matrix, x []float64) (float64, error) {
	y, err := MatVec(A, x)
	if err != nil {
		return 0, err
	}
	var acc float64
	for i, xi := range x {
		acc += xi * y[i]
	}
	return acc, nil
}
