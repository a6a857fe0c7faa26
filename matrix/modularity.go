// SPDX-License-Identifier: MIT
// Modularity matrix B = A - kkᵀ/(2m), and its restriction B⁽ᵍ⁾ to a
// community: B⁽ᵍ⁾ᵢⱼ = Bᵢⱼ - δᵢⱼ Σₖ∈C Bᵢₖ for i,j ranging over C in the
// order induced by the global node order.
//
// Contract:
//   - Graph must be Frozen (Degree/TotalWeight panic otherwise).
//   - Row sums of B and of any B⁽ᵍ⁾ are zero by construction (to float64
//     rounding); callers relying on this for tests should tolerate 1e-12.
//
// AI-Hints:
//   - Build once per top-level run (NewModularityMatrix); Restrict is cheap
//     relative to the eigensolve that follows it and is rebuilt fresh for
//     every recursive call, per the component's stated lifecycle.
package matrix

import (
	"math"

	"github.com/katalvlaran/newman/core"
)

// ModularityMatrix wraps the dense N×N modularity matrix B for a graph,
// plus the pieces (degree vector, m) needed to restrict it to a community.
type ModularityMatrix struct {
	B      *Dense
	degree []float64
	m      float64
	n      int
}

// NewModularityMatrix builds B from a frozen graph.
// Complexity: O(N²).
func NewModularityMatrix(g *core.Graph) (*ModularityMatrix, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.Size()
	if n == 0 {
		return nil, ErrEmptySystem
	}

	degree := make([]float64, n)
	for i := 0; i < n; i++ {
		degree[i] = g.Degree(i)
	}
	m := g.TotalWeight()

	B, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			expected := 0.0
			if m != 0 {
				expected = degree[i] * degree[j] / (2 * m)
			}
			_ = B.Set(i, j, g.Adjacency(i, j)-expected)
		}
	}

	return &ModularityMatrix{B: B, degree: degree, m: m, n: n}, nil
}

// N returns the dimension of the full modularity matrix.
func (mm *ModularityMatrix) N() int { return mm.n }

// M returns the total edge weight m used to normalize ΔQ.
func (mm *ModularityMatrix) M() float64 { return mm.m }

// Restrict builds the generalized modularity matrix B⁽ᵍ⁾ for the community
// given by membership (global node indices, in the order that will define
// the local index space of the returned matrix).
// Complexity: O(n²) where n = len(membership).
func (mm *ModularityMatrix) Restrict(membership []int) (*Dense, error) {
	n := len(membership)
	if n == 0 {
		return nil, ErrEmptySystem
	}

	Bg, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}

	// rowSum[i] = Σₖ∈C B(membership[i], membership[k])
	rowSum := make([]float64, n)
	vals := make([][]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = make([]float64, n)
		gi := membership[i]
		var sum float64
		for j := 0; j < n; j++ {
			gj := membership[j]
			v, _ := mm.B.At(gi, gj)
			vals[i][j] = v
			sum += v
		}
		rowSum[i] = sum
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := vals[i][j]
			if i == j {
				v -= rowSum[i]
			}
			_ = Bg.Set(i, j, v)
		}
	}

	return Bg, nil
}

// DeltaQ computes sᵀ Bg s / (4m) for a ±1 bisection vector s over a
// generalized modularity matrix Bg.
// Complexity: O(n²).
func (mm *ModularityMatrix) DeltaQ(Bg Matrix, s []float64) (float64, error) {
	if mm.m == 0 {
		return 0, nil
	}
	q, err := QuadForm(Bg, s)
	if err != nil {
		return 0, err
	}
	return q / (4 * mm.m), nil
}

// RowSumResidual returns the maximum absolute row sum of m, used only by
// tests to assert the "row sums are zero" invariant.
// Complexity: O(n²).
func RowSumResidual(m Matrix) float64 {
	n := m.Rows()
	var worst float64
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j)
			sum += v
		}
		if abs := math.Abs(sum); abs > worst {
			worst = abs
		}
	}
	return worst
}
