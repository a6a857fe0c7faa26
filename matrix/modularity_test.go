// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/newman/core"
	"github.com/katalvlaran/newman/matrix"
	"github.com/stretchr/testify/require"
)

func triangle(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	a, _ := g.AddNode("A")
	b, _ := g.AddNode("B")
	c, _ := g.AddNode("C")
	require.NoError(t, g.AddEdge(a, b, 1))
	require.NoError(t, g.AddEdge(b, c, 1))
	require.NoError(t, g.AddEdge(c, a, 1))
	g.Freeze()
	return g
}

func TestModularityMatrixRowSumsZero(t *testing.T) {
	g := triangle(t)
	mm, err := matrix.NewModularityMatrix(g)
	require.NoError(t, err)
	require.InDelta(t, 0, matrix.RowSumResidual(mm.B), 1e-12)
}

func TestRestrictRowSumsZero(t *testing.T) {
	g := triangle(t)
	mm, err := matrix.NewModularityMatrix(g)
	require.NoError(t, err)
	Bg, err := mm.Restrict([]int{0, 1, 2})
	require.NoError(t, err)
	require.InDelta(t, 0, matrix.RowSumResidual(Bg), 1e-12)
}

func TestDeltaQSignConvention(t *testing.T) {
	g := triangle(t)
	mm, err := matrix.NewModularityMatrix(g)
	require.NoError(t, err)
	Bg, err := mm.Restrict([]int{0, 1, 2})
	require.NoError(t, err)
	dq, err := mm.DeltaQ(Bg, []float64{1, 1, -1})
	require.NoError(t, err)
	// Hand-computed: degree 2 each, m=3, B = [[-2/3,1/3,1/3],[1/3,-2/3,1/3],[1/3,1/3,-2/3]].
	// sᵀBs for s=[1,1,-1] is -8/3, so ΔQ = (-8/3)/(4·3) = -2/9.
	require.InDelta(t, -2.0/9.0, dq, 1e-9)
}

func TestMatVecDimensionMismatch(t *testing.T) {
	d, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = matrix.MatVec(d, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDenseCloneIndependence(t *testing.T) {
	d, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, d.Set(0, 0, 5))
	clone := d.Clone()
	require.NoError(t, d.Set(0, 0, 9))
	v, _ := clone.At(0, 0)
	require.Equal(t, 5.0, v)
}
