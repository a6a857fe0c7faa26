// SPDX-License-Identifier: MIT

package ops_test

import (
	"testing"

	"github.com/katalvlaran/newman/matrix"
	"github.com/katalvlaran/newman/matrix/ops"
	"github.com/stretchr/testify/require"
)

func TestEigenDiagonalMatrix(t *testing.T) {
	d, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, d.Set(0, 0, 3))
	require.NoError(t, d.Set(1, 1, -1))

	eigs, _, err := ops.Eigen(d, 1e-9, 100)
	require.NoError(t, err)
	require.Len(t, eigs, 2)
	require.ElementsMatch(t, []float64{3, -1}, roundAll(eigs))
}

func TestEigenRejectsAsymmetric(t *testing.T) {
	d, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, d.Set(0, 1, 1))
	require.NoError(t, d.Set(1, 0, 5))

	_, _, err = ops.Eigen(d, 1e-9, 100)
	require.ErrorIs(t, err, ops.ErrNotSymmetric)
}

func roundAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(int(x*1e6+0.5*sign(x))) / 1e6
	}
	return out
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
