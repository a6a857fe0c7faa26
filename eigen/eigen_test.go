// SPDX-License-Identifier: MIT

package eigen_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/newman/eigen"
	"github.com/katalvlaran/newman/matrix"
	"github.com/stretchr/testify/require"
)

func diag(t *testing.T, values ...float64) *matrix.Dense {
	t.Helper()
	n := len(values)
	d, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i, v := range values {
		require.NoError(t, d.Set(i, i, v))
	}
	return d
}

func TestPowerOnPositiveDiagonalFindsLargest(t *testing.T) {
	d := diag(t, 1, 5, 2)
	res, err := eigen.LeadingEigenpair(context.Background(), d, eigen.Power)
	require.NoError(t, err)
	require.InDelta(t, 5, res.Lambda, 1e-4)
}

func TestPowerOnAllNegativeDiagonalUsesShiftFallback(t *testing.T) {
	d := diag(t, -5, -1, -9)
	res, err := eigen.LeadingEigenpair(context.Background(), d, eigen.Power)
	require.NoError(t, err)
	require.InDelta(t, -1, res.Lambda, 1e-4)
}

func TestFullEVDAgreesWithPowerOnSmallMatrix(t *testing.T) {
	d := diag(t, 3, -2, 7, 1)
	p, err := eigen.LeadingEigenpair(context.Background(), d, eigen.Power)
	require.NoError(t, err)
	f, err := eigen.LeadingEigenpair(context.Background(), d, eigen.FullEVD)
	require.NoError(t, err)
	require.InDelta(t, f.Lambda, p.Lambda, 1e-4)
}

func TestEmptySystemFails(t *testing.T) {
	d, err := matrix.NewDense(1, 1)
	require.NoError(t, err)
	_ = d
	_, err = eigen.LeadingEigenpair(context.Background(), emptyMatrix{}, eigen.Power)
	require.ErrorIs(t, err, eigen.ErrEmptySystem)
}

type emptyMatrix struct{}

func (emptyMatrix) Rows() int                        { return 0 }
func (emptyMatrix) Cols() int                        { return 0 }
func (emptyMatrix) At(i, j int) (float64, error)     { return 0, nil }
func (emptyMatrix) Set(i, j int, v float64) error    { return nil }
func (emptyMatrix) Clone() matrix.Matrix             { return emptyMatrix{} }
