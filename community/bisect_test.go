// SPDX-License-Identifier: MIT

package community_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/newman/community"
	"github.com/katalvlaran/newman/core"
	"github.com/katalvlaran/newman/matrix"
)

func complete(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	ids := make([]int, n)
	for i := 0; i < n; i++ {
		id, err := g.AddNode(string(rune('a' + i)))
		require.NoError(t, err)
		ids[i] = id
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			require.NoError(t, g.AddEdge(ids[i], ids[j], 1))
		}
	}
	g.Freeze()
	return g
}

func TestBisectSingleNodeIsIndivisible(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddNode("solo")
	require.NoError(t, err)
	g.Freeze()

	mm, err := matrix.NewModularityMatrix(g)
	require.NoError(t, err)

	res, err := community.Bisect(context.Background(), mm, []int{0}, community.Options{})
	require.NoError(t, err)
	require.False(t, res.Divisible)
}

func TestBisectCompleteGraphIsIndivisible(t *testing.T) {
	g := complete(t, 10)
	mm, err := matrix.NewModularityMatrix(g)
	require.NoError(t, err)

	membership := make([]int, g.Size())
	for i := range membership {
		membership[i] = i
	}
	res, err := community.Bisect(context.Background(), mm, membership, community.Options{})
	require.NoError(t, err)
	require.False(t, res.Divisible)
}

func TestBisectTwoCliquesJoinedByOneEdgeSplits(t *testing.T) {
	g := core.NewGraph()
	var ids []int
	for i := 0; i < 10; i++ {
		id, err := g.AddNode(string(rune('a' + i)))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			require.NoError(t, g.AddEdge(ids[i], ids[j], 1))
		}
	}
	for i := 5; i < 10; i++ {
		for j := i + 1; j < 10; j++ {
			require.NoError(t, g.AddEdge(ids[i], ids[j], 1))
		}
	}
	require.NoError(t, g.AddEdge(ids[0], ids[5], 1))
	g.Freeze()

	mm, err := matrix.NewModularityMatrix(g)
	require.NoError(t, err)

	membership := make([]int, g.Size())
	for i := range membership {
		membership[i] = i
	}
	res, err := community.Bisect(context.Background(), mm, membership, community.Options{})
	require.NoError(t, err)
	require.True(t, res.Divisible)
	require.Greater(t, res.DeltaQ, 0.0)

	var side1, side2 int
	for _, v := range res.S {
		if v > 0 {
			side1++
		} else {
			side2++
		}
	}
	require.Equal(t, 5, side1)
	require.Equal(t, 5, side2)
}

func TestBisectWithMVMNeverDecreasesDeltaQ(t *testing.T) {
	g := core.NewGraph()
	var ids []int
	for i := 0; i < 10; i++ {
		id, err := g.AddNode(string(rune('a' + i)))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			require.NoError(t, g.AddEdge(ids[i], ids[j], 1))
		}
	}
	for i := 5; i < 10; i++ {
		for j := i + 1; j < 10; j++ {
			require.NoError(t, g.AddEdge(ids[i], ids[j], 1))
		}
	}
	require.NoError(t, g.AddEdge(ids[0], ids[5], 1))
	g.Freeze()

	mm, err := matrix.NewModularityMatrix(g)
	require.NoError(t, err)

	membership := make([]int, g.Size())
	for i := range membership {
		membership[i] = i
	}

	plain, err := community.Bisect(context.Background(), mm, membership, community.Options{})
	require.NoError(t, err)
	withMVM, err := community.Bisect(context.Background(), mm, membership, community.Options{UseMVM: true})
	require.NoError(t, err)

	require.True(t, plain.Divisible)
	require.True(t, withMVM.Divisible)
	require.GreaterOrEqual(t, withMVM.DeltaQ, plain.DeltaQ-1e-12)
}
