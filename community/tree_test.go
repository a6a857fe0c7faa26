// SPDX-License-Identifier: MIT

package community_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/newman/community"
	"github.com/katalvlaran/newman/matrix"
)

func TestDendrogramHeightsAndExportCommunities(t *testing.T) {
	g := twoCliquesJoined(t)
	mm, err := matrix.NewModularityMatrix(g)
	require.NoError(t, err)

	tree, err := community.Divide(context.Background(), mm, community.Options{})
	require.NoError(t, err)

	rows := tree.Dendrogram()
	require.Len(t, rows, 1, "one split for a two-clique graph")
	require.Equal(t, 0, rows[0].Height)

	comms := tree.ExportCommunities()
	require.Len(t, comms, 2)
	require.ElementsMatch(t, []string{"A", "B"}, []string{comms[0].Name(), comms[1].Name()})
}

func TestModularityMatchesSumOfDeltaQWithoutGMVM(t *testing.T) {
	g := twoCliquesJoined(t)
	mm, err := matrix.NewModularityMatrix(g)
	require.NoError(t, err)

	tree, err := community.Divide(context.Background(), mm, community.Options{})
	require.NoError(t, err)

	var sum float64
	tree.PreOrder(func(c *community.Community) {
		if !c.IsLeaf() {
			sum += c.DeltaQ()
		}
	})
	require.InDelta(t, sum, tree.Modularity(mm), 1e-9)
}
