// SPDX-License-Identifier: MIT

package export_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/newman/community"
	"github.com/katalvlaran/newman/core"
	"github.com/katalvlaran/newman/export"
	"github.com/katalvlaran/newman/matrix"
)

func buildGraph(t *testing.T) *core.Graph {
	t.Helper()
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
	return g
}

func TestWriteCommunitiesAndDendrogram(t *testing.T) {
	g := buildGraph(t)
	mm, err := matrix.NewModularityMatrix(g)
	require.NoError(t, err)
	tree, err := community.Divide(context.Background(), mm, community.Options{})
	require.NoError(t, err)

	var commBuf, dendroBuf, perCommBuf, modBuf bytes.Buffer
	require.NoError(t, export.WriteCommunities(&commBuf, g, tree))
	require.NoError(t, export.WriteDendrogram(&dendroBuf, tree))
	require.NoError(t, export.WritePerCommunity(&perCommBuf, g, tree))
	require.NoError(t, export.WriteModularity(&modBuf, tree.Modularity(mm)))

	commLines := strings.Split(strings.TrimSpace(commBuf.String()), "\n")
	require.Len(t, commLines, 2)

	dendroLines := strings.Split(strings.TrimSpace(dendroBuf.String()), "\n")
	require.Len(t, dendroLines, 1)

	perCommLines := strings.Split(strings.TrimSpace(perCommBuf.String()), "\n")
	require.Len(t, perCommLines, 10)

	require.NotEmpty(t, strings.TrimSpace(modBuf.String()))
}

func TestCompareNodeNamesNumericBeforeString(t *testing.T) {
	require.True(t, export.CompareNodeNames("2", "10"))
	require.False(t, export.CompareNodeNames("10", "2"))
	require.True(t, export.CompareNodeNames("3", "apple"))
	require.False(t, export.CompareNodeNames("apple", "3"))
	require.True(t, export.CompareNodeNames("Apple", "banana"))
}
