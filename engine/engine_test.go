// SPDX-License-Identifier: MIT

package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/newman/core"
	"github.com/katalvlaran/newman/engine"
)

func twoCliques(t *testing.T) *core.Graph {
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

func TestRunProducesExpectedModularity(t *testing.T) {
	g := twoCliques(t)
	tree, summary, err := engine.Run(context.Background(), g, engine.DefaultSettings())
	require.NoError(t, err)
	require.Equal(t, 2, summary.LeafCount)
	require.Greater(t, summary.Q, 0.4)
	require.False(t, summary.Partial)
	require.Equal(t, 2, len(tree.Leaves()))
}

func TestRunRejectsUnfrozenGraph(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddNode("a")
	require.NoError(t, err)

	_, _, err = engine.Run(context.Background(), g, engine.DefaultSettings())
	require.ErrorIs(t, err, engine.ErrInvalidGraph)
}

func TestRunCancellationReportsPartial(t *testing.T) {
	g := twoCliques(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree, summary, err := engine.Run(ctx, g, engine.DefaultSettings())
	require.NoError(t, err)
	require.True(t, summary.Partial)
	require.Equal(t, 1, summary.LeafCount)
	require.Equal(t, g.Size(), tree.Root().Size())
}

func TestSettingsYAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	s := engine.DefaultSettings()
	s.UseMovingVertex = true
	s.UseGlobalMovingVertex = true
	s.EigenMethod = engine.EigenFull

	require.NoError(t, s.Dump(path))

	loaded, err := engine.LoadSettings(path)
	require.NoError(t, err)
	require.Equal(t, s, loaded)

	_, err = os.Stat(path)
	require.NoError(t, err)
}
