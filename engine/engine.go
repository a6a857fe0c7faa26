// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/log"

	"github.com/katalvlaran/newman/community"
	"github.com/katalvlaran/newman/core"
	"github.com/katalvlaran/newman/matrix"
)

// RunSummary reports the outcome of a Run beyond the tree itself: the final
// modularity, how many leaves it produced, any ConvergenceWarnings
// recovered locally during the run (spec.md §7 "surfaced in run summary"),
// and whether cancellation cut the run short.
type RunSummary struct {
	Q         float64
	LeafCount int
	Warnings  []string
	Partial   bool
}

// ErrInvalidGraph is returned when Run is given a graph that was never
// frozen, or a nil graph.
var ErrInvalidGraph = errors.New("engine: graph is not frozen")

// Run is the façade of spec.md §4.7: it builds the modularity matrix,
// drives the recursive divider with the given settings, and returns the
// resulting tree plus a RunSummary. ctx is forwarded to community.Divide
// for cooperative cancellation (spec.md §5).
func Run(ctx context.Context, g *core.Graph, settings Settings) (*community.Tree, RunSummary, error) {
	if g == nil || !g.Frozen() {
		return nil, RunSummary{}, ErrInvalidGraph
	}

	mm, err := matrix.NewModularityMatrix(g)
	if err != nil {
		return nil, RunSummary{}, fmt.Errorf("engine: Run: %w", err)
	}

	var warnings []string
	opts := settings.toOptions(func(msg string) {
		warnings = append(warnings, msg)
	})

	tree, err := community.Divide(ctx, mm, opts)
	partial := errors.Is(err, community.ErrCanceled)
	if err != nil && !partial {
		if errors.Is(err, community.ErrInvariantViolation) {
			log.Errf("engine: Run: invariant violation, aborting")
		}
		return nil, RunSummary{}, fmt.Errorf("engine: Run: %w", err)
	}

	summary := RunSummary{
		Q:         tree.Modularity(mm),
		LeafCount: len(tree.Leaves()),
		Warnings:  warnings,
		Partial:   partial,
	}
	if partial {
		log.Warnf("engine: Run: canceled, returning partial tree with %d leaves", summary.LeafCount)
	} else {
		log.Infof("engine: Run: Q=%.6f leaves=%d", summary.Q, summary.LeafCount)
	}

	return tree, summary, nil
}
