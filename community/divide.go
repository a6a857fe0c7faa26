// SPDX-License-Identifier: MIT

package community

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/newman/matrix"
)

// Divide implements spec.md §4.5: it drives the top-down recursive
// bisection of the whole graph (mm must have been built from the full
// graph) and returns the resulting community tree.
//
// ctx is checked between recursive descents and, via Bisect's eigensolver
// call, between power-iteration passes. On cancellation the community
// being split when ctx was observed canceled becomes a leaf instead of
// recursing further; Divide returns the partial tree built so far together
// with ErrCanceled.
func Divide(ctx context.Context, mm *matrix.ModularityMatrix, opts Options) (*Tree, error) {
	n := mm.N()
	root := make([]int, n)
	for i := range root {
		root[i] = i
	}

	t := &Tree{}
	t.newNode("", root, 0, -1)
	t.rootID = 0

	canceled, err := divideNode(ctx, t, 0, mm, opts)
	if opts.UseGMVM {
		gmvm(t, mm)
	}
	if canceled {
		return t, ErrCanceled
	}
	return t, err
}

// divideNode recursively bisects the community at id, depth-first: it
// records this community's ΔQ at split time, before descending into child1
// and then child2. The accumulation Q = ΣΔQ does not depend on traversal
// order, since each internal node's ΔQ is fixed at its own split.
func divideNode(ctx context.Context, t *Tree, id int, mm *matrix.ModularityMatrix, opts Options) (bool, error) {
	if err := ctx.Err(); err != nil {
		return true, nil
	}

	c := t.nodes[id]
	res, err := Bisect(ctx, mm, c.membership, opts)
	if err != nil {
		if ctx.Err() != nil {
			return true, nil
		}
		return false, fmt.Errorf("community: divide: %w", err)
	}
	if !res.Divisible {
		return false, nil
	}

	var left, right []int
	for i, member := range c.membership {
		if res.S[i] > 0 {
			left = append(left, member)
		} else {
			right = append(right, member)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return false, nil
	}

	c.deltaQ = res.DeltaQ
	c1 := t.newNode(c.name+"A", left, c.depth+1, id)
	c2 := t.newNode(c.name+"B", right, c.depth+1, id)
	c.child1, c.child2 = c1.id, c2.id

	if (c.child1 < 0) != (c.child2 < 0) {
		return false, ErrInvariantViolation
	}

	if canceled, err := divideNode(ctx, t, c1.id, mm, opts); canceled || err != nil {
		return canceled, err
	}
	return divideNode(ctx, t, c2.id, mm, opts)
}

// gmvm implements the Global Moving-Vertex post-pass of spec.md §4.5: it
// repeatedly moves the single vertex whose move between two current leaves
// yields the largest positive ΔQ (computed against the full B, not any
// B⁽ᵍ⁾), until no positive move remains. A leaf may end up empty, in which
// case it is flagged Emptied rather than removed (spec.md §3 invariant).
func gmvm(t *Tree, mm *matrix.ModularityMatrix) {
	leaves := t.Leaves()
	if len(leaves) < 2 {
		return
	}

	m := mm.M()

	for {
		bestGain := 0.0
		bestVertex := -1
		bestSrc, bestDst := -1, -1

		// Tie-break by (source-leaf-index, vertex-index, target-leaf-index),
		// per spec.md §4.5; iterating leaves/vertices/leaves in ascending
		// order and only replacing the incumbent on a strictly larger gain
		// gives exactly that priority.
		for srcIdx, leaf := range leaves {
			for _, v := range sortedCopy(leaf.membership) {
				for dstIdx, other := range leaves {
					if dstIdx == srcIdx {
						continue
					}
					gain := moveGain(mm, v, leaf.membership, other.membership, m)
					if gain > bestGain {
						bestGain = gain
						bestVertex = v
						bestSrc, bestDst = srcIdx, dstIdx
					}
				}
			}
		}

		if bestVertex < 0 {
			break
		}

		src, dst := leaves[bestSrc], leaves[bestDst]
		src.membership = removeVertex(src.membership, bestVertex)
		dst.membership = append(dst.membership, bestVertex)
		if len(src.membership) == 0 {
			src.emptied = true
		}
	}
}

// moveGain is the ΔQ of moving vertex v out of from and into to, both taken
// as fixed sets of the full-graph membership, computed directly against B.
//
// Moving v changes the partition's Q by the difference in v's contribution:
// it stops pairing with "from \ {v}" and starts pairing with "to", each
// pairing counted both directions (hence the factor 2), over 2m, the same
// normalization Tree.Modularity uses.
func moveGain(mm *matrix.ModularityMatrix, v int, from, to []int, m float64) float64 {
	var gain float64
	for _, u := range from {
		if u == v {
			continue
		}
		b, _ := mm.B.At(v, u)
		gain -= 2 * b
	}
	for _, u := range to {
		b, _ := mm.B.At(v, u)
		gain += 2 * b
	}
	return gain / (2 * m)
}

func sortedCopy(xs []int) []int {
	out := make([]int, len(xs))
	copy(out, xs)
	sort.Ints(out)
	return out
}

func removeVertex(membership []int, v int) []int {
	out := membership[:0:0]
	for _, u := range membership {
		if u != v {
			out = append(out, u)
		}
	}
	return out
}
