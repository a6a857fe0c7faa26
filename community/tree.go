// SPDX-License-Identifier: MIT

package community

import "github.com/katalvlaran/newman/matrix"

// DendrogramRow is one row of the B_dendrogram.dat export (spec.md §6):
// the arena ids of the two children produced by a split, and the split's
// height, counted down from the tree's maximum depth.
type DendrogramRow struct {
	ChildIDA int
	ChildIDB int
	Height   int
}

// Dendrogram returns one row per internal (non-leaf) community, in
// pre-order.
func (t *Tree) Dendrogram() []DendrogramRow {
	maxDepth := 0
	t.PreOrder(func(c *Community) {
		if c.depth > maxDepth {
			maxDepth = c.depth
		}
	})

	var rows []DendrogramRow
	t.PreOrder(func(c *Community) {
		if c.IsLeaf() {
			return
		}
		rows = append(rows, DendrogramRow{
			ChildIDA: c.child1,
			ChildIDB: c.child2,
			Height:   maxDepth - c.depth - 1,
		})
	})
	return rows
}

// ExportCommunities returns the tree's indivisible leaves, including
// emptied ones, for B_communities.dat.
func (t *Tree) ExportCommunities() []*Community {
	return t.Leaves()
}

// Modularity recomputes Q directly from the final leaf memberships against
// B, rather than by summing recorded ΔQ values, because gMVM moves vertices
// across subtrees and invalidates the parent/child ΔQ accounting (spec.md
// §9 "the authoritative Q is recomputed from the final leaf memberships").
//
// Q = (1/2m) Σ over leaves C of Σᵢⱼ∈C Bᵢⱼ, which equals the sum of the
// ΔQ = sᵀB⁽ᵍ⁾s/(4m) recorded at every split when gMVM is off.
func (t *Tree) Modularity(mm *matrix.ModularityMatrix) float64 {
	m := mm.M()
	if m == 0 {
		return 0
	}

	var sum float64
	for _, leaf := range t.Leaves() {
		for _, i := range leaf.membership {
			for _, j := range leaf.membership {
				b, _ := mm.B.At(i, j)
				sum += b
			}
		}
	}
	return sum / (2 * m)
}
