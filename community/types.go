// SPDX-License-Identifier: MIT

// Package community implements the Bisector, RecursiveDivider and
// CommunityTree of Newman's spectral modularity maximization: given a
// graph's modularity matrix, it recursively splits communities in two along
// the sign of the leading eigenvector, optionally refining each split with
// local and global vertex-moving heuristics, until every remaining
// community is indivisible.
package community

import (
	"errors"

	"github.com/katalvlaran/newman/eigen"
)

// ErrInvariantViolation indicates a community was observed with exactly one
// child, which the tree invariants forbid; it means the divider itself has
// a bug.
var ErrInvariantViolation = errors.New("community: invariant violation")

// ErrCanceled is returned by Divide when ctx is canceled mid-recursion; the
// Tree returned alongside it is the partial tree built so far, with every
// in-progress community demoted to a leaf.
var ErrCanceled = errors.New("community: canceled")

// Options configures the Bisector and RecursiveDivider. The zero value runs
// plain Newman bisection with no refinement, power iteration only.
type Options struct {
	// UseMVM enables local Moving-Vertex refinement after each bisection
	// (spec.md §4.4 step 6).
	UseMVM bool
	// UseGMVM enables the whole-tree Global Moving-Vertex post-pass
	// (spec.md §4.5).
	UseGMVM bool
	// EigenMethod selects the eigensolver backend (spec.md §4.2/§4.7).
	EigenMethod eigen.Method
	// OnWarning, if set, is called with a human-readable message every
	// time a ConvergenceWarning (spec.md §7) is recovered from locally, so
	// a caller (engine.Run) can surface it in a run summary.
	OnWarning func(msg string)
}

// Community is one node of the community tree: either an internal node
// (exactly two children, ΔQ recorded at the split that created them) or a
// leaf (no children, an indivisible or gMVM-emptied set of vertices).
//
// Communities are addressed by a stable arena id rather than by pointer, so
// that gMVM's cross-leaf moves and dendrogram export can refer to them as
// small integers (spec.md §9 "arena of node records indexed by integer
// id").
type Community struct {
	id         int
	name       string
	membership []int
	depth      int
	deltaQ     float64
	parent     int
	child1     int
	child2     int
	emptied    bool
}

// ID returns the community's arena id, unique within its Tree.
func (c *Community) ID() int { return c.id }

// Name is the root's empty string, or a child's parent name with "A" or "B"
// appended depending on which side of the bisection it is (spec.md §4.6).
func (c *Community) Name() string { return c.name }

// Membership is the ordered list of original-graph node indices currently
// assigned to this community.
func (c *Community) Membership() []int { return c.membership }

// Size is len(Membership()).
func (c *Community) Size() int { return len(c.membership) }

// Depth is 0 for the root, parent.Depth()+1 otherwise.
func (c *Community) Depth() int { return c.depth }

// DeltaQ is the modularity gain recorded at the split that created this
// community's two children, or -1 if this community is a leaf (never split,
// or found indivisible).
func (c *Community) DeltaQ() float64 { return c.deltaQ }

// IsLeaf reports whether this community has no children.
func (c *Community) IsLeaf() bool { return c.child1 < 0 }

// Emptied reports whether gMVM moved every vertex out of this leaf.
func (c *Community) Emptied() bool { return c.emptied }

// Parent returns the arena id of this community's parent, or -1 for the
// root.
func (c *Community) Parent() int { return c.parent }

// Children returns the arena ids of the two children, or (-1,-1) for a
// leaf.
func (c *Community) Children() (int, int) { return c.child1, c.child2 }

// Tree is a rooted binary tree of Communities, indexed by arena id. Its
// leaves form a partition of the root's membership (modulo gMVM moves,
// spec.md §4.6 invariants).
type Tree struct {
	nodes  []*Community
	rootID int
}

// Root returns the tree's root community.
func (t *Tree) Root() *Community { return t.nodes[t.rootID] }

// Node looks up a community by arena id.
func (t *Tree) Node(id int) *Community { return t.nodes[id] }

// Len returns the number of communities (internal and leaf) in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// newNode appends a fresh community to the arena and returns it.
func (t *Tree) newNode(name string, membership []int, depth, parent int) *Community {
	c := &Community{
		id:         len(t.nodes),
		name:       name,
		membership: membership,
		depth:      depth,
		deltaQ:     -1,
		parent:     parent,
		child1:     -1,
		child2:     -1,
	}
	t.nodes = append(t.nodes, c)
	return c
}

// Leaves returns every leaf community in arena-id order, including emptied
// ones.
func (t *Tree) Leaves() []*Community {
	var out []*Community
	for _, c := range t.nodes {
		if c.IsLeaf() {
			out = append(out, c)
		}
	}
	return out
}

// PreOrder visits every community, parent before children.
func (t *Tree) PreOrder(visit func(*Community)) {
	var walk func(id int)
	walk = func(id int) {
		c := t.nodes[id]
		visit(c)
		if !c.IsLeaf() {
			walk(c.child1)
			walk(c.child2)
		}
	}
	walk(t.rootID)
}

// PostOrder visits every community, children before their parent.
func (t *Tree) PostOrder(visit func(*Community)) {
	var walk func(id int)
	walk = func(id int) {
		c := t.nodes[id]
		if !c.IsLeaf() {
			walk(c.child1)
			walk(c.child2)
		}
		visit(c)
	}
	walk(t.rootID)
}

// ByDepth groups every community by its depth, root first.
func (t *Tree) ByDepth() [][]*Community {
	var levels [][]*Community
	t.PreOrder(func(c *Community) {
		for len(levels) <= c.depth {
			levels = append(levels, nil)
		}
		levels[c.depth] = append(levels[c.depth], c)
	})
	return levels
}
