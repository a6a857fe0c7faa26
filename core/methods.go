// SPDX-License-Identifier: MIT

package core

import "fmt"

// AddNode registers name if unseen and returns its stable index. Calling
// AddNode again with the same name is idempotent and returns the same
// index. Returns ErrEmptyNodeName on "" and ErrFrozen once Freeze has run.
//
// Complexity: O(1) amortized.
func (g *Graph) AddNode(name string) (int, error) {
	if name == "" {
		return 0, ErrEmptyNodeName
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()

	if g.frozen {
		return 0, ErrFrozen
	}

	if idx, ok := g.index[name]; ok {
		return idx, nil
	}

	idx := len(g.names)
	g.names = append(g.names, name)
	g.index[name] = idx

	g.muEdgeAdj.Lock()
	g.adjacency = append(g.adjacency, make(map[int]float64))
	g.muEdgeAdj.Unlock()

	return idx, nil
}

// AddEdge adds weight to the edge between node indices i and j (both
// directions, since the graph is undirected). Calling it more than once for
// the same pair accumulates weight, which is how multi-edges are
// deduplicated at load time (spec: football reference graph has multi-edges
// that "MUST be deduplicated at load"). Self-loops (i == j) add weight once
// to Aᵢᵢ, contributing once to the row sum per the same rule.
//
// Returns ErrNodeNotFound if i or j is out of range, ErrFrozen after Freeze.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(i, j int, weight float64) error {
	g.muVert.RLock()
	n := len(g.names)
	g.muVert.RUnlock()
	if i < 0 || i >= n || j < 0 || j >= n {
		return fmt.Errorf("core: AddEdge(%d,%d): %w", i, j, ErrNodeNotFound)
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	if g.frozen {
		return ErrFrozen
	}

	g.adjacency[i][j] += weight
	if i != j {
		g.adjacency[j][i] += weight
	}
	return nil
}

// Freeze finalizes the degree vector and total edge weight m, then forbids
// further mutation. Must be called once before the graph is handed to the
// modularity engine.
//
// kᵢ = Σⱼ Aᵢⱼ (self-loop Aᵢᵢ counted once). m = (1/2)Σᵢkᵢ.
// Complexity: O(V + E).
func (g *Graph) Freeze() {
	g.muVert.Lock()
	g.muEdgeAdj.Lock()
	defer g.muVert.Unlock()
	defer g.muEdgeAdj.Unlock()

	if g.frozen {
		return
	}

	n := len(g.names)
	g.degree = make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		var ki float64
		for _, w := range g.adjacency[i] {
			ki += w
		}
		g.degree[i] = ki
		total += ki
	}
	g.m = total / 2
	g.frozen = true
}

// Size returns the number of nodes N.
// Complexity: O(1).
func (g *Graph) Size() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	return len(g.names)
}

// NumEdges returns the number of distinct unordered pairs (i,j), i<=j, with
// non-zero weight. Complexity: O(V + E) (every adjacency entry is visited).
func (g *Graph) NumEdges() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	count := 0
	for i, row := range g.adjacency {
		for j, w := range row {
			if j < i || w == 0 {
				continue
			}
			count++
		}
	}
	return count
}

// Degree returns kᵢ, the weighted degree of node i. Requires Freeze.
// Complexity: O(1).
func (g *Graph) Degree(i int) float64 {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	if !g.frozen {
		panic(ErrNotFrozen)
	}
	return g.degree[i]
}

// TotalWeight returns m, the total edge weight (half the sum of degrees).
// Requires Freeze. Complexity: O(1).
func (g *Graph) TotalWeight() float64 {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	if !g.frozen {
		panic(ErrNotFrozen)
	}
	return g.m
}

// Adjacency returns Aᵢⱼ, the weight of the edge between i and j (0 if none).
// Complexity: O(1).
func (g *Graph) Adjacency(i, j int) float64 {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	return g.adjacency[i][j]
}

// Neighbors returns the indices adjacent to i with non-zero weight, in no
// particular order. Complexity: O(deg(i)).
func (g *Graph) Neighbors(i int) []int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]int, 0, len(g.adjacency[i]))
	for j, w := range g.adjacency[i] {
		if w != 0 {
			out = append(out, j)
		}
	}
	return out
}

// NodeName returns the name assigned to index i.
// Complexity: O(1).
func (g *Graph) NodeName(i int) string {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	return g.names[i]
}

// IndexOf resolves a node name back to its stable index.
// Complexity: O(1).
func (g *Graph) IndexOf(name string) (int, bool) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	idx, ok := g.index[name]
	return idx, ok
}

// EdgePairs calls fn once for every unordered pair (i,j), i<=j, with a
// non-zero weight, including self-loops. Complexity: O(V + E).
func (g *Graph) EdgePairs(fn func(i, j int, weight float64)) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	for i, row := range g.adjacency {
		for j, w := range row {
			if j < i || w == 0 {
				continue
			}
			fn(i, j, w)
		}
	}
}
