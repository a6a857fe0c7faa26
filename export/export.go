// SPDX-License-Identifier: MIT

// Package export writes the output files of spec.md §6 for a completed
// run: indivisible communities, the dendrogram, per-community membership
// tables, and the final modularity value.
package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/newman/community"
	"github.com/katalvlaran/newman/core"
)

// WriteCommunities writes B_communities.dat: one indivisible leaf per line,
// "name<TAB>nodeName1<TAB>nodeName2...". An emptied leaf (gMVM moved away
// every member) writes "name<TAB>EMPTIED".
func WriteCommunities(w io.Writer, g *core.Graph, tree *community.Tree) error {
	for _, leaf := range tree.ExportCommunities() {
		if leaf.Emptied() {
			if _, err := fmt.Fprintf(w, "%s\tEMPTIED\n", leaf.Name()); err != nil {
				return err
			}
			continue
		}

		names := make([]string, len(leaf.Membership()))
		for i, idx := range leaf.Membership() {
			names[i] = g.NodeName(idx)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", leaf.Name(), strings.Join(names, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// WriteDendrogram writes B_dendrogram.dat: "childIdA<TAB>childIdB<TAB>height"
// rows, one per internal tree node.
func WriteDendrogram(w io.Writer, tree *community.Tree) error {
	for _, row := range tree.Dendrogram() {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%d\n", row.ChildIDA, row.ChildIDB, row.Height); err != nil {
			return err
		}
	}
	return nil
}

// WritePerCommunity writes B_community.dat: "nodeName<TAB>communityIndex"
// lines, one per graph node, sorted by node name per CompareNodeNames.
// communityIndex is the 0-based position of the node's leaf within
// tree.ExportCommunities().
func WritePerCommunity(w io.Writer, g *core.Graph, tree *community.Tree) error {
	leaves := tree.ExportCommunities()
	leafOf := make(map[int]int, g.Size())
	for ci, leaf := range leaves {
		for _, idx := range leaf.Membership() {
			leafOf[idx] = ci
		}
	}

	names := make([]string, 0, g.Size())
	for i := 0; i < g.Size(); i++ {
		names = append(names, g.NodeName(i))
	}
	sort.Slice(names, func(i, j int) bool { return CompareNodeNames(names[i], names[j]) })

	for _, name := range names {
		idx, ok := g.IndexOf(name)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\n", name, leafOf[idx]); err != nil {
			return err
		}
	}
	return nil
}

// WriteModularity writes B_modularity.dat: a single floating-point value.
func WriteModularity(w io.Writer, q float64) error {
	_, err := fmt.Fprintf(w, "%g\n", q)
	return err
}

// CompareNodeNames implements the spec.md §6 node-name sort order: numeric
// node names sort numerically and precede string names; string names
// compare case-insensitively. Suitable as a sort.Slice less function.
func CompareNodeNames(a, b string) bool {
	an, aok := asNumber(a)
	bn, bok := asNumber(b)
	switch {
	case aok && bok:
		return an < bn
	case aok && !bok:
		return true
	case !aok && bok:
		return false
	default:
		return strings.ToLower(a) < strings.ToLower(b)
	}
}

func asNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
