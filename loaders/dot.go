// SPDX-License-Identifier: MIT

package loaders

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/newman/core"
)

// dotEdgeRe matches a single DOT undirected-edge statement, with optional
// quotes around node names and an optional [weight=W] or [label=W]
// attribute list. It intentionally does not attempt full DOT grammar:
// spec.md §6 asks only for "equivalent parsers" to TSV/GML, not a generic
// Graphviz reader.
var dotEdgeRe = regexp.MustCompile(`^"?([^"\s\[]+)"?\s*--\s*"?([^"\s\[]+)"?\s*(\[(.*)\])?\s*;?$`)

var dotWeightRe = regexp.MustCompile(`weight\s*=\s*"?([0-9.eE+-]+)"?`)

// LoadDOT reads an undirected Graphviz-style subset: statements of the form
// `A -- B;` or `"A" -- "B" [weight=2.0];`, one per line. Lines that don't
// match an edge statement (graph/digraph/node declarations, braces,
// comments) are ignored.
func LoadDOT(r io.Reader) (*core.Graph, error) {
	g := core.NewGraph(core.WithWeighted())
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}
		m := dotEdgeRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		weight := 1.0
		if m[4] != "" {
			if wm := dotWeightRe.FindStringSubmatch(m[4]); wm != nil {
				w, err := strconv.ParseFloat(wm[1], 64)
				if err != nil {
					return nil, fmt.Errorf("loaders: DOT bad weight %q: %w", wm[1], ErrInputError)
				}
				weight = w
			}
		}

		if err := addNamedEdge(g, m[1], m[2], weight); err != nil {
			return nil, fmt.Errorf("loaders: DOT: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loaders: DOT: %w", err)
	}

	g.Freeze()
	return g, nil
}
