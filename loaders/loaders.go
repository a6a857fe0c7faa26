// SPDX-License-Identifier: MIT

// Package loaders adapts the graph file formats of spec.md §6 (TSV, GML,
// DOT, Pajek/NET) into a *core.Graph. These are external collaborators:
// the community-detection core never reads a file itself.
package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/newman/core"
)

// ErrInputError wraps every malformed-input condition these loaders
// detect: unknown format, a line that doesn't parse, or an edge that
// references a node id never declared.
var ErrInputError = errors.New("loaders: input error")

// LoadTSV reads one edge per line: "source<TAB>target<TAB>weight", weight
// optional (defaults to 1.0). Lines starting with "#" are comments; blank
// lines are skipped. Node names are assigned stable indices in the order
// they are first seen.
func LoadTSV(r io.Reader) (*core.Graph, error) {
	g := core.NewGraph(core.WithWeighted())
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			fields = strings.Fields(text)
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("loaders: TSV line %d: need source and target: %w", line, ErrInputError)
		}

		weight := 1.0
		if len(fields) >= 3 {
			w, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("loaders: TSV line %d: bad weight %q: %w", line, fields[2], ErrInputError)
			}
			weight = w
		}

		if err := addNamedEdge(g, fields[0], fields[1], weight); err != nil {
			return nil, fmt.Errorf("loaders: TSV line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loaders: TSV: %w", err)
	}

	g.Freeze()
	return g, nil
}

// addNamedEdge registers both endpoints by name (idempotent) then adds the
// weighted edge between them.
func addNamedEdge(g *core.Graph, src, dst string, weight float64) error {
	i, err := g.AddNode(strings.TrimSpace(src))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputError, err)
	}
	j, err := g.AddNode(strings.TrimSpace(dst))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputError, err)
	}
	if err := g.AddEdge(i, j, weight); err != nil {
		return fmt.Errorf("%w: %v", ErrInputError, err)
	}
	return nil
}
