// SPDX-License-Identifier: MIT

package loaders

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/newman/core"
)

// LoadNET reads a Pajek .net file's vertex/edge sections:
//
//	*Vertices N
//	1 "name one"
//	2 "name two"
//	*Edges
//	1 2 0.5
//
// Vertex numbers are 1-based in the file and mapped to the 0-based indices
// core.Graph assigns in declaration order.
func LoadNET(r io.Reader) (*core.Graph, error) {
	g := core.NewGraph(core.WithWeighted())
	idToIndex := make(map[string]int)

	scanner := bufio.NewScanner(r)
	section := ""
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "*") {
			switch {
			case strings.HasPrefix(strings.ToLower(text), "*vertices"):
				section = "vertices"
			case strings.HasPrefix(strings.ToLower(text), "*edges"), strings.HasPrefix(strings.ToLower(text), "*arcs"):
				section = "edges"
			default:
				section = ""
			}
			continue
		}

		fields := strings.Fields(text)
		switch section {
		case "vertices":
			if len(fields) < 1 {
				return nil, fmt.Errorf("loaders: NET line %d: empty vertex row: %w", line, ErrInputError)
			}
			id := fields[0]
			name := id
			if len(fields) >= 2 {
				name = strings.Trim(strings.Join(fields[1:], " "), "\"")
			}
			idx, err := g.AddNode(name)
			if err != nil {
				return nil, fmt.Errorf("loaders: NET line %d: %w: %v", line, ErrInputError, err)
			}
			idToIndex[id] = idx
		case "edges":
			if len(fields) < 2 {
				return nil, fmt.Errorf("loaders: NET line %d: need two endpoints: %w", line, ErrInputError)
			}
			si, ok := idToIndex[fields[0]]
			if !ok {
				return nil, fmt.Errorf("loaders: NET line %d: undeclared vertex %q: %w", line, fields[0], ErrInputError)
			}
			di, ok := idToIndex[fields[1]]
			if !ok {
				return nil, fmt.Errorf("loaders: NET line %d: undeclared vertex %q: %w", line, fields[1], ErrInputError)
			}
			weight := 1.0
			if len(fields) >= 3 {
				w, err := strconv.ParseFloat(fields[2], 64)
				if err != nil {
					return nil, fmt.Errorf("loaders: NET line %d: bad weight %q: %w", line, fields[2], ErrInputError)
				}
				weight = w
			}
			if err := g.AddEdge(si, di, weight); err != nil {
				return nil, fmt.Errorf("loaders: NET line %d: %w: %v", line, ErrInputError, err)
			}
		default:
			// ignore rows outside a recognized section
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loaders: NET: %w", err)
	}

	g.Freeze()
	return g, nil
}
