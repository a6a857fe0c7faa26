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

// LoadGML reads the Graph Modelling Language subset of spec.md §6:
//
//	graph [ node [ id N label "…" ] … edge [ source S target T weight W ] … ]
//
// Tokens are whitespace-separated except inside double-quoted strings.
func LoadGML(r io.Reader) (*core.Graph, error) {
	tokens, err := tokenizeGML(r)
	if err != nil {
		return nil, err
	}

	g := core.NewGraph(core.WithWeighted())
	idToIndex := make(map[string]int)

	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "node":
			block, next, err := gmlBlock(tokens, i+1)
			if err != nil {
				return nil, err
			}
			id, label, err := gmlNodeFields(block)
			if err != nil {
				return nil, err
			}
			idx, aerr := g.AddNode(label)
			if aerr != nil {
				return nil, fmt.Errorf("loaders: GML node %q: %w: %v", id, ErrInputError, aerr)
			}
			idToIndex[id] = idx
			i = next
		case "edge":
			block, next, err := gmlBlock(tokens, i+1)
			if err != nil {
				return nil, err
			}
			src, dst, weight, err := gmlEdgeFields(block)
			if err != nil {
				return nil, err
			}
			si, ok := idToIndex[src]
			if !ok {
				return nil, fmt.Errorf("loaders: GML edge references undeclared node %q: %w", src, ErrInputError)
			}
			di, ok := idToIndex[dst]
			if !ok {
				return nil, fmt.Errorf("loaders: GML edge references undeclared node %q: %w", dst, ErrInputError)
			}
			if err := g.AddEdge(si, di, weight); err != nil {
				return nil, fmt.Errorf("loaders: GML edge %s-%s: %w: %v", src, dst, ErrInputError, err)
			}
			i = next
		}
	}

	g.Freeze()
	return g, nil
}

// tokenizeGML splits on whitespace and brackets, keeping quoted strings
// intact as single tokens (without their quotes).
func tokenizeGML(r io.Reader) ([]string, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		var b strings.Builder
		inQuote := false
		flush := func() {
			if b.Len() > 0 {
				tokens = append(tokens, b.String())
				b.Reset()
			}
		}
		for _, r := range line {
			switch {
			case r == '"':
				inQuote = !inQuote
				if !inQuote {
					flush()
				}
			case inQuote:
				b.WriteRune(r)
			case r == '[' || r == ']':
				flush()
				tokens = append(tokens, string(r))
			case r == ' ' || r == '\t' || r == '\r':
				flush()
			default:
				b.WriteRune(r)
			}
		}
		flush()
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loaders: GML: %w", err)
	}
	return tokens, nil
}

// gmlBlock returns the tokens strictly between the "[" expected at start
// and its matching "]", and the index of that closing bracket.
func gmlBlock(tokens []string, start int) ([]string, int, error) {
	if start >= len(tokens) || tokens[start] != "[" {
		return nil, 0, fmt.Errorf("loaders: GML: expected '[' at token %d: %w", start, ErrInputError)
	}
	depth := 1
	for i := start + 1; i < len(tokens); i++ {
		switch tokens[i] {
		case "[":
			depth++
		case "]":
			depth--
			if depth == 0 {
				return tokens[start+1 : i], i, nil
			}
		}
	}
	return nil, 0, fmt.Errorf("loaders: GML: unterminated block starting at %d: %w", start, ErrInputError)
}

func gmlNodeFields(block []string) (id, label string, err error) {
	for i := 0; i < len(block); i++ {
		switch block[i] {
		case "id":
			if i+1 < len(block) {
				id = block[i+1]
			}
		case "label":
			if i+1 < len(block) {
				label = block[i+1]
			}
		}
	}
	if id == "" {
		return "", "", fmt.Errorf("loaders: GML node missing id: %w", ErrInputError)
	}
	if label == "" {
		label = id
	}
	return id, label, nil
}

func gmlEdgeFields(block []string) (src, dst string, weight float64, err error) {
	weight = 1.0
	for i := 0; i < len(block); i++ {
		switch block[i] {
		case "source":
			if i+1 < len(block) {
				src = block[i+1]
			}
		case "target":
			if i+1 < len(block) {
				dst = block[i+1]
			}
		case "weight":
			if i+1 < len(block) {
				w, perr := strconv.ParseFloat(block[i+1], 64)
				if perr != nil {
					return "", "", 0, fmt.Errorf("loaders: GML edge bad weight %q: %w", block[i+1], ErrInputError)
				}
				weight = w
			}
		}
	}
	if src == "" || dst == "" {
		return "", "", 0, fmt.Errorf("loaders: GML edge missing source/target: %w", ErrInputError)
	}
	return src, dst, weight, nil
}
