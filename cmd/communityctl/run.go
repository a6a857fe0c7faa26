// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"

	"github.com/katalvlaran/newman/community"
	"github.com/katalvlaran/newman/core"
	"github.com/katalvlaran/newman/engine"
	"github.com/katalvlaran/newman/export"
	"github.com/katalvlaran/newman/loaders"
)

// runAll processes every input path and returns the process exit code: 0
// ok, 1 input error, 2 compute error (spec.md §6).
func runAll(paths []string, format, outputDir string, settings engine.Settings) int {
	for _, path := range paths {
		if err := runOne(path, format, outputDir, settings); err != nil {
			log.Errf("communityctl: %s: %v", path, err)
			if errors.Is(err, loaders.ErrInputError) {
				return 1
			}
			return 2
		}
	}
	return 0
}

func runOne(path, format, outputDir string, settings engine.Settings) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", loaders.ErrInputError, err)
	}
	defer f.Close()

	g, err := loadGraph(f, format)
	if err != nil {
		return err
	}

	tree, summary, err := engine.Run(context.Background(), g, settings)
	if err != nil {
		return fmt.Errorf("communityctl: compute: %w", err)
	}
	if summary.Partial {
		log.Warnf("communityctl: %s: run was PARTIAL (canceled)", path)
	}
	log.Infof("communityctl: %s: Q=%.6f leaves=%d", path, summary.Q, summary.LeafCount)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return writeOutputs(outputDir, base, g, tree, summary, settings)
}

func loadGraph(r io.Reader, format string) (*core.Graph, error) {
	switch format {
	case "tsv":
		return loaders.LoadTSV(r)
	case "gml":
		return loaders.LoadGML(r)
	case "dot":
		return loaders.LoadDOT(r)
	case "net":
		return loaders.LoadNET(r)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", loaders.ErrInputError, format)
	}
}

// writeOutputs writes the B_*.dat files of spec.md §6 for one run, keyed by
// base (the input file's name without extension or directory).
func writeOutputs(outputDir, base string, g *core.Graph, tree *community.Tree, summary engine.RunSummary, settings engine.Settings) error {
	if err := writeFile(outputDir, base+"_communities.dat", func(w io.Writer) error {
		return export.WriteCommunities(w, g, tree)
	}); err != nil {
		return err
	}

	if err := writeFile(outputDir, base+"_community.dat", func(w io.Writer) error {
		return export.WritePerCommunity(w, g, tree)
	}); err != nil {
		return err
	}

	if err := writeFile(outputDir, base+"_modularity.dat", func(w io.Writer) error {
		return export.WriteModularity(w, summary.Q)
	}); err != nil {
		return err
	}

	if settings.ExportDendrogram {
		if err := writeFile(outputDir, base+"_dendrogram.dat", func(w io.Writer) error {
			return export.WriteDendrogram(w, tree)
		}); err != nil {
			return err
		}
	}

	if settings.ExportSubnetworks {
		for _, leaf := range tree.ExportCommunities() {
			leaf := leaf
			name := fmt.Sprintf("%s_%s.dat", base, leaf.Name())
			if err := writeFile(outputDir, name, func(w io.Writer) error {
				sub := g.Subgraph(leaf.Membership())
				for i := 0; i < sub.Size(); i++ {
					if _, err := fmt.Fprintln(w, sub.NodeName(i)); err != nil {
						return err
					}
				}
				return nil
			}); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeFile(outputDir, name string, write func(io.Writer) error) error {
	path := filepath.Join(outputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("communityctl: writing %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("communityctl: writing %s: %w", path, err)
	}
	return nil
}
