// SPDX-License-Identifier: MIT

// Command communityctl is the CLI surface of spec.md §6: it loads one or
// more graph files, runs Newman's spectral modularity maximization over
// each, and writes the B_*.dat output files.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/katalvlaran/newman/engine"
)

func main() {
	format := flag.String("format", "tsv", "input format: tsv, gml, dot, net")
	outputDir := flag.String("output-dir", ".", "directory for B_*.dat output files")
	mvm := flag.Bool("mvm", false, "enable local Moving-Vertex refinement")
	gmvm := flag.Bool("gmvm", false, "enable global Moving-Vertex refinement")
	eigenFlag := flag.String("eigen", "power", "eigensolver backend: power, full")
	exportDendrogram := flag.Bool("export-dendrogram", false, "write B_dendrogram.dat")
	exportSubnetworks := flag.Bool("export-subnetworks", false, "write per-community subnetwork files")
	_ = flag.Bool("color", false, "accepted for compatibility; colorized rendering is out of scope")
	_ = flag.Int("seed", 0, "random seed; affects loaders only, unused by the deterministic loaders in this package")

	cli.ArgsHelp = "input-path-or-glob [input-path-or-glob...]"
	cli.MinArgs = 1
	cli.MaxArgs = -1
	cli.Main()

	settings := engine.DefaultSettings()
	settings.UseMovingVertex = *mvm
	settings.UseGlobalMovingVertex = *gmvm
	settings.ExportDendrogram = *exportDendrogram
	settings.ExportSubnetworks = *exportSubnetworks
	if *eigenFlag == "full" {
		settings.EigenMethod = engine.EigenFull
	} else {
		settings.EigenMethod = engine.EigenPower
	}

	var paths []string
	for _, arg := range flag.Args() {
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Errf("communityctl: creating output dir %s: %v", *outputDir, err)
		os.Exit(2)
	}

	os.Exit(runAll(paths, *format, *outputDir, settings))
}
