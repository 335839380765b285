// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// glyphgraph draws a graph of how much of each glyph is inked.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"rescribe.xyz/glyphpipeline"
	"rescribe.xyz/glyphpipeline/internal/pipeline"
)

const usage = `Usage: glyphgraph [-v] glyphdir graph.png

Creates a graph showing the proportion of each glyph's canvas which is
inked, in filename order. Glyphs outside the 10th and 90th percentiles
are labelled with their position, and are worth checking by eye, as
they may have been thresholded badly.
`

func main() {
	verbose := flag.Bool("v", false, "verbose")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	var verboselog *log.Logger
	if *verbose {
		verboselog = log.New(os.Stdout, "", 0)
	} else {
		var n pipeline.NullWriter
		verboselog = log.New(n, "", 0)
	}

	covs, _, err := pipeline.CoverageDir(context.Background(), flag.Arg(0), verboselog)
	if err != nil {
		log.Fatalln("Error measuring glyphs:", err)
	}

	f, err := os.Create(flag.Arg(1))
	if err != nil {
		log.Fatalf("Could not create file %s: %v\n", flag.Arg(1), err)
	}
	defer f.Close()

	err = glyphpipeline.Graph(covs, filepath.Base(filepath.Clean(flag.Arg(0))), f)
	if err != nil {
		log.Fatalln("Error creating graph:", err)
	}

	s := glyphpipeline.Stats(covs)
	verboselog.Printf("Mean coverage %.1f%%, 10th percentile %.1f%%, 90th percentile %.1f%%\n", s.Mean, s.Low, s.High)
}
