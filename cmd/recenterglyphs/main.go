// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// recenterglyphs moves each glyph in a directory to the centre of
// its canvas.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"rescribe.xyz/glyphpipeline"
	"rescribe.xyz/glyphpipeline/internal/pipeline"
)

const usage = `Usage: recenterglyphs [-conf file] [-q] [dir]

Finds the visible part of every .png in dir and moves it to the centre
of the canvas, overwriting the file. Fully transparent images are
skipped. Back up the folder before running this.

dir defaults to the processed folder set in the config.
`

func main() {
	confpath := flag.String("conf", "", "YAML config file")
	quiet := flag.Bool("q", false, "don't print progress")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	conf := glyphpipeline.DefaultConfig()
	var err error
	if *confpath != "" {
		conf, err = glyphpipeline.LoadConfig(*confpath)
		if err != nil {
			log.Fatalln(err)
		}
	}
	if flag.NArg() > 0 {
		conf.ProcessedDir = flag.Arg(0)
	}

	logger := log.New(os.Stdout, "", 0)
	if *quiet {
		var n pipeline.NullWriter
		logger = log.New(n, "", 0)
	}

	logger.Printf("Starting auto-centering process for images in '%s'...\n", conf.ProcessedDir)
	r, err := pipeline.RecenterDir(context.Background(), conf.ProcessedDir, logger)
	if err != nil {
		log.Fatalln("Error:", err)
	}
	logger.Printf("\nAuto-centering process complete! (%s)\n", r)
}
