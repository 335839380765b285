// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// whiteglyphs repaints each glyph in a directory, keeping its
// transparency.
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

const usage = `Usage: whiteglyphs [-conf file] [-colour hex] [-q] [dir]

Repaints every visible pixel of every .png in dir, keeping the
transparency of each pixel, and overwrites the file. The default
colour is white.

dir defaults to the processed folder set in the config.
`

func main() {
	confpath := flag.String("conf", "", "YAML config file")
	colour := flag.String("colour", "", "colour as hex, e.g. #ffffff (overrides config)")
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
	if *colour != "" {
		conf.FinalColour = *colour
	}
	if flag.NArg() > 0 {
		conf.ProcessedDir = flag.Arg(0)
	}
	c, err := conf.Final()
	if err != nil {
		log.Fatalln(err)
	}

	logger := log.New(os.Stdout, "", 0)
	if *quiet {
		var n pipeline.NullWriter
		logger = log.New(n, "", 0)
	}

	logger.Printf("Starting to convert images in '%s' to %s...\n", conf.ProcessedDir, conf.FinalColour)
	r, err := pipeline.ColorizeDir(context.Background(), conf.ProcessedDir, c, logger)
	if err != nil {
		log.Fatalln("Error:", err)
	}
	logger.Printf("\nImage conversion complete! (%s)\n", r)
}
