// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// extractglyphs converts a directory of raw character scans into
// transparent, coloured glyph images.
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

const usage = `Usage: extractglyphs [-conf file] [-colour hex] [-t threshold] [-adaptive] [-q] [indir] [outdir]

Converts every .png, .jpg and .jpeg image in indir into a transparent
PNG glyph in outdir, with the same name apart from the extension.

Each image is converted to grayscale, a band at the top and bottom is
cropped off to remove the watermark and the rest scaled back up to the
original size, and every pixel darker than the threshold is painted
in the glyph colour on a transparent background. With -adaptive the
fixed threshold is replaced by Sauvola binarization, which suits
unevenly lit scans better.

indir and outdir default to the folders set in the config.
`

func main() {
	confpath := flag.String("conf", "", "YAML config file")
	colour := flag.String("colour", "", "glyph colour as hex, e.g. #fde047 (overrides config)")
	thresh := flag.Int("t", -1, "grayscale threshold 0-255 below which a pixel is part of the character (overrides config)")
	adaptive := flag.Bool("adaptive", false, "use Sauvola binarization instead of a fixed threshold")
	check := flag.Bool("check", false, "check that every image can be decoded before starting")
	quiet := flag.Bool("q", false, "don't print progress")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 2 {
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
		conf.GlyphColour = *colour
	}
	if *thresh >= 0 {
		conf.Threshold = *thresh
	}
	if *adaptive {
		conf.Adaptive = true
	}
	if flag.NArg() > 0 {
		conf.OriginalDir = flag.Arg(0)
	}
	if flag.NArg() > 1 {
		conf.ProcessedDir = flag.Arg(1)
	}
	err = conf.Validate()
	if err != nil {
		log.Fatalln(err)
	}
	opts, err := conf.ExtractOptions()
	if err != nil {
		log.Fatalln(err)
	}

	logger := log.New(os.Stdout, "", 0)
	if *quiet {
		var n pipeline.NullWriter
		logger = log.New(n, "", 0)
	}

	ctx := context.Background()
	if *check {
		err = pipeline.CheckImages(ctx, conf.OriginalDir, pipeline.RawExts)
		if err != nil {
			log.Fatalln("Error checking images:", err)
		}
	}

	logger.Println("Starting batch processing of character images...")
	r, err := pipeline.ExtractDir(ctx, conf.OriginalDir, conf.ProcessedDir, opts, logger)
	if err != nil {
		log.Fatalln("Error:", err)
	}
	logger.Printf("Batch processing complete! Images are saved in '%s' (%s).\n", conf.ProcessedDir, r)
}
