// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// mkcharmap writes a JSON map from character to glyph filename.
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

const usage = `Usage: mkcharmap [-conf file] [-q] [dir] [out.json]

Looks for a Chinese character directly before a '.' in the name of
every file in dir, and writes a JSON object mapping each character to
its filename to out.json. Files without a character are ignored. If
several files have the same character, the last in sorted order wins.

dir and out.json default to the processed folder and map path set in
the config.
`

func main() {
	confpath := flag.String("conf", "", "YAML config file")
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
	if flag.NArg() > 0 {
		conf.ProcessedDir = flag.Arg(0)
	}
	if flag.NArg() > 1 {
		conf.MapPath = flag.Arg(1)
	}

	logger := log.New(os.Stdout, "", 0)
	if *quiet {
		var n pipeline.NullWriter
		logger = log.New(n, "", 0)
	}

	_, err = pipeline.MapDir(context.Background(), conf.ProcessedDir, conf.MapPath, logger)
	if err != nil {
		log.Fatalln("Error:", err)
	}
}
