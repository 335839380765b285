// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// glyphpipeline runs every stage of the glyph pipeline in order,
// optionally publishing the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"rescribe.xyz/glyphpipeline"
	"rescribe.xyz/glyphpipeline/internal/pipeline"
)

const usage = `Usage: glyphpipeline [-conf file] [-check] [-publish aws|local] [-q]

Runs the whole glyph pipeline with the settings from the config:
extracts glyphs from the original folder into the processed folder,
recenters and recolours them in place, and writes the character map.

If -publish is given, the glyphs and the character map are then
uploaded to the bucket and prefix set in the config, either on S3
('aws') or in a local directory set with -dir ('local').
`

type Publisher interface {
	pipeline.Publisher
	Init() error
}

func main() {
	confpath := flag.String("conf", "", "YAML config file")
	check := flag.Bool("check", false, "check that every image can be decoded before starting")
	publish := flag.String("publish", "", "connection type to publish with ('aws' or 'local'); don't publish if empty")
	dir := flag.String("dir", "", "directory to publish to with '-publish local'")
	quiet := flag.Bool("q", false, "don't print progress")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
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

	logger := log.New(os.Stdout, "", 0)
	if *quiet {
		var n pipeline.NullWriter
		logger = log.New(n, "", 0)
	}

	var conn Publisher
	switch *publish {
	case "":
	case "aws":
		conn = &glyphpipeline.AwsConn{Region: conf.Region, Logger: logger}
	case "local":
		conn = &glyphpipeline.LocalConn{Dir: *dir, Logger: logger}
	default:
		log.Fatalln("Unknown connection type")
	}
	if conn != nil {
		err = conn.Init()
		if err != nil {
			log.Fatalln("Failed to set up connection:", err)
		}
	}

	// stop between files on interrupt, rather than leave one half written
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *check {
		err = pipeline.CheckImages(ctx, conf.OriginalDir, pipeline.RawExts)
		if err != nil {
			log.Fatalln("Error checking images:", err)
		}
	}

	s, err := pipeline.Run(ctx, conf, logger)
	if err != nil {
		log.Fatalln("Error:", err)
	}
	failed := s.Extract.Failed + s.Recenter.Failed + s.Colorize.Failed

	if conn != nil {
		n, err := pipeline.Publish(ctx, conf.ProcessedDir, conf.MapPath, conf.Bucket, conf.Prefix, conn)
		if err != nil {
			log.Fatalln("Error publishing:", err)
		}
		logger.Printf("Published %d files to %s/%s\n", n, conf.Bucket, conf.Prefix)
	}

	if failed > 0 {
		logger.Printf("%d files could not be processed; see above for details\n", failed)
		os.Exit(2)
	}
}
