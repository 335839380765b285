// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// publishglyphs uploads a directory of glyphs and its character map.
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

const usage = `Usage: publishglyphs [-conf file] [-c aws|local] [-dir dir] [-mkbucket] [-v] [glyphdir] [character_map.json]

Uploads every .png in glyphdir, and the character map, to the bucket
and prefix set in the config. Anything else already under the prefix
is deleted, so that the published set matches glyphdir.

glyphdir and character_map.json default to the processed folder and
map path set in the config.
`

type Publisher interface {
	pipeline.Publisher
	CreateBucket(name string) error
	Init() error
}

func main() {
	confpath := flag.String("conf", "", "YAML config file")
	conntype := flag.String("c", "aws", "connection type ('aws' or 'local')")
	dir := flag.String("dir", "", "directory to publish to with '-c local'")
	mkbucket := flag.Bool("mkbucket", false, "create the bucket first")
	verbose := flag.Bool("v", false, "verbose")
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

	var verboselog *log.Logger
	if *verbose {
		verboselog = log.New(os.Stdout, "", 0)
	} else {
		var n pipeline.NullWriter
		verboselog = log.New(n, "", 0)
	}

	var conn Publisher
	switch *conntype {
	case "aws":
		conn = &glyphpipeline.AwsConn{Region: conf.Region, Logger: verboselog}
	case "local":
		conn = &glyphpipeline.LocalConn{Dir: *dir, Logger: verboselog}
	default:
		log.Fatalln("Unknown connection type")
	}
	err = conn.Init()
	if err != nil {
		log.Fatalln("Failed to set up connection:", err)
	}

	if *mkbucket {
		err = conn.CreateBucket(conf.Bucket)
		if err != nil {
			log.Fatalln(err)
		}
	}

	n, err := pipeline.Publish(context.Background(), conf.ProcessedDir, conf.MapPath, conf.Bucket, conf.Prefix, conn)
	if err != nil {
		log.Fatalln("Error publishing:", err)
	}
	fmt.Printf("Published %d files to %s/%s\n", n, conf.Bucket, conf.Prefix)
}
