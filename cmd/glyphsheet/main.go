// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// glyphsheet makes a PDF specimen sheet from a character map.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"rescribe.xyz/glyphpipeline"
	"rescribe.xyz/glyphpipeline/charmap"
)

const usage = `Usage: glyphsheet [-font font.ttf] character_map.json glyphdir out.pdf

Makes a PDF with a grid of every glyph in the character map, each
captioned with its character. Without a font that covers the
characters, the captions give the codepoint instead.
`

func main() {
	font := flag.String("font", "", "TrueType font to write captions with")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(1)
	}

	m, err := charmap.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalln("Failed to read character map:", err)
	}

	pdf := new(glyphpipeline.Fpdf)
	err = pdf.Setup(*font)
	if err != nil {
		log.Fatalln("Failed to set up PDF:", err)
	}

	for _, c := range m.Chars() {
		p := filepath.Join(flag.Arg(1), m[c])
		err = pdf.AddGlyph(p, c)
		if err != nil {
			log.Println("Skipping", c, err)
		}
	}

	err = pdf.Save(flag.Arg(2))
	if err != nil {
		log.Fatalln("Failed to save", flag.Arg(2), err)
	}
}
