// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

/*
The glyphpipeline package contains tools and functions to prepare a set
of scanned or rendered Chinese character images for use on the web. Each
character image is turned into a transparent PNG glyph, centred on its
canvas and recoloured, and a lookup table from character to filename is
written alongside the images.

Introduction

The pipeline is a series of small, independent stages which communicate
only through the filesystem. Each stage is a separate command, and the
glyphpipeline command runs them all in order:

  extractglyphs   original_characters processed_web_characters
  recenterglyphs  processed_web_characters
  whiteglyphs     processed_web_characters
  mkcharmap       processed_web_characters character_map.json

All of the tools will give information on what they do and how they work
with the '-h' flag.

Stages

extractglyphs converts every .png, .jpg or .jpeg file in a directory to a
grayscale image, crops off a band at the top and bottom of the image where
the watermark is, scales what is left back up to the original size, and
paints every pixel darker than a threshold in the glyph colour on a
transparent canvas. Unevenly lit scans can use Sauvola binarization in
place of the fixed threshold. The output is named after the input, with a .png
extension. The input name is expected to contain the character.

recenterglyphs finds the smallest rectangle containing every visible pixel
of each .png in a directory and moves it to the centre of the canvas,
overwriting the file. Fully transparent images are skipped.

whiteglyphs repaints every visible pixel of each .png in a directory,
keeping its transparency. The default colour is white.

mkcharmap looks for a character directly before a '.' in every filename in
a directory, and writes a JSON object mapping each character to its
filename. If more than one file contains the same character, the last in
sorted order wins.

Errors

A missing input directory stops a stage before any file is touched. Any
error with an individual file is logged, and processing continues with the
next file. Nothing is retried or rolled back, so it is wise to back up a
directory before running the in-place stages on it.

Configuration

Default folder names, colours, the threshold and the watermark crop are
defined in settings.go. They can be overridden with a YAML file passed with
the '-conf' flag, and the most common ones with individual flags. See
LoadConfig for the file format.

Extras

glyphgraph draws a graph of how much of each glyph's canvas is inked, which
is a quick way to spot characters where the threshold did not work well.
glyphsheet makes a PDF specimen sheet of all of the glyphs in a character
map. publishglyphs uploads the glyphs and the character map to an S3
bucket, or to a local directory, removing anything previously published
under the same prefix which is no longer present.
*/
package glyphpipeline
