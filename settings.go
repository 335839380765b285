// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyphpipeline

// This file contains the default settings; change these, or use a
// config file, if your scans differ from the ones these were tuned for.

// Folder and file names
const (
	defaultOriginalDir  = "original_characters"
	defaultProcessedDir = "processed_web_characters"
	defaultMapPath      = "character_map.json"
)

// Image settings. The crop and threshold are heuristics which suit the
// original scans; no watermark detection is done.
const (
	defaultGlyphColour = "#fde047"
	defaultFinalColour = "#ffffff"
	defaultThreshold   = 100
	defaultCropTop     = 0.05
	defaultCropBottom  = 0.95
	defaultSauvolaK    = 0.3
)

// Publishing settings
const (
	defaultAwsRegion = "eu-west-2"
	defaultBucket    = "rescribeglyphs"
	defaultPrefix    = "glyphs"
)
