// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// Package glyph contains the per-image transformations used to turn
// scanned character images into transparent, centred web glyphs:
// extraction (thresholding a scan onto a transparent canvas),
// recentering, and recolouring.
package glyph

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
)

// nrgba returns a copy of img as a non-premultiplied RGBA image
// with its origin at 0,0. Non-premultiplied storage lets the colour
// of a pixel be rewritten without disturbing its alpha.
func nrgba(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// Open decodes the image at path.
func Open(path string) (image.Image, error) {
	return imaging.Open(path)
}

// Save encodes img as a PNG at path, replacing any existing file,
// whatever the extension of path.
func Save(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Could not save %s: %w", path, err)
	}
	err = imaging.Encode(f, img, imaging.PNG)
	if err != nil {
		f.Close()
		return fmt.Errorf("Could not encode %s: %w", path, err)
	}
	err = f.Close()
	if err != nil {
		return fmt.Errorf("Could not save %s: %w", path, err)
	}
	return nil
}
