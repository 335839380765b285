// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyph

import (
	"image"
	"image/color"
)

// White is the default colour glyphs are repainted with.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Colorize returns a copy of img with the colour of every pixel that
// is not fully transparent replaced by c. The alpha of each pixel is
// kept exactly; the alpha of c is ignored.
func Colorize(img image.Image, c color.NRGBA) *image.NRGBA {
	out := nrgba(img)
	for i := 0; i+3 < len(out.Pix); i += 4 {
		if out.Pix[i+3] == 0 {
			continue
		}
		out.Pix[i] = c.R
		out.Pix[i+1] = c.G
		out.Pix[i+2] = c.B
	}
	return out
}

// ColorizeFile repaints the glyph at path in place.
func ColorizeFile(path string, c color.NRGBA) error {
	img, err := Open(path)
	if err != nil {
		return err
	}
	return Save(Colorize(img, c), path)
}

// Coverage returns the proportion of pixels in img which are not
// fully transparent.
func Coverage(img image.Image) float64 {
	n := nrgba(img)
	total := len(n.Pix) / 4
	if total == 0 {
		return 0
	}
	var inked int
	for i := 3; i < len(n.Pix); i += 4 {
		if n.Pix[i] > 0 {
			inked++
		}
	}
	return float64(inked) / float64(total)
}
