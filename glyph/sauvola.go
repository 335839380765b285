// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyph

import (
	"image"
	"image/color"
)

// autowsize picks a window size for Sauvola binarization based on
// the width of the image
func autowsize(bounds image.Rectangle) int {
	return bounds.Dx() / 60
}

// Sauvola binarizes gray with Sauvola's algorithm, see the paper
// "Adaptive document image binarization" (2000), using Integral
// Images to find the mean and standard deviation of the window
// around each pixel. Character pixels become black and everything
// else white. If windowsize is 0 it is set from the image width.
func Sauvola(gray *image.Gray, ksize float64, windowsize int) *image.Gray {
	b := gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	if windowsize == 0 {
		windowsize = autowsize(b)
	}
	if windowsize%2 == 0 {
		windowsize++
	}
	if windowsize < 3 {
		windowsize = 3
	}

	integrals := toIntegrals(gray)

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			m, dev := integrals.meanStdDev(x, y, windowsize)
			threshold := m * (1 + ksize*((dev/128)-1))
			if float64(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y) < threshold {
				out.SetGray(x, y, color.Gray{0})
			} else {
				out.SetGray(x, y, color.Gray{255})
			}
		}
	}

	return out
}
