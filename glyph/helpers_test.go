// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyph

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

// imgsequal reports whether two images have the same bounds and
// exactly the same pixel values.
func imgsequal(img1 image.Image, img2 image.Image) bool {
	b := img1.Bounds()
	if !b.Eq(img2.Bounds()) {
		return false
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c0 := color.NRGBAModel.Convert(img1.At(x, y)).(color.NRGBA)
			c1 := color.NRGBAModel.Convert(img2.At(x, y)).(color.NRGBA)
			if c0 != c1 {
				return false
			}
		}
	}
	return true
}

// glyphAt draws an opaque w x h block of c at x, y on a transparent
// canvas of cw x ch.
func glyphAt(cw, ch, x, y, w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cw, ch))
	for yi := y; yi < y+h; yi++ {
		for xi := x; xi < x+w; xi++ {
			img.SetNRGBA(xi, yi, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Could not create file %s: %v", path, err)
	}
	defer f.Close()
	err = png.Encode(f, img)
	if err != nil {
		t.Fatalf("Could not encode %s: %v", path, err)
	}
}
