// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyph

import (
	"image"

	"github.com/disintegration/imaging"
)

// Bounds finds the smallest rectangle containing every pixel of img
// which is not fully transparent, relative to an origin of 0,0. The
// bool is false if there is no such pixel.
func Bounds(img image.Image) (image.Rectangle, bool) {
	n := nrgba(img)
	b := n.Bounds()
	minx, miny := b.Max.X, b.Max.Y
	maxx, maxy := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := n.Pix[(y-b.Min.Y)*n.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4+3] == 0 {
				continue
			}
			if x < minx {
				minx = x
			}
			if x > maxx {
				maxx = x
			}
			if y < miny {
				miny = y
			}
			if y > maxy {
				maxy = y
			}
		}
	}

	if maxx < minx {
		return image.Rectangle{}, false
	}
	return image.Rect(minx, miny, maxx+1, maxy+1), true
}

// Recenter moves the visible part of img to the middle of a
// transparent canvas of the same size. Where the free space can not
// be split evenly the extra pixel goes to the right and bottom
// margins. The bool is false, and the image nil, if img is entirely
// transparent.
func Recenter(img image.Image) (*image.NRGBA, bool) {
	src := nrgba(img)
	r, ok := Bounds(src)
	if !ok {
		return nil, false
	}

	b := src.Bounds()
	off := image.Pt((b.Dx()-r.Dx())/2, (b.Dy()-r.Dy())/2)
	// imaging.Paste copies the non-premultiplied bytes over the
	// canvas, so partly transparent pixels keep their exact values
	out := imaging.Paste(image.NewNRGBA(b), src.SubImage(r), off)

	return out, true
}

// RecenterFile recenters the glyph at path in place. If the image is
// entirely transparent the file is left untouched and false is
// returned.
func RecenterFile(path string) (bool, error) {
	img, err := Open(path)
	if err != nil {
		return false, err
	}
	out, ok := Recenter(img)
	if !ok {
		return false, nil
	}
	return true, Save(out, path)
}
