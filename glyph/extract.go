// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Gold is the colour extracted glyphs are painted by default.
var Gold = color.NRGBA{R: 253, G: 224, B: 71, A: 255}

// ExtractOptions controls how a raw scan is turned into a glyph.
type ExtractOptions struct {
	// Colour that dark pixels are painted; alpha is ignored, as
	// painted pixels are always fully opaque.
	Colour color.NRGBA
	// Pixels with a grayscale intensity below Threshold are part
	// of the character.
	Threshold uint8
	// CropTop and CropBottom are the proportions of the image height
	// at which the watermark crop starts and ends. The full width is
	// always kept.
	CropTop, CropBottom float64
	// Filter used to scale the cropped image back up to the
	// original size.
	Filter imaging.ResampleFilter
	// Adaptive replaces the fixed Threshold with Sauvola binarization,
	// which copes better with unevenly lit scans. K is the Sauvola
	// ksize and Window the window size, 0 for automatic.
	Adaptive bool
	K        float64
	Window   int
}

// DefaultExtractOptions returns the settings tuned for the
// original character scans.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		Colour:     Gold,
		Threshold:  100,
		CropTop:    0.05,
		CropBottom: 0.95,
		Filter:     imaging.Lanczos,
		K:          0.3,
	}
}

// Gray converts img to a single channel intensity image with its
// origin at 0,0. Transparency is ignored: the intensity comes from
// the stored colour of each pixel, so a transparent white background
// stays white rather than turning black.
func Gray(img image.Image) *image.Gray {
	n := nrgba(img)
	for i := 3; i < len(n.Pix); i += 4 {
		n.Pix[i] = 255
	}
	gray := image.NewGray(n.Bounds())
	draw.Draw(gray, gray.Bounds(), n, image.Point{}, draw.Src)
	return gray
}

// cropRect returns the band of a w x h image kept by the watermark
// crop, with the edges rounded to the nearest pixel.
func cropRect(w, h int, top, bottom float64) image.Rectangle {
	y0 := int(math.Round(top * float64(h)))
	y1 := int(math.Round(bottom * float64(h)))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > h {
		y1 = h
	}
	if y1 <= y0 {
		return image.Rect(0, 0, w, h)
	}
	return image.Rect(0, y0, w, y1)
}

// Uncrop removes the watermark band from gray and scales what is
// left back to the original dimensions, so that the result has the
// same size as the input.
func Uncrop(gray *image.Gray, top, bottom float64, filter imaging.ResampleFilter) *image.Gray {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	r := cropRect(w, h, top, bottom).Add(b.Min)
	if r.Eq(b) {
		return gray
	}
	cropped := imaging.Crop(gray, r)
	return Gray(imaging.Resize(cropped, w, h, filter))
}

// Threshold paints every pixel of gray darker than t with c, fully
// opaque, onto a new transparent canvas of the same size.
func Threshold(gray *image.Gray, t uint8, c color.NRGBA) *image.NRGBA {
	b := gray.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	ink := color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.GrayAt(x, y).Y < t {
				out.SetNRGBA(x-b.Min.X, y-b.Min.Y, ink)
			}
		}
	}

	return out
}

// Extract converts a raw scan into a transparent glyph image of the
// same dimensions: the image is converted to grayscale, the watermark
// band is cropped off and the remainder scaled back up, then every
// pixel darker than the threshold is painted in the glyph colour.
func Extract(img image.Image, opts ExtractOptions) *image.NRGBA {
	gray := Uncrop(Gray(img), opts.CropTop, opts.CropBottom, opts.Filter)
	if opts.Adaptive {
		return Threshold(Sauvola(gray, opts.K, opts.Window), 128, opts.Colour)
	}
	return Threshold(gray, opts.Threshold, opts.Colour)
}

// ExtractFile runs Extract on the image at inPath, saving the
// result as a PNG at outPath. If inPath can not be decoded nothing
// is written.
func ExtractFile(inPath, outPath string, opts ExtractOptions) error {
	img, err := Open(inPath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("Could not find the file %s: %w", inPath, err)
	}
	if err != nil {
		return fmt.Errorf("Could not open %s: %w", inPath, err)
	}

	return Save(Extract(img, opts), outPath)
}
