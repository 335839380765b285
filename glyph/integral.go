// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyph

import (
	"image"
	"math"
)

// integral is an Integral Image, with an extra row and column of
// zeros at the top and left so that windows touching the edge of the
// image need no special casing.
type integral [][]uint64

// withSq contains an Integral Image and its Square
type withSq struct {
	img integral
	sq  integral
}

// toIntegrals creates the regular and squared Integral Images of gray
func toIntegrals(gray *image.Gray) withSq {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	s := withSq{img: make(integral, h+1), sq: make(integral, h+1)}
	s.img[0] = make([]uint64, w+1)
	s.sq[0] = make([]uint64, w+1)

	for y := 1; y <= h; y++ {
		s.img[y] = make([]uint64, w+1)
		s.sq[y] = make([]uint64, w+1)
		var rowsum, rowsq uint64
		for x := 1; x <= w; x++ {
			p := uint64(gray.GrayAt(b.Min.X+x-1, b.Min.Y+y-1).Y)
			rowsum += p
			rowsq += p * p
			s.img[y][x] = s.img[y-1][x] + rowsum
			s.sq[y][x] = s.sq[y-1][x] + rowsq
		}
	}
	return s
}

// sum returns the total of the window from x0,y0 up to but not
// including x1,y1, in image coordinates relative to the origin.
func (i integral) sum(x0, y0, x1, y1 int) uint64 {
	return i[y1][x1] + i[y0][x0] - i[y0][x1] - i[y1][x0]
}

// meanStdDev calculates the mean and standard deviation of a square
// window of size centred on x,y, clipped to the image.
func (s withSq) meanStdDev(x, y, size int) (float64, float64) {
	step := size / 2
	h := len(s.img) - 1
	w := len(s.img[0]) - 1

	x0, y0 := max(x-step, 0), max(y-step, 0)
	x1, y1 := min(x+step+1, w), min(y+step+1, h)
	n := float64((x1 - x0) * (y1 - y0))

	m := float64(s.img.sum(x0, y0, x1, y1)) / n
	sqm := float64(s.sq.sum(x0, y0, x1, y1)) / n
	variance := sqm - m*m
	if variance < 0 {
		variance = 0
	}
	return m, math.Sqrt(variance)
}
