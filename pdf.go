// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyphpipeline

import (
	"bytes"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"

	"rescribe.xyz/glyphpipeline/glyph"
)

// Specimen sheet layout, in mm on an A4 page
const (
	sheetMargin   = 10.0
	cellSize      = 30.0
	captionHeight = 6.0
	sheetCols     = 6
	sheetRows     = 7
)

// Fpdf builds a specimen sheet: a grid of glyph images, each with
// its character underneath.
type Fpdf struct {
	fpdf *gofpdf.Fpdf
	font string
	n    int
}

// Setup creates a new PDF with appropriate settings and fonts.
// Captions are written with the TrueType font at fontpath, which
// should cover the characters used; if fontpath is empty the
// built-in Helvetica font is used, and captions give the codepoint
// instead of the character.
func (p *Fpdf) Setup(fontpath string) error {
	p.fpdf = gofpdf.New("P", "mm", "A4", "")
	p.n = 0
	p.font = ""
	if fontpath != "" {
		p.fpdf.AddUTF8Font("glyphs", "", fontpath)
		p.font = "glyphs"
		p.fpdf.SetFont("glyphs", "", 12)
	} else {
		p.fpdf.SetFont("Helvetica", "", 8)
	}
	p.fpdf.SetAutoPageBreak(false, float64(0))
	return p.fpdf.Error()
}

// caption returns the text to write under a glyph
func (p *Fpdf) caption(imgpath, char string) string {
	if char == "" {
		return filepath.Base(imgpath)
	}
	if p.font != "" {
		return char
	}
	r, _ := utf8.DecodeRuneInString(char)
	return fmt.Sprintf("U+%04X", r)
}

// AddGlyph adds a glyph image to the next free cell of the sheet,
// starting a new page when the current one is full. Glyphs are
// drawn on a dark background so that white glyphs stay visible.
// An image which can not be decoded is reported without being
// added, and the sheet can still be used.
func (p *Fpdf) AddGlyph(imgpath, char string) error {
	// gofpdf errors are sticky, so only hand it a PNG known to be good
	img, err := glyph.Open(imgpath)
	if err != nil {
		return fmt.Errorf("Could not open file %s: %w", imgpath, err)
	}
	var buf bytes.Buffer
	err = imaging.Encode(&buf, img, imaging.PNG)
	if err != nil {
		return fmt.Errorf("Could not encode %s: %w", imgpath, err)
	}

	pos := p.n % (sheetCols * sheetRows)
	if pos == 0 {
		p.fpdf.AddPage()
	}
	col := pos % sheetCols
	row := pos / sheetCols
	x := sheetMargin + float64(col)*cellSize
	y := sheetMargin + float64(row)*(cellSize+captionHeight)

	p.fpdf.SetFillColor(40, 40, 40)
	p.fpdf.Rect(x+1, y+1, cellSize-2, cellSize-2, "F")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.fpdf.RegisterImageOptionsReader(imgpath, opts, &buf)
	p.fpdf.ImageOptions(imgpath, x+2, y+2, cellSize-4, cellSize-4, false, opts, 0, "")

	p.fpdf.SetXY(x, y+cellSize)
	p.fpdf.CellFormat(cellSize, captionHeight, p.caption(imgpath, char), "", 0, "C", false, 0, "")

	p.n++
	return p.fpdf.Error()
}

// Save saves the PDF to the file at path
func (p *Fpdf) Save(path string) error {
	return p.fpdf.OutputFileAndClose(path)
}
