// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyphpipeline

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"rescribe.xyz/glyphpipeline/glyph"
)

func TestCaption(t *testing.T) {
	var p Fpdf
	cases := []struct {
		font, img, char, expect string
	}{
		{"", "out/理.png", "理", "U+7406"},
		{"glyphs", "out/理.png", "理", "理"},
		{"", "out/a.png", "", "a.png"},
	}
	for _, c := range cases {
		p.font = c.font
		if got := p.caption(c.img, c.char); got != c.expect {
			t.Errorf("Expected caption %q, got %q", c.expect, got)
		}
	}
}

func TestSpecimenSheet(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, n := range []string{"理.png", "好.png"} {
		img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
		for y := 4; y < 12; y++ {
			for x := 4; x < 12; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(x * 20)})
			}
		}
		p := filepath.Join(dir, n)
		err := glyph.Save(img, p)
		if err != nil {
			t.Fatalf("Could not save %s: %v", p, err)
		}
		paths = append(paths, p)
	}

	var pdf Fpdf
	err := pdf.Setup("")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	err = pdf.AddGlyph(filepath.Join(dir, "notpresent.png"), "无")
	if err == nil {
		t.Errorf("Expected an error adding a missing image")
	}
	bad := filepath.Join(dir, "坏.png")
	err = os.WriteFile(bad, []byte("this is not an image"), 0644)
	if err != nil {
		t.Fatalf("Could not write %s: %v", bad, err)
	}
	err = pdf.AddGlyph(bad, "坏")
	if err == nil {
		t.Errorf("Expected an error adding a corrupt image")
	}
	for i, p := range paths {
		err = pdf.AddGlyph(p, []string{"理", "好"}[i])
		if err != nil {
			t.Fatalf("AddGlyph %s failed: %v", p, err)
		}
	}

	out := filepath.Join(dir, "sheet.pdf")
	err = pdf.Save(out)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Could not read %s: %v", out, err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Errorf("Output is not a PDF")
	}
}
