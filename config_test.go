// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyphpipeline

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestParseColour(t *testing.T) {
	cases := []struct {
		in     string
		expect color.NRGBA
		err    bool
	}{
		{"#fde047", color.NRGBA{R: 253, G: 224, B: 71, A: 255}, false},
		{"fde047", color.NRGBA{R: 253, G: 224, B: 71, A: 255}, false},
		{"#ffffff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"gold", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			col, err := ParseColour(c.in)
			if c.err {
				if err == nil {
					t.Errorf("Expected an error, got %v", col)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if col != c.expect {
				t.Errorf("Expected %v, got %v", c.expect, col)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default config is invalid: %v", err)
	}
	opts, err := c.ExtractOptions()
	if err != nil {
		t.Fatalf("Could not get extract options: %v", err)
	}
	if opts.Threshold != 100 || opts.CropTop != 0.05 || opts.CropBottom != 0.95 {
		t.Errorf("Unexpected extract options: %+v", opts)
	}
	if opts.Colour != (color.NRGBA{R: 253, G: 224, B: 71, A: 255}) {
		t.Errorf("Unexpected glyph colour: %v", opts.Colour)
	}
	final, err := c.Final()
	if err != nil || final != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("Unexpected final colour: %v %v", final, err)
	}
}

func TestLoadConfig(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		err      bool
		check    func(Config) bool
	}{
		{"empty", "", false, func(c Config) bool { return c == DefaultConfig() }},
		{"overlay", "processed_dir: out\nthreshold: 120\nglyph_colour: \"#c0392b\"\n", false, func(c Config) bool {
			return c.ProcessedDir == "out" && c.Threshold == 120 && c.GlyphColour == "#c0392b" && c.OriginalDir == defaultOriginalDir
		}},
		{"unknownfield", "thresold: 120\n", true, nil},
		{"badcrop", "crop_top: 0.6\ncrop_bottom: 0.4\n", true, nil},
		{"badthreshold", "threshold: 300\n", true, nil},
		{"badcolour", "final_colour: white\n", true, nil},
		{"adaptive", "adaptive: true\nsauvola_window: 31\n", false, func(c Config) bool {
			return c.Adaptive && c.SauvolaWindow == 31 && c.SauvolaK == defaultSauvolaK
		}},
		{"badsauvola", "sauvola_k: 1.5\n", true, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			err := os.WriteFile(path, []byte(c.contents), 0644)
			if err != nil {
				t.Fatalf("Could not write config: %v", err)
			}
			conf, err := LoadConfig(path)
			if c.err {
				if err == nil {
					t.Errorf("Expected an error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !c.check(conf) {
				t.Errorf("Unexpected config: %+v", conf)
			}
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "notpresent.yaml"))
	if err == nil {
		t.Errorf("Expected an error for a missing config file")
	}
}
