// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyphpipeline

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"rescribe.xyz/glyphpipeline/glyph"
)

// Config holds all of the settings used by the pipeline stages.
// Colours are hex strings like "#fde047".
type Config struct {
	OriginalDir  string `yaml:"original_dir"`
	ProcessedDir string `yaml:"processed_dir"`
	MapPath      string `yaml:"map_path"`

	GlyphColour string  `yaml:"glyph_colour"`
	FinalColour string  `yaml:"final_colour"`
	Threshold   int     `yaml:"threshold"`
	CropTop     float64 `yaml:"crop_top"`
	CropBottom  float64 `yaml:"crop_bottom"`

	// Adaptive switches extraction to Sauvola binarization.
	Adaptive      bool    `yaml:"adaptive"`
	SauvolaK      float64 `yaml:"sauvola_k"`
	SauvolaWindow int     `yaml:"sauvola_window"`

	Region string `yaml:"region"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// DefaultConfig returns the settings from settings.go.
func DefaultConfig() Config {
	return Config{
		OriginalDir:  defaultOriginalDir,
		ProcessedDir: defaultProcessedDir,
		MapPath:      defaultMapPath,
		GlyphColour:  defaultGlyphColour,
		FinalColour:  defaultFinalColour,
		Threshold:    defaultThreshold,
		CropTop:      defaultCropTop,
		CropBottom:   defaultCropBottom,
		SauvolaK:     defaultSauvolaK,
		Region:       defaultAwsRegion,
		Bucket:       defaultBucket,
		Prefix:       defaultPrefix,
	}
}

// LoadConfig reads a YAML config file, with any settings it does not
// mention left at their defaults. An example file:
//
//	processed_dir: out
//	glyph_colour: "#c0392b"
//	threshold: 120
//	crop_bottom: 0.9
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("Could not open config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	err = dec.Decode(&c)
	if err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("Could not parse config %s: %w", path, err)
	}

	return c, c.Validate()
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("Threshold %d out of range 0-255", c.Threshold)
	}
	if c.CropTop < 0 || c.CropBottom > 1 || c.CropTop >= c.CropBottom {
		return fmt.Errorf("Invalid crop %.3f-%.3f, need 0 <= top < bottom <= 1", c.CropTop, c.CropBottom)
	}
	if c.SauvolaK <= 0 || c.SauvolaK >= 1 {
		return fmt.Errorf("Sauvola k %.2f out of range, need 0 < k < 1", c.SauvolaK)
	}
	if c.SauvolaWindow < 0 {
		return fmt.Errorf("Sauvola window %d can not be negative", c.SauvolaWindow)
	}
	if _, err := ParseColour(c.GlyphColour); err != nil {
		return err
	}
	if _, err := ParseColour(c.FinalColour); err != nil {
		return err
	}
	return nil
}

// ParseColour parses a hex colour such as "#fde047", "fde047" or
// "#fff" into an opaque colour.
func ParseColour(s string) (color.NRGBA, error) {
	h := strings.TrimSpace(s)
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}
	col, err := colorful.Hex(h)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("Invalid colour %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// ExtractOptions returns the glyph extraction settings.
func (c Config) ExtractOptions() (glyph.ExtractOptions, error) {
	opts := glyph.DefaultExtractOptions()
	col, err := ParseColour(c.GlyphColour)
	if err != nil {
		return opts, err
	}
	opts.Colour = col
	opts.CropTop = c.CropTop
	opts.CropBottom = c.CropBottom
	opts.Threshold = uint8(c.Threshold)
	opts.Adaptive = c.Adaptive
	opts.K = c.SauvolaK
	opts.Window = c.SauvolaWindow
	return opts, nil
}

// Final returns the colour glyphs are repainted with.
func (c Config) Final() (color.NRGBA, error) {
	return ParseColour(c.FinalColour)
}
