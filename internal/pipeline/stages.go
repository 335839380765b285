// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"rescribe.xyz/glyphpipeline"
	"rescribe.xyz/glyphpipeline/charmap"
	"rescribe.xyz/glyphpipeline/glyph"
)

// Coverage above which a glyph is reported as suspicious; a mostly
// inked canvas usually means the background was darker than the
// threshold.
const maxPlausibleCoverage = 0.9

// ExtractDir extracts a glyph from every raw image in indir, saving
// each as a PNG named after the original in outdir, which is created
// if necessary.
func ExtractDir(ctx context.Context, indir string, outdir string, opts glyph.ExtractOptions, logger *log.Logger) (Result, error) {
	var r Result
	names, err := ListImages(indir, RawExts)
	if err != nil {
		return r, err
	}
	err = os.MkdirAll(outdir, 0755)
	if err != nil {
		return r, fmt.Errorf("Error creating directory %s: %w", outdir, err)
	}

	logger.Printf("Found %d images to process.\n", len(names))
	for _, n := range names {
		select {
		case <-ctx.Done():
			return r, ctx.Err()
		default:
		}
		outname := strings.TrimSuffix(n, filepath.Ext(n)) + ".png"
		logger.Printf("Processing %s -> %s\n", n, outname)
		err = glyph.ExtractFile(filepath.Join(indir, n), filepath.Join(outdir, outname), opts)
		if err != nil {
			logger.Printf("An error occurred while processing %s: %v\n", n, err)
			r.Failed++
			continue
		}
		r.Processed++
	}

	return r, nil
}

// RecenterDir recenters every glyph in dir in place. Fully
// transparent images are skipped and left untouched.
func RecenterDir(ctx context.Context, dir string, logger *log.Logger) (Result, error) {
	var r Result
	names, err := ListImages(dir, GlyphExts)
	if err != nil {
		return r, err
	}

	logger.Printf("Found %d images to process.\n", len(names))
	for i, n := range names {
		select {
		case <-ctx.Done():
			return r, ctx.Err()
		default:
		}
		logger.Printf("Processing [%d/%d]: %s\n", i+1, len(names), n)
		done, err := glyph.RecenterFile(filepath.Join(dir, n))
		if err != nil {
			logger.Printf("Could not process %s: %v\n", n, err)
			r.Failed++
			continue
		}
		if !done {
			logger.Printf("Skipping empty image: %s\n", n)
			r.Skipped++
			continue
		}
		r.Processed++
	}

	return r, nil
}

// ColorizeDir repaints every glyph in dir with c in place, keeping
// the transparency of each pixel.
func ColorizeDir(ctx context.Context, dir string, c color.NRGBA, logger *log.Logger) (Result, error) {
	var r Result
	names, err := ListImages(dir, GlyphExts)
	if err != nil {
		return r, err
	}

	logger.Printf("Found %d images to process.\n", len(names))
	for i, n := range names {
		select {
		case <-ctx.Done():
			return r, ctx.Err()
		default:
		}
		err = glyph.ColorizeFile(filepath.Join(dir, n), c)
		if err != nil {
			logger.Printf("Could not process %s: %v\n", n, err)
			r.Failed++
			continue
		}
		logger.Printf("Processing [%d/%d]: Converted %s\n", i+1, len(names), n)
		r.Processed++
	}

	return r, nil
}

// MapDir builds the character map from the filenames in dir and
// writes it to outpath.
func MapDir(ctx context.Context, dir string, outpath string, logger *log.Logger) (charmap.Map, error) {
	err := checkDir(dir)
	if err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	logger.Println("Generating character-to-filename map...")
	m, err := charmap.Build(dir)
	if err != nil {
		return nil, err
	}
	err = m.WriteFile(outpath)
	if err != nil {
		return nil, err
	}
	logger.Printf("'%s' created successfully with %d characters!\n", outpath, len(m))
	return m, nil
}

// CoverageDir measures the ink coverage of every glyph in dir,
// logging any which look implausible. Images which can't be read
// are logged and left out.
func CoverageDir(ctx context.Context, dir string, logger *log.Logger) ([]glyphpipeline.Coverage, Result, error) {
	var r Result
	var covs []glyphpipeline.Coverage
	names, err := ListImages(dir, GlyphExts)
	if err != nil {
		return covs, r, err
	}

	for _, n := range names {
		select {
		case <-ctx.Done():
			return covs, r, ctx.Err()
		default:
		}
		img, err := glyph.Open(filepath.Join(dir, n))
		if err != nil {
			logger.Printf("Could not process %s: %v\n", n, err)
			r.Failed++
			continue
		}
		c := glyphpipeline.Coverage{Name: n, Value: glyph.Coverage(img)}
		c.Char, _ = charmap.Char(n)
		if c.Value == 0 {
			logger.Printf("Warning: %s has no visible pixels\n", n)
		} else if c.Value > maxPlausibleCoverage {
			logger.Printf("Warning: %s is %.0f%% inked\n", n, c.Value*100)
		}
		covs = append(covs, c)
		r.Processed++
	}

	return covs, r, nil
}
