// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"fmt"
	"log"

	"rescribe.xyz/glyphpipeline"
	"rescribe.xyz/glyphpipeline/charmap"
)

// Summary records the outcome of each stage of a full run
type Summary struct {
	Extract, Recenter, Colorize Result
	Map                         charmap.Map
}

// Run runs every stage in order with the settings in conf: glyphs
// are extracted from conf.OriginalDir into conf.ProcessedDir, which
// is then recentered and recoloured in place, and finally the
// character map is written to conf.MapPath.
func Run(ctx context.Context, conf glyphpipeline.Config, logger *log.Logger) (Summary, error) {
	var s Summary
	err := conf.Validate()
	if err != nil {
		return s, err
	}
	opts, err := conf.ExtractOptions()
	if err != nil {
		return s, err
	}
	final, err := conf.Final()
	if err != nil {
		return s, err
	}

	logger.Println("Starting batch processing of character images...")
	s.Extract, err = ExtractDir(ctx, conf.OriginalDir, conf.ProcessedDir, opts, logger)
	if err != nil {
		return s, fmt.Errorf("Extraction failed: %w", err)
	}
	logger.Printf("Batch processing complete! Images are saved in '%s' (%s).\n", conf.ProcessedDir, s.Extract)

	logger.Printf("Starting to auto-center images in '%s'...\n", conf.ProcessedDir)
	s.Recenter, err = RecenterDir(ctx, conf.ProcessedDir, logger)
	if err != nil {
		return s, fmt.Errorf("Recentering failed: %w", err)
	}
	logger.Printf("Auto-centering complete! (%s)\n", s.Recenter)

	logger.Printf("Starting to recolour images in '%s'...\n", conf.ProcessedDir)
	s.Colorize, err = ColorizeDir(ctx, conf.ProcessedDir, final, logger)
	if err != nil {
		return s, fmt.Errorf("Recolouring failed: %w", err)
	}
	logger.Printf("Image recolouring complete! (%s)\n", s.Colorize)

	s.Map, err = MapDir(ctx, conf.ProcessedDir, conf.MapPath, logger)
	if err != nil {
		return s, fmt.Errorf("Building character map failed: %w", err)
	}

	return s, nil
}
