// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// pipeline is a package used by the glyphpipeline commands, which
// handles running each stage over a directory of images. Note that it
// is considered an "internal" package, not intended for external use,
// and no guarantee is made of the stability of any interfaces
// provided.
//
// Every stage works through its files one at a time, in sorted name
// order. An error with a single file is logged and counted, and the
// stage moves on to the next file; only a problem with the directory
// itself, or cancellation of the context, stops a stage early.
package pipeline

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions of the images each stage works on
var (
	RawExts   = []string{".png", ".jpg", ".jpeg"}
	GlyphExts = []string{".png"}
)

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// Result counts what happened to the files in a stage
type Result struct {
	Processed, Skipped, Failed int
}

func (r Result) String() string {
	return fmt.Sprintf("%d processed, %d skipped, %d failed", r.Processed, r.Skipped, r.Failed)
}

// checkDir returns an error if dir does not exist or is not a
// directory, so that a stage can stop before touching any file.
func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("The folder '%s' was not found: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("'%s' is not a folder", dir)
	}
	return nil
}

// hasExt reports whether name ends with one of exts, ignoring case
func hasExt(name string, exts []string) bool {
	lsuffix := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if lsuffix == e {
			return true
		}
	}
	return false
}

// ListImages returns the sorted names of the files in dir with one of
// the given extensions, ignoring case. Subdirectories, and files
// which start with "." (to prevent automatically generated files like
// .DS_Store getting in the way), are skipped.
func ListImages(dir string, exts []string) ([]string, error) {
	err := checkDir(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("Failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !hasExt(e.Name(), exts) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CheckImages checks that all of the files ListImages finds in dir
// are images that can be decoded.
func CheckImages(ctx context.Context, dir string, exts []string) error {
	names, err := ListImages(dir, exts)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("No images found")
	}

	for _, n := range names {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		path := filepath.Join(dir, n)
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("Opening image %s failed: %v", path, err)
		}
		_, _, err = image.Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("Decoding image %s failed: %v", path, err)
		}
	}

	return nil
}
