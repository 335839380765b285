// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

type Uploader interface {
	Log(v ...interface{})
	Upload(bucket string, key string, path string) error
}

type Publisher interface {
	Uploader
	DeleteObjects(bucket string, keys []string) error
	ListObjects(bucket string, prefix string) ([]string, error)
}

// Publish uploads every glyph in dir, and the character map at
// mappath if it is set, into bucket under prefix. Anything already
// under prefix which is not part of the new set is then deleted, so
// that the published set mirrors dir. With an empty prefix nothing
// is deleted. It returns the number of objects uploaded.
func Publish(ctx context.Context, dir string, mappath string, bucket string, prefix string, conn Publisher) (int, error) {
	names, err := ListImages(dir, GlyphExts)
	if err != nil {
		return 0, err
	}

	var keys []string
	files := make(map[string]string)
	add := func(key, p string) {
		if _, ok := files[key]; !ok {
			keys = append(keys, key)
		}
		files[key] = p
	}
	for _, n := range names {
		add(path.Join(prefix, n), filepath.Join(dir, n))
	}
	if mappath != "" {
		add(path.Join(prefix, filepath.Base(mappath)), mappath)
	}

	uploaded := 0
	for _, key := range keys {
		select {
		case <-ctx.Done():
			return uploaded, ctx.Err()
		default:
		}
		conn.Log("Uploading", key)
		err = conn.Upload(bucket, key, files[key])
		if err != nil {
			return uploaded, fmt.Errorf("Failed to upload %s: %w", files[key], err)
		}
		uploaded++
	}

	if prefix == "" {
		return uploaded, nil
	}

	existing, err := conn.ListObjects(bucket, strings.TrimSuffix(prefix, "/")+"/")
	if err != nil {
		return uploaded, fmt.Errorf("Failed to list %s/%s: %w", bucket, prefix, err)
	}
	var stale []string
	for _, k := range existing {
		if _, ok := files[k]; !ok {
			stale = append(stale, k)
		}
	}
	if len(stale) > 0 {
		conn.Log("Deleting", len(stale), "stale objects")
		err = conn.DeleteObjects(bucket, stale)
		if err != nil {
			return uploaded, fmt.Errorf("Failed to delete stale objects: %w", err)
		}
	}

	return uploaded, nil
}
