// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyphpipeline

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LocalConn is a simple implementation of the publisher interface
// that doesn't rely on any "cloud" services, instead copying
// everything to a directory on the local machine, with a
// subdirectory for each bucket. This is particularly useful for
// testing, or for publishing to a directory served by a web server.
type LocalConn struct {
	// these should be set before running Init(), or left to defaults
	Dir    string
	Logger *log.Logger
}

// MinimalInit does the bare minimum initialisation
func (a *LocalConn) MinimalInit() error {
	if a.Dir == "" {
		a.Dir = filepath.Join(os.TempDir(), "glyphpipeline")
	}
	err := os.MkdirAll(a.Dir, 0755)
	if err != nil {
		return fmt.Errorf("Error creating directory %s: %v", a.Dir, err)
	}

	if a.Logger == nil {
		a.Logger = log.New(os.Stdout, "", 0)
	}

	return nil
}

// Init just does the same as MinimalInit
func (a *LocalConn) Init() error {
	return a.MinimalInit()
}

// CreateBucket creates the directory for a bucket
func (a *LocalConn) CreateBucket(name string) error {
	return os.MkdirAll(filepath.Join(a.Dir, name), 0755)
}

func prefixwalker(dirpath string, prefix string, list *[]string) filepath.WalkFunc {
	return func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dirpath, path)
		if err != nil {
			return err
		}
		n := filepath.ToSlash(rel)
		if strings.HasPrefix(n, prefix) {
			*list = append(*list, n)
		}
		return nil
	}
}

// ListObjects lists the keys in bucket starting with prefix. A
// bucket which doesn't exist yet has no keys.
func (a *LocalConn) ListObjects(bucket string, prefix string) ([]string, error) {
	var list []string
	d := filepath.Join(a.Dir, bucket)
	if _, err := os.Stat(d); os.IsNotExist(err) {
		return list, nil
	}
	err := filepath.Walk(d, prefixwalker(d, prefix, &list))
	return list, err
}

// DeleteObjects removes the files for a list of keys
func (a *LocalConn) DeleteObjects(bucket string, keys []string) error {
	for _, k := range keys {
		err := os.Remove(filepath.Join(a.Dir, bucket, filepath.FromSlash(k)))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Upload just copies the file from path to Dir/bucket/key
func (a *LocalConn) Upload(bucket string, key string, path string) error {
	dest := filepath.Join(a.Dir, bucket, filepath.FromSlash(key))
	err := os.MkdirAll(filepath.Dir(dest), 0755)
	if err != nil {
		return fmt.Errorf("Error creating directory: %v", err)
	}

	fin, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fin.Close()

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, fin)
	return err
}

// Log records an item in the with the Logger. Arguments are handled
// as with fmt.Println.
func (a *LocalConn) Log(v ...interface{}) {
	a.Logger.Println(v...)
}
