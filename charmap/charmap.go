// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// Package charmap builds the lookup table from a Chinese character
// to the name of the glyph image which depicts it.
package charmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
)

// charRe matches a CJK unified ideograph immediately followed by a
// '.', as in "理.png" or "0042_理.png".
var charRe = regexp.MustCompile(`([\x{4e00}-\x{9fa5}])\.`)

// Map maps a single character to a filename.
type Map map[string]string

// Char returns the first character in name which is directly
// followed by a '.', if there is one.
func Char(name string) (string, bool) {
	m := charRe.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// FromNames builds a Map from a list of filenames. Names without a
// character are ignored. The names are considered in sorted order,
// so that if several names contain the same character the last one
// in that order wins, regardless of the order they were given in.
func FromNames(names []string) Map {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	m := make(Map)
	for _, n := range sorted {
		c, ok := Char(n)
		if !ok {
			continue
		}
		m[c] = n
	}
	return m
}

// Build builds a Map from the names of the entries in dir.
func Build(dir string) (Map, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("Failed to read directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return FromNames(names), nil
}

// Write encodes m as an indented JSON object, with characters
// written literally rather than as escape sequences.
func (m Map) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// WriteFile writes m to path, replacing any existing file.
func (m Map) WriteFile(path string) error {
	var buf bytes.Buffer
	err := m.Write(&buf)
	if err != nil {
		return fmt.Errorf("Failed to encode character map: %w", err)
	}
	err = os.WriteFile(path, buf.Bytes(), 0644)
	if err != nil {
		return fmt.Errorf("Failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a Map previously written with WriteFile.
func ReadFile(path string) (Map, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to read %s: %w", path, err)
	}
	m := make(Map)
	err = json.Unmarshal(b, &m)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse %s: %w", path, err)
	}
	return m, nil
}

// Chars returns the characters in m in sorted order.
func (m Map) Chars() []string {
	var chars []string
	for c := range m {
		chars = append(chars, c)
	}
	sort.Strings(chars)
	return chars
}
