// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"rescribe.xyz/glyphpipeline"
	"rescribe.xyz/glyphpipeline/charmap"
	"rescribe.xyz/glyphpipeline/glyph"
)

// StrLog is a simple logger that saves to a string,
// so it can be printed out only when needed.
type StrLog struct {
	log string
}

func (t *StrLog) Write(p []byte) (n int, err error) {
	t.log += string(p)
	return len(p), nil
}

// scan makes a white w x h image with a black square in it
func scan(w, h, x, y, size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for yi := y; yi < y+size; yi++ {
		for xi := x; xi < x+size; xi++ {
			img.SetGray(xi, yi, color.Gray{Y: 0})
		}
	}
	return img
}

// glyphImg makes a transparent w x h image with an opaque square in it
func glyphImg(w, h, x, y, size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for yi := y; yi < y+size; yi++ {
		for xi := x; xi < x+size; xi++ {
			img.SetNRGBA(xi, yi, c)
		}
	}
	return img
}

func save(t *testing.T, img image.Image, path string) {
	t.Helper()
	err := glyph.Save(img, path)
	if err != nil {
		t.Fatalf("Could not save %s: %v", path, err)
	}
}

func touch(t *testing.T, path string, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0644)
	if err != nil {
		t.Fatalf("Could not create %s: %v", path, err)
	}
}

func Test_ListImages(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.PNG", "a.jpg", "c.jpeg", ".hidden.png", "notes.txt"} {
		touch(t, filepath.Join(dir, n), "")
	}
	err := os.Mkdir(filepath.Join(dir, "d.png"), 0755)
	if err != nil {
		t.Fatalf("Could not create directory: %v", err)
	}

	cases := []struct {
		name   string
		exts   []string
		expect []string
	}{
		{"raw", RawExts, []string{"a.jpg", "b.PNG", "c.jpeg"}},
		{"glyph", GlyphExts, []string{"b.PNG"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			names, err := ListImages(dir, c.exts)
			if err != nil {
				t.Fatalf("ListImages failed: %v", err)
			}
			if !reflect.DeepEqual(names, c.expect) {
				t.Errorf("Expected %v, got %v", c.expect, names)
			}
		})
	}

	_, err = ListImages(filepath.Join(dir, "notpresent"), RawExts)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not exist error, got %v", err)
	}
	_, err = ListImages(filepath.Join(dir, "notes.txt"), RawExts)
	if err == nil {
		t.Errorf("Expected an error listing a file")
	}
}

func Test_CheckImages(t *testing.T) {
	good := t.TempDir()
	save(t, scan(10, 10, 2, 2, 4), filepath.Join(good, "理.png"))

	bad := t.TempDir()
	save(t, scan(10, 10, 2, 2, 4), filepath.Join(bad, "理.png"))
	touch(t, filepath.Join(bad, "好.png"), "not an image")

	cases := []struct {
		name string
		dir  string
		err  string
	}{
		{"good", good, ""},
		{"bad", bad, "Decoding image " + filepath.Join(bad, "好.png") + " failed"},
		{"empty", t.TempDir(), "No images found"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckImages(context.Background(), c.dir, RawExts)
			if c.err == "" {
				if err != nil {
					t.Fatalf("Expected no error, got '%v'", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), c.err) {
				t.Fatalf("Expected error containing '%s', got '%v'", c.err, err)
			}
		})
	}
}

func Test_ExtractDir(t *testing.T) {
	var slog StrLog
	vlog := log.New(&slog, "", 0)

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "processed")
	save(t, scan(40, 40, 4, 8, 10), filepath.Join(in, "理.png"))
	save(t, scan(30, 50, 10, 10, 10), filepath.Join(in, "好.JPG"))
	touch(t, filepath.Join(in, "bad.jpeg"), "not an image")
	touch(t, filepath.Join(in, "readme.txt"), "")

	r, err := ExtractDir(context.Background(), in, out, glyph.DefaultExtractOptions(), vlog)
	if err != nil {
		t.Fatalf("ExtractDir failed: %v\nLog: %s", err, slog.log)
	}
	if r != (Result{Processed: 2, Failed: 1}) {
		t.Errorf("Unexpected result: %v\nLog: %s", r, slog.log)
	}
	if !strings.Contains(slog.log, "Processing 好.JPG -> 好.png") {
		t.Errorf("Expected progress in log, got: %s", slog.log)
	}
	if !strings.Contains(slog.log, "bad.jpeg") {
		t.Errorf("Expected failure to be logged, got: %s", slog.log)
	}

	names, err := ListImages(out, GlyphExts)
	if err != nil {
		t.Fatalf("Could not list output: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"好.png", "理.png"}) {
		t.Errorf("Unexpected output files: %v", names)
	}
	img, err := glyph.Open(filepath.Join(out, "好.png"))
	if err != nil {
		t.Fatalf("Could not open output: %v", err)
	}
	if !img.Bounds().Eq(image.Rect(0, 0, 30, 50)) {
		t.Errorf("Output size changed: %v", img.Bounds())
	}
}

func Test_RecenterDir(t *testing.T) {
	var slog StrLog
	vlog := log.New(&slog, "", 0)

	dir := t.TempDir()
	save(t, glyphImg(20, 20, 0, 0, 4, glyph.Gold), filepath.Join(dir, "理.png"))
	save(t, image.NewNRGBA(image.Rect(0, 0, 20, 20)), filepath.Join(dir, "空.png"))
	touch(t, filepath.Join(dir, "坏.png"), "not an image")

	r, err := RecenterDir(context.Background(), dir, vlog)
	if err != nil {
		t.Fatalf("RecenterDir failed: %v\nLog: %s", err, slog.log)
	}
	if r != (Result{Processed: 1, Skipped: 1, Failed: 1}) {
		t.Errorf("Unexpected result: %v\nLog: %s", r, slog.log)
	}
	for _, s := range []string{"Found 3 images", "Processing [3/3]", "Skipping empty image: 空.png", "Could not process 坏.png"} {
		if !strings.Contains(slog.log, s) {
			t.Errorf("Expected '%s' in log, got: %s", s, slog.log)
		}
	}

	img, err := glyph.Open(filepath.Join(dir, "理.png"))
	if err != nil {
		t.Fatalf("Could not open output: %v", err)
	}
	b, _ := glyph.Bounds(img)
	if !b.Eq(image.Rect(8, 8, 12, 12)) {
		t.Errorf("Expected glyph at %v, got %v", image.Rect(8, 8, 12, 12), b)
	}
}

func Test_ColorizeDir(t *testing.T) {
	var slog StrLog
	vlog := log.New(&slog, "", 0)

	dir := t.TempDir()
	src := glyphImg(10, 10, 2, 2, 5, color.NRGBA{R: 253, G: 224, B: 71, A: 90})
	save(t, src, filepath.Join(dir, "理.png"))

	r, err := ColorizeDir(context.Background(), dir, glyph.White, vlog)
	if err != nil {
		t.Fatalf("ColorizeDir failed: %v\nLog: %s", err, slog.log)
	}
	if r != (Result{Processed: 1}) {
		t.Errorf("Unexpected result: %v", r)
	}
	img, err := glyph.Open(filepath.Join(dir, "理.png"))
	if err != nil {
		t.Fatalf("Could not open output: %v", err)
	}
	got := color.NRGBAModel.Convert(img.At(3, 3)).(color.NRGBA)
	if got != (color.NRGBA{R: 255, G: 255, B: 255, A: 90}) {
		t.Errorf("Unexpected pixel: %v", got)
	}
	if !strings.Contains(slog.log, "Processing [1/1]: Converted 理.png") {
		t.Errorf("Expected progress in log, got: %s", slog.log)
	}
}

func Test_MissingDir(t *testing.T) {
	var slog StrLog
	vlog := log.New(&slog, "", 0)
	ctx := context.Background()
	missing := filepath.Join(t.TempDir(), "notpresent")
	out := filepath.Join(t.TempDir(), "out")

	errs := map[string]error{}
	_, errs["extract"] = ExtractDir(ctx, missing, out, glyph.DefaultExtractOptions(), vlog)
	_, errs["recenter"] = RecenterDir(ctx, missing, vlog)
	_, errs["colorize"] = ColorizeDir(ctx, missing, glyph.White, vlog)
	_, errs["map"] = MapDir(ctx, missing, filepath.Join(out, "map.json"), vlog)
	_, _, errs["coverage"] = CoverageDir(ctx, missing, vlog)

	for name, err := range errs {
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s: expected a not exist error, got %v", name, err)
		}
	}
	if slog.log != "" {
		t.Errorf("Expected nothing to be processed, got log: %s", slog.log)
	}
	if _, err := os.Stat(out); err == nil {
		t.Errorf("Expected no output directory to be created")
	}
}

func Test_Cancelled(t *testing.T) {
	var n NullWriter
	vlog := log.New(n, "", 0)
	dir := t.TempDir()
	save(t, glyphImg(10, 10, 0, 0, 2, glyph.Gold), filepath.Join(dir, "理.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RecenterDir(ctx, dir, vlog)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected a cancelled error, got %v", err)
	}
	img, err := glyph.Open(filepath.Join(dir, "理.png"))
	if err != nil {
		t.Fatalf("Could not open image: %v", err)
	}
	if b, _ := glyph.Bounds(img); !b.Eq(image.Rect(0, 0, 2, 2)) {
		t.Errorf("Image was processed despite cancellation")
	}
}

func Test_CoverageDir(t *testing.T) {
	var slog StrLog
	vlog := log.New(&slog, "", 0)

	dir := t.TempDir()
	save(t, glyphImg(10, 10, 0, 0, 5, glyph.White), filepath.Join(dir, "理.png"))
	save(t, image.NewNRGBA(image.Rect(0, 0, 10, 10)), filepath.Join(dir, "空.png"))
	save(t, glyphImg(10, 10, 0, 0, 10, glyph.White), filepath.Join(dir, "x.png"))

	covs, r, err := CoverageDir(context.Background(), dir, vlog)
	if err != nil {
		t.Fatalf("CoverageDir failed: %v", err)
	}
	if r.Processed != 3 {
		t.Errorf("Unexpected result: %v", r)
	}
	expect := []glyphpipeline.Coverage{
		{Name: "x.png", Char: "", Value: 1},
		{Name: "理.png", Char: "理", Value: 0.25},
		{Name: "空.png", Char: "空", Value: 0},
	}
	if !reflect.DeepEqual(covs, expect) {
		t.Errorf("Expected %v, got %v", expect, covs)
	}
	if !strings.Contains(slog.log, "空.png has no visible pixels") || !strings.Contains(slog.log, "x.png is 100% inked") {
		t.Errorf("Expected warnings in log, got: %s", slog.log)
	}
}

func Test_Run(t *testing.T) {
	var slog StrLog
	vlog := log.New(&slog, "", 0)

	root := t.TempDir()
	conf := glyphpipeline.DefaultConfig()
	conf.OriginalDir = filepath.Join(root, "original_characters")
	conf.ProcessedDir = filepath.Join(root, "processed_web_characters")
	conf.MapPath = filepath.Join(root, "character_map.json")

	err := os.Mkdir(conf.OriginalDir, 0755)
	if err != nil {
		t.Fatalf("Could not create directory: %v", err)
	}
	save(t, scan(40, 40, 2, 8, 10), filepath.Join(conf.OriginalDir, "理.png"))
	save(t, scan(40, 40, 25, 20, 8), filepath.Join(conf.OriginalDir, "好.jpg"))
	save(t, scan(40, 40, 0, 0, 0), filepath.Join(conf.OriginalDir, "blank.png"))

	s, err := Run(context.Background(), conf, vlog)
	if err != nil {
		t.Fatalf("Run failed: %v\nLog: %s", err, slog.log)
	}
	if s.Extract.Processed != 3 || s.Recenter.Processed != 2 || s.Recenter.Skipped != 1 || s.Colorize.Processed != 3 {
		t.Errorf("Unexpected summary: %+v\nLog: %s", s, slog.log)
	}

	m, err := charmap.ReadFile(conf.MapPath)
	if err != nil {
		t.Fatalf("Could not read map: %v", err)
	}
	expect := charmap.Map{"理": "理.png", "好": "好.png"}
	if !reflect.DeepEqual(m, expect) || !reflect.DeepEqual(s.Map, expect) {
		t.Errorf("Expected map %v, got %v", expect, m)
	}

	for _, n := range []string{"理.png", "好.png"} {
		img, err := glyph.Open(filepath.Join(conf.ProcessedDir, n))
		if err != nil {
			t.Fatalf("Could not open %s: %v", n, err)
		}
		b, ok := glyph.Bounds(img)
		if !ok {
			t.Fatalf("%s is empty", n)
		}
		left, right := b.Min.X, 40-b.Max.X
		top, bottom := b.Min.Y, 40-b.Max.Y
		if right-left < 0 || right-left > 1 || bottom-top < 0 || bottom-top > 1 {
			t.Errorf("%s is not centred: %v", n, b)
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				if c.A > 0 && (c.R != 255 || c.G != 255 || c.B != 255) {
					t.Fatalf("%s not recoloured at %d,%d: %v", n, x, y, c)
				}
			}
		}
	}
}

func Test_Publish(t *testing.T) {
	var slog StrLog
	vlog := log.New(&slog, "", 0)
	ctx := context.Background()

	conn := &glyphpipeline.LocalConn{Dir: t.TempDir(), Logger: vlog}
	err := conn.Init()
	if err != nil {
		t.Fatalf("Could not initialise connection: %v", err)
	}

	dir := t.TempDir()
	save(t, glyphImg(10, 10, 0, 0, 5, glyph.White), filepath.Join(dir, "理.png"))
	save(t, glyphImg(10, 10, 0, 0, 5, glyph.White), filepath.Join(dir, "好.png"))
	mappath := filepath.Join(t.TempDir(), "character_map.json")
	err = charmap.Map{"理": "理.png", "好": "好.png"}.WriteFile(mappath)
	if err != nil {
		t.Fatalf("Could not write map: %v", err)
	}

	stale := filepath.Join(t.TempDir(), "old.png")
	touch(t, stale, "old")
	for _, k := range []string{"glyphs/旧.png", "other/旧.png"} {
		err = conn.Upload("site", k, stale)
		if err != nil {
			t.Fatalf("Could not upload %s: %v", k, err)
		}
	}

	n, err := Publish(ctx, dir, mappath, "site", "glyphs", conn)
	if err != nil {
		t.Fatalf("Publish failed: %v\nLog: %s", err, slog.log)
	}
	if n != 3 {
		t.Errorf("Expected 3 uploads, got %d", n)
	}

	keys, err := conn.ListObjects("site", "")
	if err != nil {
		t.Fatalf("Could not list objects: %v", err)
	}
	sort.Strings(keys)
	expect := []string{"glyphs/character_map.json", "glyphs/好.png", "glyphs/理.png", "other/旧.png"}
	if !reflect.DeepEqual(keys, expect) {
		t.Errorf("Expected %v, got %v", expect, keys)
	}

	_, err = Publish(ctx, filepath.Join(dir, "notpresent"), "", "site", "glyphs", conn)
	if err == nil {
		t.Errorf("Expected an error publishing a missing directory")
	}
}
