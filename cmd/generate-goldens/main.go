// Command generate-goldens re-renders the golden files in testdata/goldens.
//
// Each golden file carries its own case in YAML front matter: the text, the
// synthetic charset geometry and the render settings. The generator renders
// every case with the current code and rewrites the expected dump, strategy
// and warning count. Review the diff before committing.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/decca/chartist"
	"github.com/decca/chartist/internal/codec"
	"github.com/decca/chartist/internal/sample"
	"github.com/spf13/pflag"
)

var (
	outDir = pflag.String("out", "testdata/goldens", "Golden file directory")
	only   = pflag.String("only", "", "Space-separated list of case names to regenerate (default: all)")
	check  = pflag.Bool("check", false, "Report stale golden files without rewriting them")
	strict = pflag.Bool("strict", false, "Exit on the first failing case")
)

func main() {
	pflag.Parse()

	files, err := goldenFiles(*outDir)
	if err != nil {
		log.Fatalf("Failed to list golden files: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("No golden files in %s", *outDir)
	}

	selected := map[string]bool{}
	for _, name := range strings.Fields(*only) {
		selected[name] = true
	}

	stale, failed := 0, 0
	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".md")
		if len(selected) > 0 && !selected[name] {
			continue
		}

		changed, err := regenerate(path, *check)
		if err != nil {
			if *strict {
				log.Fatalf("%s: %v", path, err)
			}
			log.Printf("Warning: %s: %v", path, err)
			failed++
			continue
		}
		if changed {
			stale++
			if *check {
				log.Printf("Stale: %s", path)
			} else {
				log.Printf("Updated %s", path)
			}
		}
	}

	stats := chartist.DefaultCacheStats()
	log.Printf("Golden file generation complete: %d changed, %d failed (%d charsets decoded, %.0f%% cache hits)",
		stale, failed, stats.Misses, stats.HitRate())
	if failed > 0 || (*check && stale > 0) {
		os.Exit(1)
	}
}

func goldenFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// regenerate renders the case in path and rewrites the file when the
// result differs. It reports whether the file was stale.
func regenerate(path string, dryRun bool) (bool, error) {
	old, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	gc, _, err := sample.ParseGolden(f)
	f.Close()
	if err != nil {
		return false, err
	}

	art, res, err := render(gc)
	if err != nil {
		return false, err
	}

	gc.Strategy = res.Strategy
	gc.Warnings = len(res.Warnings)
	gc.Generator = "generate-goldens"

	data, err := sample.FormatGolden(gc, art)
	if err != nil {
		return false, err
	}
	if string(data) == string(old) {
		return false, nil
	}
	if dryRun {
		return true, nil
	}
	return true, os.WriteFile(path, data, 0o644)
}

// charset encodes the synthetic charset as PNG and decodes it through the
// default cache, so cases sharing a geometry share one decoded charset and
// the goldens go through the same decoder as real charset files.
func charset(spec sample.Spec) (*chartist.Charset, error) {
	img, err := sample.Charset(spec)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := codec.Encode(&buf, img, "png"); err != nil {
		return nil, err
	}
	return chartist.DecodeCharsetCached(buf.Bytes())
}

// render draws gc with a synthetic charset and dumps the canvas as text.
func render(gc *sample.Case) (string, *chartist.Result, error) {
	cs, err := charset(gc.Charset)
	if err != nil {
		return "", nil, err
	}

	var opts []chartist.Option
	chars := sample.ASCII()

	if len(gc.Tile) == 2 {
		opts = append(opts, chartist.WithTileSize(gc.Tile[0], gc.Tile[1]))
	}
	if len(gc.Resolution) == 2 {
		opts = append(opts, chartist.WithResolution(gc.Resolution[0], gc.Resolution[1]))
	}
	opts = append(opts, chartist.WithLayout(chartist.Layout{Frame: gc.Frame, LineSpacing: gc.LineSpacing}))
	if gc.Scale > 0 {
		opts = append(opts, chartist.WithScale(gc.Scale))
	}
	if gc.Mapping != "" {
		table := chartist.NewGlyphTable([]rune(gc.Mapping))
		opts = append(opts, chartist.WithMapping(table))
		chars = table.Chars()
	}
	if len(gc.Widths) > 0 {
		entries := make(map[rune]int, len(gc.Widths))
		for glyph, w := range gc.Widths {
			if utf8.RuneCountInString(glyph) != 1 {
				return "", nil, fmt.Errorf("width key %q is not a single character", glyph)
			}
			r, _ := utf8.DecodeRuneInString(glyph)
			entries[r] = w
		}
		opts = append(opts, chartist.WithWidths(entries))
	}
	if gc.SkipUnknown {
		opts = append(opts, chartist.WithSkipUnknown(true))
	}

	res, err := chartist.Render(gc.Text, cs, opts...)
	if err != nil {
		return "", nil, err
	}
	return sample.Dump(res.Image, chars), res, nil
}
