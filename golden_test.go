package chartist

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/decca/chartist/internal/sample"
)

// goldenOptions converts golden front matter into render options and the
// glyph order used to dump the result.
func goldenOptions(c *sample.Case) ([]Option, []rune, error) {
	var opts []Option
	chars := sample.ASCII()

	if len(c.Tile) == 2 {
		opts = append(opts, WithTileSize(c.Tile[0], c.Tile[1]))
	}
	if len(c.Resolution) == 2 {
		opts = append(opts, WithResolution(c.Resolution[0], c.Resolution[1]))
	}
	opts = append(opts, WithLayout(Layout{Frame: c.Frame, LineSpacing: c.LineSpacing}))
	if c.Scale > 0 {
		opts = append(opts, WithScale(c.Scale))
	}
	if c.Mapping != "" {
		table := NewGlyphTable([]rune(c.Mapping))
		opts = append(opts, WithMapping(table))
		chars = table.Chars()
	}
	if len(c.Widths) > 0 {
		entries := make(map[rune]int, len(c.Widths))
		for glyph, w := range c.Widths {
			if utf8.RuneCountInString(glyph) != 1 {
				return nil, nil, fmt.Errorf("width key %q is not a single character", glyph)
			}
			r, _ := utf8.DecodeRuneInString(glyph)
			entries[r] = w
		}
		opts = append(opts, WithWidths(entries))
	}
	if c.SkipUnknown {
		opts = append(opts, WithSkipUnknown(true))
	}
	return opts, chars, nil
}

func TestGoldenFiles(t *testing.T) {
	goldenDir := "testdata/goldens"
	if _, err := os.Stat(goldenDir); os.IsNotExist(err) {
		t.Skip("Golden test files not found. Run go run ./cmd/generate-goldens to generate them.")
	}

	var goldenFiles []string
	err := filepath.WalkDir(goldenDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			goldenFiles = append(goldenFiles, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk golden directory: %v", err)
	}
	if len(goldenFiles) == 0 {
		t.Skip("No golden test files found")
	}

	for _, goldenFile := range goldenFiles {
		relPath, _ := filepath.Rel(goldenDir, goldenFile)
		testName := strings.TrimSuffix(relPath, ".md")

		t.Run(testName, func(t *testing.T) {
			f, err := os.Open(goldenFile)
			if err != nil {
				t.Fatalf("Failed to open golden file: %v", err)
			}
			defer f.Close()

			gc, expected, err := sample.ParseGolden(f)
			if err != nil {
				t.Fatalf("Failed to parse golden file: %v", err)
			}

			img, err := sample.Charset(gc.Charset)
			if err != nil {
				t.Fatalf("Failed to build charset: %v", err)
			}
			cs, err := NewCharset(img, "png")
			if err != nil {
				t.Fatalf("NewCharset failed: %v", err)
			}

			opts, chars, err := goldenOptions(gc)
			if err != nil {
				t.Fatalf("Bad golden options: %v", err)
			}

			res, err := Render(gc.Text, cs, opts...)
			if err != nil {
				t.Fatalf("Failed to render text: %v", err)
			}

			got := sample.Dump(res.Image, chars)
			if got != expected {
				gotLines := strings.Split(got, "\n")
				wantLines := strings.Split(expected, "\n")
				t.Errorf("Output mismatch for %s (text %q)", testName, gc.Text)
				for i := 0; i < len(gotLines) || i < len(wantLines); i++ {
					if i >= len(wantLines) {
						t.Errorf("Row %d: got extra row: %q", i, gotLines[i])
						break
					}
					if i >= len(gotLines) {
						t.Errorf("Row %d: missing expected row: %q", i, wantLines[i])
						break
					}
					if gotLines[i] != wantLines[i] {
						t.Errorf("Row %d differs:\n  Got:      %q\n  Expected: %q", i, gotLines[i], wantLines[i])
						break
					}
				}
			}

			if len(res.Warnings) != gc.Warnings {
				t.Errorf("warnings = %d, want %d: %v", len(res.Warnings), gc.Warnings, res.Warnings)
			}
			if gc.Strategy != "" && res.Strategy != gc.Strategy {
				t.Errorf("strategy = %q, want %q", res.Strategy, gc.Strategy)
			}
		})
	}
}
