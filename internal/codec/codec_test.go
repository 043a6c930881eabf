package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func testPaletted() *image.Paletted {
	pal := color.Palette{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{255, 0, 0, 255},
		color.RGBA{0, 255, 0, 255},
	}
	img := image.NewPaletted(image.Rect(0, 0, 4, 2), pal)
	img.SetColorIndex(1, 0, 1)
	img.SetColorIndex(2, 1, 2)
	return img
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path   string
		format string
		ok     bool
	}{
		{"out.png", "png", true},
		{"OUT.PNG", "png", true},
		{"a/b/out.jpg", "jpeg", true},
		{"out.jpeg", "jpeg", true},
		{"out.gif", "gif", true},
		{"out.bmp", "bmp", true},
		{"out.tif", "tiff", true},
		{"out.tiff", "tiff", true},
		{"out.webp", "", false},
		{"out", "", false},
		{"out.txt", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, ok := FormatForPath(tt.path)
			if format != tt.format || ok != tt.ok {
				t.Errorf("FormatForPath(%q) = %q, %v; want %q, %v", tt.path, format, ok, tt.format, tt.ok)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	src := testPaletted()
	lossless := []string{"png", "gif", "bmp", "tiff"}

	for _, ext := range append(lossless, "jpg") {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+ext)
			written, err := Save(src, path, SaveOptions{})
			if err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if written != path {
				t.Errorf("Save() wrote %q, want %q", written, path)
			}

			img, _, err := Open(path)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if img.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", img.Bounds(), src.Bounds())
			}
			if ext == "jpg" {
				return
			}
			for y := 0; y < 2; y++ {
				for x := 0; x < 4; x++ {
					want := color.RGBAModel.Convert(src.At(x, y))
					got := color.RGBAModel.Convert(img.At(x, y))
					if got != want {
						t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestSavePalettedPNGKeepsIndices(t *testing.T) {
	src := testPaletted()
	path := filepath.Join(t.TempDir(), "out.png")
	if _, err := Save(src, path, SaveOptions{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	img, format, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	p, ok := img.(*image.Paletted)
	if !ok {
		t.Fatalf("decoded %T, want *image.Paletted", img)
	}
	if !bytes.Equal(p.Pix, src.Pix) {
		t.Errorf("Pix = %v, want %v", p.Pix, src.Pix)
	}
}

func TestSaveExtensionFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out")

	written, err := Save(testPaletted(), path, SaveOptions{SourceFormat: "png"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if want := path + ".png"; written != want {
		t.Errorf("Save() wrote %q, want %q", written, want)
	}
	if _, err := os.Stat(written); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestSaveUnknownExtension(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		source string
	}{
		{"no source format", ""},
		{"source without encoder", "webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Save(testPaletted(), filepath.Join(dir, "out.xyz"), SaveOptions{SourceFormat: tt.source})
			if !errors.Is(err, ErrUnknownExtension) {
				t.Errorf("Save() error = %v, want ErrUnknownExtension", err)
			}
		})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("directory has %d entries, want 0", len(entries))
	}
}

func TestSaveExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := os.WriteFile(path, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Save(testPaletted(), path, SaveOptions{})
	if !errors.Is(err, ErrExists) {
		t.Fatalf("Save() error = %v, want ErrExists", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "keep" {
		t.Error("existing file was modified")
	}

	if _, err := Save(testPaletted(), path, SaveOptions{Force: true}); err != nil {
		t.Fatalf("Save(force) error = %v", err)
	}
	if _, _, err := Open(path); err != nil {
		t.Errorf("Open() after forced save error = %v", err)
	}
}

func TestSaveFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.png")
	if _, err := Save(testPaletted(), fresh, SaveOptions{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	fi, err := os.Stat(fresh)
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.Mode().Perm(); got != FileMode {
		t.Errorf("new file mode = %v, want %v", got, FileMode)
	}

	kept := filepath.Join(dir, "kept.png")
	if err := os.WriteFile(kept, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(kept, 0o664); err != nil {
		t.Fatal(err)
	}
	if _, err := Save(testPaletted(), kept, SaveOptions{Force: true}); err != nil {
		t.Fatalf("Save(force) error = %v", err)
	}
	fi, err = os.Stat(kept)
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.Mode().Perm(); got != 0o664 {
		t.Errorf("replaced file mode = %v, want 0664", got)
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := Open(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Open(missing) error = nil")
	}

	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Open(bad); err == nil {
		t.Error("Open(garbage) error = nil")
	}
}

func TestDisplay(t *testing.T) {
	var opened string
	orig := startViewer
	startViewer = func(path string) error {
		opened = path
		return nil
	}
	defer func() { startViewer = orig }()

	path, err := Display(testPaletted())
	if err != nil {
		t.Fatalf("Display() error = %v", err)
	}
	defer os.Remove(path)

	if opened != path {
		t.Errorf("viewer opened %q, want %q", opened, path)
	}
	img, format, err := Open(path)
	if err != nil {
		t.Fatalf("Open(preview) error = %v", err)
	}
	if format != "png" || img.Bounds().Dx() != 4 {
		t.Errorf("preview = %s %v", format, img.Bounds())
	}
}

func TestDisplayViewerError(t *testing.T) {
	orig := startViewer
	startViewer = func(string) error { return errors.New("no viewer") }
	defer func() { startViewer = orig }()

	path, err := Display(testPaletted())
	if path != "" {
		defer os.Remove(path)
	}
	if err == nil {
		t.Error("Display() error = nil, want viewer error")
	}
}
