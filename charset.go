package chartist

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/decca/chartist/internal/codec"
	"github.com/decca/chartist/internal/debug"
)

// Charset is a decoded spritesheet: a grid of glyph tiles.
// A Charset is immutable and safe for concurrent use across goroutines.
type Charset struct {
	img image.Image

	// Name is the file name without extension, empty for decoded streams
	Name string

	// Format is the decoder name ("png", "gif", "bmp", "tiff", "jpeg", "webp")
	Format string

	// Width and Height are the sheet dimensions in pixels
	Width, Height int

	// Indexed reports a paletted sheet
	Indexed bool
}

// NewCharset wraps an already decoded image. format is reported as the
// charset's format and used as the fallback output extension.
func NewCharset(img image.Image, format string) (*Charset, error) {
	if img == nil {
		return nil, ErrNilCharset
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrBadSetting)
	}
	_, indexed := img.(*image.Paletted)
	return &Charset{
		img:     img,
		Format:  format,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Indexed: indexed,
	}, nil
}

// Image returns the sheet. The image must not be modified.
func (c *Charset) Image() image.Image {
	if c == nil {
		return nil
	}
	return c.img
}

// Palette returns a copy of the palette of an indexed charset, or nil.
func (c *Charset) Palette() color.Palette {
	if c == nil {
		return nil
	}
	p, ok := c.img.(*image.Paletted)
	if !ok {
		return nil
	}
	out := make(color.Palette, len(p.Palette))
	copy(out, p.Palette)
	return out
}

// Size returns the sheet dimensions.
func (c *Charset) Size() Size {
	return Size{W: c.Width, H: c.Height}
}

// DecodeCharset reads a charset image in any supported format.
//
// Example:
//
//	file, err := os.Open("font.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	cs, err := chartist.DecodeCharset(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
func DecodeCharset(r io.Reader) (*Charset, error) {
	img, format, err := codec.Decode(r)
	if err != nil {
		return nil, err
	}
	return NewCharset(img, format)
}

// DecodeCharsetBytes decodes a charset held in memory.
func DecodeCharsetBytes(data []byte) (*Charset, error) {
	return DecodeCharset(bytes.NewReader(data))
}

// LoadCharset loads a charset image from disk.
func LoadCharset(p string) (*Charset, error) {
	img, format, err := codec.Open(p)
	if err != nil {
		return nil, err
	}
	cs, err := NewCharset(img, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load charset %s: %w", p, err)
	}
	cs.Name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	return cs, nil
}

// cleanFSPath validates and cleans a path for use with fs.FS.
// It ensures the path is valid according to fs.ValidPath rules and
// prevents directory traversal attacks.
func cleanFSPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	// fs.FS disallows leading slash and uses '/' only
	if strings.HasPrefix(p, "/") {
		return "", errors.New("absolute paths not allowed")
	}
	if strings.ContainsRune(p, '\\') {
		return "", errors.New("backslashes not allowed in fs paths")
	}
	if !fs.ValidPath(p) {
		// rejects ".", ".." segments, empty elements, etc.
		return "", fmt.Errorf("invalid fs path: %s", p)
	}
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", errors.New("path traversal not allowed")
	}
	return clean, nil
}

// LoadCharsetFS loads a charset image from a filesystem at the specified path.
// Path traversal (e.g., "../") is not allowed.
//
// Example with embed.FS:
//
//	//go:embed charsets/*.png
//	var charsets embed.FS
//
//	cs, err := chartist.LoadCharsetFS(charsets, "charsets/topaz.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
func LoadCharsetFS(fsys fs.FS, charsetPath string) (*Charset, error) {
	if fsys == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}

	clean, err := cleanFSPath(charsetPath)
	if err != nil {
		return nil, err
	}

	file, err := fsys.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open charset file: %w", err)
	}
	defer file.Close()

	cs, err := DecodeCharset(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load charset %s: %w", clean, err)
	}

	// Use path package for fs.FS paths (not filepath)
	cs.Name = strings.TrimSuffix(path.Base(clean), path.Ext(clean))
	return cs, nil
}

// trace emits a charset/Loaded event describing c.
func (c *Charset) trace(session *debug.Session) {
	if session == nil {
		return
	}
	session.Emit("charset", "Loaded", debug.CharsetData{
		Name:        c.Name,
		Format:      c.Format,
		Width:       c.Width,
		Height:      c.Height,
		Indexed:     c.Indexed,
		PaletteSize: len(c.Palette()),
	})
}
