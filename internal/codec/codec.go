// Package codec reads charset images and writes rendered canvases.
//
// Decoding accepts PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding picks the
// format from the output file extension and supports all of them except
// WebP.
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Codec errors.
var (
	// ErrUnknownExtension is returned when no encoder matches the output extension
	ErrUnknownExtension = errors.New("unknown file extension")
	// ErrExists is returned when the output file exists and overwriting was not forced
	ErrExists = errors.New("output file already exists")
)

// extensions maps lower-case file extensions to encoder format names.
var extensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

// Decode reads an image and reports its format name ("png", "gif", ...).
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// Open loads the image at path.
func Open(path string) (image.Image, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// FormatForPath returns the encoder format for the extension of path.
func FormatForPath(path string) (string, bool) {
	format, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return format, ok
}

// CanEncode reports whether format has an encoder.
func CanEncode(format string) bool {
	switch format {
	case "png", "jpeg", "gif", "bmp", "tiff":
		return true
	}
	return false
}

// Encode writes img to w in the named format. Paletted images keep their
// palette in PNG, GIF, BMP and TIFF output.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case "gif":
		return gif.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: no encoder for %q", ErrUnknownExtension, format)
}

// SaveOptions controls Save.
type SaveOptions struct {
	// SourceFormat is the charset's format; its extension is appended when
	// the output extension is not recognised.
	SourceFormat string
	// Force allows an existing file to be replaced.
	Force bool
}

// Save encodes img to path and returns the path actually written.
//
// The format comes from the extension of path. When it is not recognised,
// Save retries once with "." + SourceFormat appended. The image is encoded
// to a temporary file in the target directory and renamed into place, so a
// failed encode leaves no output behind.
func Save(img image.Image, path string, opts SaveOptions) (string, error) {
	format, ok := FormatForPath(path)
	if !ok {
		if opts.SourceFormat == "" || !CanEncode(opts.SourceFormat) {
			return "", fmt.Errorf("%w: %q", ErrUnknownExtension, filepath.Ext(path))
		}
		path += "." + opts.SourceFormat
		format = opts.SourceFormat
	}

	if !opts.Force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s (use force to overwrite)", ErrExists, path)
		}
	}

	if err := writeAtomic(path, func(w io.Writer) error {
		return Encode(w, img, format)
	}); err != nil {
		return "", err
	}
	return path, nil
}

// FileMode is the permission of newly written images. Replaced files keep
// their own permission.
const FileMode os.FileMode = 0o644

// writeAtomic writes through a temporary file that is renamed onto path
// only after write succeeds.
func writeAtomic(path string, write func(io.Writer) error) error {
	mode := FileMode
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".chartist-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()

	// CreateTemp uses 0600.
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
