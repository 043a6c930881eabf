package renderer

import (
	"fmt"
	"image"
)

// Locate returns the charset rectangle holding tile, treating the charset as
// one strip of tileW-wide tiles wrapped into rows sheetW pixels wide and
// tileH pixels tall. The rectangle is clamped to the charset, so edge tiles of
// sheets that are not a multiple of the tile size come back short.
//
// When the tile's row starts at or below sheetH the returned rectangle is
// empty and the error wraps ErrRowOverflow. Callers treat that as a warning.
func Locate(tile, tileW, tileH, sheetW, sheetH int) (image.Rectangle, error) {
	if tileW <= 0 || tileH <= 0 || sheetW <= 0 || sheetH <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: tile %dx%d, charset %dx%d", ErrBadGeometry, tileW, tileH, sheetW, sheetH)
	}
	if tile < 0 {
		return image.Rectangle{}, fmt.Errorf("negative tile index %d", tile)
	}

	x, y := tile*tileW, 0
	if x >= sheetW {
		row := x / sheetW
		y = row * tileH
		x -= sheetW * row
	}

	// Built directly rather than with image.Rect, which would swap an
	// inverted Y range into a non-empty rectangle.
	src := image.Rectangle{
		Min: image.Pt(x, y),
		Max: image.Pt(min(sheetW, x+tileW), min(sheetH, y+tileH)),
	}
	if y >= sheetH {
		return src, fmt.Errorf("%w: tile %d starts at y=%d, charset height is %d", ErrRowOverflow, tile, y, sheetH)
	}
	return src, nil
}
