package chartist

import (
	"fmt"
	"image"
)

// Layout is the policy for placing the text block on an automatically sized
// canvas.
//
// Frame adds a margin of one tile on every side so the text does not touch
// the image edges. LineSpacing is the distance between line starts in tile
// heights; zero means 1.
//
// An explicit resolution turns the frame off, but line spacing still applies.
type Layout struct {
	Frame       bool
	LineSpacing int
}

// Predefined layouts
var (
	// DefaultLayout packs lines one tile apart with no margin
	DefaultLayout = Layout{LineSpacing: 1}

	// FramedLayout is the first-generation canvas: a one tile margin and an
	// empty tile row between lines.
	FramedLayout = Layout{Frame: true, LineSpacing: 2}
)

// NormalizeLayout validates l and fills in defaults.
func NormalizeLayout(l Layout) (Layout, error) {
	if l.LineSpacing < 0 {
		return l, fmt.Errorf("%w: line spacing %d", ErrBadSetting, l.LineSpacing)
	}
	if l.LineSpacing == 0 {
		l.LineSpacing = 1
	}
	return l, nil
}

// lineAdvance returns the distance between line starts.
func (l Layout) lineAdvance(tileH int) int {
	return tileH * l.LineSpacing
}

// margin returns the frame width and height, zero without a frame.
func (l Layout) margin(tile Size) image.Point {
	if !l.Frame {
		return image.Point{}
	}
	return image.Pt(tile.W, tile.H)
}

// canvasSize returns the automatic canvas size for a text block whose widest
// line measures extent pixels.
func (l Layout) canvasSize(extent, lines int, tile Size) Size {
	m := l.margin(tile)
	h := 0
	if lines > 0 {
		h = (lines-1)*l.lineAdvance(tile.H) + tile.H
	}
	return Size{W: extent + 2*m.X, H: h + 2*m.Y}
}
