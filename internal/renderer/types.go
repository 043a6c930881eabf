package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/decca/chartist/internal/common"
	"github.com/decca/chartist/internal/debug"
	"github.com/decca/chartist/internal/parser"
)

// Error definitions for the renderer package
var (
	// ErrNilCharset is returned when no charset image is provided to Render
	ErrNilCharset = common.ErrNilCharset
	// ErrNilCanvas is returned when no canvas is provided to Render
	ErrNilCanvas = errors.New("canvas cannot be nil")
	// ErrUnknownGlyph is returned when a character is not in the glyph table
	ErrUnknownGlyph = common.ErrUnknownGlyph
	// ErrRowOverflow marks a tile address below the last charset row
	ErrRowOverflow = common.ErrRowOverflow
	// ErrBadGeometry is returned for non-positive tile or charset dimensions
	ErrBadGeometry = errors.New("tile and charset dimensions must be positive")
)

// Warning kinds
const (
	WarnOverflow = "overflow"
	WarnUnknown  = "unknown"
)

// Options contains rendering options passed from the main package
type Options struct {
	// Glyphs resolves characters to tile indices (identity table when nil)
	Glyphs *parser.GlyphTable
	// Widths resolves characters to advances (uniform TileWidth when nil)
	Widths *parser.WidthTable
	// TileWidth and TileHeight are the charset cell size in pixels
	TileWidth  int
	TileHeight int
	// LineAdvance is the vertical distance between line starts (TileHeight when 0)
	LineAdvance int
	// Origin is the canvas position of the first glyph
	Origin image.Point
	// SkipUnknown turns characters missing from Glyphs into warnings
	SkipUnknown bool
	// Debug receives trace events; nil disables tracing
	Debug *debug.Session
}

// Warning records a non-fatal problem met while rendering one character.
type Warning struct {
	Kind   string
	Line   int // 1-based
	Column int // 1-based, in characters
	Rune   rune
	Tile   int // -1 for unknown glyphs
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d, column %d (%q): %v", w.Line, w.Column, w.Rune, w.Err)
}

// Result summarises a render.
type Result struct {
	Lines    int
	Runes    int
	Glyphs   int
	Warnings []Warning
}

// Cursor is the canvas position of the next glyph.
type Cursor struct {
	X, Y      int
	lineStart int
}

// NewCursor returns a cursor at origin; new lines return to origin.X.
func NewCursor(origin image.Point) Cursor {
	return Cursor{X: origin.X, Y: origin.Y, lineStart: origin.X}
}

// Advance moves the cursor right by dx pixels.
func (c *Cursor) Advance(dx int) {
	c.X += dx
}

// NewLine moves the cursor to the start of the next line, dy pixels down.
func (c *Cursor) NewLine(dy int) {
	c.X = c.lineStart
	c.Y += dy
}

// Point returns the cursor position.
func (c Cursor) Point() image.Point {
	return image.Pt(c.X, c.Y)
}
