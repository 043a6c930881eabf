package chartist

import (
	"fmt"
	"image/color"

	"github.com/decca/chartist/internal/common"
	"github.com/decca/chartist/internal/debug"
	"github.com/decca/chartist/internal/parser"
	"github.com/decca/chartist/internal/renderer"
)

// Common errors returned by the chartist package
var (
	// ErrNilCharset is returned when Render is called without a charset
	ErrNilCharset = common.ErrNilCharset

	// ErrUnknownGlyph is returned when a character is absent from the glyph table
	ErrUnknownGlyph = common.ErrUnknownGlyph

	// ErrRowOverflow classifies warnings for tiles addressed below the last
	// charset row. It is never returned by Render.
	ErrRowOverflow = common.ErrRowOverflow

	// ErrBadTable is returned when a mapping or width table is malformed
	ErrBadTable = common.ErrBadTable

	// ErrBadSetting is returned for non-positive sizes, spacings or scales
	ErrBadSetting = common.ErrBadSetting

	// ErrEmptyText is returned when an automatic canvas size has nothing to measure
	ErrEmptyText = common.ErrEmptyText
)

// GlyphTable resolves characters to tile indices.
type GlyphTable = parser.GlyphTable

// Warning records a non-fatal problem met while rendering one character.
type Warning = renderer.Warning

// Warning kinds
const (
	// WarnOverflow marks a tile addressed below the last charset row
	WarnOverflow = renderer.WarnOverflow
	// WarnUnknown marks a skipped character missing from the glyph table
	WarnUnknown = renderer.WarnUnknown
)

// Size is a width and height in pixels.
type Size struct {
	W, H int
}

func (s Size) String() string {
	return fmt.Sprintf("%d x %d", s.W, s.H)
}

// Setting is a configuration value that is either given explicitly or left
// for Render to detect. The zero Setting is Auto.
type Setting[T any] struct {
	value    T
	explicit bool
}

// Explicit returns a Setting fixed to v.
func Explicit[T any](v T) Setting[T] {
	return Setting[T]{value: v, explicit: true}
}

// Auto returns a Setting that Render detects.
func Auto[T any]() Setting[T] {
	return Setting[T]{}
}

// Get returns the explicit value, or false if the setting is automatic.
func (s Setting[T]) Get() (T, bool) {
	return s.value, s.explicit
}

// IsAuto reports whether the setting is left for detection.
func (s Setting[T]) IsAuto() bool {
	return !s.explicit
}

// Option configures rendering behavior.
type Option func(*options)

type options struct {
	tileSize    Setting[Size]
	resolution  Setting[Size]
	background  Setting[color.RGBA]
	mapping     Setting[*GlyphTable]
	widths      Setting[map[rune]int]
	layout      Layout
	skipUnknown bool
	scale       int
	debug       *debug.Session
}

func defaultOptions() *options {
	return &options{
		layout: DefaultLayout,
		scale:  1,
	}
}

// WithTileSize sets the charset cell size. Without it the cell is a square
// whose side is the smaller charset dimension.
func WithTileSize(w, h int) Option {
	return func(opts *options) {
		opts.tileSize = Explicit(Size{W: w, H: h})
	}
}

// WithResolution sets the canvas size. An explicit resolution disables the
// layout frame; the text starts at the top-left corner.
func WithResolution(w, h int) Option {
	return func(opts *options) {
		opts.resolution = Explicit(Size{W: w, H: h})
	}
}

// WithBackground sets the canvas colour. Without it the most frequent colour
// of the charset is used.
func WithBackground(c color.RGBA) Option {
	return func(opts *options) {
		opts.background = Explicit(c)
	}
}

// WithMapping replaces the printable ASCII identity table with t.
// A nil table keeps the identity table.
func WithMapping(t *GlyphTable) Option {
	return func(opts *options) {
		if t == nil {
			opts.mapping = Auto[*GlyphTable]()
			return
		}
		opts.mapping = Explicit(t)
	}
}

// WithWidths sets per-character advances in pixels. When fewer than 96
// entries are given, missing printable ASCII characters advance by the tile
// width. A nil map keeps uniform widths.
func WithWidths(entries map[rune]int) Option {
	return func(opts *options) {
		if entries == nil {
			opts.widths = Auto[map[rune]int]()
			return
		}
		opts.widths = Explicit(entries)
	}
}

// WithLayout sets the canvas layout policy. The default is DefaultLayout.
func WithLayout(l Layout) Option {
	return func(opts *options) {
		opts.layout = l
	}
}

// WithSkipUnknown controls characters missing from the glyph table.
// By default they abort rendering with ErrUnknownGlyph; when skip is true
// they are reported as warnings and leave a tile-wide gap.
func WithSkipUnknown(skip bool) Option {
	return func(opts *options) {
		opts.skipUnknown = skip
	}
}

// WithScale enlarges the finished image by an integer factor using nearest
// neighbour sampling. Paletted images stay paletted.
func WithScale(factor int) Option {
	return func(opts *options) {
		opts.scale = factor
	}
}

// WithDebug traces the render to session. A nil session disables tracing.
func WithDebug(session *debug.Session) Option {
	return func(opts *options) {
		opts.debug = session
	}
}
