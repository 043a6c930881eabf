// Package chartist renders text into images using bitmap charsets.
//
// A charset is a spritesheet: a grid image where every cell is the pixel art
// of one character, laid out in printable ASCII order or in the order of an
// external mapping table. Rendering copies one tile per character onto a
// canvas, advancing by the tile width or by a per-character width table,
// and keeps the charset's colour mode so that paletted charsets produce
// paletted images with the same palette.
package chartist

import (
	"fmt"
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/decca/chartist/internal/debug"
	"github.com/decca/chartist/internal/parser"
	"github.com/decca/chartist/internal/renderer"
)

// Plan is the fully resolved configuration of a render. Every automatic
// setting has been detected; the Auto fields record which ones.
type Plan struct {
	// Tile is the charset cell size
	Tile     Size
	TileAuto bool

	// Canvas is the image size before scaling
	Canvas     Size
	CanvasAuto bool

	// Background fills the canvas
	Background     color.RGBA
	BackgroundAuto bool

	// Layout is the normalized layout; its frame only applies when
	// CanvasAuto is set
	Layout Layout

	// Origin is the canvas position of the first glyph
	Origin image.Point

	// LineAdvance is the distance between line starts in pixels
	LineAdvance int

	// Lines and LongestLine describe the text in characters
	Lines       int
	LongestLine int

	// Scale is the integer upscale applied to the finished canvas
	Scale int

	// ExternalMapping and ExternalWidths report tables given by the caller
	ExternalMapping bool
	ExternalWidths  bool

	lines       []string
	charset     *Charset
	glyphs      *GlyphTable
	widths      *parser.WidthTable
	skipUnknown bool
	debug       *debug.Session
}

// Result is a finished render.
type Result struct {
	// Image is the rendered image, scaled when the plan asks for it
	Image image.Image

	// Plan is the configuration the image was rendered with
	Plan *Plan

	// Strategy names how the canvas was allocated: "direct", "palette" or
	// "fallback" (paletted charset without a pixel of the background colour)
	Strategy string

	// PaletteIndex is the background index of a "palette" canvas, -1 otherwise
	PaletteIndex int

	// Lines, Runes and Glyphs count rendered lines, characters and tiles drawn
	Lines  int
	Runes  int
	Glyphs int

	// Warnings lists non-fatal problems in text order
	Warnings []Warning
}

// Render draws lines of text with the tiles of cs.
//
// Example:
//
//	cs, err := chartist.LoadCharset("topaz.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := chartist.Render([]string{"HELLO", "WORLD"}, cs,
//	    chartist.WithTileSize(8, 8),
//	    chartist.WithLayout(chartist.FramedLayout),
//	)
func Render(lines []string, cs *Charset, opts ...Option) (*Result, error) {
	plan, err := NewPlan(lines, cs, opts...)
	if err != nil {
		return nil, err
	}
	return plan.Execute()
}

// NewPlan resolves every automatic setting for rendering lines with cs.
//
// The tile size defaults to a square whose side is the smaller charset
// dimension. The background defaults to the charset's most frequent colour.
// The canvas defaults to the widest line's extent by the height of all
// lines, plus the layout frame.
func NewPlan(lines []string, cs *Charset, opts ...Option) (*Plan, error) {
	if cs == nil || cs.img == nil {
		return nil, ErrNilCharset
	}
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	layout, err := NormalizeLayout(options.layout)
	if err != nil {
		return nil, err
	}
	if options.scale < 1 {
		return nil, fmt.Errorf("%w: scale %d", ErrBadSetting, options.scale)
	}

	p := &Plan{
		Layout:      layout,
		Lines:       len(lines),
		Scale:       options.scale,
		lines:       lines,
		charset:     cs,
		skipUnknown: options.skipUnknown,
		debug:       options.debug,
	}
	for _, line := range lines {
		p.LongestLine = max(p.LongestLine, utf8.RuneCountInString(line))
	}
	cs.trace(p.debug)

	if err := p.resolveTile(options.tileSize); err != nil {
		return nil, err
	}
	p.resolveTables(options)
	p.LineAdvance = layout.lineAdvance(p.Tile.H)

	if err := p.resolveCanvas(options.resolution); err != nil {
		return nil, err
	}
	if err := checkImageSize(p.Canvas, p.Scale); err != nil {
		return nil, err
	}

	if bg, ok := options.background.Get(); ok {
		p.Background = bg
	} else {
		p.Background = renderer.DominantColor(cs.img)
		p.BackgroundAuto = true
	}
	p.Background.A = 255

	return p, nil
}

// MaxImagePixels caps the pixel count of a rendered image after scaling.
const MaxImagePixels = 1 << 28

// checkImageSize rejects canvases whose scaled area overflows or exceeds
// MaxImagePixels.
func checkImageSize(canvas Size, scale int) error {
	if canvas.W <= 0 || canvas.H <= 0 {
		return fmt.Errorf("%w: canvas %s", ErrBadSetting, canvas)
	}
	if canvas.W > MaxImagePixels/scale || canvas.H > MaxImagePixels/scale {
		return fmt.Errorf("%w: canvas %s at scale %d is too large", ErrBadSetting, canvas, scale)
	}
	w, h := canvas.W*scale, canvas.H*scale
	if w > MaxImagePixels/h {
		return fmt.Errorf("%w: image %d x %d exceeds %d pixels", ErrBadSetting, w, h, MaxImagePixels)
	}
	return nil
}

func (p *Plan) resolveTile(s Setting[Size]) error {
	tile, ok := s.Get()
	if !ok {
		side := min(p.charset.Width, p.charset.Height)
		p.Tile = Size{W: side, H: side}
		p.TileAuto = true
		return nil
	}
	if tile.W <= 0 || tile.H <= 0 || tile.W > MaxImagePixels || tile.H > MaxImagePixels {
		return fmt.Errorf("%w: tile size %s", ErrBadSetting, tile)
	}
	p.Tile = tile
	return nil
}

func (p *Plan) resolveTables(o *options) {
	if t, ok := o.mapping.Get(); ok {
		p.glyphs = t
		p.ExternalMapping = true
	} else {
		p.glyphs = parser.DefaultGlyphTable()
	}

	if entries, ok := o.widths.Get(); ok {
		p.widths = parser.NewWidthTable(entries, p.Tile.W)
		p.ExternalWidths = true
	} else {
		p.widths = parser.UniformWidthTable(p.Tile.W)
	}

	if p.debug != nil {
		p.debug.Emit("tables", "Built", debug.TablesData{
			TileWidth:     p.Tile.W,
			TileHeight:    p.Tile.H,
			TileSizeAuto:  p.TileAuto,
			GlyphEntries:  p.glyphs.Len(),
			WidthEntries:  p.widths.Len(),
			ExternalGlyph: p.ExternalMapping,
			ExternalWidth: p.ExternalWidths,
		})
	}
}

func (p *Plan) resolveCanvas(s Setting[Size]) error {
	if res, ok := s.Get(); ok {
		if res.W <= 0 || res.H <= 0 {
			return fmt.Errorf("%w: resolution %s", ErrBadSetting, res)
		}
		p.Canvas = res
		return nil
	}

	if len(p.lines) == 0 {
		return fmt.Errorf("%w: no lines to measure", ErrEmptyText)
	}
	extent := 0
	for _, line := range p.lines {
		extent = max(extent, p.measure(line))
	}
	p.Canvas = p.Layout.canvasSize(extent, len(p.lines), p.Tile)
	p.Origin = p.Layout.margin(p.Tile)
	p.CanvasAuto = true
	if p.Canvas.W <= 0 {
		return fmt.Errorf("%w: all lines are empty", ErrEmptyText)
	}
	return nil
}

// measure returns the pixel extent of line: the sum of its advances, with
// the last glyph counted as at least one tile wide so it is not cut off.
// Advances follow the renderer, so skipped unknown glyphs count as tileW.
func (p *Plan) measure(line string) int {
	extent, last := 0, 0
	for _, r := range line {
		extent += last
		last = renderer.Advance(p.glyphs, p.widths, r, p.Tile.W)
	}
	if line == "" {
		return 0
	}
	return extent + max(last, p.Tile.W)
}

// Execute allocates the canvas and renders the planned text.
func (p *Plan) Execute() (*Result, error) {
	canvas, err := renderer.NewCanvas(p.Canvas.W, p.Canvas.H, p.Background, p.charset.img)
	if err != nil {
		return nil, err
	}
	if p.debug != nil {
		p.debug.Emit("canvas", "Created", debug.CanvasData{
			Width:        p.Canvas.W,
			Height:       p.Canvas.H,
			SizeAuto:     p.CanvasAuto,
			Strategy:     string(canvas.Strategy),
			Background:   fmt.Sprintf("%d, %d, %d", p.Background.R, p.Background.G, p.Background.B),
			BackAuto:     p.BackgroundAuto,
			PaletteIndex: canvas.PaletteIndex,
		})
	}

	rr, err := renderer.Render(p.lines, canvas.Image, p.charset.img, p.toInternal())
	if err != nil {
		return nil, err
	}

	return &Result{
		Image:        renderer.Scale(canvas.Image, p.Scale),
		Plan:         p,
		Strategy:     string(canvas.Strategy),
		PaletteIndex: canvas.PaletteIndex,
		Lines:        rr.Lines,
		Runes:        rr.Runes,
		Glyphs:       rr.Glyphs,
		Warnings:     rr.Warnings,
	}, nil
}

func (p *Plan) toInternal() *renderer.Options {
	return &renderer.Options{
		Glyphs:      p.glyphs,
		Widths:      p.widths,
		TileWidth:   p.Tile.W,
		TileHeight:  p.Tile.H,
		LineAdvance: p.LineAdvance,
		Origin:      p.Origin,
		SkipUnknown: p.skipUnknown,
		Debug:       p.debug,
	}
}
