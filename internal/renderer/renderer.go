package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"
	"unicode/utf8"

	"golang.org/x/image/draw"

	"github.com/decca/chartist/internal/debug"
	"github.com/decca/chartist/internal/parser"
)

// Render draws lines onto canvas using tiles cut from sheet.
//
// Each line starts at opts.Origin.X; lines are opts.LineAdvance pixels apart.
// For every character the glyph table yields a tile index, Locate yields the
// source rectangle, the tile is copied to the cursor and the cursor advances
// by the character's width. A character missing from the glyph table aborts
// with ErrUnknownGlyph unless opts.SkipUnknown is set. Tiles outside the
// charset are recorded as warnings and drawn clamped, which may draw nothing.
//
// The returned Result is non-nil even when an error is returned.
func Render(lines []string, canvas draw.Image, sheet image.Image, opts *Options) (*Result, error) {
	res := &Result{}
	if sheet == nil {
		return res, ErrNilCharset
	}
	if canvas == nil {
		return res, ErrNilCanvas
	}
	if opts == nil || opts.TileWidth <= 0 || opts.TileHeight <= 0 {
		return res, fmt.Errorf("%w: tile size not set", ErrBadGeometry)
	}

	tileW, tileH := opts.TileWidth, opts.TileHeight
	glyphs := opts.Glyphs
	if glyphs == nil {
		glyphs = parser.DefaultGlyphTable()
	}
	widths := opts.Widths
	if widths == nil {
		widths = parser.UniformWidthTable(tileW)
	}
	lineAdvance := opts.LineAdvance
	if lineAdvance <= 0 {
		lineAdvance = tileH
	}

	sb := sheet.Bounds()
	session := opts.Debug

	var startTime time.Time
	if session != nil {
		startTime = time.Now()
		longest := 0
		for _, line := range lines {
			longest = max(longest, utf8.RuneCountInString(line))
		}
		session.Emit("render", "Start", debug.RenderStartData{
			Lines:       len(lines),
			LongestLine: longest,
			TileWidth:   tileW,
			TileHeight:  tileH,
			LineAdvance: lineAdvance,
			OriginX:     opts.Origin.X,
			OriginY:     opts.Origin.Y,
		})
	}

	cursor := NewCursor(opts.Origin)
	for li, line := range lines {
		col := 0
		for _, r := range line {
			col++
			res.Runes++

			tile, ok := glyphs.Lookup(r)
			if !ok {
				err := fmt.Errorf("%w: %q", ErrUnknownGlyph, r)
				if !opts.SkipUnknown {
					return res, fmt.Errorf("line %d, column %d: %w", li+1, col, err)
				}
				res.warn(session, Warning{Kind: WarnUnknown, Line: li + 1, Column: col, Rune: r, Tile: -1, Err: err})
				cursor.Advance(Advance(glyphs, widths, r, tileW))
				continue
			}

			src, err := Locate(tile, tileW, tileH, sb.Dx(), sb.Dy())
			if err != nil {
				if !errors.Is(err, ErrRowOverflow) {
					return res, fmt.Errorf("line %d, column %d: %w", li+1, col, err)
				}
				res.warn(session, Warning{Kind: WarnOverflow, Line: li + 1, Column: col, Rune: r, Tile: tile, Err: err})
			}

			dst := cursor.Point()
			copyTile(canvas, dst, sheet, src.Add(sb.Min))
			advance := Advance(glyphs, widths, r, tileW)
			res.Glyphs++

			if session != nil {
				session.Emit("render", "Glyph", debug.GlyphData{
					Line:      li + 1,
					Column:    col,
					Rune:      r,
					Tile:      tile,
					SrcX0:     src.Min.X,
					SrcY0:     src.Min.Y,
					SrcX1:     src.Max.X,
					SrcY1:     src.Max.Y,
					DstX:      dst.X,
					DstY:      dst.Y,
					Advance:   advance,
					Placement: debug.ClassifyPlacement(src, tileW, tileH),
				})
			}
			cursor.Advance(advance)
		}
		cursor.NewLine(lineAdvance)
		res.Lines++
	}

	if session != nil {
		session.Emit("render", "End", debug.RenderEndData{
			TotalLines:  res.Lines,
			TotalRunes:  res.Runes,
			TotalGlyphs: res.Glyphs,
			Warnings:    len(res.Warnings),
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		})
	}
	return res, nil
}

// Advance returns how far the cursor moves past r: its width table entry
// when r has a glyph, tileW when it is missing from the glyph table.
func Advance(glyphs *parser.GlyphTable, widths *parser.WidthTable, r rune, tileW int) int {
	if _, ok := glyphs.Lookup(r); !ok {
		return tileW
	}
	return widths.Width(r)
}

func (res *Result) warn(session *debug.Session, w Warning) {
	res.Warnings = append(res.Warnings, w)
	if session != nil {
		session.Emit("render", "Warning", debug.WarningData{
			Kind:    w.Kind,
			Line:    w.Line,
			Column:  w.Column,
			Rune:    w.Rune,
			Tile:    w.Tile,
			Message: w.Err.Error(),
		})
	}
}

// copyTile copies the sr region of src onto dst with its top-left corner at
// dp, replacing destination pixels including alpha. Paletted tiles going
// onto a paletted canvas with the same palette are copied index for index.
func copyTile(dst draw.Image, dp image.Point, src image.Image, sr image.Rectangle) {
	if sr.Empty() {
		return
	}
	r := image.Rectangle{Min: dp, Max: dp.Add(sr.Size())}

	if pd, ok := dst.(*image.Paletted); ok {
		if ps, ok := src.(*image.Paletted); ok && samePalette(pd.Palette, ps.Palette) {
			copyIndices(pd, r, ps, sr.Min)
			return
		}
	}
	draw.Draw(dst, r, src, sr.Min, draw.Src)
}

func copyIndices(dst *image.Paletted, r image.Rectangle, src *image.Paletted, sp image.Point) {
	clipped := r.Intersect(dst.Rect)
	if clipped.Empty() {
		return
	}
	sp = sp.Add(clipped.Min.Sub(r.Min))
	w := clipped.Dx()
	for dy := 0; dy < clipped.Dy(); dy++ {
		d := dst.PixOffset(clipped.Min.X, clipped.Min.Y+dy)
		s := src.PixOffset(sp.X, sp.Y+dy)
		copy(dst.Pix[d:d+w], src.Pix[s:s+w])
	}
}

func samePalette(a, b color.Palette) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		r1, g1, b1, a1 := a[i].RGBA()
		r2, g2, b2, a2 := b[i].RGBA()
		if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
			return false
		}
	}
	return true
}
