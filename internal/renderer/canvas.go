package renderer

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Strategy names how a canvas was allocated.
type Strategy string

const (
	// StrategyDirect is a direct-colour canvas of the charset's colour model
	StrategyDirect Strategy = "direct"
	// StrategyPalette is a paletted canvas sharing the charset's palette
	StrategyPalette Strategy = "palette"
	// StrategyFallback is an RGBA canvas used when a paletted charset has
	// no pixel of the background colour
	StrategyFallback Strategy = "fallback"
)

// Canvas is the output image together with how it was allocated.
type Canvas struct {
	Image    draw.Image
	Strategy Strategy
	// PaletteIndex is the fill index for StrategyPalette, -1 otherwise
	PaletteIndex int
}

// NewCanvas allocates a w×h canvas filled with bg, keeping the colour mode
// of sheet.
//
// Direct-colour sheets get a canvas of the same colour model (RGBA, NRGBA,
// 16-bit, gray, CMYK; anything else becomes RGBA). Paletted sheets are
// scanned in row-major order for the first pixel whose RGB equals bg; its
// palette index fills a paletted canvas that carries a copy of the sheet's
// palette. Without such a pixel the canvas falls back to RGBA and the palette
// is lost.
func NewCanvas(w, h int, bg color.RGBA, sheet image.Image) (*Canvas, error) {
	if sheet == nil {
		return nil, ErrNilCharset
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrBadGeometry, w, h)
	}
	bounds := image.Rect(0, 0, w, h)
	bg.A = 255

	if p, ok := sheet.(*image.Paletted); ok {
		if idx, found := FindPaletteIndex(p, bg); found {
			palette := make(color.Palette, len(p.Palette))
			copy(palette, p.Palette)
			canvas := image.NewPaletted(bounds, palette)
			if idx != 0 {
				fillIndex := uint8(idx)
				for i := range canvas.Pix {
					canvas.Pix[i] = fillIndex
				}
			}
			return &Canvas{Image: canvas, Strategy: StrategyPalette, PaletteIndex: idx}, nil
		}
		canvas := image.NewRGBA(bounds)
		fill(canvas, bg)
		return &Canvas{Image: canvas, Strategy: StrategyFallback, PaletteIndex: -1}, nil
	}

	canvas := newLike(sheet, bounds)
	fill(canvas, bg)
	return &Canvas{Image: canvas, Strategy: StrategyDirect, PaletteIndex: -1}, nil
}

// newLike allocates an image with the colour model of src.
func newLike(src image.Image, r image.Rectangle) draw.Image {
	switch src.(type) {
	case *image.NRGBA:
		return image.NewNRGBA(r)
	case *image.RGBA64:
		return image.NewRGBA64(r)
	case *image.NRGBA64:
		return image.NewNRGBA64(r)
	case *image.Gray:
		return image.NewGray(r)
	case *image.Gray16:
		return image.NewGray16(r)
	case *image.CMYK:
		return image.NewCMYK(r)
	default:
		return image.NewRGBA(r)
	}
}

func fill(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FindPaletteIndex returns the palette index of the first pixel of p, in
// row-major order, whose RGB equals c. Alpha is ignored.
func FindPaletteIndex(p *image.Paletted, c color.RGBA) (int, bool) {
	matches := make([]bool, len(p.Palette))
	candidates := 0
	for i, pc := range p.Palette {
		if SameRGB(pc, c) {
			matches[i] = true
			candidates++
		}
	}
	if candidates == 0 {
		return 0, false
	}

	b := p.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := p.Pix[p.PixOffset(b.Min.X, y):p.PixOffset(b.Max.X, y)]
		for _, idx := range row {
			if int(idx) < len(matches) && matches[idx] {
				return int(idx), true
			}
		}
	}
	return 0, false
}

// SameRGB reports whether c has the red, green and blue components of want.
func SameRGB(c color.Color, want color.RGBA) bool {
	got := RGB(c)
	return got.R == want.R && got.G == want.G && got.B == want.B
}

// RGB converts c to an opaque 8-bit colour, dropping alpha without
// premultiplication.
func RGB(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 255}
}

// DominantColor returns the most frequent RGB colour of img. Ties go to the
// colour seen first in row-major order.
func DominantColor(img image.Image) color.RGBA {
	type tally struct {
		count int
		first int
	}
	counts := make(map[color.RGBA]*tally)

	b := img.Bounds()
	seen := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := RGB(img.At(x, y))
			t, ok := counts[c]
			if !ok {
				t = &tally{first: seen}
				counts[c] = t
				seen++
			}
			t.count++
		}
	}

	best := color.RGBA{A: 255}
	var bestTally *tally
	for c, t := range counts {
		if bestTally == nil || t.count > bestTally.count ||
			(t.count == bestTally.count && t.first < bestTally.first) {
			best, bestTally = c, t
		}
	}
	return best
}
