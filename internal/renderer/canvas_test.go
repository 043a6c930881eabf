package renderer

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func TestNewCanvasDirectKeepsColorModel(t *testing.T) {
	tests := []struct {
		name  string
		sheet image.Image
		check func(image.Image) bool
	}{
		{"rgba", image.NewRGBA(image.Rect(0, 0, 4, 4)), func(i image.Image) bool { _, ok := i.(*image.RGBA); return ok }},
		{"nrgba", image.NewNRGBA(image.Rect(0, 0, 4, 4)), func(i image.Image) bool { _, ok := i.(*image.NRGBA); return ok }},
		{"nrgba64", image.NewNRGBA64(image.Rect(0, 0, 4, 4)), func(i image.Image) bool { _, ok := i.(*image.NRGBA64); return ok }},
		{"gray", image.NewGray(image.Rect(0, 0, 4, 4)), func(i image.Image) bool { _, ok := i.(*image.Gray); return ok }},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420), func(i image.Image) bool { _, ok := i.(*image.RGBA); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCanvas(10, 6, white, tt.sheet)
			if err != nil {
				t.Fatalf("NewCanvas failed: %v", err)
			}
			if c.Strategy != StrategyDirect {
				t.Errorf("Strategy = %v, want %v", c.Strategy, StrategyDirect)
			}
			if !tt.check(c.Image) {
				t.Errorf("canvas type %T does not match sheet type %T", c.Image, tt.sheet)
			}
			if b := c.Image.Bounds(); b != image.Rect(0, 0, 10, 6) {
				t.Errorf("Bounds() = %v, want 10x6", b)
			}
			for y := 0; y < 6; y++ {
				for x := 0; x < 10; x++ {
					if got := RGB(c.Image.At(x, y)); got != white {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, white)
					}
				}
			}
		})
	}
}

func TestNewCanvasPalettePreservation(t *testing.T) {
	palette := color.Palette{black, white, red, blue}
	sheet := image.NewPaletted(image.Rect(0, 0, 4, 2), palette)
	sheet.SetColorIndex(3, 1, 2) // one red pixel

	c, err := NewCanvas(8, 8, red, sheet)
	if err != nil {
		t.Fatalf("NewCanvas failed: %v", err)
	}
	if c.Strategy != StrategyPalette {
		t.Fatalf("Strategy = %v, want %v", c.Strategy, StrategyPalette)
	}
	if c.PaletteIndex != 2 {
		t.Errorf("PaletteIndex = %d, want 2", c.PaletteIndex)
	}
	p, ok := c.Image.(*image.Paletted)
	if !ok {
		t.Fatalf("canvas is %T, want *image.Paletted", c.Image)
	}
	if len(p.Palette) != len(palette) {
		t.Fatalf("palette length = %d, want %d", len(p.Palette), len(palette))
	}
	for i := range palette {
		if p.Palette[i] != palette[i] {
			t.Errorf("palette[%d] = %v, want %v", i, p.Palette[i], palette[i])
		}
	}
	for i, idx := range p.Pix {
		if idx != 2 {
			t.Fatalf("pixel %d index = %d, want 2", i, idx)
		}
	}

	// The canvas palette is a copy.
	p.Palette[0] = white
	if sheet.Palette[0] != black {
		t.Error("modifying the canvas palette changed the charset palette")
	}
}

func TestNewCanvasPaletteFirstMatchInScanOrder(t *testing.T) {
	// Indices 1 and 3 share the same RGB; index 3 appears first in the image.
	palette := color.Palette{black, red, white, color.NRGBA{R: 255, A: 128}}
	sheet := image.NewPaletted(image.Rect(0, 0, 3, 2), palette)
	sheet.SetColorIndex(2, 0, 3)
	sheet.SetColorIndex(0, 1, 1)

	idx, ok := FindPaletteIndex(sheet, red)
	if !ok || idx != 3 {
		t.Errorf("FindPaletteIndex = %d, %v, want 3, true", idx, ok)
	}
}

func TestNewCanvasPaletteUnusedEntryFallsBack(t *testing.T) {
	// Blue is in the palette but no pixel uses it.
	palette := color.Palette{black, white, blue}
	sheet := image.NewPaletted(image.Rect(0, 0, 2, 2), palette)

	c, err := NewCanvas(4, 4, blue, sheet)
	if err != nil {
		t.Fatalf("NewCanvas failed: %v", err)
	}
	if c.Strategy != StrategyFallback {
		t.Fatalf("Strategy = %v, want %v", c.Strategy, StrategyFallback)
	}
	if c.PaletteIndex != -1 {
		t.Errorf("PaletteIndex = %d, want -1", c.PaletteIndex)
	}
	if _, ok := c.Image.(*image.RGBA); !ok {
		t.Errorf("fallback canvas is %T, want *image.RGBA", c.Image)
	}
	if got := RGB(c.Image.At(3, 3)); got != blue {
		t.Errorf("fallback fill = %v, want %v", got, blue)
	}
}

func TestNewCanvasErrors(t *testing.T) {
	if _, err := NewCanvas(4, 4, black, nil); !errors.Is(err, ErrNilCharset) {
		t.Errorf("nil sheet error = %v, want ErrNilCharset", err)
	}
	sheet := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if _, err := NewCanvas(0, 4, black, sheet); !errors.Is(err, ErrBadGeometry) {
		t.Errorf("zero width error = %v, want ErrBadGeometry", err)
	}
}

func TestDominantColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, red)
	img.Set(1, 0, blue)
	img.Set(2, 0, blue)
	img.Set(0, 1, red)
	img.Set(1, 1, blue)
	img.Set(2, 1, white)

	if got := DominantColor(img); got != blue {
		t.Errorf("DominantColor = %v, want %v", got, blue)
	}
}

func TestDominantColorTieFirstSeen(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.Set(0, 0, white)
	img.Set(1, 0, red)
	img.Set(2, 0, red)
	img.Set(3, 0, white)

	if got := DominantColor(img); got != white {
		t.Errorf("DominantColor = %v, want first seen %v", got, white)
	}
}

func TestDominantColorIgnoresAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 10})
	img.Set(1, 0, color.NRGBA{R: 255, A: 200})
	img.Set(2, 0, color.NRGBA{B: 255, A: 255})

	if got := DominantColor(img); got != red {
		t.Errorf("DominantColor = %v, want %v", got, red)
	}
}
