// Package sample builds deterministic synthetic charsets.
//
// Every tile except tile 0 is a solid block of a colour unique to its index,
// with the bottom-right pixel left as background so that misaligned crops are
// visible. Tile 0 (the space in ASCII order) is all background. Dump turns a
// rendered canvas back into text, one character per pixel.
package sample

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// MaxTiles is the number of distinct tile colours available.
const MaxTiles = 120

// Background is the colour of empty tile space and marker pixels.
var Background = color.RGBA{A: 255}

// Spec describes the geometry of a synthetic charset.
type Spec struct {
	TileWidth  int  `yaml:"tile_width"`
	TileHeight int  `yaml:"tile_height"`
	Columns    int  `yaml:"columns"` // tiles per charset row
	Tiles      int  `yaml:"tiles"`   // total tile count, 96 when zero
	Indexed    bool `yaml:"indexed"`
}

// TileColor returns the solid colour of tile i.
func TileColor(i int) color.RGBA {
	return color.RGBA{R: uint8(14 + 2*i), G: uint8(250 - 2*i), B: uint8(i * 37), A: 255}
}

// Size returns the pixel dimensions of the charset described by s.
func (s Spec) Size() (int, int) {
	tiles := s.tiles()
	rows := (tiles + s.Columns - 1) / s.Columns
	return s.Columns * s.TileWidth, rows * s.TileHeight
}

func (s Spec) tiles() int {
	if s.Tiles == 0 {
		return 96
	}
	return s.Tiles
}

// Charset draws the charset described by s. Indexed charsets are
// *image.Paletted with the background at palette index 0 and tile i at
// index i+1; the others are *image.NRGBA.
func Charset(s Spec) (image.Image, error) {
	if s.TileWidth <= 0 || s.TileHeight <= 0 || s.Columns <= 0 {
		return nil, fmt.Errorf("sample: invalid geometry %dx%d, %d columns", s.TileWidth, s.TileHeight, s.Columns)
	}
	tiles := s.tiles()
	if tiles < 0 || tiles > MaxTiles {
		return nil, fmt.Errorf("sample: tile count %d outside 0..%d", tiles, MaxTiles)
	}

	w, h := s.Size()
	bounds := image.Rect(0, 0, w, h)

	var dst interface {
		image.Image
		Set(x, y int, c color.Color)
	}
	if s.Indexed {
		palette := color.Palette{Background}
		for i := 0; i < tiles; i++ {
			palette = append(palette, TileColor(i))
		}
		dst = image.NewPaletted(bounds, palette)
	} else {
		img := image.NewNRGBA(bounds)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.Set(x, y, Background)
			}
		}
		dst = img
	}

	for i := 1; i < tiles; i++ {
		x0 := (i % s.Columns) * s.TileWidth
		y0 := (i / s.Columns) * s.TileHeight
		c := TileColor(i)
		for y := y0; y < y0+s.TileHeight; y++ {
			for x := x0; x < x0+s.TileWidth; x++ {
				if x == x0+s.TileWidth-1 && y == y0+s.TileHeight-1 {
					continue
				}
				dst.Set(x, y, c)
			}
		}
	}
	return dst, nil
}

// Dump renders img as text. Pixels of tile i print as chars[i], background
// pixels as '.', and anything else as '?'.
func Dump(img image.Image, chars []rune) string {
	lookup := make(map[color.RGBA]rune, len(chars))
	for i, r := range chars {
		if i >= MaxTiles {
			break
		}
		lookup[TileColor(i)] = r
	}

	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			switch r, ok := lookup[c]; {
			case c == Background:
				sb.WriteByte('.')
			case ok:
				sb.WriteRune(r)
			default:
				sb.WriteByte('?')
			}
		}
	}
	return sb.String()
}

// ASCII returns the identity glyph order: printable ASCII from space.
func ASCII() []rune {
	chars := make([]rune, 96)
	for i := range chars {
		chars[i] = rune(32 + i)
	}
	return chars
}
