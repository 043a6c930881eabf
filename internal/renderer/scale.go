package renderer

import (
	"image"

	"golang.org/x/image/draw"
)

// Scale enlarges img by an integer factor with nearest-neighbour sampling.
// Paletted images are scaled index by index so the palette is kept intact.
// Factors below 2 return img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	r := image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor)

	if p, ok := img.(*image.Paletted); ok {
		dst := image.NewPaletted(r, p.Palette)
		for y := 0; y < r.Dy(); y++ {
			srcRow := p.Pix[p.PixOffset(b.Min.X, b.Min.Y+y/factor):]
			dstRow := dst.Pix[dst.PixOffset(0, y):]
			for x := 0; x < r.Dx(); x++ {
				dstRow[x] = srcRow[x/factor]
			}
		}
		return dst
	}

	dst := newLike(img, r)
	draw.NearestNeighbor.Scale(dst, r, img, b, draw.Src, nil)
	return dst
}
