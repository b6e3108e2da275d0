// Package render turns finished grids into images. The engines never
// touch files; everything that writes pixels lives here.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/san-kum/colorfield/internal/chroma"
	"github.com/san-kum/colorfield/internal/grid"
)

// Image converts a grid to an RGBA image. Unfilled cells come out
// opaque black.
func Image(g *grid.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W(), g.H()))
	for i := 0; i < g.Len(); i++ {
		row, col := g.Coords(i)
		c, _ := g.ColorAt(i)
		img.SetRGBA(col, row, c.RGBA())
	}
	return img
}

// Scale resizes with nearest-neighbor sampling. Upscaling this way
// preserves the exact color multiset of the source; a smoothing filter
// would blend colors and hide the placement structure.
func Scale(src image.Image, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: scale target must be positive, got %dx%d", w, h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// SavePNG writes img to path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SavePalette writes a horizontal strip of tiles, one per color.
func SavePalette(colors chroma.List, tile int, path string) error {
	if len(colors) == 0 {
		return fmt.Errorf("render: empty palette")
	}
	if tile <= 0 {
		tile = 64
	}

	img := image.NewRGBA(image.Rect(0, 0, tile*len(colors), tile))
	for i, c := range colors {
		rgba := c.RGBA()
		for y := 0; y < tile; y++ {
			for x := i * tile; x < (i+1)*tile; x++ {
				img.SetRGBA(x, y, rgba)
			}
		}
	}
	return SavePNG(img, path)
}
