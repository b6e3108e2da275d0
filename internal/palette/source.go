// Package palette provides the color multisets that feed the
// generation engines: the full 15-bit color enumeration, the pixels of
// a source image, or a reduced palette extracted from one.
package palette

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/san-kum/colorfield/internal/chroma"
)

// HighcolorSize is the cell count of the canonical 15-bit grid: 32768
// colors fill a 256x128 image exactly.
const (
	HighcolorWidth  = 256
	HighcolorHeight = 128
)

// Highcolor enumerates all 32768 15-bit colors, 32 steps per channel
// scaled by 8, in r-major order.
func Highcolor() chroma.List {
	l := make(chroma.List, 0, 32*32*32)
	for r := 0; r < 32; r++ {
		for g := 0; g < 32; g++ {
			for b := 0; b < 32; b++ {
				l = append(l, chroma.New(uint8(r*8), uint8(g*8), uint8(b*8)))
			}
		}
	}
	return l
}

// FromImage reads every pixel in row-major order, alpha discarded,
// duplicates preserved. The result has exactly bounds-width x
// bounds-height entries, so it feeds a fill engine of the same
// dimensions directly.
func FromImage(img image.Image) chroma.List {
	b := img.Bounds()
	l := make(chroma.List, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			l = append(l, chroma.FromColor(img.At(x, y)))
		}
	}
	return l
}

// ReadImage decodes an image file (png, jpeg or gif).
func ReadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
