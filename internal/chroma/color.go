package chroma

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple with 8-bit channels. It is a comparable value
// type, so it can key maps directly; duplicate colors in a palette are
// distinct entries and are never merged.
type Color struct {
	R, G, B uint8
}

func New(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Distance returns the Euclidean distance to o in RGB space. This is a
// plain channel-space metric, not a perceptual one.
func (c Color) Distance(o Color) float64 {
	dr := float64(c.R) - float64(o.R)
	dg := float64(c.G) - float64(o.G)
	db := float64(c.B) - float64(o.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// RGBA returns the color as an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FromColor converts any color.Color, discarding alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// FromColorful converts a go-colorful color.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// List is an ordered color multiset.
type List []Color

func (l List) Clone() List {
	c := make(List, len(l))
	copy(c, l)
	return c
}

// Counts returns the multiplicity of each color in the list.
func (l List) Counts() map[Color]int {
	m := make(map[Color]int, len(l))
	for _, c := range l {
		m[c]++
	}
	return m
}
