package grid

import (
	"fmt"

	"github.com/san-kum/colorfield/internal/chroma"
)

// Neighborhood selects which cells count as adjacent.
type Neighborhood int

const (
	// Cross is 4-adjacency: up, down, left, right.
	Cross Neighborhood = iota
	// All is 8-adjacency: Cross plus the diagonals.
	All
)

func (n Neighborhood) String() string {
	switch n {
	case All:
		return "all"
	default:
		return "cross"
	}
}

func ParseNeighborhood(s string) (Neighborhood, error) {
	switch s {
	case "cross", "":
		return Cross, nil
	case "all":
		return All, nil
	default:
		return Cross, fmt.Errorf("unknown neighborhood: %s (valid: cross, all)", s)
	}
}

// Grid is a fixed-size 2-D field of cells, each either empty or holding
// one color. Cells are stored row-major; a cell is addressed by its flat
// index row*W+col.
type Grid struct {
	w, h   int
	cells  []chroma.Color
	filled []bool
}

func New(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("grid: dimensions must be positive, got %dx%d", w, h)
	}
	return &Grid{
		w:      w,
		h:      h,
		cells:  make([]chroma.Color, w*h),
		filled: make([]bool, w*h),
	}, nil
}

func (g *Grid) W() int   { return g.w }
func (g *Grid) H() int   { return g.h }
func (g *Grid) Len() int { return g.w * g.h }

// Index converts (row, col) to a flat cell index.
func (g *Grid) Index(row, col int) int { return row*g.w + col }

// Coords converts a flat cell index back to (row, col).
func (g *Grid) Coords(i int) (row, col int) { return i / g.w, i % g.w }

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.h && col >= 0 && col < g.w
}

// Set writes a color into cell i, overwriting any previous value.
func (g *Grid) Set(i int, c chroma.Color) {
	g.cells[i] = c
	g.filled[i] = true
}

// ColorAt returns the color of cell i and whether the cell is filled.
// An empty cell reports the zero color (black).
func (g *Grid) ColorAt(i int) (chroma.Color, bool) {
	return g.cells[i], g.filled[i]
}

func (g *Grid) Filled(i int) bool { return g.filled[i] }

func (g *Grid) FilledCount() int {
	n := 0
	for _, f := range g.filled {
		if f {
			n++
		}
	}
	return n
}

// neighborOffsets are scanned in row-major order so neighbor iteration
// is deterministic.
var crossOffsets = [4][2]int{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}
var allOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors returns the in-bounds neighbor indices of cell i under the
// given neighborhood, in row-major order.
func (g *Grid) Neighbors(i int, nb Neighborhood) []int {
	row, col := g.Coords(i)
	offsets := crossOffsets[:]
	if nb == All {
		offsets = allOffsets[:]
	}
	out := make([]int, 0, len(offsets))
	for _, off := range offsets {
		r, c := row+off[0], col+off[1]
		if g.InBounds(r, c) {
			out = append(out, g.Index(r, c))
		}
	}
	return out
}

// EmptyNeighbors returns the unfilled in-bounds neighbors of cell i.
func (g *Grid) EmptyNeighbors(i int, nb Neighborhood) []int {
	nbrs := g.Neighbors(i, nb)
	out := nbrs[:0]
	for _, n := range nbrs {
		if !g.filled[n] {
			out = append(out, n)
		}
	}
	return out
}

// Clone returns a deep copy of the grid, used for animation snapshots.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		w:      g.w,
		h:      g.h,
		cells:  make([]chroma.Color, len(g.cells)),
		filled: make([]bool, len(g.filled)),
	}
	copy(c.cells, g.cells)
	copy(c.filled, g.filled)
	return c
}
