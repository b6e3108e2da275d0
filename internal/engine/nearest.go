package engine

import (
	"context"
	"math"
	"math/rand"

	"github.com/san-kum/colorfield/internal/chroma"
	"github.com/san-kum/colorfield/internal/grid"
)

// Nearest grows a single connected region from a random seed cell. At
// every step it scans all (frontier cell, remaining color) pairs and
// places the pair with the smallest neighbor distance: the minimum
// color distance from the candidate color to the already-filled
// neighbors of the candidate cell.
//
// The scan is O(|frontier| * |remaining|) per step. That is the point:
// this is the reference algorithm, and large palettes (32768 colors)
// take minutes. Any internal speedup must leave the selection order
// untouched or seeded runs stop reproducing.
type Nearest struct {
	observers []Observer
}

func NewNearest() *Nearest { return &Nearest{} }

func (e *Nearest) Name() string { return "nearest" }

func (e *Nearest) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Nearest) Generate(ctx context.Context, colors chroma.List, cfg Config) (*Result, error) {
	if err := validateFill(colors, cfg); err != nil {
		return nil, err
	}
	if err := validateStart(cfg, cfg.Width*cfg.Height, len(colors)); err != nil {
		return nil, err
	}

	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	remaining := colors.Clone()

	start := cfg.StartCell
	if start < 0 {
		start = rng.Intn(g.Len())
	}
	ci := cfg.StartColor
	if ci < 0 {
		ci = rng.Intn(len(remaining))
	}
	seed := remaining[ci]
	remaining = append(remaining[:ci], remaining[ci+1:]...)

	res := &Result{
		Grid:       g,
		Placements: make([]Placement, 0, g.Len()),
	}

	g.Set(start, seed)
	e.record(res, Placement{Step: 0, Cell: start, Color: seed}, g)

	// The frontier keeps insertion order so tie-breaks ("first
	// encountered wins") are deterministic for a fixed seed.
	frontier := make([]int, 0, 8)
	inFrontier := make([]bool, g.Len())
	grow := func(cell int) {
		for _, n := range g.EmptyNeighbors(cell, cfg.Neighborhood) {
			if !inFrontier[n] {
				inFrontier[n] = true
				frontier = append(frontier, n)
			}
		}
	}
	grow(start)

	nbrColors := make([]chroma.Color, 0, 8)

	for step := 1; len(remaining) > 0; step++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		bestDist := math.Inf(1)
		bestFrontier, bestColor := -1, -1

		for fi, cell := range frontier {
			nbrColors = nbrColors[:0]
			for _, n := range g.Neighbors(cell, cfg.Neighborhood) {
				if c, ok := g.ColorAt(n); ok {
					nbrColors = append(nbrColors, c)
				}
			}

			for ri, c := range remaining {
				d := math.Inf(1)
				for _, nc := range nbrColors {
					if nd := c.Distance(nc); nd < d {
						d = nd
					}
				}
				// strict < keeps the first-encountered pair on ties
				if d < bestDist {
					bestDist = d
					bestFrontier = fi
					bestColor = ri
				}
			}
		}

		cell := frontier[bestFrontier]
		color := remaining[bestColor]

		frontier = append(frontier[:bestFrontier], frontier[bestFrontier+1:]...)
		inFrontier[cell] = false
		remaining = append(remaining[:bestColor], remaining[bestColor+1:]...)

		g.Set(cell, color)
		grow(cell)
		e.record(res, Placement{Step: step, Cell: cell, Color: color, Dist: bestDist}, g)
	}

	res.Steps = len(res.Placements)
	return res, nil
}

func (e *Nearest) record(res *Result, p Placement, g *grid.Grid) {
	res.Placements = append(res.Placements, p)
	for _, o := range e.observers {
		o.OnPlace(p, g)
	}
}
