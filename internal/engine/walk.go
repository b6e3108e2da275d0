package engine

import (
	"context"
	"math/rand"

	"github.com/san-kum/colorfield/internal/chroma"
	"github.com/san-kum/colorfield/internal/grid"
)

// Walk fills the whole grid with chained random walks. The color order
// is fixed up front: the start color first, then every other color in
// ascending distance from it. The walk moves to a uniformly random
// empty neighbor and drops the next color there. At a dead end it jumps
// to a uniformly random empty cell and keeps consuming the same fixed
// sequence; the order is never re-sorted mid-run.
type Walk struct {
	observers []Observer
}

func NewWalk() *Walk { return &Walk{} }

func (e *Walk) Name() string { return "walk" }

func (e *Walk) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Walk) Generate(ctx context.Context, colors chroma.List, cfg Config) (*Result, error) {
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

	start := cfg.StartCell
	if start < 0 {
		start = rng.Intn(g.Len())
	}
	ci := cfg.StartColor
	if ci < 0 {
		ci = rng.Intn(len(colors))
	}

	// Sorting the full list by distance to the start color puts the
	// start color itself (distance 0) first.
	seq := chroma.SortByDistance(colors, colors[ci])

	res := &Result{
		Grid:       g,
		Placements: make([]Placement, 0, g.Len()),
	}

	cur := start
	prev := seq[0]
	g.Set(cur, seq[0])
	e.record(res, Placement{Step: 0, Cell: cur, Color: seq[0]}, g)
	seq = seq[1:]

	for step := 1; len(seq) > 0; step++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		empties := g.EmptyNeighbors(cur, cfg.Neighborhood)
		var next int
		if len(empties) > 0 {
			next = empties[rng.Intn(len(empties))]
		} else {
			// Dead end. Jump anywhere empty; the grid is finite and
			// colors == cells, so one exists while colors remain.
			next = randomEmpty(g, rng)
			res.Jumps++
		}

		c := seq[0]
		seq = seq[1:]
		g.Set(next, c)
		e.record(res, Placement{Step: step, Cell: next, Color: c, Dist: c.Distance(prev)}, g)
		prev = c
		cur = next
	}

	res.Steps = len(res.Placements)
	return res, nil
}

func (e *Walk) record(res *Result, p Placement, g *grid.Grid) {
	res.Placements = append(res.Placements, p)
	for _, o := range e.observers {
		o.OnPlace(p, g)
	}
}

func randomEmpty(g *grid.Grid, rng *rand.Rand) int {
	empty := make([]int, 0, g.Len())
	for i := 0; i < g.Len(); i++ {
		if !g.Filled(i) {
			empty = append(empty, i)
		}
	}
	return empty[rng.Intn(len(empty))]
}
