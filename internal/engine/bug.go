package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/colorfield/internal/chroma"
	"github.com/san-kum/colorfield/internal/grid"
)

// Bug simulates a single walker that drops one color per step and may
// cross its own path, overwriting earlier footprints. It stops when the
// colors or the iteration budget run out, whichever happens first, so
// the color count does not have to match the cell count. With Snapshot
// enabled it records a full grid copy after every step, one frame per
// step, for animation.
type Bug struct {
	observers []Observer
}

func NewBug() *Bug { return &Bug{} }

func (e *Bug) Name() string { return "bug" }

func (e *Bug) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Bug) Generate(ctx context.Context, colors chroma.List, cfg Config) (*Result, error) {
	if err := validateDims(cfg); err != nil {
		return nil, err
	}
	if cfg.MaxIters <= 0 {
		return nil, fmt.Errorf("%w: maxiters %d", ErrInvalidIterationBudget, cfg.MaxIters)
	}
	if cfg.Width*cfg.Height < 2 {
		// A 1x1 grid leaves the walker nowhere to step.
		return nil, fmt.Errorf("%w: %dx%d", ErrDegenerateGrid, cfg.Width, cfg.Height)
	}
	if err := validateStart(cfg, cfg.Width*cfg.Height, len(colors)); err != nil {
		return nil, err
	}

	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	cur := cfg.StartCell
	if cur < 0 {
		cur = rng.Intn(g.Len())
	}

	seq := colors.Clone()
	if cfg.SortColors && len(seq) > 0 {
		ci := cfg.StartColor
		if ci < 0 {
			ci = rng.Intn(len(seq))
		}
		seq = chroma.SortByDistance(seq, seq[ci])
	}

	steps := cfg.MaxIters
	if len(seq) < steps {
		steps = len(seq)
	}

	res := &Result{
		Grid:       g,
		Placements: make([]Placement, 0, steps),
	}
	if cfg.Snapshot {
		res.Snapshots = make([]*grid.Grid, 0, steps)
	}

	var prev chroma.Color
	for step := 0; step < steps; step++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		c := seq[step]
		g.Set(cur, c)

		p := Placement{Step: step, Cell: cur, Color: c}
		if step > 0 {
			p.Dist = c.Distance(prev)
		}
		res.Placements = append(res.Placements, p)
		for _, o := range e.observers {
			o.OnPlace(p, g)
		}
		if cfg.Snapshot {
			res.Snapshots = append(res.Snapshots, g.Clone())
		}

		// Any in-bounds neighbor is a legal step, filled or not.
		nbrs := g.Neighbors(cur, cfg.Neighborhood)
		cur = nbrs[rng.Intn(len(nbrs))]
		prev = c
	}

	res.Steps = steps
	return res, nil
}
