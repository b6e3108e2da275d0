package engine

import (
	"context"
	"fmt"

	"github.com/san-kum/colorfield/internal/chroma"
	"github.com/san-kum/colorfield/internal/grid"
)

// Config describes one generation run. A single seeded random source
// drives every random decision in the run, so a given (seed, config)
// pair always reproduces the same output.
type Config struct {
	Width  int
	Height int
	Seed   int64

	// StartCell is the flat index of the starting cell, or -1 to pick
	// one uniformly at random.
	StartCell int
	// StartColor is an index into the input color list, or -1 to pick
	// one uniformly at random.
	StartColor int

	Neighborhood grid.Neighborhood

	// MaxIters caps the number of steps the bug engine takes. It must
	// be positive for that engine; fill engines ignore it.
	MaxIters int
	// Snapshot makes the bug engine record a full grid copy after
	// every step.
	Snapshot bool
	// SortColors makes the bug engine pick a start color and walk the
	// list in ascending distance from it, instead of as given.
	SortColors bool
}

func DefaultConfig() Config {
	return Config{
		Width:      256,
		Height:     128,
		StartCell:  -1,
		StartColor: -1,
	}
}

// Placement records one color landing on one cell. Dist is the engine's
// selection distance for the step: the winning neighbor distance for
// the nearest engine, and the color-space distance from the previous
// placement for the walk engines. Dist is 0 for the first placement.
type Placement struct {
	Step  int
	Cell  int
	Color chroma.Color
	Dist  float64
}

// Result is the outcome of a completed run.
type Result struct {
	Grid       *grid.Grid
	Placements []Placement
	Snapshots  []*grid.Grid
	Steps      int
	Jumps      int
}

// Observer is notified after every placement. The grid passed in is the
// live grid; observers must not mutate it.
type Observer interface {
	OnPlace(p Placement, g *grid.Grid)
}

// Engine generates a grid from a color multiset.
type Engine interface {
	Name() string
	Generate(ctx context.Context, colors chroma.List, cfg Config) (*Result, error)
}

func validateDims(cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, cfg.Width, cfg.Height)
	}
	return nil
}

// validateFill enforces the fill-engine contract that the color count
// equals the cell count, before any grid is built or mutated.
func validateFill(colors chroma.List, cfg Config) error {
	if err := validateDims(cfg); err != nil {
		return err
	}
	if n := cfg.Width * cfg.Height; len(colors) != n {
		return fmt.Errorf("%w: %d colors for a %dx%d grid (%d cells)",
			ErrColorCountMismatch, len(colors), cfg.Width, cfg.Height, n)
	}
	return nil
}

func validateStart(cfg Config, cells, colors int) error {
	if cfg.StartCell >= cells {
		return fmt.Errorf("start cell %d out of range for %d cells", cfg.StartCell, cells)
	}
	if cfg.StartColor >= colors {
		return fmt.Errorf("start color %d out of range for %d colors", cfg.StartColor, colors)
	}
	return nil
}
