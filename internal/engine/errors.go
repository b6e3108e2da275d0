package engine

import "errors"

// Domain errors for generation runs. All are reported synchronously
// before or during a run; none are retried.
var (
	// ErrColorCountMismatch indicates a fill engine was given a color
	// list whose length differs from the grid's cell count.
	ErrColorCountMismatch = errors.New("engine: color count does not match cell count")

	// ErrInvalidDimensions indicates a non-positive grid width or height.
	ErrInvalidDimensions = errors.New("engine: grid dimensions must be positive")

	// ErrInvalidIterationBudget indicates a non-positive maxiters for
	// the bug engine.
	ErrInvalidIterationBudget = errors.New("engine: iteration budget must be positive")

	// ErrDegenerateGrid indicates a grid on which a walker has no cell
	// to step to (a 1x1 grid).
	ErrDegenerateGrid = errors.New("engine: grid too small to walk")
)
