package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/colorfield/internal/chroma"
)

func TestWalkCountMismatch(t *testing.T) {
	cfg := fillConfig(2, 2, 1)
	res, err := NewWalk().Generate(context.Background(), testPalette(3, 1), cfg)
	if !errors.Is(err, ErrColorCountMismatch) {
		t.Fatalf("expected ErrColorCountMismatch, got %v", err)
	}
	if res != nil {
		t.Error("expected nil result on config error")
	}
}

func TestWalkFullCoverage(t *testing.T) {
	colors := testPalette(64, 21)
	cfg := fillConfig(8, 8, 21)

	res, err := NewWalk().Generate(context.Background(), colors, cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if res.Grid.FilledCount() != 64 {
		t.Errorf("expected 64 filled cells, got %d", res.Grid.FilledCount())
	}
	if len(res.Placements) != 64 {
		t.Errorf("expected exactly one placement per color, got %d", len(res.Placements))
	}

	seen := make(map[int]bool)
	for _, p := range res.Placements {
		if seen[p.Cell] {
			t.Errorf("cell %d placed twice", p.Cell)
		}
		seen[p.Cell] = true
	}

	assertMultisetEqual(t, colors, res)
}

// TestWalkColorOrder checks that colors are consumed in non-decreasing
// distance from the start color for the whole run: the order is fixed
// after the start and never re-sorted at a jump.
func TestWalkColorOrder(t *testing.T) {
	colors := testPalette(49, 8)
	cfg := fillConfig(7, 7, 8)

	res, err := NewWalk().Generate(context.Background(), colors, cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	start := res.Placements[0].Color
	last := -1.0
	for _, p := range res.Placements[1:] {
		d := p.Color.Distance(start)
		if d < last {
			t.Fatalf("step %d: distance %v after %v, order not ascending", p.Step, d, last)
		}
		last = d
	}
}

// TestWalkJumps checks the jump accounting: a placement either lands on
// a neighbor of the previous cell or was reached by a jump, and jumps
// are bounded by the number of placements.
func TestWalkJumps(t *testing.T) {
	colors := testPalette(100, 4)
	cfg := fillConfig(10, 10, 4)

	res, err := NewWalk().Generate(context.Background(), colors, cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	nonAdjacent := 0
	for i := 1; i < len(res.Placements); i++ {
		prev := res.Placements[i-1].Cell
		cell := res.Placements[i].Cell
		adjacent := false
		for _, n := range res.Grid.Neighbors(prev, cfg.Neighborhood) {
			if n == cell {
				adjacent = true
				break
			}
		}
		if !adjacent {
			nonAdjacent++
		}
	}

	if nonAdjacent != res.Jumps {
		t.Errorf("counted %d non-adjacent placements, engine reported %d jumps", nonAdjacent, res.Jumps)
	}
	if res.Jumps >= len(res.Placements) {
		t.Errorf("jumps (%d) not bounded by placements (%d)", res.Jumps, len(res.Placements))
	}
}

func TestWalkDeterminism(t *testing.T) {
	colors := testPalette(36, 17)
	cfg := fillConfig(6, 6, 123)

	a, err := NewWalk().Generate(context.Background(), colors, cfg)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := NewWalk().Generate(context.Background(), colors, cfg)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	assertSameRun(t, a, b)
}

func TestWalkSingleRow(t *testing.T) {
	// a 1xN grid still terminates: the walk dead-ends at the row ends
	// and recovers by jumping
	colors := testPalette(12, 30)
	cfg := fillConfig(12, 1, 30)

	res, err := NewWalk().Generate(context.Background(), colors, cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if res.Grid.FilledCount() != 12 {
		t.Errorf("expected 12 filled cells, got %d", res.Grid.FilledCount())
	}
}

// TestWalkGoldenGrid pins the exact output of a fixed 2x2 scenario,
// guarding the seeded draw order (start cell, start color, neighbor
// picks) against refactors that would silently reshuffle it.
func TestWalkGoldenGrid(t *testing.T) {
	colors := chroma.List{
		chroma.New(0, 0, 0),
		chroma.New(255, 255, 255),
		chroma.New(255, 0, 0),
		chroma.New(0, 255, 0),
	}
	cfg := fillConfig(2, 2, 1)

	res, err := NewWalk().Generate(context.Background(), colors, cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	want := chroma.List{
		chroma.New(255, 0, 0),     // (0,0)
		chroma.New(0, 255, 0),     // (0,1) start cell
		chroma.New(255, 255, 255), // (1,0)
		chroma.New(0, 0, 0),       // (1,1)
	}
	for i, w := range want {
		got, ok := res.Grid.ColorAt(i)
		if !ok {
			t.Fatalf("cell %d unfilled", i)
		}
		if got != w {
			t.Errorf("cell %d = %v, want %v", i, got, w)
		}
	}
}

func TestWalkStartColorFirst(t *testing.T) {
	colors := testPalette(9, 13)
	cfg := fillConfig(3, 3, 13)
	cfg.StartColor = 5

	res, err := NewWalk().Generate(context.Background(), colors, cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if res.Placements[0].Color != colors[5] {
		t.Errorf("first placement %v, want start color %v", res.Placements[0].Color, colors[5])
	}
}
