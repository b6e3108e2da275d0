package grid

import (
	"testing"

	"github.com/san-kum/colorfield/internal/chroma"
)

func TestNewInvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 4},
		{"zero height", 4, 0},
		{"negative width", -1, 4},
		{"negative height", 4, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.w, tt.h); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestIndexCoordsRoundtrip(t *testing.T) {
	g, err := New(5, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i := 0; i < g.Len(); i++ {
		row, col := g.Coords(i)
		if !g.InBounds(row, col) {
			t.Fatalf("Coords(%d) = (%d,%d) out of bounds", i, row, col)
		}
		if back := g.Index(row, col); back != i {
			t.Errorf("Index(Coords(%d)) = %d", i, back)
		}
	}

	// row-major: index 7 in a 5-wide grid is row 1, col 2
	if row, col := g.Coords(7); row != 1 || col != 2 {
		t.Errorf("Coords(7) = (%d,%d), want (1,2)", row, col)
	}
}

func TestNeighbors(t *testing.T) {
	g, _ := New(3, 3)
	center := g.Index(1, 1)
	corner := g.Index(0, 0)
	edge := g.Index(0, 1)

	tests := []struct {
		name string
		cell int
		nb   Neighborhood
		want int
	}{
		{"center cross", center, Cross, 4},
		{"center all", center, All, 8},
		{"corner cross", corner, Cross, 2},
		{"corner all", corner, All, 3},
		{"edge cross", edge, Cross, 3},
		{"edge all", edge, All, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Neighbors(tt.cell, tt.nb); len(got) != tt.want {
				t.Errorf("got %d neighbors %v, want %d", len(got), got, tt.want)
			}
		})
	}
}

func TestNeighborsDeterministicOrder(t *testing.T) {
	g, _ := New(3, 3)
	want := []int{1, 3, 5, 7} // row-major scan around the center
	got := g.Neighbors(g.Index(1, 1), Cross)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("neighbor order %v, want %v", got, want)
		}
	}
}

func TestEmptyNeighbors(t *testing.T) {
	g, _ := New(3, 3)
	center := g.Index(1, 1)

	g.Set(g.Index(0, 1), chroma.New(1, 2, 3))

	empty := g.EmptyNeighbors(center, Cross)
	if len(empty) != 3 {
		t.Fatalf("expected 3 empty neighbors, got %v", empty)
	}
	for _, n := range empty {
		if g.Filled(n) {
			t.Errorf("empty neighbor %d is filled", n)
		}
	}
}

func TestSetAndFilled(t *testing.T) {
	g, _ := New(2, 2)
	c := chroma.New(10, 20, 30)

	if g.Filled(0) {
		t.Error("new grid cell reported filled")
	}
	g.Set(0, c)

	got, ok := g.ColorAt(0)
	if !ok || got != c {
		t.Errorf("ColorAt(0) = %v,%v, want %v,true", got, ok, c)
	}
	if g.FilledCount() != 1 {
		t.Errorf("FilledCount = %d, want 1", g.FilledCount())
	}
}

func TestClone(t *testing.T) {
	g, _ := New(2, 2)
	g.Set(1, chroma.New(5, 5, 5))

	c := g.Clone()
	c.Set(0, chroma.New(9, 9, 9))
	c.Set(1, chroma.New(1, 1, 1))

	if g.Filled(0) {
		t.Error("clone write leaked into original")
	}
	if col, _ := g.ColorAt(1); col != chroma.New(5, 5, 5) {
		t.Error("clone overwrite leaked into original")
	}
}

func TestParseNeighborhood(t *testing.T) {
	if nb, err := ParseNeighborhood("all"); err != nil || nb != All {
		t.Errorf("ParseNeighborhood(all) = %v, %v", nb, err)
	}
	if nb, err := ParseNeighborhood(""); err != nil || nb != Cross {
		t.Errorf("ParseNeighborhood(empty) = %v, %v", nb, err)
	}
	if _, err := ParseNeighborhood("hex"); err == nil {
		t.Error("expected error for unknown neighborhood")
	}
}
