package chroma

import (
	"image/color"
	"math"
	"testing"
)

func TestColorDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Color
		expected float64
	}{
		{"identical", New(10, 20, 30), New(10, 20, 30), 0},
		{"pythagorean", New(0, 0, 0), New(3, 4, 0), 5},
		{"single channel", New(0, 0, 0), New(0, 0, 255), 255},
		{"full range", New(0, 0, 0), New(255, 255, 255), math.Sqrt(3 * 255 * 255)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Distance(tt.b); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Distance() = %v, want %v", got, tt.expected)
			}
			if got := tt.b.Distance(tt.a); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Distance() not symmetric: %v", got)
			}
		})
	}
}

func TestFromColor(t *testing.T) {
	c := FromColor(color.RGBA{R: 12, G: 34, B: 56, A: 255})
	if c != New(12, 34, 56) {
		t.Errorf("FromColor() = %v, want #0c2238", c)
	}
}

func TestColorString(t *testing.T) {
	if s := New(255, 0, 128).String(); s != "#ff0080" {
		t.Errorf("String() = %q, want #ff0080", s)
	}
}

func TestListCounts(t *testing.T) {
	l := List{New(1, 1, 1), New(2, 2, 2), New(1, 1, 1)}

	counts := l.Counts()
	if counts[New(1, 1, 1)] != 2 {
		t.Errorf("expected duplicate preserved, got count %d", counts[New(1, 1, 1)])
	}
	if counts[New(2, 2, 2)] != 1 {
		t.Errorf("expected count 1, got %d", counts[New(2, 2, 2)])
	}
}

func TestListClone(t *testing.T) {
	l := List{New(1, 1, 1), New(2, 2, 2)}
	c := l.Clone()
	c[0] = New(9, 9, 9)
	if l[0] != New(1, 1, 1) {
		t.Error("Clone did not create independent copy")
	}
}
