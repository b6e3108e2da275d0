package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/colorfield/internal/engine"
)

func placements(dists ...float64) []engine.Placement {
	ps := make([]engine.Placement, len(dists)+1)
	ps[0] = engine.Placement{Step: 0}
	for i, d := range dists {
		ps[i+1] = engine.Placement{Step: i + 1, Dist: d}
	}
	return ps
}

func TestMeanStepDistance(t *testing.T) {
	m := NewMeanStepDistance()
	for _, p := range placements(2, 4, 6) {
		m.Observe(p)
	}
	if got := m.Value(); math.Abs(got-4.0) > 1e-12 {
		t.Errorf("mean = %v, want 4", got)
	}
}

func TestMeanStepDistanceSkipsSeed(t *testing.T) {
	m := NewMeanStepDistance()
	// the seed placement has no meaningful distance
	m.Observe(engine.Placement{Step: 0, Dist: 0})
	if m.Value() != 0 {
		t.Errorf("expected 0 with only seed placement, got %v", m.Value())
	}
	m.Observe(engine.Placement{Step: 1, Dist: 10})
	if got := m.Value(); got != 10 {
		t.Errorf("mean = %v, want 10", got)
	}
}

func TestMaxStepDistance(t *testing.T) {
	m := NewMaxStepDistance()
	for _, p := range placements(3, 9, 1) {
		m.Observe(p)
	}
	if m.Value() != 9 {
		t.Errorf("max = %v, want 9", m.Value())
	}
}

func TestStepDistanceStdDev(t *testing.T) {
	m := NewStepDistanceStdDev()
	for _, p := range placements(2, 4, 4, 4, 5, 5, 7, 9) {
		m.Observe(p)
	}
	// sample standard deviation of the series above
	if got := m.Value(); math.Abs(got-2.138089935299395) > 1e-9 {
		t.Errorf("stddev = %v", got)
	}
}

func TestReset(t *testing.T) {
	ms := []Metric{NewMeanStepDistance(), NewMaxStepDistance(), NewStepDistanceStdDev()}
	for _, m := range ms {
		for _, p := range placements(5, 5, 5) {
			m.Observe(p)
		}
		m.Reset()
		if m.Value() != 0 {
			t.Errorf("%s: expected 0 after reset, got %v", m.Name(), m.Value())
		}
	}
}

func TestObserverFansOut(t *testing.T) {
	mean := NewMeanStepDistance()
	max := NewMaxStepDistance()
	obs := Observer(mean, max)

	for _, p := range placements(2, 8) {
		obs.OnPlace(p, nil)
	}

	if mean.Value() != 5 {
		t.Errorf("mean = %v, want 5", mean.Value())
	}
	if max.Value() != 8 {
		t.Errorf("max = %v, want 8", max.Value())
	}
}
