package metrics

import (
	"github.com/san-kum/colorfield/internal/engine"
	"github.com/san-kum/colorfield/internal/grid"
	"gonum.org/v1/gonum/stat"
)

// Metric accumulates a statistic over the placements of a single run.
type Metric interface {
	Name() string
	Observe(p engine.Placement)
	Value() float64
	Reset()
}

// MeanStepDistance averages the per-step selection distance. Low values
// mean the engine kept finding close color matches.
type MeanStepDistance struct {
	samples []float64
}

func NewMeanStepDistance() *MeanStepDistance {
	return &MeanStepDistance{samples: make([]float64, 0, 1024)}
}

func (m *MeanStepDistance) Name() string { return "mean_step_distance" }

func (m *MeanStepDistance) Observe(p engine.Placement) {
	if p.Step == 0 {
		return
	}
	m.samples = append(m.samples, p.Dist)
}

func (m *MeanStepDistance) Value() float64 {
	if len(m.samples) == 0 {
		return 0
	}
	return stat.Mean(m.samples, nil)
}

func (m *MeanStepDistance) Reset() { m.samples = m.samples[:0] }

// StepDistanceStdDev reports the spread of per-step distances.
type StepDistanceStdDev struct {
	samples []float64
}

func NewStepDistanceStdDev() *StepDistanceStdDev {
	return &StepDistanceStdDev{samples: make([]float64, 0, 1024)}
}

func (m *StepDistanceStdDev) Name() string { return "step_distance_stddev" }

func (m *StepDistanceStdDev) Observe(p engine.Placement) {
	if p.Step == 0 {
		return
	}
	m.samples = append(m.samples, p.Dist)
}

func (m *StepDistanceStdDev) Value() float64 {
	if len(m.samples) < 2 {
		return 0
	}
	return stat.StdDev(m.samples, nil)
}

func (m *StepDistanceStdDev) Reset() { m.samples = m.samples[:0] }

// MaxStepDistance tracks the worst single placement of the run.
type MaxStepDistance struct {
	max float64
}

func NewMaxStepDistance() *MaxStepDistance { return &MaxStepDistance{} }

func (m *MaxStepDistance) Name() string { return "max_step_distance" }

func (m *MaxStepDistance) Observe(p engine.Placement) {
	if p.Dist > m.max {
		m.max = p.Dist
	}
}

func (m *MaxStepDistance) Value() float64 { return m.max }

func (m *MaxStepDistance) Reset() { m.max = 0 }

// observerAdapter feeds engine placements into a set of metrics.
type observerAdapter struct {
	metrics []Metric
}

// Observer wraps metrics as an engine.Observer.
func Observer(ms ...Metric) engine.Observer {
	return &observerAdapter{metrics: ms}
}

func (a *observerAdapter) OnPlace(p engine.Placement, g *grid.Grid) {
	for _, m := range a.metrics {
		m.Observe(p)
	}
}
