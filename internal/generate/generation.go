package generate

import (
	"context"

	"github.com/san-kum/colorfield/internal/chroma"
	"github.com/san-kum/colorfield/internal/engine"
	"github.com/san-kum/colorfield/internal/metrics"
)

// observable is satisfied by every engine in this repository; the
// Engine interface itself stays minimal.
type observable interface {
	AddObserver(engine.Observer)
}

// Generation wires an engine together with metrics and observers for
// one run.
type Generation struct {
	eng       engine.Engine
	cfg       engine.Config
	metrics   []metrics.Metric
	observers []engine.Observer
	wired     bool
}

func New(eng engine.Engine, cfg engine.Config) *Generation {
	return &Generation{eng: eng, cfg: cfg}
}

func (g *Generation) AddMetric(m metrics.Metric)    { g.metrics = append(g.metrics, m) }
func (g *Generation) AddObserver(o engine.Observer) { g.observers = append(g.observers, o) }

// Run executes the engine and returns its result along with the final
// metric values.
func (g *Generation) Run(ctx context.Context, colors chroma.List) (*engine.Result, map[string]float64, error) {
	for _, m := range g.metrics {
		m.Reset()
	}

	// Wire observers once; a repeated Run must not register them again
	// or every metric counts each placement twice.
	if obs, ok := g.eng.(observable); ok && !g.wired {
		if len(g.metrics) > 0 {
			obs.AddObserver(metrics.Observer(g.metrics...))
		}
		for _, o := range g.observers {
			obs.AddObserver(o)
		}
		g.wired = true
	}

	res, err := g.eng.Generate(ctx, colors, g.cfg)
	if err != nil {
		return res, nil, err
	}

	vals := make(map[string]float64, len(g.metrics))
	for _, m := range g.metrics {
		vals[m.Name()] = m.Value()
	}
	return res, vals, nil
}
