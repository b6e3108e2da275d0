package generate

import (
	"fmt"
	"sort"

	"github.com/san-kum/colorfield/internal/engine"
	"github.com/san-kum/colorfield/internal/metrics"
)

// Registry maps engine names to constructors.
type Registry struct {
	engines map[string]func() engine.Engine
}

func NewRegistry() *Registry {
	r := &Registry{engines: make(map[string]func() engine.Engine)}

	r.engines["nearest"] = func() engine.Engine { return engine.NewNearest() }
	r.engines["walk"] = func() engine.Engine { return engine.NewWalk() }
	r.engines["bug"] = func() engine.Engine { return engine.NewBug() }

	return r
}

func (r *Registry) Get(name string) (engine.Engine, error) {
	fn, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine: %s (available: %v)", name, r.List())
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns the standard per-run metric set.
func (r *Registry) DefaultMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewMeanStepDistance(),
		metrics.NewMaxStepDistance(),
		metrics.NewStepDistanceStdDev(),
	}
}
