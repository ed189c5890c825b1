package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
	metrics     map[string]func(g float64) dynamo.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		metrics:     make(map[string]func(float64) dynamo.Metric),
	}

	r.integrators["semi-implicit"] = func() dynamo.Integrator { return integrators.NewSemiImplicitEuler() }
	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }

	r.metrics["energy"] = func(g float64) dynamo.Metric { return metrics.NewEnergy(physics.NewGravity(g)) }
	r.metrics["energy_drift"] = func(g float64) dynamo.Metric { return metrics.NewEnergyDrift(physics.NewGravity(g)) }
	r.metrics["momentum_drift"] = func(float64) dynamo.Metric { return metrics.NewMomentumDrift() }
	r.metrics["barycenter_drift"] = func(float64) dynamo.Metric { return metrics.NewBarycenterDrift() }
	r.metrics["max_extent"] = func(float64) dynamo.Metric { return metrics.NewMaxExtent() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetMetric(name string, g float64) (dynamo.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(g), nil
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func (r *Registry) ListMetrics() []string {
	return sortedKeys(r.metrics)
}

// DefaultMetrics are attached to every batch run. The stability threshold is
// a multiple of the initial system extent, so it scales with the scenario.
func (r *Registry) DefaultMetrics(sys *dynamo.System, g float64) []dynamo.Metric {
	extent := physics.MaxDistance(sys, physics.Barycenter(sys))
	if extent == 0 {
		extent = 1
	}
	return []dynamo.Metric{
		metrics.NewEnergyDrift(physics.NewGravity(g)),
		metrics.NewMomentumDrift(),
		metrics.NewBarycenterDrift(),
		metrics.NewStability(10 * extent),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
