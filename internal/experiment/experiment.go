package experiment

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/sim"
)

// Experiment binds a scenario to a simulator built from it.
type Experiment struct {
	scenario  *config.Scenario
	registry  *Registry
	logger    *log.Logger
	simulator *sim.Simulator

	// predictions during Run; the scenario's predict only seeds interactive hosts
	runPredict bool
}

func New(sc *config.Scenario, reg *Registry, logger *log.Logger) *Experiment {
	return &Experiment{
		scenario: sc,
		registry: reg,
		logger:   logger,
	}
}

// Setup builds the system, resolves the integrator and update mode, and
// attaches the default metrics plus any extra ones.
func (e *Experiment) Setup(extra ...dynamo.Metric) error {
	sys, err := e.scenario.Build()
	if err != nil {
		return err
	}
	integ, err := e.registry.GetIntegrator(e.scenario.Integrator)
	if err != nil {
		return err
	}
	mode, err := e.scenario.Mode()
	if err != nil {
		return err
	}

	opts := []sim.Option{
		sim.WithIntegrator(integ),
		sim.WithUpdateMode(mode),
		sim.WithPrediction(e.scenario.Predict),
	}
	if e.logger != nil {
		opts = append(opts, sim.WithLogger(e.logger.With("scenario", e.scenario.Name)))
	}

	e.simulator = sim.New(sys, e.scenario.Constants(), opts...)
	for _, m := range e.registry.DefaultMetrics(sys, e.scenario.G) {
		e.simulator.AddMetric(m)
	}
	for _, m := range extra {
		e.simulator.AddMetric(m)
	}
	return nil
}

// SetRunPrediction turns orbit prediction on for headless runs. It is off
// unless requested.
func (e *Experiment) SetRunPrediction(on bool) { e.runPredict = on }

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	cfg := e.scenario.RunConfig()
	cfg.Predict = e.runPredict
	return e.simulator.Run(ctx, cfg)
}

func (e *Experiment) Scenario() *config.Scenario {
	return e.scenario
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
