package dynamo

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/vec"
)

// ForceField computes the total force acting on self from every other body
// in s.
type ForceField interface {
	TotalForce(self *Body, s *System) vec.Vec2
}

// Integrator advances a single body by dt under a constant force.
type Integrator interface {
	Name() string
	Step(b *Body, force vec.Vec2, dt float64)
}

// Hamiltonian is implemented by force fields that can report the total
// energy of a system.
type Hamiltonian interface {
	Energy(s *System) float64
}

type Metric interface {
	Name() string
	Observe(s *System, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s *System, t float64)
}

// UpdateMode selects how bodies read each other's state within one step.
type UpdateMode int

const (
	// Sequential integrates one body fully before computing the next body's
	// force, so later bodies see earlier bodies' new positions.
	Sequential UpdateMode = iota
	// Simultaneous computes every force from the pre-step snapshot before any
	// body moves.
	Simultaneous
)

func (m UpdateMode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Simultaneous:
		return "simultaneous"
	default:
		return fmt.Sprintf("UpdateMode(%d)", int(m))
	}
}

func ParseUpdateMode(s string) (UpdateMode, error) {
	switch s {
	case "", "sequential":
		return Sequential, nil
	case "simultaneous":
		return Simultaneous, nil
	default:
		return Sequential, fmt.Errorf("unknown update mode %q: %w", s, ErrParameterBounds)
	}
}

// Constants are tuning values, not physical constants. G, masses and step
// sizes must be chosen together to keep a scenario numerically stable.
type Constants struct {
	G               float64
	PredictionSteps int
	TimeStep        float64
}

func DefaultConstants() Constants {
	return Constants{
		G:               0.001,
		PredictionSteps: 1000,
		TimeStep:        0.01,
	}
}

func (c Constants) Validate() error {
	if !(c.G > 0) {
		return fmt.Errorf("g must be positive, got %g: %w", c.G, ErrParameterBounds)
	}
	if c.PredictionSteps < 0 {
		return fmt.Errorf("prediction steps must be non-negative, got %d: %w", c.PredictionSteps, ErrParameterBounds)
	}
	if !(c.TimeStep > 0) {
		return fmt.Errorf("time step must be positive, got %g: %w", c.TimeStep, ErrParameterBounds)
	}
	return nil
}

// Config drives a headless run.
type Config struct {
	Dt       float64
	Duration float64
	Predict  bool
	// RecordEvery keeps one sample every N steps; 0 or 1 keeps all.
	RecordEvery int
}

func DefaultConfig() Config {
	return Config{
		Dt:          0.01,
		Duration:    10.0,
		RecordEvery: 1,
	}
}

// BodyState is one body's kinematic state at a sample time.
type BodyState struct {
	Position vec.Vec2
	Velocity vec.Vec2
}

type Result struct {
	Names       []string
	Masses      []float64
	Times       []float64
	States      [][]BodyState
	Barycenters []vec.Vec2
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

// Track returns the recorded positions of body index i.
func (r *Result) Track(i int) []vec.Vec2 {
	out := make([]vec.Vec2, 0, len(r.States))
	for _, s := range r.States {
		if i < len(s) {
			out = append(out, s[i].Position)
		}
	}
	return out
}
