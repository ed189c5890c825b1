// Package predict produces orbit paths by rolling a private copy of a system
// forward in time. Live bodies are never moved by a prediction; only their
// OrbitPath is replaced.
package predict

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/vec"
)

type Predictor struct {
	Steps    int
	TimeStep float64
	stepper  *integrators.Stepper
}

// New builds a predictor that rolls systems forward with the same force field,
// integrator and update mode as the live simulation.
func New(field dynamo.ForceField, integ dynamo.Integrator, mode dynamo.UpdateMode, steps int, timeStep float64) *Predictor {
	return &Predictor{
		Steps:    steps,
		TimeStep: timeStep,
		stepper:  integrators.NewStepper(field, integ, mode),
	}
}

// PredictOrbit returns the next Steps positions of target. The whole system
// is cloned and advanced so the target's neighbours keep moving too. The
// target is located in the clone by ID; ErrBodyNotFound is returned when the
// ID is not part of s.
func (p *Predictor) PredictOrbit(target *dynamo.Body, s *dynamo.System) ([]vec.Vec2, error) {
	work := s.Clone()
	ghost, ok := work.Find(target.ID)
	if !ok {
		return nil, fmt.Errorf("predict body %d: %w", target.ID, dynamo.ErrBodyNotFound)
	}

	path := make([]vec.Vec2, 0, p.Steps)
	for i := 0; i < p.Steps; i++ {
		p.stepper.Advance(work, p.TimeStep)
		path = append(path, ghost.Position)
	}
	return path, nil
}

// PredictAll refreshes OrbitPath on every body of s. Each body gets its own
// rollout from the untouched live state.
func (p *Predictor) PredictAll(s *dynamo.System) error {
	paths := make([][]vec.Vec2, len(s.Bodies))
	for i, b := range s.Bodies {
		path, err := p.PredictOrbit(b, s)
		if err != nil {
			return err
		}
		paths[i] = path
	}
	for i, b := range s.Bodies {
		b.OrbitPath = paths[i]
	}
	return nil
}
