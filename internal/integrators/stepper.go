package integrators

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vec"
)

// Stepper advances a whole system by one step. The live simulation and every
// prediction rollout share this code path so predicted and actual motion
// follow the same numerical scheme.
type Stepper struct {
	Field      dynamo.ForceField
	Integrator dynamo.Integrator
	Mode       dynamo.UpdateMode
	forces     []vec.Vec2
}

func NewStepper(field dynamo.ForceField, integ dynamo.Integrator, mode dynamo.UpdateMode) *Stepper {
	return &Stepper{Field: field, Integrator: integ, Mode: mode}
}

func (st *Stepper) ensureScratch(n int) {
	if cap(st.forces) < n {
		st.forces = make([]vec.Vec2, n)
	}
	st.forces = st.forces[:n]
}

func (st *Stepper) Advance(s *dynamo.System, dt float64) {
	if st.Mode == dynamo.Simultaneous {
		st.ensureScratch(len(s.Bodies))
		for i, b := range s.Bodies {
			st.forces[i] = st.Field.TotalForce(b, s)
		}
		for i, b := range s.Bodies {
			st.Integrator.Step(b, st.forces[i], dt)
		}
		return
	}

	for _, b := range s.Bodies {
		st.Integrator.Step(b, st.Field.TotalForce(b, s), dt)
	}
}
