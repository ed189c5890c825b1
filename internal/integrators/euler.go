package integrators

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vec"
)

// SemiImplicitEuler updates velocity first and then moves the body with the
// new velocity. It is first order and not exactly energy preserving, but its
// energy error stays bounded far longer than explicit Euler's.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Name() string { return "semi-implicit" }

func (e *SemiImplicitEuler) Step(b *dynamo.Body, force vec.Vec2, dt float64) {
	b.Velocity = b.Velocity.Add(force.Div(b.Mass).Scale(dt))
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}

// Euler is the fully explicit variant: the position advances with the
// velocity from the start of the step. Orbits spiral outwards under it.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(b *dynamo.Body, force vec.Vec2, dt float64) {
	v0 := b.Velocity
	b.Velocity = b.Velocity.Add(force.Div(b.Mass).Scale(dt))
	b.Position = b.Position.Add(v0.Scale(dt))
}
