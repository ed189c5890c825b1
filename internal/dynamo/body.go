package dynamo

import (
	"fmt"
	"image/color"

	"github.com/san-kum/orbitsim/internal/vec"
)

// BodyID is a stable identifier assigned when a body joins a System.
// Zero means "not yet added".
type BodyID uint64

// Body is a point mass. Position and Velocity change every integration step;
// Mass and Radius are fixed after construction.
type Body struct {
	ID       BodyID
	Name     string
	Position vec.Vec2
	Velocity vec.Vec2
	Mass     float64
	Radius   float64
	Color    color.RGBA

	// OrbitPath is the most recent predicted trajectory. It is replaced
	// wholesale by the predictor and is nil until the first prediction.
	OrbitPath []vec.Vec2
}

func NewBody(name string, pos, vel vec.Vec2, mass, radius float64, c color.RGBA) *Body {
	return &Body{
		Name:     name,
		Position: pos,
		Velocity: vel,
		Mass:     mass,
		Radius:   radius,
		Color:    c,
	}
}

// Clone returns an independent copy carrying the same ID. The orbit path is
// not copied.
func (b *Body) Clone() *Body {
	c := *b
	c.OrbitPath = nil
	return &c
}

func (b *Body) Validate() error {
	if !(b.Mass > 0) {
		return fmt.Errorf("body %q: %w (got %g)", b.Name, ErrNonPositiveMass, b.Mass)
	}
	if !(b.Radius > 0) {
		return fmt.Errorf("body %q: radius must be positive (got %g): %w", b.Name, b.Radius, ErrParameterBounds)
	}
	if !b.IsValid() {
		return fmt.Errorf("body %q: %w", b.Name, ErrInvalidState)
	}
	return nil
}

func (b *Body) IsValid() bool {
	return b.Position.IsValid() && b.Velocity.IsValid()
}

// Label returns the body's name, or a generated one when it has none.
func (b *Body) Label() string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("body%d", b.ID)
}
