package physics

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vec"
)

type Gravity struct {
	G float64
}

func NewGravity(g float64) *Gravity {
	return &Gravity{G: g}
}

// TotalForce sums the pull of every other body in s on self, in snapshot
// order. Bodies are matched by ID, so self is skipped even when another body
// holds an identical state. Pairs at zero separation contribute nothing.
func (g *Gravity) TotalForce(self *dynamo.Body, s *dynamo.System) vec.Vec2 {
	total := vec.Zero
	for _, b := range s.Bodies {
		if b.ID == self.ID {
			continue
		}
		total = total.Add(g.pairForce(self, b))
	}
	return total
}

// pairForce is the force other exerts on self. The mass product is formed
// before scaling by G so that pairForce(a, b) == -pairForce(b, a) exactly.
func (g *Gravity) pairForce(self, other *dynamo.Body) vec.Vec2 {
	d := other.Position.Sub(self.Position)
	r2 := d.SqrMagnitude()
	if r2 == 0 {
		return vec.Zero
	}
	magnitude := g.G * (self.Mass * other.Mass) / r2
	return d.Normalize().Scale(magnitude)
}

// Forces evaluates TotalForce for every body against the same snapshot.
func (g *Gravity) Forces(s *dynamo.System) []vec.Vec2 {
	out := make([]vec.Vec2, len(s.Bodies))
	for i, b := range s.Bodies {
		out[i] = g.TotalForce(b, s)
	}
	return out
}

// Energy implements dynamo.Hamiltonian.
func (g *Gravity) Energy(s *dynamo.System) float64 {
	return KineticEnergy(s) + PotentialEnergy(s, g.G)
}
