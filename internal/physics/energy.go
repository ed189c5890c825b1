package physics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vec"
)

func KineticEnergy(s *dynamo.System) float64 {
	ke := 0.0
	for _, b := range s.Bodies {
		ke += 0.5 * b.Mass * b.Velocity.SqrMagnitude()
	}
	return ke
}

// PotentialEnergy sums -G·mi·mj/r over unique pairs, skipping coincident
// pairs the same way the force does.
func PotentialEnergy(s *dynamo.System, g float64) float64 {
	pe := 0.0
	n := len(s.Bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			bi, bj := s.Bodies[i], s.Bodies[j]
			r := bj.Position.Sub(bi.Position).Magnitude()
			if r == 0 {
				continue
			}
			pe -= g * bi.Mass * bj.Mass / r
		}
	}
	return pe
}

func Momentum(s *dynamo.System) vec.Vec2 {
	p := vec.Zero
	for _, b := range s.Bodies {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	return p
}

// AngularMomentum is taken about the origin.
func AngularMomentum(s *dynamo.System) float64 {
	l := 0.0
	for _, b := range s.Bodies {
		l += b.Mass * b.Position.Cross(b.Velocity)
	}
	return l
}

// MaxDistance returns the largest distance of any body from p.
func MaxDistance(s *dynamo.System, p vec.Vec2) float64 {
	max := 0.0
	for _, b := range s.Bodies {
		max = math.Max(max, b.Position.Sub(p).Magnitude())
	}
	return max
}
