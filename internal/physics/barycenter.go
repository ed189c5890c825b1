package physics

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vec"
)

// Barycenter returns Σ(p·m)/Σm. An empty system, or one whose masses sum to
// zero, has its barycenter at the origin.
func Barycenter(s *dynamo.System) vec.Vec2 {
	weighted := vec.Zero
	total := 0.0
	for _, b := range s.Bodies {
		weighted = weighted.Add(b.Position.Scale(b.Mass))
		total += b.Mass
	}
	if total == 0 {
		return vec.Zero
	}
	return weighted.Div(total)
}

func TotalMass(s *dynamo.System) float64 {
	total := 0.0
	for _, b := range s.Bodies {
		total += b.Mass
	}
	return total
}
