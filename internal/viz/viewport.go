package viz

import (
	"math"

	"github.com/san-kum/orbitsim/internal/vec"
)

// Viewport maps world coordinates onto canvas sub-pixels. World y points up,
// canvas y points down.
type Viewport struct {
	Center vec.Vec2
	// Scale is sub-pixels per world unit.
	Scale float64
	// Aspect compensates for terminal cells being taller than wide.
	Aspect float64
	W, H   int
}

func NewViewport(w, h int) Viewport {
	return Viewport{Scale: 1, Aspect: 1, W: w, H: h}
}

// Fit picks a scale so a disc of the given world radius around center fills
// most of the smaller canvas dimension.
func (v *Viewport) Fit(center vec.Vec2, radius float64) {
	v.Center = center
	if radius <= 0 {
		radius = 1
	}
	v.Scale = 0.45 * math.Min(float64(v.W)/v.Aspect, float64(v.H)) / radius
}

func (v Viewport) Project(p vec.Vec2) (int, int) {
	d := p.Sub(v.Center)
	x := float64(v.W)/2 + d.X*v.Scale*v.Aspect
	y := float64(v.H)/2 - d.Y*v.Scale
	return int(math.Round(x)), int(math.Round(y))
}

func (v *Viewport) Zoom(factor float64) {
	if factor > 0 {
		v.Scale *= factor
	}
}
