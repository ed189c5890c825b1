package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Stability is the fraction of frames in which every body stays within
// threshold of the barycenter. A system that has flung a body away scores
// below 1.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sys *dynamo.System, t float64) {
	s.samples++
	if physics.MaxDistance(sys, physics.Barycenter(sys)) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// MaxExtent records the largest body distance from the barycenter seen so
// far.
type MaxExtent struct {
	name string
	max  float64
}

func NewMaxExtent() *MaxExtent {
	return &MaxExtent{name: "max_extent"}
}

func (m *MaxExtent) Name() string { return m.name }

func (m *MaxExtent) Observe(sys *dynamo.System, t float64) {
	m.max = math.Max(m.max, physics.MaxDistance(sys, physics.Barycenter(sys)))
}

func (m *MaxExtent) Value() float64 { return m.max }

func (m *MaxExtent) Reset() { m.max = 0 }

// BarycenterDrift reports how far the barycenter has moved from where it was
// first observed.
type BarycenterDrift struct {
	name    string
	origin  [2]float64
	current float64
	samples int
}

func NewBarycenterDrift() *BarycenterDrift {
	return &BarycenterDrift{name: "barycenter_drift"}
}

func (b *BarycenterDrift) Name() string { return b.name }

func (b *BarycenterDrift) Observe(sys *dynamo.System, t float64) {
	c := physics.Barycenter(sys)
	if b.samples == 0 {
		b.origin = [2]float64{c.X, c.Y}
	}
	b.samples++
	b.current = math.Hypot(c.X-b.origin[0], c.Y-b.origin[1])
}

func (b *BarycenterDrift) Value() float64 { return b.current }

func (b *BarycenterDrift) Reset() {
	b.origin = [2]float64{}
	b.current = 0
	b.samples = 0
}
