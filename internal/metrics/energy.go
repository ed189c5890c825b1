package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// Energy tracks the mean total energy over all observed frames.
type Energy struct {
	name        string
	field       dynamo.Hamiltonian
	samples     int
	totalEnergy float64
}

func NewEnergy(field dynamo.Hamiltonian) *Energy {
	return &Energy{
		name:  "energy",
		field: field,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s *dynamo.System, t float64) {
	e.totalEnergy += e.field.Energy(s)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift reports the largest relative deviation from the first observed
// energy.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	field         dynamo.Hamiltonian
}

func NewEnergyDrift(field dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name:  "energy_drift",
		field: field,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s *dynamo.System, t float64) {
	energy := e.field.Energy(s)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift reports the largest distance of the total linear momentum
// from its first observed value.
type MomentumDrift struct {
	name     string
	initial  [2]float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(s *dynamo.System, t float64) {
	p := physics.Momentum(s)
	if m.samples == 0 {
		m.initial = [2]float64{p.X, p.Y}
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, math.Hypot(p.X-m.initial[0], p.Y-m.initial[1]))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = [2]float64{}
	m.maxDrift = 0
	m.samples = 0
}
