package integrators

import (
	"image/color"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/vec"
)

func threeBodies() *dynamo.System {
	s := dynamo.NewSystem()
	s.Add(dynamo.NewBody("a", vec.New(-30, 0), vec.New(0, 8), 1e7, 5, color.RGBA{}))
	s.Add(dynamo.NewBody("b", vec.New(30, 0), vec.New(0, -8), 1e7, 5, color.RGBA{}))
	s.Add(dynamo.NewBody("c", vec.New(0, 45), vec.New(-4, 0), 2e6, 3, color.RGBA{}))
	return s
}

func run(mode dynamo.UpdateMode, steps int) *dynamo.System {
	s := threeBodies()
	st := NewStepper(physics.NewGravity(0.001), NewSemiImplicitEuler(), mode)
	for i := 0; i < steps; i++ {
		st.Advance(s, 0.01)
	}
	return s
}

func TestStepper_DeterministicReplay(t *testing.T) {
	g := NewWithT(t)
	for _, mode := range []dynamo.UpdateMode{dynamo.Sequential, dynamo.Simultaneous} {
		a := run(mode, 500)
		b := run(mode, 500)
		for i := range a.Bodies {
			g.Expect(a.Bodies[i].Position).To(Equal(b.Bodies[i].Position), "mode %s", mode)
			g.Expect(a.Bodies[i].Velocity).To(Equal(b.Bodies[i].Velocity), "mode %s", mode)
		}
	}
}

func TestStepper_ModesDiffer(t *testing.T) {
	seq := run(dynamo.Sequential, 1)
	sim := run(dynamo.Simultaneous, 1)

	// the first body sees the same snapshot either way
	if !seq.Bodies[0].Position.Equal(sim.Bodies[0].Position) {
		t.Errorf("first body should match: %v vs %v", seq.Bodies[0].Position, sim.Bodies[0].Position)
	}
	// later bodies see moved neighbours only in sequential mode
	if seq.Bodies[1].Velocity.Equal(sim.Bodies[1].Velocity) {
		t.Error("sequential and simultaneous updates should differ for the second body")
	}
}

func TestStepper_SimultaneousConservesMomentum(t *testing.T) {
	g := NewWithT(t)
	s := threeBodies()
	p0 := physics.Momentum(s)

	st := NewStepper(physics.NewGravity(0.001), NewSemiImplicitEuler(), dynamo.Simultaneous)
	for i := 0; i < 1000; i++ {
		st.Advance(s, 0.01)
	}

	drift := physics.Momentum(s).Sub(p0).Magnitude()
	g.Expect(drift).To(BeNumerically("<", 1e-3), "momentum drift %g", drift)
}

func TestStepper_MassesUntouched(t *testing.T) {
	s := run(dynamo.Sequential, 200)
	want := []float64{1e7, 1e7, 2e6}
	for i, b := range s.Bodies {
		if b.Mass != want[i] {
			t.Errorf("body %s mass changed: %g", b.Name, b.Mass)
		}
	}
}

func BenchmarkStepperSequential(b *testing.B) {
	s := threeBodies()
	st := NewStepper(physics.NewGravity(0.001), NewSemiImplicitEuler(), dynamo.Sequential)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Advance(s, 0.001)
	}
}

func BenchmarkStepperSimultaneous(b *testing.B) {
	s := threeBodies()
	st := NewStepper(physics.NewGravity(0.001), NewSemiImplicitEuler(), dynamo.Simultaneous)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Advance(s, 0.001)
	}
}
