package physics

import (
	"image/color"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vec"
)

func newSystem(bodies ...*dynamo.Body) *dynamo.System {
	s := dynamo.NewSystem()
	for _, b := range bodies {
		s.Add(b)
	}
	return s
}

func body(x, y, mass float64) *dynamo.Body {
	return dynamo.NewBody("", vec.New(x, y), vec.Zero, mass, 1, color.RGBA{})
}

func TestGravity_PairSymmetry(t *testing.T) {
	g := NewWithT(t)
	grav := NewGravity(0.001)

	cases := []struct {
		a, b *dynamo.Body
	}{
		{body(-25, 0, 1e7), body(25, 0, 1e7)},
		{body(1.5, -3.25, 3e6), body(-7.75, 11.125, 4.5e7)},
		{body(0.1, 0.2, 1), body(0.3, 0.7, 1e9)},
	}

	for _, tc := range cases {
		s := newSystem(tc.a, tc.b)
		fa := grav.TotalForce(tc.a, s)
		fb := grav.TotalForce(tc.b, s)

		g.Expect(fa.IsZero()).To(BeFalse())
		g.Expect(fa).To(Equal(fb.Neg()), "force on a must exactly oppose force on b")
		g.Expect(fa.Magnitude()).To(Equal(fb.Magnitude()))
	}
}

func TestGravity_InverseSquareMagnitude(t *testing.T) {
	grav := NewGravity(0.001)
	a, b := body(0, 0, 1e7), body(50, 0, 1e7)
	s := newSystem(a, b)

	f := grav.TotalForce(a, s)
	want := 0.001 * 1e7 * 1e7 / 2500
	if math.Abs(f.X-want) > want*1e-12 || f.Y != 0 {
		t.Errorf("expected force (%g, 0), got %v", want, f)
	}
}

func TestGravity_ZeroSeparationGuard(t *testing.T) {
	g := NewWithT(t)
	grav := NewGravity(0.001)

	a, b := body(5, 5, 10), body(5, 5, 20)
	s := newSystem(a, b)

	fa := grav.TotalForce(a, s)
	g.Expect(fa.IsValid()).To(BeTrue())
	g.Expect(fa.IsZero()).To(BeTrue())

	// a third body still pulls normally while the coincident pair cancels out
	c := body(15, 5, 30)
	s.Add(c)
	fa = grav.TotalForce(a, s)
	g.Expect(fa.IsValid()).To(BeTrue())
	g.Expect(fa.X).To(BeNumerically(">", 0))
	g.Expect(fa.Y).To(BeZero())
}

func TestGravity_ExcludesSelfByIdentity(t *testing.T) {
	g := NewWithT(t)
	grav := NewGravity(1)

	// two bodies with identical state still see each other (as a coincident
	// pair) but never themselves
	a := body(1, 1, 2)
	twin := body(1, 1, 2)
	far := body(4, 5, 3)
	s := newSystem(a, twin, far)

	f := grav.TotalForce(a, s)
	want := grav.pairForce(a, far)
	g.Expect(f).To(Equal(want))
}

func TestGravity_DoesNotMutateMass(t *testing.T) {
	grav := NewGravity(0.001)
	s := newSystem(body(0, 0, 1e7), body(10, 0, 2e7), body(0, 10, 3e7))
	masses := []float64{1e7, 2e7, 3e7}

	for i := 0; i < 10; i++ {
		grav.Forces(s)
		grav.Energy(s)
	}
	for i, b := range s.Bodies {
		if b.Mass != masses[i] {
			t.Errorf("body %d mass changed: %g -> %g", i, masses[i], b.Mass)
		}
	}
}

func TestGravity_ForcesSumToZero(t *testing.T) {
	grav := NewGravity(0.001)
	s := newSystem(body(0, 0, 1e7), body(10, 0, 2e7), body(0, 10, 3e7))

	sum := vec.Zero
	for _, f := range grav.Forces(s) {
		sum = sum.Add(f)
	}
	if sum.Magnitude() > 1e-6 {
		t.Errorf("net internal force should vanish, got %v", sum)
	}
}
