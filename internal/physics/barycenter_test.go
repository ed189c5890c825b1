package physics

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vec"
)

func TestBarycenter_EqualMasses(t *testing.T) {
	g := NewWithT(t)
	r := 50.0
	s := newSystem(body(-r, 0, 1e7), body(r, 0, 1e7))
	g.Expect(Barycenter(s)).To(Equal(vec.Zero))
}

func TestBarycenter_Weighted(t *testing.T) {
	s := newSystem(body(0, 0, 3), body(4, 8, 1))
	got := Barycenter(s)
	if math.Abs(got.X-1) > 1e-12 || math.Abs(got.Y-2) > 1e-12 {
		t.Errorf("expected (1, 2), got %v", got)
	}
}

func TestBarycenter_ZeroMassReturnsOrigin(t *testing.T) {
	g := NewWithT(t)
	g.Expect(Barycenter(dynamo.NewSystem())).To(Equal(vec.Zero))

	// corrupted masses that cancel out
	s := newSystem(body(3, 3, 1), body(7, 7, -1))
	got := Barycenter(s)
	g.Expect(got).To(Equal(vec.Zero))
	g.Expect(got.IsValid()).To(BeTrue())
}

func TestDiagnostics_TwoBody(t *testing.T) {
	g := NewWithT(t)
	a := body(-1, 0, 2)
	a.Velocity = vec.New(0, 3)
	b := body(1, 0, 2)
	b.Velocity = vec.New(0, -3)
	s := newSystem(a, b)

	g.Expect(KineticEnergy(s)).To(BeNumerically("~", 18, 1e-12))
	g.Expect(PotentialEnergy(s, 1)).To(BeNumerically("~", -2, 1e-12))
	g.Expect(NewGravity(1).Energy(s)).To(BeNumerically("~", 16, 1e-12))
	g.Expect(Momentum(s)).To(Equal(vec.Zero))
	g.Expect(AngularMomentum(s)).To(BeNumerically("~", -12, 1e-12))
	g.Expect(MaxDistance(s, vec.Zero)).To(BeNumerically("~", 1, 1e-12))
	g.Expect(TotalMass(s)).To(Equal(4.0))
}
