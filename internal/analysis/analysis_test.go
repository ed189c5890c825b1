package analysis

import (
	"image/color"
	"math"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/vec"
)

func sinusoid(period, dt float64, n int) ([]float64, []float64) {
	times := make([]float64, n)
	values := make([]float64, n)
	for i := range values {
		times[i] = float64(i) * dt
		values[i] = 3 + 2*math.Sin(2*math.Pi*times[i]/period)
	}
	return times, values
}

func TestPowerSpectrum_Constant(t *testing.T) {
	g := NewWithT(t)

	ps := PowerSpectrum([]float64{1, 1, 1, 1})
	g.Expect(ps).To(HaveLen(2))
	g.Expect(ps[0]).To(BeNumerically("~", 4, 1e-12))
	g.Expect(ps[1]).To(BeNumerically("<", 1e-12))
}

func TestPowerSpectrum_Pads(t *testing.T) {
	g := NewWithT(t)
	g.Expect(PowerSpectrum(make([]float64, 1000))).To(HaveLen(512))
}

func TestDominantPeriod_Sinusoid(t *testing.T) {
	g := NewWithT(t)

	const period, dt, n = 2.5, 0.01, 1000
	_, values := sinusoid(period, dt, n)

	est, err := DominantPeriod(values, dt)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(math.Abs(1/est - 1/period)).To(BeNumerically("<=", BinWidth(n, dt)))
}

func TestDominantPeriod_Errors(t *testing.T) {
	g := NewWithT(t)

	_, err := DominantPeriod([]float64{1, 2}, 0.1)
	g.Expect(err).To(MatchError(ErrTooFewSamples))

	_, err = DominantPeriod([]float64{5, 5, 5, 5, 5, 5}, 0.1)
	g.Expect(err).To(HaveOccurred())
}

func TestCrossingPeriod(t *testing.T) {
	g := NewWithT(t)

	times, values := sinusoid(2.5, 0.01, 1000)
	g.Expect(CrossingPeriod(times, values)).To(BeNumerically("~", 2.5, 0.02))

	g.Expect(CrossingPeriod(times[:10], values[:10])).To(BeZero())
}

func TestCrossings_Interpolates(t *testing.T) {
	g := NewWithT(t)

	c := Crossings([]float64{0, 1, 2}, []float64{-1, 1, 3}, 0)
	g.Expect(c).To(HaveLen(1))
	g.Expect(c[0]).To(BeNumerically("~", 0.5, 1e-12))
}

func TestLyapunovExponent_FreeBodies(t *testing.T) {
	g := NewWithT(t)

	sys := dynamo.NewSystem()
	sys.Add(dynamo.NewBody("a", vec.New(0, 0), vec.New(1, 0), 1, 1, color.RGBA{}))
	sys.Add(dynamo.NewBody("b", vec.New(1e6, 0), vec.New(0, 1), 1, 1, color.RGBA{}))
	before := sys.Clone()

	stepper := integrators.NewStepper(physics.NewGravity(1e-12), integrators.NewSemiImplicitEuler(), dynamo.Simultaneous)
	lambda := LyapunovExponent(sys, stepper, 0.01, 5, 1e-3)

	g.Expect(math.Abs(lambda)).To(BeNumerically("<", 1e-6))
	for i, b := range sys.Bodies {
		g.Expect(b.Position).To(Equal(before.Bodies[i].Position))
		g.Expect(b.Velocity).To(Equal(before.Bodies[i].Velocity))
	}
}

func TestLyapunovExponent_Degenerate(t *testing.T) {
	g := NewWithT(t)
	stepper := integrators.NewStepper(physics.NewGravity(1), integrators.NewSemiImplicitEuler(), dynamo.Sequential)

	g.Expect(LyapunovExponent(dynamo.NewSystem(), stepper, 0.01, 1, 1e-3)).To(BeZero())

	sys := dynamo.NewSystem()
	sys.Add(dynamo.NewBody("a", vec.Zero, vec.Zero, 1, 1, color.RGBA{}))
	g.Expect(LyapunovExponent(sys, stepper, 0.01, 1, 0)).To(BeZero())
}

func TestTrackToASCII(t *testing.T) {
	g := NewWithT(t)

	pts := []vec.Vec2{vec.New(-1, -1), vec.New(0, 1), vec.New(1, -1)}
	out := TrackToASCII(pts, 20, 10)
	g.Expect(strings.Count(out, "\n")).To(Equal(10))
	g.Expect(out).To(ContainSubstring("•"))
	g.Expect(TrackToASCII(nil, 20, 10)).To(BeEmpty())
}
