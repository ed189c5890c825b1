package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/vec"
)

func build(preset string) (*dynamo.System, *config.Scenario) {
	sc := config.GetPreset(preset)
	Expect(sc).NotTo(BeNil())
	sys, err := sc.Build()
	Expect(err).NotTo(HaveOccurred())
	return sys, sc
}

func positions(s *dynamo.System) []vec.Vec2 {
	out := make([]vec.Vec2, len(s.Bodies))
	for i, b := range s.Bodies {
		out[i] = b.Position
	}
	return out
}

var _ = Describe("Frame", func() {
	var (
		sys *dynamo.System
		sc  *config.Scenario
	)

	BeforeEach(func() {
		sys, sc = build("binary")
	})

	Context("with prediction on", func() {
		It("predicts from the same state the frame integrates", func() {
			s := sim.New(sys, sc.Constants(), sim.WithPrediction(true))

			_, err := s.Frame(sc.TimeStep)
			Expect(err).NotTo(HaveOccurred())

			for _, b := range sys.Bodies {
				Expect(b.OrbitPath).To(HaveLen(sc.PredictionSteps))
				Expect(b.OrbitPath[0]).To(Equal(b.Position), "body %s", b.Label())
			}
		})

		It("leaves the live trajectory identical to an unpredicted run", func() {
			other, _ := build("binary")
			with := sim.New(sys, sc.Constants(), sim.WithPrediction(true))
			without := sim.New(other, sc.Constants())

			for i := 0; i < 20; i++ {
				_, err := with.Frame(0.01)
				Expect(err).NotTo(HaveOccurred())
				_, err = without.Frame(0.01)
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(positions(sys)).To(Equal(positions(other)))
		})
	})

	It("reports the barycenter of the pre-step state", func() {
		sys.Bodies[0].Mass = 3e7
		s := sim.New(sys, sc.Constants())
		want := physics.Barycenter(sys)

		res, err := s.Frame(0.01)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Barycenter).To(Equal(want))
		Expect(s.Barycenter()).To(Equal(want))
		Expect(res.Frame).To(Equal(1))
	})

	It("never changes masses", func() {
		s := sim.New(sys, sc.Constants(), sim.WithPrediction(true))
		for i := 0; i < 10; i++ {
			_, err := s.Frame(0.01)
			Expect(err).NotTo(HaveOccurred())
		}
		for _, b := range sys.Bodies {
			Expect(b.Mass).To(Equal(1e7))
		}
	})

	It("replays bit-exactly for the same dt sequence", func() {
		other, _ := build("binary")
		a := sim.New(sys, sc.Constants(), sim.WithPrediction(true))
		b := sim.New(other, sc.Constants(), sim.WithPrediction(true))

		dts := []float64{0.01, 0.016, 0.005, 0.033, 0.0}
		for i := 0; i < 40; i++ {
			dt := dts[i%len(dts)]
			_, err := a.Frame(dt)
			Expect(err).NotTo(HaveOccurred())
			_, err = b.Frame(dt)
			Expect(err).NotTo(HaveOccurred())
		}

		Expect(positions(sys)).To(Equal(positions(other)))
		for i := range sys.Bodies {
			Expect(sys.Bodies[i].Velocity).To(Equal(other.Bodies[i].Velocity))
			Expect(sys.Bodies[i].OrbitPath).To(Equal(other.Bodies[i].OrbitPath))
		}
	})
})

var _ = Describe("Long runs", func() {
	It("closes the circular binary after one period", func() {
		sys, sc := build("binary")
		start := sys.Bodies[0].Position
		s := sim.New(sys, sc.Constants())

		const dt = 0.001
		steps := int(math.Round(5 * math.Pi / dt))
		for i := 0; i < steps; i++ {
			_, err := s.Frame(dt)
			Expect(err).NotTo(HaveOccurred())
		}

		Expect(sys.Bodies[0].Position.Sub(start).Magnitude()).To(BeNumerically("<", 0.5))
	})

	It("keeps the figure-eight bounded for one period", func() {
		sys, sc := build("figure8")
		s := sim.New(sys, sc.Constants(), sim.WithUpdateMode(dynamo.Simultaneous))
		extent := physics.MaxDistance(sys, physics.Barycenter(sys))

		period := config.Fig8Period
		steps := int(math.Round(period / 0.01))
		for i := 0; i < steps; i++ {
			_, err := s.Frame(0.01)
			Expect(err).NotTo(HaveOccurred())
			Expect(physics.MaxDistance(sys, physics.Barycenter(sys))).To(BeNumerically("<", 2*extent))
		}
	})

	It("lets the unbound original pair escape", func() {
		sys, sc := build("original")
		s := sim.New(sys, sc.Constants(), sim.WithUpdateMode(dynamo.Simultaneous))
		start := sys.Bodies[1].Position.Sub(sys.Bodies[0].Position).Magnitude()

		for i := 0; i < 2000; i++ {
			_, err := s.Frame(0.01)
			Expect(err).NotTo(HaveOccurred())
		}

		sep := sys.Bodies[1].Position.Sub(sys.Bodies[0].Position).Magnitude()
		Expect(sep).To(BeNumerically(">", 2*start))
	})
})
