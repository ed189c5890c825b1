package experiment

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/config"
)

func TestRegistry_Integrators(t *testing.T) {
	g := NewWithT(t)
	r := NewRegistry()

	g.Expect(r.ListIntegrators()).To(Equal([]string{"euler", "semi-implicit"}))
	for _, name := range r.ListIntegrators() {
		integ, err := r.GetIntegrator(name)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(integ.Name()).To(Equal(name))
	}

	_, err := r.GetIntegrator("rk4")
	g.Expect(err).To(MatchError(ContainSubstring("unknown integrator")))
}

func TestRegistry_Metrics(t *testing.T) {
	g := NewWithT(t)
	r := NewRegistry()

	for _, name := range r.ListMetrics() {
		m, err := r.GetMetric(name, 0.001)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(m.Name()).To(Equal(name))
	}
	_, err := r.GetMetric("nope", 1)
	g.Expect(err).To(HaveOccurred())
}

func TestExperiment_RunBinary(t *testing.T) {
	g := NewWithT(t)

	sc := config.GetPreset("binary")
	sc.Duration = 1
	sc.Predict = false

	exp := New(sc, NewRegistry(), nil)
	g.Expect(exp.Setup()).To(Succeed())

	res, err := exp.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(res.StepsTaken).To(Equal(100))
	g.Expect(res.Names).To(Equal([]string{"green", "blue"}))
	g.Expect(res.Metrics).To(HaveKey("energy_drift"))
	g.Expect(res.Metrics).To(HaveKeyWithValue("stability", 1.0))
	g.Expect(res.Metrics).To(HaveKey("momentum_drift"))
}

func TestExperiment_RunSkipsPredictionByDefault(t *testing.T) {
	g := NewWithT(t)

	sc := config.GetPreset("binary")
	sc.Duration = 0.1
	g.Expect(sc.Predict).To(BeTrue())

	exp := New(sc, NewRegistry(), nil)
	g.Expect(exp.Setup()).To(Succeed())
	_, err := exp.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())

	for _, b := range exp.GetSimulator().System().Bodies {
		g.Expect(b.OrbitPath).To(BeEmpty(), b.Label())
	}
	g.Expect(exp.GetSimulator().Predicting()).To(BeTrue(), "interactive setting is restored after the run")

	exp = New(config.GetPreset("binary"), NewRegistry(), nil)
	exp.Scenario().Duration = 0.1
	g.Expect(exp.Setup()).To(Succeed())
	exp.SetRunPrediction(true)
	_, err = exp.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())

	for _, b := range exp.GetSimulator().System().Bodies {
		g.Expect(b.OrbitPath).To(HaveLen(sc.PredictionSteps), b.Label())
	}
}

func TestExperiment_RunBeforeSetup(t *testing.T) {
	g := NewWithT(t)
	exp := New(config.GetPreset("binary"), NewRegistry(), nil)
	_, err := exp.Run(context.Background())
	g.Expect(err).To(HaveOccurred())
}

func TestExperiment_SetupRejectsUnknownIntegrator(t *testing.T) {
	g := NewWithT(t)
	sc := config.GetPreset("binary")
	sc.Integrator = "leapfrog"
	g.Expect(New(sc, NewRegistry(), nil).Setup()).NotTo(Succeed())
}
