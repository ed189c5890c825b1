package sim

import (
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vec"
)

func testSystem() *dynamo.System {
	s := dynamo.NewSystem()
	s.Add(dynamo.NewBody("a", vec.New(-25, 0), vec.New(0, 10), 1e7, 10, color.RGBA{G: 255, A: 255}))
	s.Add(dynamo.NewBody("b", vec.New(25, 0), vec.New(0, -10), 1e7, 10, color.RGBA{B: 255, A: 255}))
	return s
}

func TestSimulatorRun(t *testing.T) {
	sim := New(testSystem(), dynamo.DefaultConstants(), WithUpdateMode(dynamo.Simultaneous))

	cfg := dynamo.Config{
		Dt:       0.1,
		Duration: 1.0,
	}

	result, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if math.Abs(result.Times[10]-1.0) > 1e-9 {
		t.Errorf("expected final time 1.0, got %f", result.Times[10])
	}

	// equal masses, opposite velocities: the barycenter stays near the origin
	last := result.Barycenters[len(result.Barycenters)-1]
	if last.Magnitude() > 1e-3 {
		t.Errorf("expected barycenter near origin, got %v", last)
	}
	if result.EnergyDrift > 0.1 {
		t.Errorf("unexpected energy drift %f", result.EnergyDrift)
	}
}

func TestSimulatorRun_RecordEvery(t *testing.T) {
	sim := New(testSystem(), dynamo.DefaultConstants())

	result, err := sim.Run(context.Background(), dynamo.Config{Dt: 0.1, Duration: 1.0, RecordEvery: 5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.States) != 3 {
		t.Errorf("expected 3 samples, got %d", len(result.States))
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(testSystem(), dynamo.DefaultConstants())

	tests := []struct {
		name string
		cfg  dynamo.Config
	}{
		{"zero dt", dynamo.Config{Dt: 0, Duration: 1.0}},
		{"negative dt", dynamo.Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", dynamo.Config{Dt: 0.1, Duration: 0}},
		{"negative duration", dynamo.Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), tt.cfg)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(s *dynamo.System, time float64) {
	t.count++
	t.sum += s.Bodies[0].Position.X
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func TestSimulatorMetrics(t *testing.T) {
	sim := New(testSystem(), dynamo.DefaultConstants())

	metric := &testMetric{}
	sim.AddMetric(metric)

	cfg := dynamo.Config{Dt: 0.1, Duration: 1.0}

	result, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}

	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
}

type countingObserver struct {
	times []float64
}

func (o *countingObserver) OnStep(s *dynamo.System, t float64) {
	o.times = append(o.times, t)
}

func TestSimulatorObserver(t *testing.T) {
	sim := New(testSystem(), dynamo.DefaultConstants())
	obs := &countingObserver{}
	sim.AddObserver(obs)

	for i := 0; i < 3; i++ {
		if _, err := sim.Frame(0.5); err != nil {
			t.Fatal(err)
		}
	}

	if len(obs.times) != 3 || obs.times[2] != 1.5 {
		t.Errorf("unexpected observer times %v", obs.times)
	}
}

func TestSimulatorFrame_RejectsBadDt(t *testing.T) {
	sim := New(testSystem(), dynamo.DefaultConstants())

	for _, dt := range []float64{-0.01, math.NaN(), math.Inf(1)} {
		_, err := sim.Frame(dt)
		if !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("dt %v: expected ErrParameterBounds, got %v", dt, err)
		}
	}
	if sim.Frames() != 0 || sim.Time() != 0 {
		t.Error("rejected frames must not advance the clock")
	}
}

func TestSimulatorFrame_ZeroDt(t *testing.T) {
	sys := testSystem()
	sim := New(sys, dynamo.DefaultConstants())
	before := sys.Bodies[0].Position

	if _, err := sim.Frame(0); err != nil {
		t.Fatal(err)
	}
	if sys.Bodies[0].Position != before {
		t.Error("zero dt must not move bodies")
	}
}

func TestSimulatorReset(t *testing.T) {
	sys := testSystem()
	start := sys.Bodies[1].Position
	sim := New(sys, dynamo.DefaultConstants(), WithPrediction(true))

	for i := 0; i < 5; i++ {
		if _, err := sim.Frame(0.01); err != nil {
			t.Fatal(err)
		}
	}
	sim.Reset()

	if sim.Time() != 0 || sim.Frames() != 0 {
		t.Errorf("expected zero time/frames after reset, got %f/%d", sim.Time(), sim.Frames())
	}
	if sim.System().Bodies[1].Position != start {
		t.Errorf("expected position %v after reset, got %v", start, sim.System().Bodies[1].Position)
	}
	if sim.System().Bodies[1].OrbitPath != nil {
		t.Error("reset should clear predicted paths")
	}
}

func TestSimulatorTogglePrediction(t *testing.T) {
	sim := New(testSystem(), dynamo.DefaultConstants())
	if sim.Predicting() {
		t.Fatal("prediction should default to off")
	}
	if !sim.TogglePrediction() || !sim.Predicting() {
		t.Error("toggle should turn prediction on")
	}
}

func TestSimulatorRun_ContextCanceled(t *testing.T) {
	sim := New(testSystem(), dynamo.DefaultConstants())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx, dynamo.Config{Dt: 0.01, Duration: 1})
	if !errors.Is(err, dynamo.ErrContextCanceled) {
		t.Errorf("expected ErrContextCanceled, got %v", err)
	}
}

func TestSimulatorRun_Divergence(t *testing.T) {
	sys := testSystem()
	sys.Bodies[0].Velocity = vec.New(math.Inf(1), 0)
	sim := New(sys, dynamo.DefaultConstants())

	result, err := sim.Run(context.Background(), dynamo.Config{Dt: 0.01, Duration: 1})
	if err != nil {
		t.Fatalf("run should report divergence in the result, got %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected 0 steps, got %d", result.StepsTaken)
	}
	if result.EnergyDrift != 0 {
		t.Errorf("expected zero drift after divergence, got %g", result.EnergyDrift)
	}

	var simErr *dynamo.SimulationError
	if !errors.As(result.Errors[0], &simErr) {
		t.Fatalf("expected SimulationError, got %T", result.Errors[0])
	}
	if simErr.Step != 1 || simErr.Body != sys.Bodies[0].ID {
		t.Errorf("unexpected error detail %+v", simErr)
	}
	if !errors.Is(result.Errors[0], dynamo.ErrInvalidState) {
		t.Error("expected ErrInvalidState in chain")
	}
}

func TestRunWithCallback_Stops(t *testing.T) {
	sim := New(testSystem(), dynamo.DefaultConstants())
	calls := 0

	err := sim.RunWithCallback(context.Background(), dynamo.Config{Dt: 0.01, Duration: 10}, func(*dynamo.System, float64) bool {
		calls++
		return calls < 4
	})
	if err != nil {
		t.Fatal(err)
	}
	if sim.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", sim.Frames())
	}
}
