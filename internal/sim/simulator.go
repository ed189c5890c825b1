// Package sim drives a live system frame by frame: orbit prediction,
// barycenter and integration, in that order. Hosts (the terminal view, the
// raylib window, the batch runner) call Frame once per rendered frame.
package sim

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/predict"
	"github.com/san-kum/orbitsim/internal/vec"
)

type Simulator struct {
	system     *dynamo.System
	initial    *dynamo.System
	constants  dynamo.Constants
	gravity    *physics.Gravity
	integrator dynamo.Integrator
	mode       dynamo.UpdateMode
	stepper    *integrators.Stepper
	predictor  *predict.Predictor
	predicting bool
	barycenter vec.Vec2
	time       float64
	frames     int
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	logger     *log.Logger
}

type Option func(*Simulator)

func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

func WithIntegrator(integ dynamo.Integrator) Option {
	return func(s *Simulator) { s.integrator = integ }
}

func WithUpdateMode(m dynamo.UpdateMode) Option {
	return func(s *Simulator) { s.mode = m }
}

func WithPrediction(enabled bool) Option {
	return func(s *Simulator) { s.predicting = enabled }
}

// New takes ownership of sys. The state at construction time is kept for
// Reset.
func New(sys *dynamo.System, c dynamo.Constants, opts ...Option) *Simulator {
	s := &Simulator{
		system:     sys,
		initial:    sys.Clone(),
		constants:  c,
		gravity:    physics.NewGravity(c.G),
		integrator: integrators.NewSemiImplicitEuler(),
		mode:       dynamo.Sequential,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.stepper = integrators.NewStepper(s.gravity, s.integrator, s.mode)
	s.predictor = predict.New(s.gravity, s.integrator, s.mode, c.PredictionSteps, c.TimeStep)
	s.barycenter = physics.Barycenter(sys)
	return s
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) System() *dynamo.System {
	return s.system
}

func (s *Simulator) Constants() dynamo.Constants {
	return s.constants
}

func (s *Simulator) Gravity() *physics.Gravity {
	return s.gravity
}

func (s *Simulator) Integrator() dynamo.Integrator {
	return s.integrator
}

func (s *Simulator) Mode() dynamo.UpdateMode {
	return s.mode
}

func (s *Simulator) Time() float64 {
	return s.time
}

func (s *Simulator) Frames() int {
	return s.frames
}

// Barycenter is the value computed during the most recent frame, from the
// state before that frame's integration.
func (s *Simulator) Barycenter() vec.Vec2 {
	return s.barycenter
}

func (s *Simulator) Predicting() bool {
	return s.predicting
}

func (s *Simulator) SetPrediction(on bool) {
	s.predicting = on
}

func (s *Simulator) TogglePrediction() bool {
	s.predicting = !s.predicting
	return s.predicting
}

func (s *Simulator) Energy() float64 {
	return s.gravity.Energy(s.system)
}

// Reset restores the system captured by New and clears time and metrics.
func (s *Simulator) Reset() {
	restored := s.initial.Clone()
	s.system.Bodies = restored.Bodies
	s.time = 0
	s.frames = 0
	s.barycenter = physics.Barycenter(s.system)
	for _, m := range s.metrics {
		m.Reset()
	}
}

type FrameResult struct {
	Frame      int
	Time       float64
	Barycenter vec.Vec2
}

// Frame advances the live system by dt:
//
//  1. when prediction is on, every body's OrbitPath is recomputed from the
//     current state;
//  2. the barycenter is taken from the current state;
//  3. every body is integrated by dt using the configured update mode.
//
// Steps 1 and 2 read the pre-integration state, so paths and barycenter are
// consistent with each other even though the bodies move afterwards.
func (s *Simulator) Frame(dt float64) (FrameResult, error) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return FrameResult{}, fmt.Errorf("frame dt %g: %w", dt, dynamo.ErrParameterBounds)
	}

	if s.predicting {
		start := time.Now()
		if err := s.predictor.PredictAll(s.system); err != nil {
			return FrameResult{}, err
		}
		s.logger.Debug("predicted orbits", "bodies", s.system.Len(), "steps", s.constants.PredictionSteps, "elapsed", time.Since(start))
	}

	s.barycenter = physics.Barycenter(s.system)
	s.stepper.Advance(s.system, dt)

	s.time += dt
	s.frames++

	if b, bad := s.system.FirstInvalid(); bad {
		err := &dynamo.SimulationError{Step: s.frames, Time: s.time, Body: b.ID, Wrapped: dynamo.ErrInvalidState}
		s.logger.Error("simulation diverged", "body", b.Label(), "frame", s.frames, "t", s.time)
		return FrameResult{}, err
	}

	for _, m := range s.metrics {
		m.Observe(s.system, s.time)
	}
	for _, obs := range s.observers {
		obs.OnStep(s.system, s.time)
	}

	return FrameResult{Frame: s.frames, Time: s.time, Barycenter: s.barycenter}, nil
}

// Run drives Duration/Dt fixed-size frames and records the trajectory.
func (s *Simulator) Run(ctx context.Context, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	every := cfg.RecordEvery
	if every < 1 {
		every = 1
	}

	result := &dynamo.Result{
		Names:       make([]string, s.system.Len()),
		Masses:      make([]float64, s.system.Len()),
		Times:       make([]float64, 0, steps/every+1),
		States:      make([][]dynamo.BodyState, 0, steps/every+1),
		Barycenters: make([]vec.Vec2, 0, steps/every+1),
		Metrics:     make(map[string]float64),
		Errors:      make([]error, 0),
	}
	for i, b := range s.system.Bodies {
		result.Names[i] = b.Label()
		result.Masses[i] = b.Mass
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	prev := s.predicting
	s.predicting = cfg.Predict
	defer func() { s.predicting = prev }()

	s.logger.Info("run started", "bodies", s.system.Len(), "dt", cfg.Dt, "duration", cfg.Duration, "mode", s.mode, "integrator", s.integrator.Name())

	initialEnergy := s.Energy()
	s.record(result, physics.Barycenter(s.system))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %v", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		_, err := s.Frame(cfg.Dt)
		if err != nil {
			result.Errors = append(result.Errors, err)
			break
		}
		result.StepsTaken++

		if (i+1)%every == 0 || i == steps-1 {
			s.record(result, physics.Barycenter(s.system))
		}
	}

	// a diverged state has no meaningful energy
	finalEnergy := s.Energy()
	if initialEnergy != 0 && len(result.Errors) == 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Info("run finished", "steps", result.StepsTaken, "energy_drift", result.EnergyDrift, "errors", len(result.Errors))
	return result, nil
}

func (s *Simulator) record(r *dynamo.Result, bary vec.Vec2) {
	states := make([]dynamo.BodyState, s.system.Len())
	for i, b := range s.system.Bodies {
		states[i] = dynamo.BodyState{Position: b.Position, Velocity: b.Velocity}
	}
	r.Times = append(r.Times, s.time)
	r.States = append(r.States, states)
	r.Barycenters = append(r.Barycenters, bary)
}

func (s *Simulator) validateConfig(cfg dynamo.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

// RunWithCallback steps until Duration elapses or callback returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg dynamo.Config, callback func(*dynamo.System, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	end := s.time + cfg.Duration
	for s.time < end {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(s.system, s.time) {
			return nil
		}

		if _, err := s.Frame(cfg.Dt); err != nil {
			return err
		}
	}

	return nil
}
