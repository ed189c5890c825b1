package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vec"
)

const (
	DefaultG               = 0.001
	DefaultPredictionSteps = 1000
	DefaultTimeStep        = 0.01
	DefaultDt              = 0.01
	DefaultDuration        = 60.0
	DefaultRadius          = 10.0
	DefaultIntegrator      = "semi-implicit"
	DefaultUpdateMode      = "sequential"
)

// DefaultColor is used when a body has no color or an unparsable one.
var DefaultColor = color.RGBA{R: 200, G: 200, B: 255, A: 255}

// Scenario is the initial-conditions descriptor for one simulation.
type Scenario struct {
	Name            string     `yaml:"name"`
	Description     string     `yaml:"description,omitempty"`
	G               float64    `yaml:"g"`
	PredictionSteps int        `yaml:"prediction_steps"`
	TimeStep        float64    `yaml:"time_step"`
	UpdateMode      string     `yaml:"update_mode"`
	Integrator      string     `yaml:"integrator"`
	Predict         bool       `yaml:"predict"`
	Dt              float64    `yaml:"dt"`
	Duration        float64    `yaml:"duration"`
	AutoOrbit       bool       `yaml:"auto_orbit,omitempty"`
	Bodies          []BodySpec `yaml:"bodies"`
}

type BodySpec struct {
	Name     string     `yaml:"name"`
	Position [2]float64 `yaml:"position,flow"`
	Velocity [2]float64 `yaml:"velocity,flow"`
	Mass     float64    `yaml:"mass"`
	Radius   float64    `yaml:"radius,omitempty"`
	Color    string     `yaml:"color,omitempty"`
}

// DefaultScenario returns the settings every loaded file starts from. It has
// no bodies.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:            "untitled",
		G:               DefaultG,
		PredictionSteps: DefaultPredictionSteps,
		TimeStep:        DefaultTimeStep,
		UpdateMode:      DefaultUpdateMode,
		Integrator:      DefaultIntegrator,
		Predict:         true,
		Dt:              DefaultDt,
		Duration:        DefaultDuration,
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve returns the preset called name, or loads name as a file path when
// no such preset exists.
func Resolve(name string) (*Scenario, error) {
	if sc := GetPreset(name); sc != nil {
		return sc, nil
	}
	sc, err := Load(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("unknown scenario %q (presets: %v)", name, ListPresets())
		}
		return nil, err
	}
	return sc, nil
}

func (sc *Scenario) Constants() dynamo.Constants {
	return dynamo.Constants{
		G:               sc.G,
		PredictionSteps: sc.PredictionSteps,
		TimeStep:        sc.TimeStep,
	}
}

func (sc *Scenario) Mode() (dynamo.UpdateMode, error) {
	return dynamo.ParseUpdateMode(sc.UpdateMode)
}

func (sc *Scenario) RunConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Dt = sc.Dt
	cfg.Duration = sc.Duration
	return cfg
}

func (sc *Scenario) Validate() error {
	if err := sc.Constants().Validate(); err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	if _, err := sc.Mode(); err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	if len(sc.Bodies) == 0 {
		return fmt.Errorf("scenario %s: no bodies: %w", sc.Name, dynamo.ErrParameterBounds)
	}
	for i, b := range sc.Bodies {
		if !(b.Mass > 0) {
			return fmt.Errorf("scenario %s: body %d (%s): %w (got %g)", sc.Name, i, b.Name, dynamo.ErrNonPositiveMass, b.Mass)
		}
		if b.Radius < 0 {
			return fmt.Errorf("scenario %s: body %d (%s): negative radius: %w", sc.Name, i, b.Name, dynamo.ErrParameterBounds)
		}
	}
	return nil
}

// Build validates the scenario and creates a fresh system from it. Bodies
// are added in file order, which fixes the force summation order.
func (sc *Scenario) Build() (*dynamo.System, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	specs := make([]BodySpec, len(sc.Bodies))
	copy(specs, sc.Bodies)
	if sc.AutoOrbit {
		SetOrbitalVelocities(specs, sc.G)
	}

	sys := dynamo.NewSystem()
	for i, b := range specs {
		radius := b.Radius
		if radius == 0 {
			radius = DefaultRadius
		}
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("body%d", i+1)
		}
		sys.Add(dynamo.NewBody(
			name,
			vec.New(b.Position[0], b.Position[1]),
			vec.New(b.Velocity[0], b.Velocity[1]),
			b.Mass,
			radius,
			ParseColor(b.Color),
		))
	}
	return sys, nil
}

// SetOrbitalVelocities gives every body after the first, whose velocity is
// zero, the circular-orbit velocity around the first body.
func SetOrbitalVelocities(bodies []BodySpec, g float64) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	for i := 1; i < len(bodies); i++ {
		if bodies[i].Velocity != [2]float64{} {
			continue
		}
		dx := bodies[i].Position[0] - central.Position[0]
		dy := bodies[i].Position[1] - central.Position[1]
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}
		v := math.Sqrt(g * central.Mass / r)
		bodies[i].Velocity[0] = central.Velocity[0] - dy/r*v
		bodies[i].Velocity[1] = central.Velocity[1] + dx/r*v
	}
}

// ParseColor reads "#rrggbb". Anything else yields DefaultColor.
func ParseColor(hex string) color.RGBA {
	var r, g, b uint8
	if len(hex) == 7 && hex[0] == '#' {
		n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
		if err == nil && n == 3 {
			return color.RGBA{R: r, G: g, B: b, A: 255}
		}
	}
	return DefaultColor
}

func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
