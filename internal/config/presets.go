package config

import (
	"math"
	"sort"
)

// Figure-eight initial conditions (Chenciner & Montgomery, G = m = 1),
// scaled to length 100 and mass 1e7 under G = 0.001. Velocities scale by
// sqrt(G*M/L) = 10 and time by sqrt(L³/(G*M)) = 10, so one period is about
// 63.26 s.
const (
	fig8X  = 0.97000436
	fig8Y  = -0.24308753
	fig8VX = -0.93240737
	fig8VY = -0.86473146

	Fig8Length = 100.0
	Fig8Mass   = 1e7
	Fig8Period = 6.32591398 * 10
)

var Presets = map[string]*Scenario{
	"binary":     binaryPreset(),
	"figure8":    figure8Preset(),
	"sun-planet": sunPlanetPreset(),
	"original":   originalPreset(),
}

// binaryPreset is an equal-mass pair on a circular orbit: separation r = 50,
// relative speed sqrt(G(m1+m2)/r) = 20 split evenly between the bodies.
func binaryPreset() *Scenario {
	sc := DefaultScenario()
	sc.Name = "binary"
	sc.Description = "equal-mass circular binary, period 5π s"
	sc.Duration = 5 * math.Pi
	m := 1e7
	r := 50.0
	v := math.Sqrt(DefaultG * (m + m) / r)
	sc.Bodies = []BodySpec{
		{Name: "green", Position: [2]float64{-r / 2, 0}, Velocity: [2]float64{0, v / 2}, Mass: m, Radius: 10, Color: "#00ff00"},
		{Name: "blue", Position: [2]float64{r / 2, 0}, Velocity: [2]float64{0, -v / 2}, Mass: m, Radius: 10, Color: "#0000ff"},
	}
	return sc
}

func figure8Preset() *Scenario {
	sc := DefaultScenario()
	sc.Name = "figure8"
	sc.Description = "Chenciner-Montgomery three-body figure-eight choreography"
	sc.Duration = Fig8Period
	vs := math.Sqrt(DefaultG * Fig8Mass / Fig8Length)
	sc.Bodies = []BodySpec{
		{Name: "red", Position: [2]float64{fig8X * Fig8Length, fig8Y * Fig8Length}, Velocity: [2]float64{-fig8VX / 2 * vs, -fig8VY / 2 * vs}, Mass: Fig8Mass, Radius: 8, Color: "#ff5555"},
		{Name: "green", Position: [2]float64{-fig8X * Fig8Length, -fig8Y * Fig8Length}, Velocity: [2]float64{-fig8VX / 2 * vs, -fig8VY / 2 * vs}, Mass: Fig8Mass, Radius: 8, Color: "#55ff55"},
		{Name: "blue", Position: [2]float64{0, 0}, Velocity: [2]float64{fig8VX * vs, fig8VY * vs}, Mass: Fig8Mass, Radius: 8, Color: "#5555ff"},
	}
	return sc
}

func sunPlanetPreset() *Scenario {
	sc := DefaultScenario()
	sc.Name = "sun-planet"
	sc.Description = "heavy star with two light planets on auto-computed circular orbits"
	sc.Duration = 120
	sc.AutoOrbit = true
	sc.Bodies = []BodySpec{
		{Name: "sun", Mass: 1e8, Radius: 20, Color: "#ffcc00"},
		{Name: "inner", Position: [2]float64{150, 0}, Mass: 1e4, Radius: 4, Color: "#88aaff"},
		{Name: "outer", Position: [2]float64{0, -260}, Mass: 5e4, Radius: 6, Color: "#ff8866"},
	}
	return sc
}

// originalPreset places the bodies at ±r, each given the full
// sqrt(G(m1+m2)/r). The true separation is 2r, so the pair is unbound and
// drifts apart.
func originalPreset() *Scenario {
	sc := DefaultScenario()
	sc.Name = "original"
	sc.Description = "±50 pair at circular speed for r=50 (unbound)"
	sc.Predict = false
	sc.Duration = 20
	m := 1e7
	r := 50.0
	v := math.Sqrt(DefaultG * (m + m) / r)
	sc.Bodies = []BodySpec{
		{Name: "green", Position: [2]float64{-r, 0}, Velocity: [2]float64{0, v}, Mass: m, Radius: 10, Color: "#00ff00"},
		{Name: "blue", Position: [2]float64{r, 0}, Velocity: [2]float64{0, -v}, Mass: m, Radius: 10, Color: "#0000ff"},
	}
	return sc
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scenario {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	sc := *p
	sc.Bodies = make([]BodySpec, len(p.Bodies))
	copy(sc.Bodies, p.Bodies)
	return &sc
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
