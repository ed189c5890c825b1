package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

type ExportBody struct {
	Name       string       `json:"name"`
	Mass       float64      `json:"mass,omitempty"`
	Positions  [][2]float64 `json:"positions"`
	Velocities [][2]float64 `json:"velocities"`
}

type ExportData struct {
	Scenario    string             `json:"scenario"`
	Integrator  string             `json:"integrator"`
	Mode        string             `json:"mode"`
	G           float64            `json:"g"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Times       []float64          `json:"times"`
	Bodies      []ExportBody       `json:"bodies"`
	Barycenters [][2]float64       `json:"barycenters,omitempty"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// ExportJSON writes a self-contained, body-major JSON document for result.
func ExportJSON(w io.Writer, meta *RunMetadata, result *dynamo.Result) error {
	data := ExportData{
		Scenario:    meta.Scenario,
		Integrator:  meta.Integrator,
		Mode:        meta.Mode,
		G:           meta.G,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Steps:       len(result.Times),
		Times:       result.Times,
		Bodies:      make([]ExportBody, len(result.Names)),
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}

	for i, name := range result.Names {
		b := ExportBody{
			Name:       name,
			Positions:  make([][2]float64, 0, len(result.States)),
			Velocities: make([][2]float64, 0, len(result.States)),
		}
		if i < len(result.Masses) {
			b.Mass = result.Masses[i]
		}
		for _, states := range result.States {
			st := states[i]
			b.Positions = append(b.Positions, [2]float64{st.Position.X, st.Position.Y})
			b.Velocities = append(b.Velocities, [2]float64{st.Velocity.X, st.Velocity.Y})
		}
		data.Bodies[i] = b
	}
	for _, c := range result.Barycenters {
		data.Barycenters = append(data.Barycenters, [2]float64{c.X, c.Y})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
