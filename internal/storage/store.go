package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vec"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string {
	return s.baseDir
}

// RunInfo describes how a run was produced.
type RunInfo struct {
	Scenario   string
	Dt         float64
	Duration   float64
	Integrator string
	Mode       string
	G          float64
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Integrator  string             `json:"integrator"`
	Mode        string             `json:"mode"`
	G           float64            `json:"g"`
	Bodies      []string           `json:"bodies"`
	Masses      []float64          `json:"masses"`
	Steps       int                `json:"steps"`
	Samples     int                `json:"samples"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes result under a new run directory and returns its ID.
func (s *Store) Save(info RunInfo, result *dynamo.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", sanitize(info.Scenario), now.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for n := 2; ; n++ {
		if _, err := os.Stat(runDir); errors.Is(err, os.ErrNotExist) {
			break
		}
		runID = fmt.Sprintf("%s_%d_%d", sanitize(info.Scenario), now.Unix(), n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scenario:    info.Scenario,
		Timestamp:   now,
		Dt:          info.Dt,
		Duration:    info.Duration,
		Integrator:  info.Integrator,
		Mode:        info.Mode,
		G:           info.G,
		Bodies:      result.Names,
		Masses:      result.Masses,
		Steps:       result.StepsTaken,
		Samples:     len(result.Times),
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}

	if err := writeRun(runDir, meta, result); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save %s: %w", runID, err)
	}

	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, result *dynamo.Result) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	return WriteCSV(csvFile, result)
}

// WriteCSV writes one row per sample: time followed by x, y, vx, vy for every
// body.
func WriteCSV(out io.Writer, result *dynamo.Result) error {
	w := csv.NewWriter(out)

	header := []string{"time"}
	for _, name := range result.Names {
		header = append(header, name+"_x", name+"_y", name+"_vx", name+"_vy")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, st := range result.States[i] {
			row = append(row,
				strconv.FormatFloat(st.Position.X, 'f', 6, 64),
				strconv.FormatFloat(st.Position.Y, 'f', 6, 64),
				strconv.FormatFloat(st.Velocity.X, 'f', 6, 64),
				strconv.FormatFloat(st.Velocity.Y, 'f', 6, 64),
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the ID of the most recent run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs in %s", s.baseDir)
	}
	return runs[0].ID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadResult rebuilds a Result from a stored run. Barycenters are recomputed
// from the stored masses.
func (s *Store) LoadResult(runID string) (*RunMetadata, *dynamo.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	result, err := ReadCSV(file)
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}

	if len(meta.Bodies) == len(result.Names) {
		result.Names = meta.Bodies
	}
	result.Masses = meta.Masses
	result.Metrics = meta.Metrics
	result.EnergyDrift = meta.EnergyDrift
	result.StepsTaken = meta.Steps
	result.Barycenters = barycenters(result)

	return meta, result, nil
}

// ReadCSV parses the format written by WriteCSV. Names come from the header.
func ReadCSV(in io.Reader) (*dynamo.Result, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty trajectory")
	}

	header := records[0]
	if len(header) == 0 || header[0] != "time" || (len(header)-1)%4 != 0 {
		return nil, fmt.Errorf("malformed trajectory header %v", header)
	}
	n := (len(header) - 1) / 4

	result := &dynamo.Result{
		Names:   make([]string, n),
		Times:   make([]float64, 0, len(records)-1),
		States:  make([][]dynamo.BodyState, 0, len(records)-1),
		Metrics: make(map[string]float64),
	}
	for i := 0; i < n; i++ {
		result.Names[i] = strings.TrimSuffix(header[1+4*i], "_x")
	}

	for line, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line+2, len(header), len(record))
		}

		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line+2, err)
			}
			vals[j] = v
		}

		states := make([]dynamo.BodyState, n)
		for i := range states {
			k := 1 + 4*i
			states[i] = dynamo.BodyState{
				Position: vec.New(vals[k], vals[k+1]),
				Velocity: vec.New(vals[k+2], vals[k+3]),
			}
		}
		result.Times = append(result.Times, vals[0])
		result.States = append(result.States, states)
	}

	return result, nil
}

func barycenters(r *dynamo.Result) []vec.Vec2 {
	out := make([]vec.Vec2, len(r.States))
	if len(r.Masses) == 0 {
		return out
	}
	for i, states := range r.States {
		sum := vec.Zero
		total := 0.0
		for j, st := range states {
			if j >= len(r.Masses) {
				break
			}
			sum = sum.Add(st.Position.Scale(r.Masses[j]))
			total += r.Masses[j]
		}
		if total != 0 {
			out[i] = sum.Div(total)
		}
	}
	return out
}

func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." {
		return "run"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '-'
		}
		return r
	}, name)
}
