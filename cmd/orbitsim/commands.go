package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/experiment"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/gui"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/vec"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	exp := experiment.New(sc, experiment.NewRegistry(), logger)
	if err := exp.Setup(); err != nil {
		return err
	}
	if cmd.Flags().Changed("predict") {
		exp.SetRunPrediction(predict)
	}

	fmt.Printf("running %s (%d bodies)\n", sc.Name, len(sc.Bodies))
	start := time.Now()
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunInfo{
		Scenario:   sc.Name,
		Dt:         sc.Dt,
		Duration:   sc.Duration,
		Integrator: sc.Integrator,
		Mode:       sc.UpdateMode,
		G:          sc.G,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d in %v\n", result.StepsTaken, elapsed.Round(time.Millisecond))
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	for _, name := range sortedMetricNames(result.Metrics) {
		fmt.Printf("%s: %.6g\n", name, result.Metrics[name])
	}
	if len(result.Errors) > 0 {
		fmt.Printf("stopped early: %v\n", result.Errors[0])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	l, closeLog, err := fileLogger("live.log")
	if err != nil {
		return err
	}
	defer closeLog()
	build := buildSimulator(cmd, l)

	var m tea.Model
	if len(args) == 0 {
		m = viz.NewPicker(func(sc *config.Scenario) (viz.Model, error) {
			s, err := build(sc)
			if err != nil {
				return viz.Model{}, err
			}
			return viz.NewModel(s, sc.Name, sc.Dt), nil
		})
	} else {
		sc, err := loadScenario(cmd, args[0])
		if err != nil {
			return err
		}
		s, err := build(sc)
		if err != nil {
			return err
		}
		m = viz.NewModel(s, sc.Name, sc.Dt)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	l, closeLog, err := fileLogger("gui.log")
	if err != nil {
		return err
	}
	defer closeLog()
	build := buildSimulator(cmd, l)

	if len(args) == 0 {
		gui.RunInteractive(build, fixedDt)
		return nil
	}

	sc, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}
	s, err := build(sc)
	if err != nil {
		return err
	}
	gui.Run(s, sc.Name, fixedDt)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tBODIES\tINTEGRATOR\tMODE\tSTEPS\tDRIFT\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%d\t%.2e\t%s\n",
			r.ID, r.Scenario, len(r.Bodies), r.Integrator, r.Mode, r.Steps,
			r.EnergyDrift, r.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// loadRun loads the named run, or the latest one when no ID is given.
func loadRun(args []string) (*storage.RunMetadata, *dynamo.Result, error) {
	st := storage.New(dataDir)
	var runID string
	if len(args) > 0 {
		runID = args[0]
	} else {
		id, err := st.Latest()
		if err != nil {
			return nil, nil, err
		}
		runID = id
	}

	meta, result, err := st.LoadResult(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(result.States) == 0 {
		return nil, nil, fmt.Errorf("run %s: no data", runID)
	}
	return meta, result, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s  integrator: %s  mode: %s\n\n", meta.Scenario, meta.Integrator, meta.Mode)

	for i, name := range result.Names {
		track := result.Track(i)
		xs := make([]float64, len(track))
		ys := make([]float64, len(track))
		for j, p := range track {
			xs[j] = p.X
			ys[j] = p.Y
		}

		graph := asciigraph.PlotMany([][]float64{xs, ys},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Blue),
			asciigraph.Caption(fmt.Sprintf("%s x (green), y (blue)", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	for i, name := range result.Names {
		fmt.Printf("%s path:\n", name)
		fmt.Println(analysis.TrackToASCII(result.Track(i), 70, 20))
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}
	if len(result.Times) < 2 {
		return fmt.Errorf("run %s: too few samples", meta.ID)
	}
	sampleDt := result.Times[1] - result.Times[0]

	fmt.Printf("orbit analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tFFT PERIOD\tCROSSING PERIOD")
	for i, name := range result.Names {
		track := result.Track(i)
		xs := make([]float64, len(track))
		for j, p := range track {
			xs[j] = p.X
		}

		fftPeriod := "-"
		if p, err := analysis.DominantPeriod(xs, sampleDt); err == nil {
			fftPeriod = fmt.Sprintf("%.3f ± %.3f", p, p*p*analysis.BinWidth(len(xs), sampleDt))
		}
		crossing := "-"
		if p := analysis.CrossingPeriod(result.Times, xs); p > 0 {
			crossing = fmt.Sprintf("%.3f", p)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, fftPeriod, crossing)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	sys := initialSystem(result)
	integ, err := experiment.NewRegistry().GetIntegrator(meta.Integrator)
	if err != nil {
		return err
	}
	m, err := dynamo.ParseUpdateMode(meta.Mode)
	if err != nil {
		return err
	}
	stepper := integrators.NewStepper(physics.NewGravity(meta.G), integ, m)
	lambda := analysis.LyapunovExponent(sys, stepper, meta.Dt, meta.Duration, perturbation)

	fmt.Println()
	fmt.Printf("energy drift: %.3e\n", meta.EnergyDrift)
	fmt.Printf("lyapunov exponent: %.4f\n", lambda)
	if lambda > 0.01 {
		fmt.Println("trajectory is sensitive to initial conditions")
	}
	return nil
}

// initialSystem rebuilds the first recorded sample as a system.
func initialSystem(result *dynamo.Result) *dynamo.System {
	sys := dynamo.NewSystem()
	for i, bs := range result.States[0] {
		mass := 1.0
		if i < len(result.Masses) {
			mass = result.Masses[i]
		}
		sys.Add(dynamo.NewBody(result.Names[i], bs.Position, bs.Velocity, mass, config.DefaultRadius, config.DefaultColor))
	}
	return sys
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args)
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}

	// colors only survive when the run came from a preset
	colors := make(map[string]string)
	if sc := config.GetPreset(meta.Scenario); sc != nil {
		for _, b := range sc.Bodies {
			colors[b.Name] = b.Color
		}
	}

	tracks := make([]export.Track, len(result.Names))
	for i, name := range result.Names {
		tracks[i] = export.Track{
			Name:   name,
			Color:  colors[name],
			Points: result.Track(i),
		}
	}

	svg := export.TrajectoryToSVG(tracks, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("run %s: nothing to draw", meta.ID)
	}
	_, err = io.WriteString(os.Stdout, svg+"\n")
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tMASS\tMODE\tDURATION\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		sc := config.GetPreset(name)
		sys, err := sc.Build()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%.3g\t%s\t%.1f\t%s\n",
			name, sys.Len(), physics.TotalMass(sys), sc.UpdateMode, sc.Duration, sc.Description)
	}
	return w.Flush()
}

// snapshot runs a scenario headless and draws its final frame, predicted
// orbits included, on a Braille canvas.
func snapshot(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	exp := experiment.New(sc, experiment.NewRegistry(), logger)
	if err := exp.Setup(); err != nil {
		return err
	}
	s := exp.GetSimulator()

	trails := make([][]vec.Vec2, s.System().Len())
	s.SetPrediction(false)
	err = s.RunWithCallback(cmd.Context(), sc.RunConfig(), func(sys *dynamo.System, t float64) bool {
		for i, b := range sys.Bodies {
			trails[i] = append(trails[i], b.Position)
		}
		return true
	})
	if err != nil {
		return err
	}
	// one more frame so the drawn orbit paths start at the final state
	s.SetPrediction(sc.Predict)
	if _, err := s.Frame(sc.Dt); err != nil {
		return err
	}

	sys := s.System()
	canvas := viz.NewCanvas(canvasW, canvasH)
	vp := viz.NewViewport(canvasW*2, canvasH*4)
	c := physics.Barycenter(sys)
	extent := physics.MaxDistance(sys, c)
	for _, trail := range trails {
		for _, p := range trail {
			extent = math.Max(extent, p.Sub(c).Magnitude())
		}
	}
	vp.Fit(c, 1.1*extent)
	viz.DrawSystem(canvas, vp, sys, s.Barycenter(), trails)

	if asSVG {
		_, err = io.WriteString(os.Stdout, export.CanvasToSVG(canvas, 3, "#00ff88")+"\n")
		return err
	}
	fmt.Printf("%s at t=%.2fs\n", sc.Name, s.Time())
	fmt.Print(canvas.Render(viz.CurrentTheme))
	return nil
}

func initScenario(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("preset")
	sc := config.GetPreset(name)
	if sc == nil {
		return fmt.Errorf("unknown preset %q (presets: %s)", name, strings.Join(config.ListPresets(), ", "))
	}
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	if err := config.Save(args[0], sc); err != nil {
		return err
	}
	fmt.Printf("wrote %s (from %s)\n", args[0], name)
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	base, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.001, 0.01, 0.1}

	fmt.Printf("benchmarking %s (%d bodies)\n\n", base.Name, len(base.Bodies))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			sc := *base
			sc.Duration = dur
			sc.Dt = step
			sc.Predict = false

			exp := experiment.New(&sc, experiment.NewRegistry(), nil)
			if err := exp.Setup(); err != nil {
				return err
			}
			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, result.StepsTaken, elapsed, stepsPerSec)
		}
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	base, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	names := args[1:]
	if len(names) == 0 {
		names = registry.ListIntegrators()
	}

	fmt.Printf("comparing integrators on %s\n\n", base.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tMODE\tSTEPS\tENERGY DRIFT\tMAX EXTENT\tTIME")

	for _, name := range names {
		for _, m := range []string{dynamo.Sequential.String(), dynamo.Simultaneous.String()} {
			sc := *base
			sc.Integrator = name
			sc.UpdateMode = m
			sc.Predict = false

			extent, err := registry.GetMetric("max_extent", sc.G)
			if err != nil {
				return err
			}
			exp := experiment.New(&sc, registry, nil)
			if err := exp.Setup(extent); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			drift := fmt.Sprintf("%.3e", result.EnergyDrift)
			if math.IsNaN(result.EnergyDrift) || len(result.Errors) > 0 {
				drift = "diverged"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.1f\t%v\n",
				name, m, result.StepsTaken, drift, result.Metrics["max_extent"], elapsed.Round(time.Microsecond))
		}
	}
	return w.Flush()
}

func sortedMetricNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
