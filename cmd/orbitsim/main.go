package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/experiment"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	dt         float64
	duration   float64
	gravity    float64
	predSteps  int
	timeStep   float64
	mode       string
	integrator string
	predict    bool
	// svg output size
	svgWidth  int
	svgHeight int
	// lyapunov perturbation for analyze
	perturbation float64
	// frame step for the window host, 0 uses the frame time
	fixedDt float64
	// snapshot canvas
	canvasW int
	canvasH int
	asSVG   bool

	logger *log.Logger
)

// main registers the commands and flags, starts the window host when no
// subcommand is given, and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "n-body gravity sandbox",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the window host when no command given
			return runGUI(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a headless simulation and store it",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [scenario]",
		Short: "run simulation in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addScenarioFlags(guiCmd)
	guiCmd.Flags().Float64Var(&fixedDt, "fixed-dt", 0, "fixed frame step (0 uses frame time)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run trajectories",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "orbital period and chaos analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-6, "lyapunov perturbation")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export trajectory as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export trajectories as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a scenario file from a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  initScenario,
	}
	initCmd.Flags().String("preset", "binary", "preset to start from")

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}
	addScenarioFlags(benchCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [integrators...]",
		Short: "compare integrators on a scenario",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [scenario]",
		Short: "draw the final frame of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	addScenarioFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&canvasW, "width", 60, "canvas width in cells")
	snapshotCmd.Flags().IntVar(&canvasH, "height", 30, "canvas height in cells")
	snapshotCmd.Flags().BoolVar(&asSVG, "svg", false, "write svg instead of text")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, analyzeCmd,
		exportCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd,
		presetsCmd, initCmd, benchCmd, compareCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&gravity, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().IntVar(&predSteps, "steps", config.DefaultPredictionSteps, "orbit prediction steps")
	cmd.Flags().Float64Var(&timeStep, "time-step", config.DefaultTimeStep, "orbit prediction timestep")
	cmd.Flags().StringVar(&mode, "mode", config.DefaultUpdateMode, "update mode (sequential, simultaneous)")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	cmd.Flags().BoolVar(&predict, "predict", true, "compute predicted orbits")
}

func setupLogger(w io.Writer) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "orbitsim",
	})
	return nil
}

// fileLogger redirects logging for hosts that own the terminal.
func fileLogger(name string) (*log.Logger, func(), error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dataDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	l := logger.With()
	l.SetOutput(f)
	return l, func() { f.Close() }, nil
}

// loadScenario resolves name and applies the flags the user set.
func loadScenario(cmd *cobra.Command, name string) (*config.Scenario, error) {
	sc, err := config.Resolve(name)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, sc)
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func applyFlags(cmd *cobra.Command, sc *config.Scenario) {
	if cmd == nil {
		return
	}
	flags := cmd.Flags()
	if flags.Changed("dt") {
		sc.Dt = dt
	}
	if flags.Changed("time") {
		sc.Duration = duration
	}
	if flags.Changed("g") {
		sc.G = gravity
	}
	if flags.Changed("steps") {
		sc.PredictionSteps = predSteps
	}
	if flags.Changed("time-step") {
		sc.TimeStep = timeStep
	}
	if flags.Changed("mode") {
		sc.UpdateMode = mode
	}
	if flags.Changed("integrator") {
		sc.Integrator = integrator
	}
	if flags.Changed("predict") {
		sc.Predict = predict
	}
}

// buildSimulator returns a builder used by the hosts' preset menus.
func buildSimulator(cmd *cobra.Command, l *log.Logger) func(*config.Scenario) (*sim.Simulator, error) {
	return func(sc *config.Scenario) (*sim.Simulator, error) {
		applyFlags(cmd, sc)
		exp := experiment.New(sc, experiment.NewRegistry(), l)
		if err := exp.Setup(); err != nil {
			return nil, err
		}
		return exp.GetSimulator(), nil
	}
}
