package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/vec"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailCapacity   = 200
	maxSpeed        = 32
)

// Snapshot stores body positions at a specific time for replay.
type Snapshot struct {
	Positions  []vec.Vec2
	Velocities []vec.Vec2
	Barycenter vec.Vec2
	Time       float64
	Energy     float64
}

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	labelStyle  = MetricLabel.Width(12)
	valueStyle  = MetricValue
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the Bubble Tea host around a Simulator. Each tick runs speed
// frames of fixed size dt.
type Model struct {
	sim           *sim.Simulator
	name          string
	dt            float64
	speed         int
	width, height int
	canvas        *Canvas
	viewport      Viewport
	follow        bool
	trails        [][]vec.Vec2
	running       bool
	energyHistory []float64
	history       []Snapshot
	playHead      int
	recording     bool
	frames        []*image.Paletted
	gifPath       string
	showHelp      bool
	err           error
}

// NewModel fits the view to the initial system extent.
func NewModel(s *sim.Simulator, name string, dt float64) Model {
	m := Model{
		sim:           s,
		name:          name,
		dt:            dt,
		speed:         1,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		viewport:      NewViewport(width*2, height*4),
		trails:        make([][]vec.Vec2, s.System().Len()),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		history:       make([]Snapshot, 0, historyCapacity),
		playHead:      -1,
		gifPath:       "orbitsim.gif",
	}
	m.fit()
	return m
}

func (m *Model) fit() {
	sys := m.sim.System()
	c := physics.Barycenter(sys)
	m.viewport.Fit(c, 1.3*physics.MaxDistance(sys, c))
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if m.recording {
				m.saveGIF()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "p":
			m.sim.TogglePrediction()
			if !m.sim.Predicting() {
				for _, b := range m.sim.System().Bodies {
					b.OrbitPath = nil
				}
			}
		case "r":
			m.reset()
		case "f":
			m.follow = !m.follow
		case "+", "=":
			if m.speed < maxSpeed {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "z":
			m.viewport.Zoom(1.25)
		case "x":
			m.viewport.Zoom(0.8)
		case "c":
			m.fit()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running && m.err == nil {
			if m.playHead == -1 {
				for i := 0; i < m.speed; i++ {
					if err := m.step(); err != nil {
						m.err = err
						m.running = false
						break
					}
				}
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cw := w - 52
	ch := h - 4
	if cw < 20 || ch < 8 {
		return
	}
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
	m.viewport.W, m.viewport.H = cw*2, ch*4
	m.fit()
}

// step runs one simulation frame and records it.
func (m *Model) step() error {
	res, err := m.sim.Frame(m.dt)
	if err != nil {
		return err
	}

	sys := m.sim.System()
	energy := m.sim.Energy()
	m.energyHistory = appendCapped(m.energyHistory, energy, historyCapacity)

	snap := Snapshot{
		Positions:  make([]vec.Vec2, sys.Len()),
		Velocities: make([]vec.Vec2, sys.Len()),
		Barycenter: res.Barycenter,
		Time:       res.Time,
		Energy:     energy,
	}
	for i, b := range sys.Bodies {
		snap.Positions[i] = b.Position
		snap.Velocities[i] = b.Velocity
		m.trails[i] = appendCapped(m.trails[i], b.Position, trailCapacity)
	}
	m.history = appendCapped(m.history, snap, historyCapacity)
	return nil
}

func appendCapped[T any](s []T, v T, capacity int) []T {
	s = append(s, v)
	if len(s) > capacity {
		s = s[1:]
	}
	return s
}

// scrub changes the playback position in history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) > 0 {
			m.playHead = len(m.history) - 1
			m.running = false
		} else {
			return
		}
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// reset restores the initial system and clears all recorded history.
func (m *Model) reset() {
	m.sim.Reset()
	for i := range m.trails {
		m.trails[i] = m.trails[i][:0]
	}
	m.energyHistory = m.energyHistory[:0]
	m.history = m.history[:0]
	m.playHead = -1
	m.err = nil
	m.fit()
}

// draw renders the live system, or the history snapshot under the play head.
func (m *Model) draw() {
	m.canvas.Clear()

	sys := m.sim.System()
	bary := m.sim.Barycenter()
	if m.playHead != -1 && m.playHead < len(m.history) {
		snap := m.history[m.playHead]
		sys = sys.Clone()
		for i, b := range sys.Bodies {
			b.Position = snap.Positions[i]
			b.Velocity = snap.Velocities[i]
		}
		bary = snap.Barycenter
	}

	if m.follow {
		m.viewport.Center = bary
	}
	DrawSystem(m.canvas, m.viewport, sys, bary, m.trails)
}

// View renders the TUI interface.
func (m Model) View() string {
	theme := CurrentTheme
	header := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).MarginBottom(1)
	active := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	graph := lipgloss.NewStyle().Foreground(theme.Success).Padding(1, 0)

	t := m.sim.Time()
	status := StatusRunning.Render("RUNNING")
	switch {
	case m.err != nil:
		status = lipgloss.NewStyle().Foreground(theme.Error).Render("DIVERGED")
	case m.playHead != -1:
		offset := m.history[m.playHead].Time - m.history[len(m.history)-1].Time
		t = m.history[m.playHead].Time
		if m.running {
			status = fmt.Sprintf("REPLAYING (%.1fs)", offset)
		} else {
			status = fmt.Sprintf("REPLAY PAUSED (%.1fs)", offset)
		}
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	}
	if m.recording {
		status += " " + StatusRecording.Render("● REC")
	}

	canvasView := canvasStyle.Render(m.canvas.Render(theme))

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(status + "\n")
	if m.playHead != -1 && len(m.history) > 0 {
		s.WriteString(ProgressBar(float64(m.playHead+1)/float64(len(m.history)), 30) + "\n")
	}
	s.WriteString("\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graph.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", t)) + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Frames())) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%dx  dt=%g", m.speed, m.dt)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4g", m.sim.Energy())) + "\n")
	s.WriteString(labelStyle.Render("Ang. mom.") + valueStyle.Render(fmt.Sprintf("%.4g", physics.AngularMomentum(m.sim.System()))) + "\n")
	s.WriteString(labelStyle.Render("") + SparklineChart(m.energyHistory, 30) + "\n")
	s.WriteString(labelStyle.Render("Mode") + valueStyle.Render(m.sim.Mode().String()+" / "+m.sim.Integrator().Name()) + "\n")
	predict := "off"
	if m.sim.Predicting() {
		predict = fmt.Sprintf("%d steps", m.sim.Constants().PredictionSteps)
	}
	s.WriteString(labelStyle.Render("Predict") + valueStyle.Render(predict) + "\n")

	s.WriteString("\n" + HeaderStyle.Render("BODIES") + "\n")
	for _, b := range m.sim.System().Bodies {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(config.FormatColor(b.Color))).Render("●")
		line := fmt.Sprintf("%-8s |v| %7.2f", b.Label(), b.Velocity.Magnitude())
		s.WriteString(swatch + " " + active.Render(line) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Width(40).Render(m.err.Error()) + "\n")
	}

	s.WriteString("\n" + Separator(30))
	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit\nP:Predict F:Follow T:Theme\n+/-:Speed Z/X:Zoom ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  P        - Toggle orbit prediction  ║
║  R        - Reset simulation         ║
║  Q/Esc    - Quit                     ║
║  F        - Follow barycenter        ║
║  + / -    - Frames per tick          ║
║  Z / X    - Zoom in / out            ║
║  C        - Re-fit view              ║
║  [        - Rewind (time travel)     ║
║  ]        - Forward (time travel)    ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// captureFrame rasterizes the Braille canvas into one GIF frame.
func (m *Model) captureFrame() {
	const dot = 4
	imgW, imgH := m.width*2*dot, m.height*4*dot
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	for y := 0; y < m.height*4; y++ {
		for x := 0; x < m.width*2; x++ {
			if !m.canvas.IsSet(x, y) {
				continue
			}
			for py := 0; py < dot; py++ {
				for px := 0; px < dot; px++ {
					img.SetColorIndex(x*dot+px, y*dot+py, 1)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		m.err = err
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		m.err = err
	}
}

// Canvas exposes the current drawing, mainly for snapshots and export.
func (m Model) Canvas() *Canvas {
	return m.canvas
}
