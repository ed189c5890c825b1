// Package gui is the raylib window host. It calls Simulator.Frame once per
// rendered frame with the real frame time.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/sim"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColPath    = rl.NewColor(255, 255, 255, 90)
	ColBary    = rl.NewColor(255, 80, 80, 255)
)

const (
	screenW = 1280
	screenH = 720
	// maxFrameDt caps the step after a stall (window drag, breakpoint) so a
	// single long frame cannot blow up the integration.
	maxFrameDt = 1.0 / 20
	telemetryN = 300
)

// Builder turns a scenario into a simulator for the window to drive.
type Builder func(sc *config.Scenario) (*sim.Simulator, error)

type App struct {
	Sim       *sim.Simulator
	Name      string
	Camera    rl.Camera2D
	Running   bool
	InMenu    bool
	Presets   []string
	Selected  int
	Telemetry []float64
	// FixedDt, when positive, replaces the measured frame time.
	FixedDt float64
	Font    rl.Font
	Err     error

	build Builder
}

func initWindow() {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(screenW, screenH, "orbitsim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont prefers Liberation Mono and falls back to raylib's built-in font.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func newApp(build Builder) *App {
	return &App{
		Presets:   config.ListPresets(),
		Running:   true,
		Telemetry: make([]float64, 0, telemetryN),
		Font:      loadFont(),
		build:     build,
		Camera: rl.Camera2D{
			Offset: rl.NewVector2(screenW/2, screenH/2),
			Zoom:   1,
		},
	}
}

// Run opens a window on an existing simulator and blocks until it closes.
func Run(s *sim.Simulator, name string, fixedDt float64) {
	initWindow()
	defer rl.CloseWindow()

	app := newApp(nil)
	app.FixedDt = fixedDt
	app.load(s, name)
	app.RunLoop()
}

// RunInteractive starts on the preset menu.
func RunInteractive(build Builder, fixedDt float64) {
	initWindow()
	defer rl.CloseWindow()

	app := newApp(build)
	app.FixedDt = fixedDt
	app.InMenu = true
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) load(s *sim.Simulator, name string) {
	a.Sim = s
	a.Name = name
	a.Telemetry = a.Telemetry[:0]
	a.Err = nil
	a.Running = true
	a.fitCamera()
}

// Update handles input and advances one frame. It returns false to quit.
func (a *App) Update() bool {
	if a.InMenu {
		return a.updateMenu()
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return false
	case rl.IsKeyPressed(rl.KeyEscape):
		if a.build == nil {
			return false
		}
		a.InMenu = true
		return true
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyP):
		a.Sim.TogglePrediction()
		if !a.Sim.Predicting() {
			for _, b := range a.Sim.System().Bodies {
				b.OrbitPath = nil
			}
		}
	case rl.IsKeyPressed(rl.KeyR):
		a.Sim.Reset()
		a.Telemetry = a.Telemetry[:0]
		a.Err = nil
		a.fitCamera()
	case rl.IsKeyPressed(rl.KeyC):
		a.fitCamera()
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Camera.Zoom *= 1 + 0.1*wheel
		if a.Camera.Zoom < 0.01 {
			a.Camera.Zoom = 0.01
		}
	}

	if !a.Running || a.Err != nil {
		return true
	}

	if _, err := a.Sim.Frame(a.frameDt()); err != nil {
		a.Err = err
		a.Running = false
		return true
	}

	a.Telemetry = append(a.Telemetry, a.Sim.Energy())
	if len(a.Telemetry) > telemetryN {
		a.Telemetry = a.Telemetry[1:]
	}
	return true
}

func (a *App) frameDt() float64 {
	if a.FixedDt > 0 {
		return a.FixedDt
	}
	dt := float64(rl.GetFrameTime())
	if dt > maxFrameDt {
		dt = maxFrameDt
	}
	return dt
}

func (a *App) updateMenu() bool {
	switch {
	case rl.IsKeyPressed(rl.KeyQ), rl.IsKeyPressed(rl.KeyEscape):
		return false
	case rl.IsKeyPressed(rl.KeyUp):
		if a.Selected > 0 {
			a.Selected--
		}
	case rl.IsKeyPressed(rl.KeyDown):
		if a.Selected < len(a.Presets)-1 {
			a.Selected++
		}
	case rl.IsKeyPressed(rl.KeyEnter):
		name := a.Presets[a.Selected]
		s, err := a.build(config.GetPreset(name))
		if err != nil {
			a.Err = err
			return true
		}
		a.load(s, name)
		a.InMenu = false
	}
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		rl.BeginMode2D(a.Camera)
		a.drawSystem()
		rl.EndMode2D()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("orbitsim", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Name), 160, 34, 16, ColText)

	a.DrawTelemetry()

	status, col := "RUNNING", ColSelect
	switch {
	case a.Err != nil:
		status, col = "DIVERGED", rl.Red
		a.drawText(a.Err.Error(), 30, 70, 14, rl.Red)
	case !a.Running:
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)

	predict := "OFF"
	if a.Sim.Predicting() {
		predict = "ON"
	}
	a.drawText(fmt.Sprintf("t %.2fs   frame %d   predict %s   %s/%s",
		a.Sim.Time(), a.Sim.Frames(), predict, a.Sim.Mode(), a.Sim.Integrator().Name()), 30, 100, 14, ColText)

	y := 130
	for _, b := range a.Sim.System().Bodies {
		rl.DrawCircle(38, int32(y+7), 5, b.Color)
		a.drawText(fmt.Sprintf("%-8s |v| %.2f", b.Label(), b.Velocity.Magnitude()), 50, y, 14, ColText)
		y += 20
	}

	a.drawText("[SPACE] PAUSE  [P] PREDICT  [R] RESET  [C] FIT  [ESC] MENU  [Q] QUIT", 640, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots recent total energy as a line strip.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.3e", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawMenu() {
	a.drawText("orbitsim", 50, 50, 40, ColSelect)
	a.drawText("Select Scenario", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		desc := config.GetPreset(name).Description
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %-12s %s", name, desc), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %-12s %s", name, desc), 50, y, 20, ColText)
		}
		y += 28
	}

	if a.Err != nil {
		a.drawText(a.Err.Error(), 50, y+20, 16, rl.Red)
	}
	a.drawText("ARROWS: NAVIGATE  ENTER: RUN  Q: QUIT", 880, 680, 14, ColTextDim)
}
