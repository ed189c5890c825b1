package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/vec"
)

// World y points up; raylib screen y points down.
func toScreen(p vec.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(-p.Y))
}

// fitCamera centers on the barycenter and zooms so every body fits.
func (a *App) fitCamera() {
	sys := a.Sim.System()
	c := physics.Barycenter(sys)
	extent := physics.MaxDistance(sys, c)
	if extent == 0 {
		extent = 100
	}
	a.Camera.Target = toScreen(c)
	a.Camera.Zoom = float32(0.4 * screenH / (1.3 * extent))
}

// drawSystem draws orbit paths first so bodies sit on top of them.
func (a *App) drawSystem() {
	sys := a.Sim.System()

	for _, b := range sys.Bodies {
		if len(b.OrbitPath) < 2 {
			continue
		}
		points := make([]rl.Vector2, len(b.OrbitPath))
		for i, p := range b.OrbitPath {
			points[i] = toScreen(p)
		}
		rl.DrawLineStrip(points, rl.ColorAlpha(b.Color, 0.5))
	}

	for _, b := range sys.Bodies {
		pos := toScreen(b.Position)
		rl.DrawLineV(pos, toScreen(b.Position.Add(b.Velocity)), ColAccent)
		rl.DrawCircleV(pos, float32(b.Radius), b.Color)
	}

	bary := toScreen(a.Sim.Barycenter())
	size := 6 / a.Camera.Zoom
	rl.DrawLineV(rl.NewVector2(bary.X-size, bary.Y), rl.NewVector2(bary.X+size, bary.Y), ColBary)
	rl.DrawLineV(rl.NewVector2(bary.X, bary.Y-size), rl.NewVector2(bary.X, bary.Y+size), ColBary)
}
