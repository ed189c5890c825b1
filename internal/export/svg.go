package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/orbitsim/internal/vec"
	"github.com/san-kum/orbitsim/internal/viz"
)

const svgBackground = "#0a0a0a"

// Track is one polyline in a trajectory plot.
type Track struct {
	Name   string
	Color  string
	Points []vec.Vec2
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, svgBackground, fill)

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := float64(col*2+dx)*scale + scale/2
					cy := float64(row*4+dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws every track on shared axes with equal x and y
// scale, so circular orbits stay circular. Tracks with fewer than two points
// are skipped; if none remain the result is empty.
func TrajectoryToSVG(tracks []Track, width, height int) string {
	drawable := make([]Track, 0, len(tracks))
	for _, tr := range tracks {
		if len(tr.Points) >= 2 {
			drawable = append(drawable, tr)
		}
	}
	if len(drawable) == 0 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, tr := range drawable {
		for _, p := range tr.Points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	scale := math.Min(float64(width), float64(height)) / span

	project := func(p vec.Vec2) (float64, float64) {
		x := float64(width)/2 + (p.X-cx)*scale
		y := float64(height)/2 - (p.Y-cy)*scale
		return x, y
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground)

	for _, tr := range drawable {
		color := tr.Color
		if color == "" {
			color = "#00ff00"
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5"`, color)
		if tr.Name != "" {
			fmt.Fprintf(&sb, ` id="%s"`, escapeAttr(tr.Name))
		}
		sb.WriteString(` d="M`)
		for i, p := range tr.Points {
			x, y := project(p)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")

		x, y := project(tr.Points[len(tr.Points)-1])
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"%s\"/>\n", x, y, color)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func escapeAttr(s string) string {
	r := strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")
	return r.Replace(s)
}
