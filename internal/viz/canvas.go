package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orbitsim/internal/vec"
)

// Ink names the layer a dot was drawn by. A cell takes the color of the
// highest ink drawn into it.
type Ink uint8

const (
	InkNone Ink = iota
	InkTrail
	InkPath
	InkHeading
	InkBody
	InkBarycenter
	inkCount
)

const blankCell rune = 0x2800

// Dot bits of a Braille cell, indexed [row][col]. Each cell is 2 dots wide
// and 4 tall.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells addressed in dots: (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	ink           [][]Ink
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		ink:    make([][]Ink, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.ink[i] = make([]Ink, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) locate(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return 0, 0, 0, false
	}
	return y / 4, x / 2, dotBits[y%4][x%2], true
}

// Set lights the dot at (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int, ink Ink) {
	row, col, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= bit
	if ink > c.ink[row][col] {
		c.ink[row][col] = ink
	}
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.locate(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

// InkAt returns the ink of the cell holding dot (x, y).
func (c *Canvas) InkAt(x, y int) Ink {
	row, col, _, ok := c.locate(x, y)
	if !ok {
		return InkNone
	}
	return c.ink[row][col]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blankCell
			c.ink[i][j] = InkNone
		}
	}
}

// line walks from (x0, y0) to (x1, y1) one dot per step along the major axis.
func (c *Canvas) line(x0, y0, x1, y1 int, ink Ink) {
	dx, dy := x1-x0, y1-y0
	n := max(abs(dx), abs(dy))
	if n == 0 {
		c.Set(x0, y0, ink)
		return
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		c.Set(x0+int(math.Round(t*float64(dx))), y0+int(math.Round(t*float64(dy))), ink)
	}
}

// offside reports whether both dots lie beyond the same edge, in which case
// nothing between them can reach the canvas.
func (c *Canvas) offside(x0, y0, x1, y1 int) bool {
	w, h := c.Width*2, c.Height*4
	return (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) ||
		(x0 >= w && x1 >= w) || (y0 >= h && y1 >= h)
}

// Plot lights the dot under world point p.
func (c *Canvas) Plot(vp Viewport, p vec.Vec2, ink Ink) {
	if !p.IsValid() {
		return
	}
	x, y := vp.Project(p)
	c.Set(x, y, ink)
}

// Segment draws the world-space segment a-b.
func (c *Canvas) Segment(vp Viewport, a, b vec.Vec2, ink Ink) {
	if !a.IsValid() || !b.IsValid() {
		return
	}
	x0, y0 := vp.Project(a)
	x1, y1 := vp.Project(b)
	if c.offside(x0, y0, x1, y1) {
		return
	}
	c.line(x0, y0, x1, y1, ink)
}

// Polyline joins consecutive world points. Points that land on the same dot
// as their predecessor are skipped.
func (c *Canvas) Polyline(vp Viewport, path []vec.Vec2, ink Ink) {
	if len(path) == 0 {
		return
	}
	px, py := vp.Project(path[0])
	if len(path) == 1 {
		c.Set(px, py, ink)
		return
	}
	for _, p := range path[1:] {
		x, y := vp.Project(p)
		if x == px && y == py {
			continue
		}
		if !c.offside(px, py, x, y) {
			c.line(px, py, x, y, ink)
		}
		px, py = x, y
	}
}

// Disc fills a world-space disc. It is never smaller than one dot.
func (c *Canvas) Disc(vp Viewport, center vec.Vec2, radius float64, ink Ink) {
	if !center.IsValid() {
		return
	}
	cx, cy := vp.Project(center)
	r := max(int(math.Round(radius*vp.Scale)), 1)
	aspect := vp.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	rx := int(math.Round(float64(r) * aspect))
	for dy := -r; dy <= r; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			fx := float64(dx) / aspect
			if fx*fx+float64(dy*dy) <= float64(r*r) {
				c.Set(cx+dx, cy+dy, ink)
			}
		}
	}
}

// Marker draws a plus sign with arms of arm dots around world point p.
func (c *Canvas) Marker(vp Viewport, p vec.Vec2, arm int, ink Ink) {
	if !p.IsValid() {
		return
	}
	x, y := vp.Project(p)
	c.line(x-arm, y, x+arm, y, ink)
	c.line(x, y-arm, x, y+arm, ink)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render is String with each run of same-ink cells colored from t.
func (c *Canvas) Render(t Theme) string {
	var styles [inkCount]lipgloss.Style
	for i := InkTrail; i < inkCount; i++ {
		styles[i] = lipgloss.NewStyle().Foreground(t.Ink(i))
	}

	var b strings.Builder
	for r, row := range c.Grid {
		start := 0
		for col := 1; col <= len(row); col++ {
			if col < len(row) && c.ink[r][col] == c.ink[r][start] {
				continue
			}
			run := string(row[start:col])
			if ink := c.ink[r][start]; ink != InkNone {
				run = styles[ink].Render(run)
			}
			b.WriteString(run)
			start = col
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
