package export

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/vec"
	"github.com/san-kum/orbitsim/internal/viz"
)

func TestTrajectoryToSVG(t *testing.T) {
	g := NewWithT(t)

	svg := TrajectoryToSVG([]Track{
		{Name: "a", Color: "#ff0000", Points: []vec.Vec2{vec.New(0, 0), vec.New(10, 5)}},
		{Name: "b", Points: []vec.Vec2{vec.New(-5, -5), vec.New(0, 1), vec.New(3, 3)}},
	}, 400, 300)

	g.Expect(svg).To(HavePrefix("<?xml"))
	g.Expect(svg).To(HaveSuffix("</svg>"))
	g.Expect(strings.Count(svg, "<path")).To(Equal(2))
	g.Expect(svg).To(ContainSubstring(`stroke="#ff0000"`))
	g.Expect(svg).To(ContainSubstring(`id="b"`))
}

func TestTrajectoryToSVG_NeedsTwoPoints(t *testing.T) {
	g := NewWithT(t)

	g.Expect(TrajectoryToSVG(nil, 100, 100)).To(BeEmpty())
	g.Expect(TrajectoryToSVG([]Track{{Points: []vec.Vec2{vec.New(1, 1)}}}, 100, 100)).To(BeEmpty())

	svg := TrajectoryToSVG([]Track{
		{Points: []vec.Vec2{vec.New(1, 1)}},
		{Points: []vec.Vec2{vec.New(1, 1), vec.New(1, 1)}},
	}, 100, 100)
	g.Expect(strings.Count(svg, "<path")).To(Equal(1))
}

func TestCanvasToSVG(t *testing.T) {
	g := NewWithT(t)

	c := viz.NewCanvas(4, 2)
	c.Set(0, 0, viz.InkBody)
	c.Set(7, 7, viz.InkPath)

	svg := CanvasToSVG(c, 2, "#00ff00")
	g.Expect(strings.Count(svg, "<circle")).To(Equal(2))
	g.Expect(CanvasToSVG(nil, 2, "#fff")).To(BeEmpty())
}
