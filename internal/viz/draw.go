package viz

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vec"
)

const baryArm = 2

// DrawSystem renders every body with its heading line and predicted orbit,
// then the barycenter marker. Trails, if given, are drawn first.
func DrawSystem(c *Canvas, vp Viewport, s *dynamo.System, barycenter vec.Vec2, trails [][]vec.Vec2) {
	for _, trail := range trails {
		for _, p := range trail {
			c.Plot(vp, p, InkTrail)
		}
	}

	for _, b := range s.Bodies {
		c.Polyline(vp, b.OrbitPath, InkPath)
	}

	for _, b := range s.Bodies {
		c.Segment(vp, b.Position, b.Position.Add(b.Velocity), InkHeading)
		c.Disc(vp, b.Position, b.Radius, InkBody)
	}

	c.Marker(vp, barycenter, baryArm, InkBarycenter)
}
