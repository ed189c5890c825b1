package analysis

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/vec"
)

// LyapunovExponent estimates the largest Lyapunov exponent of sys by
// following a copy whose first body is displaced by perturbation along x.
// After every step the phase-space separation is measured and the shadow
// copy is pulled back to distance perturbation (Benettin renormalization).
//
// sys itself is never advanced.
func LyapunovExponent(sys *dynamo.System, stepper *integrators.Stepper, dt, duration, perturbation float64) float64 {
	if sys.Len() == 0 || !(perturbation > 0) || !(dt > 0) {
		return 0
	}

	ref := sys.Clone()
	shadow := sys.Clone()
	shadow.Bodies[0].Position = shadow.Bodies[0].Position.Add(vec.New(perturbation, 0))

	d0 := perturbation
	steps := int(math.Round(duration / dt))
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		stepper.Advance(ref, dt)
		stepper.Advance(shadow, dt)

		sep := separation(ref, shadow)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		for j, b := range shadow.Bodies {
			r := ref.Bodies[j]
			b.Position = r.Position.Add(b.Position.Sub(r.Position).Scale(scale))
			b.Velocity = r.Velocity.Add(b.Velocity.Sub(r.Velocity).Scale(scale))
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}

func separation(a, b *dynamo.System) float64 {
	sum := 0.0
	for i := range a.Bodies {
		sum += b.Bodies[i].Position.Sub(a.Bodies[i].Position).SqrMagnitude()
		sum += b.Bodies[i].Velocity.Sub(a.Bodies[i].Velocity).SqrMagnitude()
	}
	return math.Sqrt(sum)
}
