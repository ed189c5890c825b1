// Package dynamo provides the core simulation primitives for orbitsim.
//
// The package defines the fundamental types shared by every other package:
//
//   - [Body]: a point mass with position, velocity, mass and render attributes
//   - [System]: the ordered snapshot of bodies a force computation reads
//   - [ForceField]: computes the total force on one body from a snapshot
//   - [Integrator]: advances one body given its total force
//   - [Metric] and [Observer]: hooks notified once per frame
//
// # Example
//
//	sys := dynamo.NewSystem()
//	sys.Add(dynamo.NewBody("a", vec.New(-25, 0), vec.New(0, 10), 1e7, 10, color.RGBA{}))
//	sys.Add(dynamo.NewBody("b", vec.New(25, 0), vec.New(0, -10), 1e7, 10, color.RGBA{}))
//	s := sim.New(sys, dynamo.DefaultConstants())
//	s.Frame(1.0 / 60)
//
// # Identity
//
// Bodies are identified by [BodyID], assigned by [System.Add] and preserved by
// [System.Clone]. Force computation excludes a body from its own sum by ID, and
// the orbit predictor relocates its target inside a cloned system by ID.
//
// # Thread Safety
//
// Systems and bodies are NOT thread-safe. The simulation is single-threaded by
// design; every prediction works on a private clone.
package dynamo
