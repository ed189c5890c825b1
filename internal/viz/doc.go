// Package viz is the terminal host for a live simulation.
//
//   - [Model]: Bubble Tea model driving a [sim.Simulator] once per frame
//   - [Picker]: preset menu that launches a [Model]
//   - [Canvas]: Braille canvas, 2x4 dots per cell, drawn in world space
//     through a [Viewport] with a themed ink per layer
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	P     - Toggle orbit prediction
//	R     - Reset to initial state
//	F     - Follow the barycenter
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	[]/   - Time travel (rewind/forward)
//
// Each body is drawn as a disc with a heading line from its position to
// position+velocity and, when prediction is on, its predicted orbit.
package viz
