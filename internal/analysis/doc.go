// Package analysis inspects recorded or live trajectories:
//
//   - [DominantPeriod]: strongest oscillation period via FFT
//   - [CrossingPeriod]: mean spacing of upward mean crossings
//   - [LyapunovExponent]: divergence rate of a perturbed copy of a system
//   - [TrackToASCII]: quick terminal plot of one body's track
//
// A positive Lyapunov exponent indicates chaotic motion.
package analysis
