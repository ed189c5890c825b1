// Package physics provides the Newtonian gravity model for orbitsim.
//
//   - [Gravity]: pairwise inverse-square force accumulator (a [dynamo.ForceField])
//   - [Barycenter]: mass-weighted centroid of a system
//   - [KineticEnergy], [PotentialEnergy], [Momentum], [AngularMomentum]:
//     conservation diagnostics for metrics and hosts
//
// Force computation is O(n) per body and O(n²) per system step. There is no
// softening and no spatial partitioning; coincident bodies simply exert no
// force on each other.
//
// # Energy Conservation
//
// Gravity implements [dynamo.Hamiltonian], so drift can be monitored:
//
//	g := physics.NewGravity(0.001)
//	e0 := g.Energy(sys)
package physics
