// Package spin describes the spin systems a simulation runs over: isotopes,
// sites with their shielding and quadrupolar tensors, and the Zeeman-basis
// transitions between energy levels.
//
// Quantum numbers are float64 so that half-integer spins are exact. A
// [Transition] holds the initial and final quantum numbers of every site of a
// spin system.
package spin
