// Package method describes an NMR measurement: the observed channel, the
// spectroscopic dimensions with their grids and the events of every
// dimension. Each event selects transitions of a spin system by their
// symmetry (coherence order P and satellite order D), and the product of
// the per-event selections forms the transition pathways that are
// simulated.
package method
