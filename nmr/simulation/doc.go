// Package simulation is the powder-averaging core of the NMR simulator.
//
// For every spectroscopic dimension and every event of that dimension, the
// core rotates the tensor components of a spin system into the common frame
// (package tensor), evaluates per-orientation frequencies and spinning
// sideband amplitudes (package sideband), and finally combines the events
// into a one- or two-dimensional spectrum by tenting interpolation (package
// tent).
//
// Within a dimension the sideband amplitudes of successive events are
// multiplied elementwise, modelling the coherence transfer between events,
// and the quadrature weight of every orientation is applied exactly once.
// For two dimensions the spectrum is the outer product over both sideband
// sets, laid out row-major with dimension 0 as the outer index.
//
// The output spectrum is only ever added to. Callers that want a fresh
// spectrum must pass a zeroed buffer.
//
// [Simulate] is the entry point. It validates the parameters, normalizes a
// non-spinning configuration to the static limit, builds the orientation and
// FFT schemes and runs a [Core].
package simulation
