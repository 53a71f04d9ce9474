// Package simulator runs a method over a set of spin systems and sums the
// abundance-weighted spectra.
//
// Spin systems are simulated concurrently. The per-system partial spectra
// are added in system order, so the result does not depend on the worker
// count.
package simulator
