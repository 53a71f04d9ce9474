// Package sideband evaluates, for one spectroscopic event, the
// orientation-dependent resonance frequency and the spinning sideband
// amplitudes of every crystallite orientation.
//
// A [Plan] rotates the common-frame components produced by package tensor
// into the rotor frame of every orientation of an orientation.Scheme, takes
// the time-averaged part as the local frequency and expands the periodic
// remainder over one rotor period. The sideband amplitudes are the squared
// Fourier coefficients of exp(i phase(t)) sampled at Sidebands points per
// rotor period (Eden and Levitt, JMR 132, 1998), computed with algo-fft.
//
// Amplitudes land in the shared [Scheme] vector as complex values whose real
// part carries |c_k|^2; [RealChannel] extracts them.
package sideband
