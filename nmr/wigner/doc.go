// Package wigner provides Wigner small-d matrices and rotations of
// irreducible spherical tensor components.
//
// Components of a rank-l tensor are stored as a slice of length 2l+1 where
// index m+l holds the component of order m. Rotations use the passive
// convention
//
//	R'_m = sum_{m'} exp(-i m' alpha) d^l_{m'm}(beta) exp(-i m gamma) R_{m'}
//
// so that rotating by (alpha, beta, gamma) and then by the inverse
// (-gamma, -beta, -alpha) restores the input.
package wigner
