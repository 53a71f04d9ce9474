// Package tensor rotates the spatial tensor components of every site
// interaction from its principal axis system (PAS) into the common frame
// and scales them by the spin transition functions of the current
// transition.
//
// The result is a rank-0 scalar R0 and complex rank-2 and rank-4 component
// vectors R2 and R4, all in Hz:
//
//   - first-order nuclear shielding contributes to R0 and R2 through p(mf, mi)
//   - first-order quadrupolar coupling contributes to R2 through d(mf, mi)
//   - second-order quadrupolar coupling contributes to R0, R2 and R4 through
//     the cL functions, built from the Clebsch-Gordan coupled square of the
//     rank-2 electric field gradient tensor and scaled by 1/larmor
package tensor
