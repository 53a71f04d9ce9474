// Package tent rasterizes powder-averaged intensities onto a discrete
// spectral grid by tenting interpolation.
//
// Every triangle of the orientation mesh carries the mean amplitude of its
// three vertices. That amplitude is spread over the frequency interval
// spanned by the vertex frequencies with a triangular density peaking at the
// middle frequency, and each bin receives the exact integral of the density
// over its extent. Deposits are therefore area conserving: a triangle lying
// fully inside the grid adds exactly its amplitude to the spectrum. Parts of
// a triangle outside the grid are dropped.
//
// Frequencies are expressed in bins: bin p covers [p, p+1). 2D spectra are
// row-major with dimension 0 as the outer index, spec[p*count1 + q].
package tent
