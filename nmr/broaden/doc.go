// Package broaden applies line broadening to simulated spectra.
//
// A simulated powder spectrum has infinitely sharp lines. Broadening
// convolves it along one dimension with a Lorentzian or Gaussian line of a
// given full width at half maximum:
//
//	err := broaden.Apply(spec, []int{1024}, []float64{48.8}, broaden.Broadening{
//		Shape: broaden.Gaussian,
//		FWHM:  200,
//	})
//
// The convolution runs in the conjugate (time) domain, where it is a
// multiplication by the apodization function. Each line is zero padded to
// twice its length so that intensity does not wrap around the spectral
// edges. The integral of every line is preserved.
package broaden
