// Package distribution samples distributions of second-rank traceless
// symmetric tensors and turns the samples into single-site spin systems.
//
// The Czjzek model draws the five irreducible components of the tensor as
// independent zero-mean Gaussians, which is the tensor distribution of a
// structurally random environment. The extended Czjzek model adds such a
// random tensor, scaled by a perturbation factor, to a dominant tensor and
// describes small disorder about a well defined site.
//
// Samples are reported as Haeberlen parameters (zeta, eta), ready for
// [spin.SymmetricTensor]:
//
//	rng := rand.New(rand.NewPCG(1, 0))
//	zeta, eta := distribution.ExtendedCzjzek{Zeta: 60, Eta: 0.3, Eps: 0.14}.Sample(rng, 5000)
//	systems, err := distribution.SingleSite{
//		Isotope:   "13C",
//		Shielding: &distribution.Tensors{Zeta: zeta, Eta: eta},
//	}.Systems()
package distribution
