package spin

// P is the rank-1 spin transition symmetry function mf - mi.
func P(mf, mi float64) float64 { return mf - mi }

// D is the rank-2 spin transition symmetry function sqrt(3/2) (mf^2 - mi^2).
func D(mf, mi float64) float64 {
	return 1.2247448714 * (mf*mf - mi*mi)
}

// F is the rank-3 spin transition symmetry function
// (5(mf^3 - mi^3) + (1 - 3I(I+1))(mf - mi)) / sqrt(10).
func F(mf, mi, spin float64) float64 {
	v := 1.0 - 3.0*spin*(spin+1.0)
	v *= mf - mi
	v += 5.0 * (mf*mf*mf - mi*mi*mi)
	return v * 0.316227766
}

// CL returns the rank 0, 2 and 4 transition functions of the second-order
// quadrupolar frequency.
func CL(mf, mi, spin float64) [3]float64 {
	f := F(mf, mi, spin)
	t := (spin*(spin+1.0) - 0.75) * P(mf, mi)
	return [3]float64{
		0.3577708764*t + 0.8485281374*f,
		0.1069044968*t - 1.0141851057*f,
		-0.1434274331*t - 1.2850792082*f,
	}
}
