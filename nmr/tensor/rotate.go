package tensor

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nmr/nmr/spin"
	"github.com/cwbudde/algo-nmr/nmr/wigner"
)

// Rotate adds the common-frame components of every site of iso for the
// transition tr into ws. ws is not cleared first; callers zero it per event.
func Rotate(iso *Isotopomer, tr spin.Transition, opts Options, ws *Workspace) error {
	n := iso.NumberOfSites()
	if len(tr.Initial) != n || len(tr.Final) != n {
		return fmt.Errorf("tensor: transition covers %d/%d sites, isotopomer has %d",
			len(tr.Initial), len(tr.Final), n)
	}
	for i := range iso.Sites {
		site := &iso.Sites[i]
		mi, mf := tr.Initial[i], tr.Final[i]
		larmor := site.Isotope.LarmorFrequency(opts.MagneticFluxDensity)

		shielding(site, mf, mi, larmor, ws)
		if site.Quad == nil || site.Spin < 1 {
			continue
		}
		firstOrderQuad(site, mf, mi, ws)
		if larmor != 0 {
			secondOrderQuad(site, mf, mi, larmor, opts, ws)
		}
	}
	return nil
}

// pasComponents writes the rank-2 PAS components of a Haeberlen tensor.
func pasComponents(zeta, eta float64, dst *[5]complex128) {
	side := complex(-0.5*zeta*eta, 0)
	dst[0] = side
	dst[1] = 0
	dst[2] = complex(math.Sqrt(1.5)*zeta, 0)
	dst[3] = 0
	dst[4] = side
}

// toCommon rotates the PAS components of t into ws.common.
func toCommon(t *spin.SymmetricTensor, zeta float64, ws *Workspace) {
	pasComponents(zeta, t.Eta, &ws.pas)
	wigner.Rotate(2, t.Alpha, t.Beta, t.Gamma, ws.pas[:], ws.common[:])
}

func shielding(site *Site, mf, mi, larmor float64, ws *Workspace) {
	// a positive shift lands at a positive frequency for p = -1
	scale := -math.Abs(larmor) * 1e-6 * spin.P(mf, mi)
	if scale == 0 {
		return
	}
	ws.R0 += site.Shift * scale
	if site.Shielding == nil || site.Shielding.Zeta == 0 {
		return
	}
	// normalized so that the m=0 component equals zeta
	toCommon(site.Shielding, site.Shielding.Zeta*math.Sqrt(2.0/3.0), ws)
	for m := range ws.common {
		ws.R2[m] += complex(scale, 0) * ws.common[m]
	}
}

func quadZeta(site *Site) float64 {
	return site.Quad.Zeta / (2 * site.Spin * (2*site.Spin - 1))
}

func firstOrderQuad(site *Site, mf, mi float64, ws *Workspace) {
	d := spin.D(mf, mi)
	if d == 0 {
		return
	}
	toCommon(site.Quad, quadZeta(site), ws)
	for m := range ws.common {
		ws.R2[m] += complex(d, 0) * ws.common[m]
	}
}

func secondOrderQuad(site *Site, mf, mi, larmor float64, opts Options, ws *Workspace) {
	cl := spin.CL(mf, mi, site.Spin)
	// same side convention as shielding, independent of the sign of gamma
	scale := -1 / math.Abs(larmor)
	toCommon(site.Quad, quadZeta(site), ws)
	rho := ws.common[:]

	if !opts.RemoveSecondOrderQuadIsotropic {
		ws.R0 += scale * cl[0] * real(wigner.Couple(0, 0, rho, rho))
	}
	c2 := complex(scale*cl[1], 0)
	for m := -2; m <= 2; m++ {
		ws.R2[m+2] += c2 * wigner.Couple(2, m, rho, rho)
	}
	if !opts.AllowFourthRank {
		return
	}
	c4 := complex(scale*cl[2], 0)
	for m := -4; m <= 4; m++ {
		ws.R4[m+4] += c4 * wigner.Couple(4, m, rho, rho)
	}
}
