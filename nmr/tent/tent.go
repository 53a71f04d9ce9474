package tent

import (
	"fmt"
	"math"
)

// shape is the triangular density over [lo, hi] peaking at mid.
type shape struct {
	lo, mid, hi float64
	width       float64
}

func newShape(f1, f2, f3 float64) shape {
	if f1 > f2 {
		f1, f2 = f2, f1
	}
	if f2 > f3 {
		f2, f3 = f3, f2
	}
	if f1 > f2 {
		f1, f2 = f2, f1
	}
	return shape{lo: f1, mid: f2, hi: f3, width: f3 - f1}
}

// cdf returns the fraction of the density below x.
func (s shape) cdf(x float64) float64 {
	switch {
	case x <= s.lo:
		return 0
	case x >= s.hi:
		return 1
	case x <= s.mid:
		d := x - s.lo
		return d * d / (s.width * (s.mid - s.lo))
	default:
		d := s.hi - x
		return 1 - d*d/(s.width*(s.hi-s.mid))
	}
}

// bins returns the first and last grid bins the shape touches, clipped to
// [0, count). ok is false when nothing lands on the grid.
func (s shape) bins(count int) (first, last int, ok bool) {
	if s.hi < 0 || s.lo >= float64(count) || math.IsNaN(s.lo) || math.IsNaN(s.hi) {
		return 0, 0, false
	}
	first = max(int(math.Floor(s.lo)), 0)
	last = min(int(math.Floor(s.hi)), count-1)
	return first, last, first <= last
}

// weight returns the fraction of the density falling into bin p.
func (s shape) weight(p int) float64 {
	if math.Floor(s.lo) == math.Floor(s.hi) {
		return 1
	}
	fp := float64(p)
	return s.cdf(fp+1) - s.cdf(fp)
}

// Triangle1D adds amp spread over the triangle with vertex frequencies
// f1, f2, f3 to spec.
func Triangle1D(spec []float64, f1, f2, f3, amp float64) {
	s := newShape(f1, f2, f3)
	first, last, ok := s.bins(len(spec))
	if !ok {
		return
	}
	for p := first; p <= last; p++ {
		spec[p] += amp * s.weight(p)
	}
}

// Triangle2D adds amp spread uniformly over the triangle with vertices
// (fa[i], fb[i]) to the count0 x count1 spectrum spec. fa holds the
// dimension-0 frequencies, fb the dimension-1 frequencies.
//
// Each dimension-0 bin receives the 1D tent weight of fa; that mass is split
// over dimension-1 bins by the area of the triangle inside each cell.
func Triangle2D(spec []float64, count0, count1 int, fa, fb [3]float64, amp float64) {
	sa := newShape(fa[0], fa[1], fa[2])
	p0, p1, ok := sa.bins(count0)
	if !ok || count1 <= 0 {
		return
	}

	// local coordinates keep the clipped areas accurate far from the origin
	ox, oy := fa[0], fb[0]
	tri := [3]vertex{{0, 0}, {fa[1] - ox, fb[1] - oy}, {fa[2] - ox, fb[2] - oy}}

	var bufA, bufB, bufC [8]vertex
	for p := p0; p <= p1; p++ {
		wa := amp * sa.weight(p)
		if wa == 0 {
			continue
		}
		slab := clipHalf(bufA[:0], tri[:], true, true, float64(p)-ox)
		slab = clipHalf(bufB[:0], slab, true, false, float64(p+1)-ox)
		if len(slab) == 0 {
			slab = tri[:]
		}
		column(spec[p*count1:(p+1)*count1], slab, oy, wa, bufA[:0], bufC[:0])
	}
}

type vertex struct{ x, y float64 }

// degenerate is the slab area, relative to its bounding box, below which a
// slab is treated as a line segment.
const degenerate = 1e-9

// column spreads w over row by the area of poly in every row cell. poly is
// in local coordinates with y offset oy.
func column(row []float64, poly []vertex, oy, w float64, tmp, cell []vertex) {
	xlo, xhi := poly[0].x, poly[0].x
	ylo, yhi := poly[0].y, poly[0].y
	for _, v := range poly[1:] {
		xlo, xhi = min(xlo, v.x), max(xhi, v.x)
		ylo, yhi = min(ylo, v.y), max(yhi, v.y)
	}
	lo, hi := ylo+oy, yhi+oy
	n := len(row)
	if hi < 0 || lo >= float64(n) {
		return
	}
	fl, fh := math.Floor(lo), math.Floor(hi)
	if fl == fh {
		row[int(fl)] += w
		return
	}
	q0 := max(int(fl), 0)
	q1 := min(int(fh), n-1)

	area := polygonArea(poly)
	if area <= degenerate*(xhi-xlo)*(yhi-ylo) {
		for q := q0; q <= q1; q++ {
			overlap := min(hi, float64(q+1)) - max(lo, float64(q))
			row[q] += w * overlap / (hi - lo)
		}
		return
	}
	for q := q0; q <= q1; q++ {
		c := clipHalf(tmp[:0], poly, false, true, float64(q)-oy)
		c = clipHalf(cell[:0], c, false, false, float64(q+1)-oy)
		if len(c) < 3 {
			continue
		}
		row[q] += w * polygonArea(c) / area
	}
}

// clipHalf appends to dst the part of poly on one side of an axis-aligned
// line: x (onX) or y equal to bound, keeping values >= bound when lower is
// set and <= bound otherwise.
func clipHalf(dst, poly []vertex, onX, lower bool, bound float64) []vertex {
	side := func(v vertex) float64 {
		c := v.y
		if onX {
			c = v.x
		}
		if lower {
			return c - bound
		}
		return bound - c
	}
	n := len(poly)
	for i := range n {
		a, b := poly[i], poly[(i+1)%n]
		da, db := side(a), side(b)
		if da >= 0 {
			dst = append(dst, a)
		}
		if (da < 0 && db > 0) || (da > 0 && db < 0) {
			t := da / (da - db)
			dst = append(dst, vertex{a.x + t*(b.x-a.x), a.y + t*(b.y-a.y)})
		}
	}
	return dst
}

// polygonArea is the shoelace area of a simple polygon.
func polygonArea(poly []vertex) float64 {
	if len(poly) < 3 {
		return 0
	}
	o := poly[0]
	var sum float64
	for i := 1; i+1 < len(poly); i++ {
		a, b := poly[i], poly[i+1]
		sum += (a.x-o.x)*(b.y-o.y) - (b.x-o.x)*(a.y-o.y)
	}
	return math.Abs(sum) / 2
}

// Octahedron1D rasterizes one octant: freq and amp hold the frequency (in
// bins) and amplitude of every octant orientation, tris is the octant mesh.
func Octahedron1D(spec, freq, amp []float64, tris [][3]int) {
	if len(freq) != len(amp) {
		panic(fmt.Sprintf("tent: frequency/amplitude length mismatch: %d vs %d", len(freq), len(amp)))
	}
	for _, t := range tris {
		a := (amp[t[0]] + amp[t[1]] + amp[t[2]]) / 3
		if a == 0 {
			continue
		}
		Triangle1D(spec, freq[t[0]], freq[t[1]], freq[t[2]], a)
	}
}

// Octahedron2D rasterizes one octant into a count0 x count1 spectrum using
// the dimension-0 frequencies freqA and dimension-1 frequencies freqB.
func Octahedron2D(spec, freqA, freqB, amp []float64, tris [][3]int, count0, count1 int) {
	if len(freqA) != len(amp) || len(freqB) != len(amp) {
		panic(fmt.Sprintf("tent: frequency/amplitude length mismatch: %d, %d vs %d", len(freqA), len(freqB), len(amp)))
	}
	if len(spec) != count0*count1 {
		panic(fmt.Sprintf("tent: spectrum length %d, want %d", len(spec), count0*count1))
	}
	for _, t := range tris {
		a := (amp[t[0]] + amp[t[1]] + amp[t[2]]) / 3
		if a == 0 {
			continue
		}
		Triangle2D(spec, count0, count1,
			[3]float64{freqA[t[0]], freqA[t[1]], freqA[t[2]]},
			[3]float64{freqB[t[0]], freqB[t[1]], freqB[t[2]]},
			a)
	}
}
