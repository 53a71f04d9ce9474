package wigner

import "math"

// ClebschGordan returns <j1 m1 j2 m2 | j m> for integer angular momenta
// using the Racah formula.
func ClebschGordan(j1, m1, j2, m2, j, m int) float64 {
	if m1+m2 != m {
		return 0
	}
	if j < abs(j1-j2) || j > j1+j2 || j1+j2+j+1 >= len(factorial) {
		return 0
	}
	if abs(m1) > j1 || abs(m2) > j2 || abs(m) > j {
		return 0
	}

	pre := float64(2*j+1) * factorial[j+j1-j2] * factorial[j-j1+j2] * factorial[j1+j2-j] /
		factorial[j1+j2+j+1]
	pre *= factorial[j+m] * factorial[j-m] * factorial[j1-m1] * factorial[j1+m1] *
		factorial[j2-m2] * factorial[j2+m2]
	pre = math.Sqrt(pre)

	kmin := max(0, j2-j-m1, j1-j+m2)
	kmax := min(j1+j2-j, j1-m1, j2+m2)
	sum := 0.0
	for k := kmin; k <= kmax; k++ {
		den := factorial[k] * factorial[j1+j2-j-k] * factorial[j1-m1-k] *
			factorial[j2+m2-k] * factorial[j-j2+m1+k] * factorial[j-j1-m2+k]
		if k%2 == 0 {
			sum += 1 / den
		} else {
			sum -= 1 / den
		}
	}
	return pre * sum
}

// Couple forms the rank-l component m of the tensor product of two rank-2
// tensors a and b: sum over m1 of <2 m1 2 m-m1 | l m> a_{m1} b_{m-m1}.
func Couple(l, m int, a, b []complex128) complex128 {
	var acc complex128
	for m1 := -2; m1 <= 2; m1++ {
		m2 := m - m1
		if m2 < -2 || m2 > 2 {
			continue
		}
		cg := ClebschGordan(2, m1, 2, m2, l, m)
		if cg == 0 {
			continue
		}
		acc += complex(cg, 0) * a[m1+2] * b[m2+2]
	}
	return acc
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
