package utils

import (
	"math"
)

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(pp))
	return
}

// IsFinite reports whether every value held in A is neither NaN nor ±Inf.
func IsFinite(A any) bool {
	switch v := A.(type) {
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	case [][]float64:
		for _, row := range v {
			if !IsFinite(row) {
				return false
			}
		}
	case complex128:
		return IsFinite(real(v)) && IsFinite(imag(v))
	case []complex128:
		for _, c := range v {
			if !IsFinite(c) {
				return false
			}
		}
	}
	return true
}

// Binomial returns n choose k as a float64, zero for k outside [0,n].
func Binomial(n, k int) (c float64) {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	c = 1
	for i := 1; i <= k; i++ {
		c = c * float64(n-k+i) / float64(i)
	}
	return
}
