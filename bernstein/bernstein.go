/*
Package bernstein evaluates the Bernstein polynomials of degree n on [-1,1]:

	B_{n,v}(x) = C(n,v) t^v (1-t)^(n-v),  t = (1+x)/2

They are non-negative on the interval and sum to one, which makes them a
useful reference basis for checking interpolation machinery.
*/
package bernstein

import (
	"github.com/notargets/tensorbasis/utils"
)

// Eval returns B_{n,v}(x). It is zero for v outside [0,n].
func Eval(n, v int, x float64) float64 {
	if n < 0 || v < 0 || v > n {
		return 0
	}
	t := 0.5 * (1 + x)
	return utils.Binomial(n, v) * utils.POW(t, v) * utils.POW(1-t, n-v)
}

// EvalDer returns dB_{n,v}/dx = n/2 (B_{n-1,v-1}(x) - B_{n-1,v}(x)).
func EvalDer(n, v int, x float64) float64 {
	if n < 1 || v < 0 || v > n {
		return 0
	}
	return 0.5 * float64(n) * (Eval(n-1, v-1, x) - Eval(n-1, v, x))
}

// EvalApprox returns sum_v c[v] B_{n,v}(x) with n = len(c)-1, using the de
// Casteljau recursion.
func EvalApprox(c []float64, x float64) float64 {
	if len(c) == 0 {
		return 0
	}
	var (
		t = 0.5 * (1 + x)
		b = append([]float64{}, c...)
	)
	for k := len(b) - 1; k > 0; k-- {
		for i := 0; i < k; i++ {
			b[i] = (1-t)*b[i] + t*b[i+1]
		}
	}
	return b[0]
}

// EvalDerApprox returns the x derivative of EvalApprox(c, x). The derivative
// of a degree n expansion is the degree n-1 expansion of n/2 (c[v+1]-c[v]).
func EvalDerApprox(c []float64, x float64) float64 {
	var (
		n = len(c) - 1
	)
	if n < 1 {
		return 0
	}
	dc := make([]float64, n)
	for v := range dc {
		dc[v] = 0.5 * float64(n) * (c[v+1] - c[v])
	}
	return EvalApprox(dc, x)
}
