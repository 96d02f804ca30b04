package quadrature

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/tensorbasis/utils"
)

/*
Gauss-Jacobi quadrature over [-1,1] with weight (1-x)^alpha (1+x)^beta,
alpha, beta > -1, alpha+beta != -1. Gauss-Legendre is alpha = beta = 0.

The abscissas are the eigenvalues of the symmetric tridiagonal Jacobi matrix
(Golub-Welsch); the weights are gamma0 times the squared first components of
the normalized eigenvectors.
*/

// JacobiGQ returns the N+1 Gauss-Jacobi points and weights, exact for
// polynomials of degree 2N+1 against the Jacobi weight.
func JacobiGQ(alpha, beta float64, N int) (X, W []float64, err error) {
	var (
		fac        float64
		h1, d0, d1 []float64
		VVr        *mat.Dense
	)
	if alpha <= -1 || beta <= -1 || alpha+beta == -1 {
		err = fmt.Errorf("jacobi parameters must be > -1 with alpha+beta != -1, have alpha = %v, beta = %v",
			alpha, beta)
		return
	}
	if N < 0 {
		err = fmt.Errorf("quadrature order must be >= 0, have %d: %w", N, utils.ErrDimensionMismatch)
		return
	}
	if N == 0 {
		X = []float64{(beta - alpha) / (alpha + beta + 2.)}
		W = []float64{gamma0(alpha, beta)}
		return
	}

	h1 = make([]float64, N+1)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	// main diagonal: -1/2*(alpha^2-beta^2)/(h1+2)/h1
	d0 = make([]float64, N+1)
	fac = -.5 * (alpha*alpha - beta*beta)
	for i := 0; i < N+1; i++ {
		val := h1[i]
		d0[i] = fac / (val * (val + 2.))
	}
	// h1[0] is zero when alpha+beta is
	eps := 1.e-16
	if math.Abs(alpha+beta) < 10*eps {
		d0[0] = 0.
	}

	// 1st off diagonal: 2/(h1+2)*sqrt(i(i+alpha+beta)(i+alpha)(i+beta)/(h1+1)/(h1+3))
	var ip1 float64
	d1 = make([]float64, N)
	for i := 0; i < N; i++ {
		ip1 = float64(i + 1)
		val := h1[i]
		d1[i] = 2. / (val + 2.)
		d1[i] *= math.Sqrt(ip1 * (ip1 + alpha + beta) * (ip1 + alpha) * (ip1 + beta) / ((val + 1.) * (val + 3.)))
	}

	JJ := mat.NewSymDense(N+1, nil)
	for i := 0; i < N+1; i++ {
		JJ.SetSym(i, i, d0[i])
		if i < N {
			JJ.SetSym(i, i+1, d1[i])
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		err = fmt.Errorf("eigenvalue decomposition of the %d point Jacobi matrix failed", N+1)
		return
	}
	X = eig.Values(nil)

	VVr = mat.NewDense(N+1, N+1, nil)
	eig.VectorsTo(VVr)
	W = make([]float64, N+1)
	g0 := gamma0(alpha, beta)
	for i, v := range VVr.RawRowView(0) {
		W[i] = v * v * g0
	}
	return
}

// JacobiGL returns the N+1 Gauss-Lobatto-Jacobi points, which include both
// endpoints -1 and 1. The interior points are the Gauss points of the
// (alpha+1, beta+1) rule.
func JacobiGL(alpha, beta float64, N int) (X []float64, err error) {
	var (
		xint []float64
	)
	if N < 1 {
		err = fmt.Errorf("Gauss-Lobatto needs order >= 1, have %d: %w", N, utils.ErrDimensionMismatch)
		return
	}
	X = make([]float64, N+1)
	X[0], X[N] = -1, 1
	if N == 1 {
		return
	}
	if xint, _, err = JacobiGQ(alpha+1, beta+1, N-2); err != nil {
		return
	}
	copy(X[1:N], xint)
	return
}

// GaussLegendre returns the n point Gauss-Legendre rule, exact for
// polynomials of degree 2n-1.
func GaussLegendre(n int) (X, W []float64, err error) {
	return JacobiGQ(0, 0, n-1)
}

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}
