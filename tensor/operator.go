package tensor

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/tensorbasis/utils"
)

/*
InterpolationOperator assembles the len(points) x NumBasis matrix whose row p
holds phi_f(points[p]). Multiplying it by a coefficient vector evaluates the
expansion at every point. Entries that are exactly zero, e.g. the off-node
functions when a point lies on a node line, are not stored.
*/
func InterpolationOperator(b *Basis[float64], points [][]float64) (op *sparse.CSR, err error) {
	var (
		nb  = b.NumBasis()
		dok = sparse.NewDOK(len(points), nb)
		phi = make([]float64, nb)
	)
	for p, pt := range points {
		if err = b.Eval(pt, phi); err != nil {
			return nil, fmt.Errorf("point %d: %w", p, err)
		}
		for f, v := range phi {
			if v != 0 {
				dok.Set(p, f, v)
			}
		}
	}
	op = dok.ToCSR()
	return
}

// Interpolate applies an interpolation operator to coefficient vector coeffs.
func Interpolate(op *sparse.CSR, coeffs []float64) (u []float64, err error) {
	var (
		nr, nc = op.Dims()
	)
	if len(coeffs) != nc {
		err = fmt.Errorf("%d coefficients for operator with %d columns: %w",
			len(coeffs), nc, utils.ErrDimensionMismatch)
		return
	}
	u = make([]float64, nr)
	if nr == 0 {
		return
	}
	mat.NewVecDense(nr, u).MulVec(op, mat.NewVecDense(nc, coeffs))
	return
}
