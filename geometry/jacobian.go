package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/tensorbasis/utils"
)

// SingularTolerance scales the singularity test |det J| < tol * ||J||^D.
const SingularTolerance = 1.e-14

// Det is the determinant of a square matrix, closed form up to 3x3 and from
// an LU factorization beyond that.
func Det(J mat.Matrix) (det float64, err error) {
	if err = checkSquare(J); err != nil {
		return
	}
	r, _ := J.Dims()
	switch r {
	case 1:
		det = J.At(0, 0)
	case 2:
		det = J.At(0, 0)*J.At(1, 1) - J.At(0, 1)*J.At(1, 0)
	case 3:
		det = J.At(0, 0)*(J.At(1, 1)*J.At(2, 2)-J.At(1, 2)*J.At(2, 1)) -
			J.At(0, 1)*(J.At(1, 0)*J.At(2, 2)-J.At(1, 2)*J.At(2, 0)) +
			J.At(0, 2)*(J.At(1, 0)*J.At(2, 1)-J.At(1, 1)*J.At(2, 0))
	default:
		var lu mat.LU
		lu.Factorize(J)
		det = lu.Det()
	}
	return
}

func checkSquare(J mat.Matrix) (err error) {
	if r, c := J.Dims(); r != c || r < 1 || r > utils.MaxTensorDim {
		err = fmt.Errorf("Jacobian is %dx%d, need square of size 1 to %d: %w",
			r, c, utils.MaxTensorDim, utils.ErrDimensionMismatch)
	}
	return
}

// IsSingular applies the relative singularity test to J with determinant det.
func IsSingular(J mat.Matrix, det float64) bool {
	r, _ := J.Dims()
	scale := math.Pow(mat.Norm(J, math.Inf(1)), float64(r))
	return det == 0 || math.IsNaN(det) || math.IsInf(det, 0) ||
		math.Abs(det) < SingularTolerance*scale
}

/*
Inverse returns J^-1. Up to 3x3 it is the adjugate divided by the
determinant; a 4x4 goes through mat.Dense.Inverse. A zero, non-finite or
relatively tiny determinant is reported as ErrSingularMapping, never as a
matrix of Inf/NaN.
*/
func Inverse(J mat.Matrix) (inv *mat.Dense, err error) {
	var (
		det float64
	)
	if det, err = Det(J); err != nil {
		return
	}
	r, _ := J.Dims()
	if IsSingular(J, det) {
		err = fmt.Errorf("det J = %g for %dx%d Jacobian: %w", det, r, r, utils.ErrSingularMapping)
		return
	}
	inv = mat.NewDense(r, r, nil)
	a := func(i, j int) float64 { return J.At(i, j) }
	switch r {
	case 1:
		inv.Set(0, 0, 1/det)
	case 2:
		inv.Set(0, 0, a(1, 1)/det)
		inv.Set(0, 1, -a(0, 1)/det)
		inv.Set(1, 0, -a(1, 0)/det)
		inv.Set(1, 1, a(0, 0)/det)
	case 3:
		inv.Set(0, 0, (a(1, 1)*a(2, 2)-a(1, 2)*a(2, 1))/det)
		inv.Set(0, 1, (a(0, 2)*a(2, 1)-a(0, 1)*a(2, 2))/det)
		inv.Set(0, 2, (a(0, 1)*a(1, 2)-a(0, 2)*a(1, 1))/det)
		inv.Set(1, 0, (a(1, 2)*a(2, 0)-a(1, 0)*a(2, 2))/det)
		inv.Set(1, 1, (a(0, 0)*a(2, 2)-a(0, 2)*a(2, 0))/det)
		inv.Set(1, 2, (a(0, 2)*a(1, 0)-a(0, 0)*a(1, 2))/det)
		inv.Set(2, 0, (a(1, 0)*a(2, 1)-a(1, 1)*a(2, 0))/det)
		inv.Set(2, 1, (a(0, 1)*a(2, 0)-a(0, 0)*a(2, 1))/det)
		inv.Set(2, 2, (a(0, 0)*a(1, 1)-a(0, 1)*a(1, 0))/det)
	default:
		if err = inv.Inverse(J); err != nil {
			return nil, fmt.Errorf("%v: %w", err, utils.ErrSingularMapping)
		}
	}
	if !utils.IsFinite(inv.RawMatrix().Data) {
		return nil, fmt.Errorf("non-finite inverse Jacobian: %w", utils.ErrSingularMapping)
	}
	return
}
