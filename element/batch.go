package element

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/tensorbasis/geometry"
	"github.com/notargets/tensorbasis/utils"
)

// PointData is everything EvaluateAll computes at one reference point.
type PointData struct {
	Point    []float64
	Values   []float64   // [NumBasis]
	Gradient [][]float64 // [NumBasis][Dim], reference space
	Position []float64   // physical position, nil without a map
	DetJ     float64     // zero without a map
	Err      error       // non-nil if this point failed, the others are unaffected
}

func newGradient(nb, dim int) (g [][]float64) {
	g = make([][]float64, nb)
	for i := range g {
		g[i] = make([]float64, dim)
	}
	return
}

/*
EvaluateAll evaluates the basis values and gradients, and with a non nil gm
the physical position and det J, at every point. Points are split over
threads goroutines with a PartitionMap; each goroutine owns a disjoint range
of the output and its own scratch. A point that fails, for instance at a
singular spot of the map, records its error without aborting the batch.
*/
func EvaluateAll(el ShapeFunctions, gm *geometry.Map, points [][]float64, threads int) (pd []PointData) {
	var (
		nb, dim = el.NumBasis(), el.Dim()
		pm      = utils.NewPartitionMap(threads, len(points))
	)
	pd = make([]PointData, len(points))
	pm.ForEachBucket(func(bn, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			p := &pd[k]
			p.Point = points[k]
			p.Values = make([]float64, nb)
			p.Gradient = newGradient(nb, dim)
			if p.Err = el.Eval(points[k], p.Values); p.Err != nil {
				continue
			}
			if p.Err = el.Gradient(points[k], p.Gradient); p.Err != nil {
				continue
			}
			if gm == nil {
				continue
			}
			p.Position = make([]float64, dim)
			if p.Err = gm.PhysicalPosition(points[k], p.Position); p.Err != nil {
				continue
			}
			J, err := gm.Jacobian(points[k])
			if err != nil {
				p.Err = err
				continue
			}
			if p.DetJ, p.Err = geometry.Det(J); p.Err != nil {
				continue
			}
			if geometry.IsSingular(J, p.DetJ) {
				p.Err = fmt.Errorf("det J = %g at %v: %w", p.DetJ, points[k], utils.ErrSingularMapping)
			}
		}
	})
	return
}

// InterpolateAll evaluates sum_i coeffs[i] phi_i at every point in parallel.
func InterpolateAll(el ShapeFunctions, coeffs []float64, points [][]float64, threads int) (u []float64, err error) {
	var (
		nb   = el.NumBasis()
		pm   = utils.NewPartitionMap(threads, len(points))
		errs = make([]error, pm.ParallelDegree)
	)
	if len(coeffs) != nb {
		err = fmt.Errorf("%d coefficients for %d basis functions: %w",
			len(coeffs), nb, utils.ErrDimensionMismatch)
		return
	}
	u = make([]float64, len(points))
	pm.ForEachBucket(func(bn, kMin, kMax int) {
		phi := make([]float64, nb)
		for k := kMin; k < kMax; k++ {
			if errs[bn] = el.Eval(points[k], phi); errs[bn] != nil {
				errs[bn] = fmt.Errorf("point %d: %w", k, errs[bn])
				return
			}
			u[k] = floats.Dot(coeffs, phi)
		}
	})
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return
}
