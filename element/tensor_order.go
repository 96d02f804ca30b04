package element

import (
	"fmt"

	"github.com/notargets/tensorbasis/fixed"
	"github.com/notargets/tensorbasis/utils"
)

// maxTensorCorners bounds the basis size of a multilinear element.
const maxTensorCorners = 1 << utils.MaxTensorDim

/*
tensorOrdered presents a multilinear closed-form element in the tensor flat
order (axis 0 fastest), so that vertex and coefficient lists mean the same
thing for Auto and Tensor elements. Basis function j of the wrapper is basis
function toFixed[j] of the closed-form element.
*/
type tensorOrdered struct {
	fe      *fixed.Element
	toFixed utils.Index
}

func newTensorOrdered(fe *fixed.Element) (el *tensorOrdered, err error) {
	var (
		perm utils.Index
	)
	if perm, err = fe.TensorOrder(); err != nil {
		return
	}
	el = &tensorOrdered{fe: fe}
	if el.toFixed, err = perm.Invert(); err != nil {
		return nil, fmt.Errorf("%s vertex order: %w", fe.Name(), err)
	}
	return
}

func (el *tensorOrdered) Name() string  { return el.fe.Name() }
func (el *tensorOrdered) Dim() int      { return el.fe.Dim() }
func (el *tensorOrdered) NumBasis() int { return el.fe.NumBasis() }
func (el *tensorOrdered) Order() int    { return el.fe.Order() }

// ReferenceNodes are the reference vertices in tensor flat order.
func (el *tensorOrdered) ReferenceNodes() (R [][]float64) {
	V := el.fe.ReferenceVertices()
	R = make([][]float64, len(V))
	for j, i := range el.toFixed {
		R[j] = V[i]
	}
	return
}

func (el *tensorOrdered) checkLen(n int) (err error) {
	if n != len(el.toFixed) {
		err = fmt.Errorf("output has length %d, need %d: %w",
			n, len(el.toFixed), utils.ErrDimensionMismatch)
	}
	return
}

func (el *tensorOrdered) Eval(point, out []float64) (err error) {
	var (
		buf [maxTensorCorners]float64
	)
	if err = el.checkLen(len(out)); err != nil {
		return
	}
	phi := buf[:len(out)]
	if err = el.fe.Eval(point, phi); err != nil {
		return
	}
	for j, i := range el.toFixed {
		out[j] = phi[i]
	}
	return
}

// Gradient hands the closed-form element the caller's rows in its own order,
// so no copy is made.
func (el *tensorOrdered) Gradient(point []float64, out [][]float64) (err error) {
	var (
		buf [maxTensorCorners][]float64
	)
	if err = el.checkLen(len(out)); err != nil {
		return
	}
	rows := buf[:len(out)]
	for j, i := range el.toFixed {
		rows[i] = out[j]
	}
	return el.fe.Gradient(point, rows)
}
