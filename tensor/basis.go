package tensor

import (
	"fmt"

	"github.com/notargets/tensorbasis/lagrange"
	"github.com/notargets/tensorbasis/nodes"
	"github.com/notargets/tensorbasis/utils"
)

// Indexer is the flat <-> multi-index bijection shared by the basis, vertex
// tables and coefficient vectors.
type Indexer = utils.TensorIndex

func NewIndexer(sizes ...int) (*Indexer, error) { return utils.NewTensorIndex(sizes...) }

/*
Basis is the tensor product of one 1D Lagrange basis per reference axis.
Basis function f, with multi-index (i0, i1, ...), is

	phi_f(xi) = l0_{i0}(xi_0) * l1_{i1}(xi_1) * ...

and its partial along axis g replaces factor g with its derivative. A Basis is
immutable after construction; every evaluation uses call-local scratch, so a
single Basis can be shared by concurrent callers.
*/
type Basis[T lagrange.Scalar] struct {
	axes    []*lagrange.Basis1D[T]
	nodeSet []nodes.NodeSet
	index   *Indexer
}

func New[T lagrange.Scalar](axes ...nodes.NodeSet) (b *Basis[T], err error) {
	var (
		dim   = len(axes)
		sizes = make([]int, dim)
	)
	for d, ns := range axes {
		sizes[d] = ns.Len()
	}
	b = &Basis[T]{
		axes:    make([]*lagrange.Basis1D[T], dim),
		nodeSet: append([]nodes.NodeSet{}, axes...),
	}
	if b.index, err = NewIndexer(sizes...); err != nil {
		return nil, err
	}
	for d, ns := range axes {
		if b.axes[d], err = lagrange.New[T](ns); err != nil {
			return nil, fmt.Errorf("axis %d: %w", d, err)
		}
	}
	return
}

// NewIsotropic uses the same node set on each of dim axes.
func NewIsotropic[T lagrange.Scalar](dim int, ns nodes.NodeSet) (*Basis[T], error) {
	if dim < 1 || dim > utils.MaxTensorDim {
		return nil, fmt.Errorf("tensor dimension must be in [1,%d], have %d: %w",
			utils.MaxTensorDim, dim, utils.ErrDimensionMismatch)
	}
	axes := make([]nodes.NodeSet, dim)
	for d := range axes {
		axes[d] = ns
	}
	return New[T](axes...)
}

func (b *Basis[T]) Dim() int                 { return len(b.axes) }
func (b *Basis[T]) NumBasis() int            { return b.index.Size() }
func (b *Basis[T]) Indexer() *Indexer        { return b.index }
func (b *Basis[T]) Axis(d int) nodes.NodeSet { return b.nodeSet[d] }

// Order is the largest polynomial degree over the axes.
func (b *Basis[T]) Order() (order int) {
	for _, ns := range b.nodeSet {
		order = max(order, ns.Order())
	}
	return
}

func (b *Basis[T]) Name() string {
	return fmt.Sprintf("Lagrange%dD-P%d", b.Dim(), b.Order())
}

// ReferenceNodes returns the tensor-product node coordinates in flat order.
func (b *Basis[T]) ReferenceNodes() (X [][]float64) {
	var (
		dim = b.Dim()
	)
	X = make([][]float64, b.NumBasis())
	for f := range X {
		mi := b.index.MultiIndex(f)
		X[f] = make([]float64, dim)
		for d := 0; d < dim; d++ {
			X[f][d] = b.nodeSet[d].At(mi[d])
		}
	}
	return
}

// axisTables evaluates every 1D basis at its coordinate of point. der is nil
// unless withDerivs is set.
func (b *Basis[T]) axisTables(point []T, withDerivs bool) (val, der [][]T, err error) {
	var (
		dim = b.Dim()
	)
	if len(point) != dim {
		err = fmt.Errorf("point has %d coordinates, basis is %dD: %w",
			len(point), dim, utils.ErrDimensionMismatch)
		return
	}
	val = make([][]T, dim)
	if withDerivs {
		der = make([][]T, dim)
	}
	for d, ax := range b.axes {
		val[d] = make([]T, ax.Len())
		var dd []T
		if withDerivs {
			der[d] = make([]T, ax.Len())
			dd = der[d]
		}
		if err = ax.Eval(point[d], val[d], dd); err != nil {
			return
		}
	}
	return
}

func (b *Basis[T]) checkIndex(i int) (err error) {
	if i < 0 || i >= b.NumBasis() {
		err = fmt.Errorf("basis index %d out of range [0,%d): %w",
			i, b.NumBasis(), utils.ErrDimensionMismatch)
	}
	return
}

// product multiplies the per-axis factors of basis f, substituting the
// derivative table on axis g (g < 0 differentiates nothing).
func (b *Basis[T]) product(f, g int, val, der [][]T) (v T) {
	v = 1
	for d, i := range b.index.MultiIndex(f) {
		if d == g {
			v *= der[d][i]
		} else {
			v *= val[d][i]
		}
	}
	return
}

// Eval writes the NumBasis shape function values at point into out.
func (b *Basis[T]) Eval(point []T, out []T) (err error) {
	if len(out) != b.NumBasis() {
		return fmt.Errorf("output has length %d, need %d: %w",
			len(out), b.NumBasis(), utils.ErrDimensionMismatch)
	}
	val, _, err := b.axisTables(point, false)
	if err != nil {
		return
	}
	for f := range out {
		out[f] = b.product(f, -1, val, nil)
	}
	return
}

// EvalAt returns basis function i at point.
func (b *Basis[T]) EvalAt(i int, point []T) (v T, err error) {
	var (
		dim = b.Dim()
	)
	if err = b.checkIndex(i); err != nil {
		return
	}
	if len(point) != dim {
		err = fmt.Errorf("point has %d coordinates, basis is %dD: %w",
			len(point), dim, utils.ErrDimensionMismatch)
		return
	}
	v = 1
	for d, k := range b.index.MultiIndex(i) {
		var lv T
		if lv, _, err = b.axes[d].EvalAt(k, point[d]); err != nil {
			return
		}
		v *= lv
	}
	return
}

// Gradient writes the reference-space gradient of every basis function:
// out[f][g] = d phi_f / d xi_g.
func (b *Basis[T]) Gradient(point []T, out [][]T) (err error) {
	var (
		dim = b.Dim()
	)
	if len(out) != b.NumBasis() {
		return fmt.Errorf("gradient output has %d rows, need %d: %w",
			len(out), b.NumBasis(), utils.ErrDimensionMismatch)
	}
	for f := range out {
		if len(out[f]) != dim {
			return fmt.Errorf("gradient row %d has length %d, need %d: %w",
				f, len(out[f]), dim, utils.ErrDimensionMismatch)
		}
	}
	val, der, err := b.axisTables(point, true)
	if err != nil {
		return
	}
	for f := range out {
		for g := 0; g < dim; g++ {
			out[f][g] = b.product(f, g, val, der)
		}
	}
	return
}

// GradientAt writes the gradient of basis function i into out.
func (b *Basis[T]) GradientAt(i int, point []T, out []T) (err error) {
	var (
		dim = b.Dim()
		val = make([]T, dim)
		der = make([]T, dim)
	)
	if err = b.checkIndex(i); err != nil {
		return
	}
	if len(point) != dim || len(out) != dim {
		err = fmt.Errorf("point/output lengths %d, %d, basis is %dD: %w",
			len(point), len(out), dim, utils.ErrDimensionMismatch)
		return
	}
	for d, k := range b.index.MultiIndex(i) {
		if val[d], der[d], err = b.axes[d].EvalAt(k, point[d]); err != nil {
			return
		}
	}
	for g := 0; g < dim; g++ {
		out[g] = 1
		for d := 0; d < dim; d++ {
			if d == g {
				out[g] *= der[d]
			} else {
				out[g] *= val[d]
			}
		}
	}
	return
}

// EvalApprox returns sum_f coeffs[f] * phi_f(point).
func (b *Basis[T]) EvalApprox(coeffs, point []T) (u T, err error) {
	if len(coeffs) != b.NumBasis() {
		err = fmt.Errorf("%d coefficients for %d basis functions: %w",
			len(coeffs), b.NumBasis(), utils.ErrDimensionMismatch)
		return
	}
	val, _, err := b.axisTables(point, false)
	if err != nil {
		return
	}
	for f, c := range coeffs {
		u += c * b.product(f, -1, val, nil)
	}
	return
}

// EvalGradApprox writes sum_f coeffs[f] * grad phi_f(point) into out.
func (b *Basis[T]) EvalGradApprox(coeffs, point []T, out []T) (err error) {
	var (
		dim = b.Dim()
	)
	if len(coeffs) != b.NumBasis() || len(out) != dim {
		err = fmt.Errorf("%d coefficients, output length %d, need %d and %d: %w",
			len(coeffs), len(out), b.NumBasis(), dim, utils.ErrDimensionMismatch)
		return
	}
	val, der, err := b.axisTables(point, true)
	if err != nil {
		return
	}
	for g := range out {
		out[g] = 0
	}
	for f, c := range coeffs {
		for g := 0; g < dim; g++ {
			out[g] += c * b.product(f, g, val, der)
		}
	}
	return
}
