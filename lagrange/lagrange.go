package lagrange

import (
	"fmt"
	"math"

	"github.com/notargets/tensorbasis/nodes"
	"github.com/notargets/tensorbasis/utils"
)

// Scalar is the arithmetic the basis is evaluated in. complex128 carries the
// complex-step derivative check; node coordinates are always real.
type Scalar interface {
	float64 | complex128
}

// FromReal converts a real coordinate into the scalar type T.
func FromReal[T Scalar](x float64) (v T) {
	switch p := any(&v).(type) {
	case *float64:
		*p = x
	case *complex128:
		*p = complex(x, 0)
	}
	return
}

/*
Basis1D holds the N Lagrange polynomials of degree N-1 through a NodeSet:

	l_i(x)  = prod_{j!=i} (x - x_j) / prod_{j!=i} (x_i - x_j)
	l_i'(x) = sum_{j!=i} prod_{k!=i,j} (x - x_k) / prod_{j!=i} (x_i - x_j)

The derivative is always evaluated in the numerator-sum form, which is finite
when x coincides with a node, so there is no branch on node coincidence and
no tolerance. The denominators are fixed by the nodes and computed once.
*/
type Basis1D[T Scalar] struct {
	nodes []T
	denom []T
}

func New[T Scalar](ns nodes.NodeSet) (b *Basis1D[T], err error) {
	var (
		n = ns.Len()
	)
	if n < 2 {
		err = fmt.Errorf("lagrange basis needs a node set of at least 2 nodes, have %d: %w",
			n, utils.ErrDimensionMismatch)
		return
	}
	b = &Basis1D[T]{
		nodes: make([]T, n),
		denom: make([]T, n),
	}
	for i := 0; i < n; i++ {
		d := 1.
		for j := 0; j < n; j++ {
			if j != i {
				d *= ns.At(i) - ns.At(j)
			}
		}
		if d == 0 || math.IsInf(d, 0) || math.IsNaN(d) {
			err = fmt.Errorf("denominator of basis %d is %v for nodes %v: %w",
				i, d, ns, utils.ErrDegenerateNodeSet)
			return nil, err
		}
		b.nodes[i] = FromReal[T](ns.At(i))
		b.denom[i] = FromReal[T](d)
	}
	return
}

func (b *Basis1D[T]) Len() int { return len(b.nodes) }

// Node returns node i in the scalar type of the basis.
func (b *Basis1D[T]) Node(i int) T { return b.nodes[i] }

// Eval writes all N basis values and derivatives at x. Either output may be
// nil when it is not wanted.
func (b *Basis1D[T]) Eval(x T, values, derivs []T) (err error) {
	var (
		n = len(b.nodes)
	)
	if (values != nil && len(values) != n) || (derivs != nil && len(derivs) != n) {
		err = fmt.Errorf("basis output lengths %d, %d, need %d: %w",
			len(values), len(derivs), n, utils.ErrDimensionMismatch)
		return
	}
	for i := 0; i < n; i++ {
		p, s := b.term(i, x)
		if values != nil {
			values[i] = p / b.denom[i]
		}
		if derivs != nil {
			derivs[i] = s / b.denom[i]
		}
	}
	return
}

// Values writes the N basis values at x.
func (b *Basis1D[T]) Values(x T, out []T) error { return b.Eval(x, out, nil) }

// Derivatives writes the N basis derivatives at x.
func (b *Basis1D[T]) Derivatives(x T, out []T) error { return b.Eval(x, nil, out) }

// EvalAt returns basis i and its derivative at x.
func (b *Basis1D[T]) EvalAt(i int, x T) (v, d T, err error) {
	if i < 0 || i >= len(b.nodes) {
		err = fmt.Errorf("basis index %d out of range [0,%d): %w",
			i, len(b.nodes), utils.ErrDimensionMismatch)
		return
	}
	p, s := b.term(i, x)
	return p / b.denom[i], s / b.denom[i], nil
}

// term returns the numerator product p = prod_{j!=i}(x - x_j) and its
// derivative s = sum_{j!=i} prod_{k!=i,j}(x - x_k). s is accumulated with the
// product rule, (p a)' = p' a + p, which forms exactly the sum of partial
// products without dividing by any (x - x_j).
func (b *Basis1D[T]) term(i int, x T) (p, s T) {
	p, s = 1, 0
	for j, xj := range b.nodes {
		if j == i {
			continue
		}
		a := x - xj
		s = s*a + p
		p = p * a
	}
	return
}
