package nodes

import (
	"fmt"
	"math"

	"github.com/notargets/tensorbasis/quadrature"
	"github.com/notargets/tensorbasis/utils"
)

// NodeSet is an ordered set of distinct 1D coordinates at which a Lagrange
// basis interpolates. It is immutable once constructed.
type NodeSet struct {
	x []float64
}

// New copies x into a NodeSet. Two entries that compare equal make the
// interpolation problem singular and fail with utils.ErrDegenerateNodeSet;
// fewer than two entries, or a non-finite entry, fail with
// utils.ErrDimensionMismatch.
func New(x []float64) (ns NodeSet, err error) {
	if len(x) < 2 {
		err = fmt.Errorf("node set needs at least 2 nodes, have %d: %w",
			len(x), utils.ErrDimensionMismatch)
		return
	}
	if !utils.IsFinite(x) {
		err = fmt.Errorf("node set %v has a non finite entry: %w", x, utils.ErrDimensionMismatch)
		return
	}
	for i := range x {
		for j := i + 1; j < len(x); j++ {
			if x[i] == x[j] {
				err = fmt.Errorf("nodes %d and %d coincide at %v: %w",
					i, j, x[i], utils.ErrDegenerateNodeSet)
				return
			}
		}
	}
	ns = NodeSet{x: append([]float64{}, x...)}
	return
}

// MustNew is New for literal node sets known to be valid.
func MustNew(x ...float64) NodeSet {
	ns, err := New(x)
	if err != nil {
		panic(err)
	}
	return ns
}

func (ns NodeSet) Len() int          { return len(ns.x) }
func (ns NodeSet) At(i int) float64  { return ns.x[i] }
func (ns NodeSet) Values() []float64 { return append([]float64{}, ns.x...) }
func (ns NodeSet) Order() int        { return len(ns.x) - 1 }
func (ns NodeSet) IsZero() bool      { return len(ns.x) == 0 }
func (ns NodeSet) String() string    { return fmt.Sprintf("%v", ns.x) }

// Contains returns the index of the node exactly equal to x.
func (ns NodeSet) Contains(x float64) (i int, ok bool) {
	for i = range ns.x {
		if ns.x[i] == x {
			return i, true
		}
	}
	return -1, false
}

// Bounds returns the smallest and largest node.
func (ns NodeSet) Bounds() (min, max float64) {
	min, max = ns.x[0], ns.x[0]
	for _, val := range ns.x {
		if val < min {
			min = val
		}
		if val > max {
			max = val
		}
	}
	return
}

type NodeType string

const (
	Equispaced = NodeType("Equispaced")
	Chebyshev  = NodeType("Chebyshev")
	Lobatto    = NodeType("Lobatto")
)

// Generate returns n nodes of the given distribution on [-1,1].
func Generate(nodeType NodeType, n int) (ns NodeSet, err error) {
	var (
		x []float64
	)
	if n < 2 {
		err = fmt.Errorf("node set needs at least 2 nodes, have %d: %w",
			n, utils.ErrDimensionMismatch)
		return
	}
	switch nodeType {
	case Equispaced:
		x = EquispacedPoints(n, -1, 1)
	case Chebyshev:
		x = ChebyshevPoints(n)
	case Lobatto, "":
		if x, err = quadrature.JacobiGL(0, 0, n-1); err != nil {
			return
		}
	default:
		err = fmt.Errorf("unknown node type %q, must be one of %s, %s, %s",
			nodeType, Equispaced, Chebyshev, Lobatto)
		return
	}
	return New(x)
}

// EquispacedPoints returns n evenly spaced points from a to b inclusive.
func EquispacedPoints(n int, a, b float64) (x []float64) {
	x = make([]float64, n)
	h := (b - a) / float64(n-1)
	for i := range x {
		x[i] = a + float64(i)*h
	}
	x[n-1] = b
	return
}

// ChebyshevPoints returns the n Chebyshev-Gauss-Lobatto points -cos(pi i/(n-1)),
// ascending, with the midpoint snapped to exactly zero for odd n.
func ChebyshevPoints(n int) (x []float64) {
	x = make([]float64, n)
	for i := range x {
		x[i] = -math.Cos(math.Pi * float64(i) / float64(n-1))
	}
	if n%2 == 1 {
		x[n/2] = 0
	}
	x[0], x[n-1] = -1, 1
	return
}
