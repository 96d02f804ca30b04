package element

import (
	"fmt"
	"strings"

	"github.com/notargets/tensorbasis/fixed"
	"github.com/notargets/tensorbasis/nodes"
	"github.com/notargets/tensorbasis/tensor"
	"github.com/notargets/tensorbasis/utils"
)

// ShapeFunctions is what the geometric map and the batch evaluator need from
// an element.
type ShapeFunctions interface {
	Dim() int
	NumBasis() int
	Eval(point, out []float64) error
	Gradient(point []float64, out [][]float64) error
}

type Element interface {
	ShapeFunctions
	Name() string
	Order() int
	// ReferenceNodes is the reference coordinate of the node carrying each
	// basis function, in basis order.
	ReferenceNodes() [][]float64
}

type Family uint8

const (
	// Auto uses a closed-form element when one matches the dimension and
	// order 1, the tensor engine otherwise. Either way the basis, and so the
	// vertex and coefficient order, is the tensor flat order.
	Auto Family = iota
	Tensor
	Fixed
)

func (f Family) String() string {
	switch f {
	case Auto:
		return "Auto"
	case Tensor:
		return "Tensor"
	case Fixed:
		return "Fixed"
	}
	return fmt.Sprintf("Family(%d)", uint8(f))
}

func NewFamily(label string) (f Family, err error) {
	switch strings.ToLower(label) {
	case "", "auto":
		f = Auto
	case "tensor":
		f = Tensor
	case "fixed":
		f = Fixed
	default:
		err = fmt.Errorf("unknown element family %q", label)
	}
	return
}

type Config struct {
	Dimension int
	Order     int
	NodeType  nodes.NodeType
	Family    Family
}

// New builds the element described by cfg. Fixed selects a closed-form
// element (Quad8 and Hex20 for order 2, Quad12 and Hex32 for order 3) in its own vertex order, Tensor the
// Lagrange engine with cfg.NodeType nodes on every axis.
func New(cfg Config) (el Element, err error) {
	if cfg.Dimension < 1 || cfg.Dimension > utils.MaxTensorDim {
		err = fmt.Errorf("element dimension must be in [1,%d], have %d: %w",
			utils.MaxTensorDim, cfg.Dimension, utils.ErrDimensionMismatch)
		return
	}
	if cfg.Order < 1 {
		err = fmt.Errorf("element order must be >= 1, have %d: %w",
			cfg.Order, utils.ErrDimensionMismatch)
		return
	}
	switch cfg.Family {
	case Fixed:
		fe, ok := fixed.ForDim(cfg.Dimension, cfg.Order)
		if !ok {
			err = fmt.Errorf("no fixed element of dimension %d and order %d",
				cfg.Dimension, cfg.Order)
			return
		}
		return fe, nil
	case Auto:
		if cfg.Order == 1 {
			if fe, ok := fixed.ForDim(cfg.Dimension, 1); ok {
				var te *tensorOrdered
				if te, err = newTensorOrdered(fe); err != nil {
					return
				}
				return te, nil
			}
		}
	case Tensor:
	default:
		err = fmt.Errorf("unknown element family %v", cfg.Family)
		return
	}
	ns, err := nodes.Generate(cfg.NodeType, cfg.Order+1)
	if err != nil {
		return
	}
	return NewWithNodes(cfg.Dimension, ns)
}

/*
NewWithNodes builds a tensor element from caller supplied node sets: either
one set used on all dim axes, or exactly dim sets.
*/
func NewWithNodes(dim int, axes ...nodes.NodeSet) (el Element, err error) {
	var (
		b *tensor.Basis[float64]
	)
	switch len(axes) {
	case 1:
		b, err = tensor.NewIsotropic[float64](dim, axes[0])
	case dim:
		b, err = tensor.New[float64](axes...)
	default:
		err = fmt.Errorf("%d node sets for a %dD element: %w",
			len(axes), dim, utils.ErrDimensionMismatch)
	}
	if err != nil {
		return
	}
	return b, nil
}
