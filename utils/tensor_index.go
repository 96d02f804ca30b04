package utils

import (
	"fmt"
)

// MaxTensorDim is the largest number of reference axes supported by the
// tensor-product index, enough for 3D space plus time.
const MaxTensorDim = 4

/*
TensorIndex is the bijection between a flat basis (or vertex, coefficient,
quadrature point) index and the tuple of per-axis indices (i0, i1, ... iD-1).

Axis 0 varies fastest:

	flat = i0 + i1*N0 + i2*N0*N1 + i3*N0*N1*N2

so a step along reference axis d is a fixed stride Stride(d) in the flat
layout. Every consumer (basis values, gradients, vertex tables, coefficient
vectors, quadrature rules) goes through this type, so they agree on ordering.
The multi-index table is built once and is read only afterward.
*/
type TensorIndex struct {
	sizes   Index
	strides Index
	size    int
	table   []int // [size*dim], row f holds the multi-index of flat index f
}

func NewTensorIndex(sizes ...int) (ti *TensorIndex, err error) {
	var (
		dim = len(sizes)
	)
	if dim < 1 || dim > MaxTensorDim {
		err = fmt.Errorf("tensor dimension must be in [1,%d], have %d: %w",
			MaxTensorDim, dim, ErrDimensionMismatch)
		return
	}
	for d, n := range sizes {
		if n < 1 {
			err = fmt.Errorf("axis %d has size %d, must be >= 1: %w",
				d, n, ErrDimensionMismatch)
			return
		}
	}
	ti = &TensorIndex{
		sizes:   append(Index{}, sizes...),
		strides: NewIndex(dim),
	}
	stride := 1
	for d := 0; d < dim; d++ {
		ti.strides[d] = stride
		stride *= sizes[d]
	}
	ti.size = ti.sizes.Product()
	ti.table = make([]int, ti.size*dim)
	for f := 0; f < ti.size; f++ {
		rem := f
		for d := 0; d < dim; d++ {
			ti.table[f*dim+d] = rem % sizes[d]
			rem /= sizes[d]
		}
	}
	return
}

// NewIsotropicTensorIndex has n entries along each of dim axes.
func NewIsotropicTensorIndex(dim, n int) (ti *TensorIndex, err error) {
	if dim < 1 || dim > MaxTensorDim {
		err = fmt.Errorf("tensor dimension must be in [1,%d], have %d: %w",
			MaxTensorDim, dim, ErrDimensionMismatch)
		return
	}
	sizes := NewIndex(dim)
	for d := range sizes {
		sizes[d] = n
	}
	return NewTensorIndex(sizes...)
}

func (ti *TensorIndex) Dim() int         { return len(ti.sizes) }
func (ti *TensorIndex) Size() int        { return ti.size }
func (ti *TensorIndex) Stride(d int) int { return ti.strides[d] }

// Sizes returns a copy of the per-axis sizes.
func (ti *TensorIndex) Sizes() Index { return append(Index{}, ti.sizes...) }

// MultiIndex returns a read-only view of the per-axis indices of flat, or nil
// when flat is out of range.
func (ti *TensorIndex) MultiIndex(flat int) []int {
	var (
		dim = len(ti.sizes)
	)
	if flat < 0 || flat >= ti.size {
		return nil
	}
	return ti.table[flat*dim : (flat+1)*dim : (flat+1)*dim]
}

// MultiIndexTo copies the per-axis indices of flat into out.
func (ti *TensorIndex) MultiIndexTo(flat int, out []int) (err error) {
	if len(out) != len(ti.sizes) {
		err = fmt.Errorf("multi-index output has length %d, need %d: %w",
			len(out), len(ti.sizes), ErrDimensionMismatch)
		return
	}
	mi := ti.MultiIndex(flat)
	if mi == nil {
		err = fmt.Errorf("flat index %d out of range [0,%d): %w",
			flat, ti.size, ErrDimensionMismatch)
		return
	}
	copy(out, mi)
	return
}

// FlatIndex is the inverse of MultiIndex. It returns -1 when the number of
// indices does not match Dim or any index is out of range.
func (ti *TensorIndex) FlatIndex(idx ...int) (flat int) {
	if len(idx) != len(ti.sizes) {
		return -1
	}
	for d, i := range idx {
		if i < 0 || i >= ti.sizes[d] {
			return -1
		}
		flat += i * ti.strides[d]
	}
	return
}

// Corners returns the flat indices of the 2^D reference corners, ordered by
// the same axis-0-fastest rule applied to the (first, last) index per axis.
func (ti *TensorIndex) Corners() (corners Index) {
	var (
		dim = len(ti.sizes)
		nc  = 1 << dim
		mi  = NewIndex(dim)
	)
	corners = NewIndex(nc)
	for c := 0; c < nc; c++ {
		for d := 0; d < dim; d++ {
			if c&(1<<d) != 0 {
				mi[d] = ti.sizes[d] - 1
			} else {
				mi[d] = 0
			}
		}
		corners[c] = ti.FlatIndex(mi...)
	}
	return
}
