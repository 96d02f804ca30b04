package utils

import (
	"fmt"
)

type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

// Invert treats I as a permutation of 0..len(I)-1 and returns its inverse,
// so that I.Invert()[I[i]] == i.
func (I Index) Invert() (r Index, err error) {
	r = make(Index, len(I))
	for i := range r {
		r[i] = -1
	}
	for i, val := range I {
		if val < 0 || val > len(I)-1 {
			err = fmt.Errorf("index %d out of permutation range [0,%d]: %w",
				val, len(I)-1, ErrDimensionMismatch)
			return
		}
		if r[val] != -1 {
			err = fmt.Errorf("index %d repeated, not a permutation: %w",
				val, ErrDimensionMismatch)
			return
		}
		r[val] = i
	}
	return
}

// Product returns the product of all entries, 1 for an empty index.
func (I Index) Product() (p int) {
	p = 1
	for _, val := range I {
		p *= val
	}
	return
}
