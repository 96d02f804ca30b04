package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTensorIndex(t *testing.T) {
	{ // Round trip flat <-> multi for every dimension, anisotropic sizes
		for _, sizes := range [][]int{{5}, {3, 4}, {2, 3, 4}, {2, 3, 2, 3}, {4, 4, 4, 4}} {
			ti, err := NewTensorIndex(sizes...)
			require.NoError(t, err)
			assert.Equal(t, Index(sizes).Product(), ti.Size())
			assert.Equal(t, len(sizes), ti.Dim())
			seen := make(map[int]bool)
			for f := 0; f < ti.Size(); f++ {
				mi := ti.MultiIndex(f)
				require.Len(t, mi, len(sizes))
				assert.Equal(t, f, ti.FlatIndex(mi...))
				seen[f] = true
			}
			assert.Len(t, seen, ti.Size())
		}
	}
	{ // Axis 0 fastest, fixed strides
		ti, err := NewIsotropicTensorIndex(3, 4)
		require.NoError(t, err)
		assert.Equal(t, 1, ti.Stride(0))
		assert.Equal(t, 4, ti.Stride(1))
		assert.Equal(t, 16, ti.Stride(2))
		assert.Equal(t, 1+2*4+3*16, ti.FlatIndex(1, 2, 3))
		assert.Equal(t, []int{1, 0, 0}, ti.MultiIndex(1))
		assert.Equal(t, []int{0, 1, 0}, ti.MultiIndex(4))
		assert.Equal(t, []int{3, 3, 3}, ti.MultiIndex(63))
		out := make([]int, 3)
		require.NoError(t, ti.MultiIndexTo(21, out))
		assert.Equal(t, []int{1, 1, 1}, out)
	}
	{ // Corners follow the same convention
		ti, _ := NewIsotropicTensorIndex(2, 3)
		assert.Equal(t, Index{0, 2, 6, 8}, ti.Corners())
		ti, _ = NewIsotropicTensorIndex(3, 2)
		assert.Equal(t, Index{0, 1, 2, 3, 4, 5, 6, 7}, ti.Corners())
	}
	{ // Out of range and invalid construction
		ti, _ := NewTensorIndex(2, 3)
		assert.Equal(t, -1, ti.FlatIndex(2, 0))
		assert.Equal(t, -1, ti.FlatIndex(0))
		assert.Nil(t, ti.MultiIndex(6))
		assert.Nil(t, ti.MultiIndex(-1))
		assert.True(t, errors.Is(ti.MultiIndexTo(0, make([]int, 3)), ErrDimensionMismatch))
		assert.True(t, errors.Is(ti.MultiIndexTo(9, make([]int, 2)), ErrDimensionMismatch))
		_, err := NewTensorIndex()
		assert.True(t, errors.Is(err, ErrDimensionMismatch))
		_, err = NewTensorIndex(2, 2, 2, 2, 2)
		assert.True(t, errors.Is(err, ErrDimensionMismatch))
		_, err = NewTensorIndex(2, 0)
		assert.True(t, errors.Is(err, ErrDimensionMismatch))
		_, err = NewIsotropicTensorIndex(0, 3)
		assert.True(t, errors.Is(err, ErrDimensionMismatch))
	}
}
