package utils

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMath(t *testing.T) {
	{ // POW agrees with math.Pow over the unrolled and fallback ranges
		for p := -10; p <= 10; p++ {
			assert.InDelta(t, math.Pow(1.3, float64(p)), POW(1.3, p), 1.e-12)
		}
	}
	{
		assert.Equal(t, 10., Binomial(5, 2))
		assert.Equal(t, 1., Binomial(7, 0))
		assert.Equal(t, 1., Binomial(7, 7))
		assert.Equal(t, 0., Binomial(3, 4))
		assert.Equal(t, 0., Binomial(3, -1))
	}
	{
		assert.True(t, IsFinite(1.))
		assert.False(t, IsFinite(math.NaN()))
		assert.False(t, IsFinite([]float64{1, math.Inf(-1)}))
		assert.False(t, IsFinite([][]float64{{1}, {2, math.NaN()}}))
		assert.False(t, IsFinite(complex(0, math.Inf(1))))
		assert.True(t, IsFinite([]complex128{1 + 2i}))
	}
}

func TestIndex(t *testing.T) {
	{
		I := Index{2, 3, 4, 5}
		assert.Equal(t, 120, I.Product())
		assert.Equal(t, 1, NewIndex(0).Product())
	}
	{
		P := Index{2, 0, 3, 1}
		Pinv, err := P.Invert()
		require.NoError(t, err)
		for i, val := range P {
			assert.Equal(t, i, Pinv[val])
		}
		_, err = Index{0, 0, 1}.Invert()
		assert.True(t, errors.Is(err, ErrDimensionMismatch))
		_, err = Index{0, 3}.Invert()
		assert.True(t, errors.Is(err, ErrDimensionMismatch))
	}
}
