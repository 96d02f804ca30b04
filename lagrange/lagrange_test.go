package lagrange

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/tensorbasis/nodes"
	"github.com/notargets/tensorbasis/utils"
)

func TestLagrange1D(t *testing.T) {
	var (
		rnd = rand.New(rand.NewSource(1))
	)
	{ // Closed form for nodes {-1,0,1}
		b, err := New[float64](nodes.MustNew(-1, 0, 1))
		require.NoError(t, err)
		values, derivs := make([]float64, 3), make([]float64, 3)
		for _, x := range []float64{-1.3, -1, -0.4, 0, 0.7, 1, 2} {
			require.NoError(t, b.Eval(x, values, derivs))
			assert.InDelta(t, x*(x-1)/2, values[0], 1.e-15)
			assert.InDelta(t, 1-x*x, values[1], 1.e-15)
			assert.InDelta(t, x*(x+1)/2, values[2], 1.e-15)
			assert.InDelta(t, (2*x-1)/2, derivs[0], 1.e-15)
			assert.InDelta(t, -2*x, derivs[1], 1.e-15)
			assert.InDelta(t, (2*x+1)/2, derivs[2], 1.e-15)
		}
	}
	for _, nt := range []nodes.NodeType{nodes.Equispaced, nodes.Chebyshev, nodes.Lobatto} {
		for n := 2; n <= 12; n++ {
			ns, err := nodes.Generate(nt, n)
			require.NoError(t, err)
			b, err := New[float64](ns)
			require.NoError(t, err)
			values, derivs := make([]float64, n), make([]float64, n)
			// Cardinality at the nodes, exact
			for j := 0; j < n; j++ {
				require.NoError(t, b.Values(ns.At(j), values))
				for i := 0; i < n; i++ {
					if i == j {
						assert.Equal(t, 1., values[i])
					} else {
						assert.Equal(t, 0., values[i])
					}
				}
				// The derivative at a node is finite
				require.NoError(t, b.Derivatives(ns.At(j), derivs))
				assert.True(t, utils.IsFinite(derivs))
			}
			// Partition of unity and derivative partition, inside and outside [-1,1]
			points := []float64{-1.5, 1.5}
			for k := 0; k < 10; k++ {
				points = append(points, -1+2*rnd.Float64())
			}
			points = append(points, ns.Values()...)
			for _, x := range points {
				require.NoError(t, b.Eval(x, values, derivs))
				var sum, dsum, dabs, vabs float64
				for i := range values {
					sum += values[i]
					vabs += math.Abs(values[i])
					dsum += derivs[i]
					dabs += math.Abs(derivs[i])
				}
				assert.InDelta(t, 1., sum, 1.e-14*vabs, "%s n = %d x = %v", nt, n, x)
				assert.InDelta(t, 0., dsum, 1.e-13*dabs+1.e-14, "%s n = %d x = %v", nt, n, x)
			}
		}
	}
	{ // Derivative matches the complex step derivative, away from and at the nodes
		ns, _ := nodes.Generate(nodes.Lobatto, 9)
		bc, err := New[complex128](ns)
		require.NoError(t, err)
		h := 1.e-30
		values, derivs := make([]complex128, 9), make([]complex128, 9)
		for _, x := range append([]float64{-0.83, 0.123, 0.91, 1.2}, ns.Values()...) {
			require.NoError(t, bc.Eval(complex(x, h), values, nil))
			require.NoError(t, bc.Eval(complex(x, 0), nil, derivs))
			for i := range values {
				cs := imag(values[i]) / h
				assert.InDelta(t, cs, real(derivs[i]), 1.e-10*math.Max(1, math.Abs(cs)))
				assert.Equal(t, 0., imag(derivs[i]))
			}
		}
	}
	{ // Single index evaluation agrees with the full evaluation
		ns, _ := nodes.Generate(nodes.Chebyshev, 6)
		b, _ := New[float64](ns)
		values, derivs := make([]float64, 6), make([]float64, 6)
		x := 0.321
		require.NoError(t, b.Eval(x, values, derivs))
		for i := 0; i < 6; i++ {
			v, d, err := b.EvalAt(i, x)
			require.NoError(t, err)
			assert.Equal(t, values[i], v)
			assert.Equal(t, derivs[i], d)
		}
		_, _, err := b.EvalAt(6, x)
		assert.True(t, errors.Is(err, utils.ErrDimensionMismatch))
		assert.Equal(t, 6, b.Len())
		assert.Equal(t, ns.At(2), b.Node(2))
	}
	{ // Output length mismatch and invalid construction
		b, _ := New[float64](nodes.MustNew(-1, 1))
		err := b.Eval(0, make([]float64, 3), nil)
		assert.True(t, errors.Is(err, utils.ErrDimensionMismatch))
		err = b.Derivatives(0, make([]float64, 1))
		assert.True(t, errors.Is(err, utils.ErrDimensionMismatch))
		_, err = New[float64](nodes.NodeSet{})
		assert.True(t, errors.Is(err, utils.ErrDimensionMismatch))
		// Product of node gaps underflows to zero
		tiny := make([]float64, 200)
		for i := range tiny {
			tiny[i] = float64(i) * 1.e-300
		}
		ns, err := nodes.New(tiny)
		require.NoError(t, err)
		_, err = New[float64](ns)
		assert.True(t, errors.Is(err, utils.ErrDegenerateNodeSet))
	}
	{
		assert.Equal(t, complex(2.5, 0), FromReal[complex128](2.5))
		assert.Equal(t, 2.5, FromReal[float64](2.5))
		assert.Equal(t, 0., cmplx.Abs(FromReal[complex128](0)))
	}
}

func BenchmarkLagrange1D(b *testing.B) {
	ns, _ := nodes.Generate(nodes.Lobatto, 9)
	basis, _ := New[float64](ns)
	values, derivs := make([]float64, 9), make([]float64, 9)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_ = basis.Eval(0.3, values, derivs)
	}
}
