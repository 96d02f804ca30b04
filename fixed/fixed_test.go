package fixed

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/tensorbasis/nodes"
	"github.com/notargets/tensorbasis/tensor"
	"github.com/notargets/tensorbasis/utils"
)

func allElements() []*Element {
	return []*Element{Quad4(), Quad8(), Quad12(), Hex8(), Hex20(), Hex32(), Tess16()}
}

func newGrad(n, dim int) (g [][]float64) {
	g = make([][]float64, n)
	for i := range g {
		g[i] = make([]float64, dim)
	}
	return
}

func TestFixedElements(t *testing.T) {
	var (
		rnd = rand.New(rand.NewSource(11))
	)
	{
		assert.Equal(t, 4, Quad4().NumBasis())
		assert.Equal(t, 8, Quad8().NumBasis())
		assert.Equal(t, 8, Hex8().NumBasis())
		assert.Equal(t, 20, Hex20().NumBasis())
		assert.Equal(t, 16, Tess16().NumBasis())
		assert.Equal(t, 4, Tess16().Dim())
		assert.Equal(t, 2, Hex20().Order())
		assert.Equal(t, "Serendipity", Quad8().Family().String())
		assert.Equal(t, 12, Quad12().NumBasis())
		assert.Equal(t, 32, Hex32().NumBasis())
		assert.Equal(t, 3, Hex32().Order())
		assert.Equal(t, "CubicSerendipity", Quad12().Family().String())
	}
	for _, el := range allElements() {
		var (
			nb, dim = el.NumBasis(), el.Dim()
			phi     = make([]float64, nb)
			grad    = newGrad(nb, dim)
		)
		{ // Kronecker property at the reference vertices
			for j, r := range el.ReferenceVertices() {
				require.NoError(t, el.Eval(r, phi))
				for i, v := range phi {
					if i == j {
						assert.InDelta(t, 1., v, 1.e-14, el.Name())
					} else {
						assert.InDelta(t, 0., v, 1.e-14, el.Name())
					}
				}
			}
		}
		for trial := 0; trial < 10; trial++ {
			x := make([]float64, dim)
			for d := range x {
				x[d] = -1 + 2*rnd.Float64()
			}
			require.NoError(t, el.Eval(x, phi))
			require.NoError(t, el.Gradient(x, grad))
			{ // Partition of unity
				var sum float64
				gsum := make([]float64, dim)
				for i := range phi {
					sum += phi[i]
					for g := range gsum {
						gsum[g] += grad[i][g]
					}
				}
				assert.InDelta(t, 1., sum, 1.e-14, el.Name())
				assert.InDeltaSlice(t, make([]float64, dim), gsum, 1.e-14, el.Name())
			}
			{ // Gradient against central differences, and Partial against Gradient
				h := 1.e-6
				pp, pm := make([]float64, nb), make([]float64, nb)
				part := make([]float64, nb)
				for g := 0; g < dim; g++ {
					xp := append([]float64{}, x...)
					xm := append([]float64{}, x...)
					xp[g] += h
					xm[g] -= h
					require.NoError(t, el.Eval(xp, pp))
					require.NoError(t, el.Eval(xm, pm))
					require.NoError(t, el.Partial(g, x, part))
					for i := 0; i < nb; i++ {
						assert.InDelta(t, (pp[i]-pm[i])/(2*h), grad[i][g], 1.e-8, el.Name())
						assert.Equal(t, grad[i][g], part[i])
					}
				}
			}
		}
	}
}

func TestSerendipityQuadratics(t *testing.T) {
	var (
		rnd = rand.New(rand.NewSource(12))
	)
	// Serendipity elements interpolate complete quadratics exactly
	for _, el := range []*Element{Quad8(), Hex20(), Quad12(), Hex32()} {
		var (
			R   = el.ReferenceVertices()
			phi = make([]float64, el.NumBasis())
		)
		quadratics := []func(x []float64) float64{
			func(x []float64) float64 { return x[0] * x[0] },
			func(x []float64) float64 { return x[0] * x[1] },
			func(x []float64) float64 { return 1 + 2*x[1] - x[1]*x[1] + 3*x[0]*x[1] },
		}
		for trial := 0; trial < 5; trial++ {
			x := make([]float64, el.Dim())
			for d := range x {
				x[d] = -1 + 2*rnd.Float64()
			}
			require.NoError(t, el.Eval(x, phi))
			for _, f := range quadratics {
				var u float64
				for i, r := range R {
					u += phi[i] * f(r)
				}
				assert.InDelta(t, f(x), u, 1.e-14, el.Name())
			}
		}
	}
}

func TestSerendipityCubics(t *testing.T) {
	var (
		rnd = rand.New(rand.NewSource(14))
	)
	cubics := []func(x []float64) float64{
		func(x []float64) float64 { return x[0] * x[0] * x[0] },
		func(x []float64) float64 { return x[0] * x[0] * x[1] },
		func(x []float64) float64 { return 2 - x[1]*x[1]*x[1] + 0.5*x[0]*x[1]*x[1] },
		func(x []float64) float64 { return x[0] * x[0] * x[0] * x[1] },
	}
	for _, el := range []*Element{Quad12(), Hex32()} {
		var (
			R   = el.ReferenceVertices()
			phi = make([]float64, el.NumBasis())
			fs  = cubics
		)
		if el.Dim() == 3 {
			fs = append(cubics[:3:3], func(x []float64) float64 { return x[0] * x[1] * x[2] })
		}
		for trial := 0; trial < 5; trial++ {
			x := make([]float64, el.Dim())
			for d := range x {
				x[d] = -1 + 2*rnd.Float64()
			}
			require.NoError(t, el.Eval(x, phi))
			for _, f := range fs {
				var u float64
				for i, r := range R {
					u += phi[i] * f(r)
				}
				assert.InDelta(t, f(x), u, 1.e-13, el.Name())
			}
		}
	}
	{ // Quadratic serendipity is not cubic
		el := Quad8()
		phi := make([]float64, el.NumBasis())
		x := []float64{0.3, -0.6}
		require.NoError(t, el.Eval(x, phi))
		var u float64
		for i, r := range el.ReferenceVertices() {
			u += phi[i] * cubics[0](r)
		}
		assert.Greater(t, math.Abs(u-cubics[0](x)), 1.e-3)
	}
}

func TestTensorAgreement(t *testing.T) {
	var (
		rnd = rand.New(rand.NewSource(13))
	)
	{
		perm, err := Quad4().TensorOrder()
		require.NoError(t, err)
		assert.Equal(t, utils.Index{0, 1, 3, 2}, perm)
		perm, err = Hex8().TensorOrder()
		require.NoError(t, err)
		assert.Equal(t, utils.Index{0, 1, 2, 3, 4, 5, 6, 7}, perm)
		_, err = Hex20().TensorOrder()
		assert.Error(t, err)
		_, err = Quad12().TensorOrder()
		assert.Error(t, err)
	}
	for _, el := range []*Element{Quad4(), Hex8(), Tess16()} {
		var (
			nb, dim = el.NumBasis(), el.Dim()
		)
		perm, err := el.TensorOrder()
		require.NoError(t, err)
		_, err = perm.Invert()
		require.NoError(t, err)
		tb, err := tensor.NewIsotropic[float64](dim, nodes.MustNew(-1, 1))
		require.NoError(t, err)
		require.Equal(t, nb, tb.NumBasis())
		phi, tphi := make([]float64, nb), make([]float64, nb)
		grad, tgrad := newGrad(nb, dim), newGrad(nb, dim)
		for trial := 0; trial < 5; trial++ {
			x := make([]float64, dim)
			for d := range x {
				x[d] = -1 + 2*rnd.Float64()
			}
			require.NoError(t, el.Eval(x, phi))
			require.NoError(t, tb.Eval(x, tphi))
			require.NoError(t, el.Gradient(x, grad))
			require.NoError(t, tb.Gradient(x, tgrad))
			for i := 0; i < nb; i++ {
				assert.InDelta(t, tphi[perm[i]], phi[i], 1.e-15, el.Name())
				assert.InDeltaSlice(t, tgrad[perm[i]], grad[i], 1.e-15, el.Name())
			}
		}
	}
}

func TestFixedErrors(t *testing.T) {
	el := Hex8()
	check := func(err error) {
		assert.True(t, errors.Is(err, utils.ErrDimensionMismatch), "%v", err)
	}
	check(el.Eval([]float64{0, 0}, make([]float64, 8)))
	check(el.Eval([]float64{0, 0, 0}, make([]float64, 7)))
	check(el.Partial(3, []float64{0, 0, 0}, make([]float64, 8)))
	check(el.Gradient([]float64{0, 0, 0}, newGrad(8, 2)))
	{
		_, err := ByName("pyramid5")
		assert.Error(t, err)
		q, err := ByName("QUAD8")
		require.NoError(t, err)
		assert.Equal(t, "Quad8", q.Name())
		_, ok := ForDim(4, 2)
		assert.False(t, ok)
		h, ok := ForDim(3, 2)
		assert.True(t, ok)
		assert.Equal(t, "Hex20", h.Name())
		q, ok = ForDim(2, 3)
		assert.True(t, ok)
		assert.Equal(t, "Quad12", q.Name())
		h, err = ByName("hex32")
		require.NoError(t, err)
		assert.Equal(t, 3, h.Dim())
	}
}
