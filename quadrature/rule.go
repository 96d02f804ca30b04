package quadrature

import (
	"fmt"

	"github.com/notargets/tensorbasis/utils"
)

// Rule is a set of evaluation points with integration weights. Points are
// stored in the tensor flat order of utils.TensorIndex when built by Tensor.
type Rule struct {
	Points  [][]float64 // [Np][Dim]
	Weights []float64   // [Np]
}

func (r *Rule) Len() int { return len(r.Weights) }

func (r *Rule) Dim() int {
	if len(r.Points) == 0 {
		return 0
	}
	return len(r.Points[0])
}

// Integrate sums w_q * f(x_q) over the rule.
func (r *Rule) Integrate(f func(x []float64) float64) (sum float64) {
	for q, w := range r.Weights {
		sum += w * f(r.Points[q])
	}
	return
}

// Tensor builds the dim-dimensional product of a 1D rule.
func Tensor(dim int, x, w []float64) (r *Rule, err error) {
	var (
		ti *utils.TensorIndex
	)
	if len(x) != len(w) {
		err = fmt.Errorf("points and weights have lengths %d and %d: %w",
			len(x), len(w), utils.ErrDimensionMismatch)
		return
	}
	if ti, err = utils.NewIsotropicTensorIndex(dim, len(x)); err != nil {
		return
	}
	r = &Rule{
		Points:  make([][]float64, ti.Size()),
		Weights: make([]float64, ti.Size()),
	}
	for q := 0; q < ti.Size(); q++ {
		mi := ti.MultiIndex(q)
		r.Points[q] = make([]float64, dim)
		r.Weights[q] = 1
		for d, i := range mi {
			r.Points[q][d] = x[i]
			r.Weights[q] *= w[i]
		}
	}
	return
}

// NewGaussLegendre is the dim-dimensional tensor Gauss-Legendre rule with n
// points per axis.
func NewGaussLegendre(dim, n int) (r *Rule, err error) {
	var (
		x, w []float64
	)
	if x, w, err = GaussLegendre(n); err != nil {
		return
	}
	return Tensor(dim, x, w)
}
