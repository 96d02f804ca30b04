package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/tensorbasis/quadrature"
	"github.com/notargets/tensorbasis/utils"
)

// ShapeFunctions is the basis a Map interpolates its vertices with.
type ShapeFunctions interface {
	Dim() int
	NumBasis() int
	Eval(point, out []float64) error
	Gradient(point []float64, out [][]float64) error
}

/*
Map is the isoparametric map from the reference element to physical space,
x(xi) = sum_i v_i phi_i(xi), with one physical vertex per shape function. The
physical and reference dimensions are equal, so the Jacobian is square:

	J[a][b] = d x_a / d xi_b = sum_i v[i][a] d phi_i / d xi_b
*/
type Map struct {
	sf       ShapeFunctions
	vertices [][]float64
}

func NewMap(sf ShapeFunctions, vertices [][]float64) (m *Map, err error) {
	var (
		nb, dim = sf.NumBasis(), sf.Dim()
	)
	if len(vertices) != nb {
		err = fmt.Errorf("%d vertices for %d shape functions: %w",
			len(vertices), nb, utils.ErrDimensionMismatch)
		return
	}
	m = &Map{sf: sf, vertices: make([][]float64, nb)}
	for i, v := range vertices {
		if len(v) != dim {
			err = fmt.Errorf("vertex %d has %d coordinates, element is %dD: %w",
				i, len(v), dim, utils.ErrDimensionMismatch)
			return nil, err
		}
		m.vertices[i] = append([]float64{}, v...)
	}
	return
}

func (m *Map) Dim() int                       { return m.sf.Dim() }
func (m *Map) ShapeFunctions() ShapeFunctions { return m.sf }

// Vertex returns a copy of physical vertex i.
func (m *Map) Vertex(i int) []float64 { return append([]float64{}, m.vertices[i]...) }

// PhysicalPosition writes x(point) into out.
func (m *Map) PhysicalPosition(point, out []float64) (err error) {
	var (
		dim = m.sf.Dim()
		phi = make([]float64, m.sf.NumBasis())
	)
	if len(out) != dim {
		return fmt.Errorf("position output has length %d, need %d: %w",
			len(out), dim, utils.ErrDimensionMismatch)
	}
	if err = m.sf.Eval(point, phi); err != nil {
		return
	}
	for a := range out {
		out[a] = 0
	}
	for i, p := range phi {
		floats.AddScaled(out, p, m.vertices[i])
	}
	if !utils.IsFinite(out) {
		err = fmt.Errorf("non-finite position %v at %v: %w", out, point, utils.ErrSingularMapping)
	}
	return
}

func (m *Map) Jacobian(point []float64) (J *mat.Dense, err error) {
	var (
		dim  = m.sf.Dim()
		nb   = m.sf.NumBasis()
		grad = make([][]float64, nb)
	)
	for i := range grad {
		grad[i] = make([]float64, dim)
	}
	if err = m.sf.Gradient(point, grad); err != nil {
		return
	}
	J = mat.NewDense(dim, dim, nil)
	for a := 0; a < dim; a++ {
		for b := 0; b < dim; b++ {
			var sum float64
			for i := 0; i < nb; i++ {
				sum += m.vertices[i][a] * grad[i][b]
			}
			J.Set(a, b, sum)
		}
	}
	return
}

func (m *Map) DetJacobian(point []float64) (det float64, err error) {
	J, err := m.Jacobian(point)
	if err != nil {
		return
	}
	return Det(J)
}

func (m *Map) InvJacobian(point []float64) (inv *mat.Dense, err error) {
	J, err := m.Jacobian(point)
	if err != nil {
		return
	}
	if inv, err = Inverse(J); err != nil {
		err = fmt.Errorf("at %v: %w", point, err)
	}
	return
}

// PhysicalGradient maps a reference-space gradient to physical space,
// grad_x f = J^-T grad_xi f.
func (m *Map) PhysicalGradient(point, refGrad, out []float64) (err error) {
	var (
		dim = m.sf.Dim()
	)
	if len(refGrad) != dim || len(out) != dim {
		return fmt.Errorf("gradient lengths %d, %d, need %d: %w",
			len(refGrad), len(out), dim, utils.ErrDimensionMismatch)
	}
	inv, err := m.InvJacobian(point)
	if err != nil {
		return
	}
	for a := 0; a < dim; a++ {
		out[a] = 0
		for b := 0; b < dim; b++ {
			out[a] += inv.At(b, a) * refGrad[b]
		}
	}
	return
}

// Measure integrates det J over the reference element with rule, which is
// the length, area or volume of the physical element.
func (m *Map) Measure(rule *quadrature.Rule) (vol float64, err error) {
	if rule.Dim() != m.sf.Dim() {
		err = fmt.Errorf("%dD rule on a %dD element: %w",
			rule.Dim(), m.sf.Dim(), utils.ErrDimensionMismatch)
		return
	}
	for q, xq := range rule.Points {
		var det float64
		if det, err = m.DetJacobian(xq); err != nil {
			return
		}
		vol += rule.Weights[q] * det
	}
	return
}
