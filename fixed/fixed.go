package fixed

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/tensorbasis/utils"
)

type Family uint8

const (
	// Multilinear elements carry one vertex per reference corner.
	Multilinear Family = iota
	// Serendipity elements add one vertex per edge midpoint and reproduce
	// complete quadratics.
	Serendipity
	// CubicSerendipity elements add two vertices per edge, at +-1/3, and
	// reproduce complete cubics.
	CubicSerendipity
)

func (f Family) String() string {
	switch f {
	case Multilinear:
		return "Multilinear"
	case Serendipity:
		return "Serendipity"
	case CubicSerendipity:
		return "CubicSerendipity"
	}
	return fmt.Sprintf("Family(%d)", uint8(f))
}

/*
Element is a closed-form low-order element on [-1,1]^D. Its shape functions
are written directly in terms of the reference vertex coordinates r_i:

	Multilinear:  phi_i = 1/2^D prod_d (1 + xi_d r_id)
	Serendipity, corner i:
	              phi_i = 1/2^D prod_d (1 + xi_d r_id) (sum_d xi_d r_id - (D-1))
	Serendipity, edge i with r_iz = 0:
	              phi_i = 1/2^(D-1) (1 - xi_z^2) prod_{d!=z} (1 + xi_d r_id)
	Cubic, corner i:
	              phi_i = 1/2^(D+3) prod_d (1 + xi_d r_id) (9 sum_d xi_d^2 - (9D-8))
	Cubic, edge i with r_iz = +-1/3:
	              phi_i = 9/2^(D+3) (1 - xi_z^2) (1 + 9 xi_z r_iz) prod_{d!=z} (1 + xi_d r_id)

Vertex numbering is the element's own, listed in the tables below; it is not
the tensor-product flat order. TensorOrder translates between them.
*/
type Element struct {
	name     string
	family   Family
	dim      int
	vertices [][]float64
}

const third = 1. / 3.

var (
	quad4Vertices = [][]float64{
		{-1, -1}, {1, -1}, {1, 1}, {-1, 1},
	}
	quad8Vertices = [][]float64{
		{-1, -1}, {1, -1}, {1, 1}, {-1, 1},
		{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	}
	hex8Vertices = [][]float64{
		{-1, -1, -1}, {1, -1, -1}, {-1, 1, -1}, {1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
	}
	hex20Vertices = [][]float64{
		// corners, bottom then top, counter-clockwise
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		// bottom edges
		{0, -1, -1}, {1, 0, -1}, {0, 1, -1}, {-1, 0, -1},
		// top edges
		{0, -1, 1}, {1, 0, 1}, {0, 1, 1}, {-1, 0, 1},
		// vertical edges
		{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
	}
	quad12Vertices = [][]float64{
		{-1, -1}, {1, -1}, {1, 1}, {-1, 1},
		// edges along xi
		{-third, -1}, {third, -1}, {third, 1}, {-third, 1},
		// edges along eta
		{-1, -third}, {1, -third}, {1, third}, {-1, third},
	}
	hex32Vertices = [][]float64{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		// edges along eta
		{-1, -third, -1}, {1, -third, -1}, {1, third, -1}, {-1, third, -1},
		{-1, -third, 1}, {1, -third, 1}, {1, third, 1}, {-1, third, 1},
		// edges along xi
		{-third, -1, -1}, {third, -1, -1}, {third, 1, -1}, {-third, 1, -1},
		{-third, -1, 1}, {third, -1, 1}, {third, 1, 1}, {-third, 1, 1},
		// edges along mu
		{-1, -1, -third}, {1, -1, -third}, {1, 1, -third}, {-1, 1, -third},
		{-1, -1, third}, {1, -1, third}, {1, 1, third}, {-1, 1, third},
	}
	tess16Vertices = [][]float64{
		// interior cube (tau = -1), bottom then top
		{-1, -1, -1, -1}, {1, -1, -1, -1}, {1, -1, 1, -1}, {-1, -1, 1, -1},
		{-1, 1, -1, -1}, {1, 1, -1, -1}, {1, 1, 1, -1}, {-1, 1, 1, -1},
		// exterior cube (tau = +1)
		{-1, -1, -1, 1}, {1, -1, -1, 1}, {1, -1, 1, 1}, {-1, -1, 1, 1},
		{-1, 1, -1, 1}, {1, 1, -1, 1}, {1, 1, 1, 1}, {-1, 1, 1, 1},
	}
)

func Quad4() *Element  { return newElement("Quad4", Multilinear, quad4Vertices) }
func Quad8() *Element  { return newElement("Quad8", Serendipity, quad8Vertices) }
func Hex8() *Element   { return newElement("Hex8", Multilinear, hex8Vertices) }
func Hex20() *Element  { return newElement("Hex20", Serendipity, hex20Vertices) }
func Quad12() *Element { return newElement("Quad12", CubicSerendipity, quad12Vertices) }
func Hex32() *Element  { return newElement("Hex32", CubicSerendipity, hex32Vertices) }
func Tess16() *Element { return newElement("Tess16", Multilinear, tess16Vertices) }

func newElement(name string, family Family, vertices [][]float64) *Element {
	return &Element{
		name:     name,
		family:   family,
		dim:      len(vertices[0]),
		vertices: vertices,
	}
}

// ByName returns the element with the given (case insensitive) name.
func ByName(name string) (el *Element, err error) {
	switch strings.ToLower(name) {
	case "quad4":
		el = Quad4()
	case "quad8":
		el = Quad8()
	case "hex8":
		el = Hex8()
	case "hex20":
		el = Hex20()
	case "quad12":
		el = Quad12()
	case "hex32":
		el = Hex32()
	case "tess16":
		el = Tess16()
	default:
		err = fmt.Errorf("unknown fixed element %q", name)
	}
	return
}

// ForDim returns the fixed element of the given dimension and order, if one
// exists.
func ForDim(dim, order int) (el *Element, ok bool) {
	switch {
	case dim == 2 && order == 1:
		el = Quad4()
	case dim == 2 && order == 2:
		el = Quad8()
	case dim == 3 && order == 1:
		el = Hex8()
	case dim == 2 && order == 3:
		el = Quad12()
	case dim == 3 && order == 2:
		el = Hex20()
	case dim == 3 && order == 3:
		el = Hex32()
	case dim == 4 && order == 1:
		el = Tess16()
	}
	return el, el != nil
}

func (el *Element) Name() string   { return el.name }
func (el *Element) Family() Family { return el.family }
func (el *Element) Dim() int       { return el.dim }
func (el *Element) NumBasis() int  { return len(el.vertices) }

func (el *Element) Order() int {
	switch el.family {
	case Serendipity:
		return 2
	case CubicSerendipity:
		return 3
	}
	return 1
}

// ReferenceVertices returns a copy of the reference vertex table.
func (el *Element) ReferenceVertices() (R [][]float64) {
	R = make([][]float64, len(el.vertices))
	for i, r := range el.vertices {
		R[i] = append([]float64{}, r...)
	}
	return
}

// ReferenceNodes is ReferenceVertices; each vertex carries one basis function.
func (el *Element) ReferenceNodes() [][]float64 { return el.ReferenceVertices() }

/*
TensorOrder returns perm with perm[i] the order-1 tensor flat index of vertex
i, so that phi_i of this element equals phi_perm[i] of the two-node tensor
basis. Serendipity elements have no tensor counterpart.
*/
func (el *Element) TensorOrder() (perm utils.Index, err error) {
	if el.family != Multilinear {
		err = fmt.Errorf("%s has no tensor-product vertex order", el.name)
		return
	}
	perm = utils.NewIndex(len(el.vertices))
	for i, r := range el.vertices {
		for d, rd := range r {
			if rd > 0 {
				perm[i] += 1 << d
			}
		}
	}
	return
}

func (el *Element) checkPoint(point []float64) (err error) {
	if len(point) != el.dim {
		err = fmt.Errorf("point has %d coordinates, %s is %dD: %w",
			len(point), el.name, el.dim, utils.ErrDimensionMismatch)
	}
	return
}

// linear returns prod_{d != skip1, skip2} (1 + xi_d r_d).
func linear(point, r []float64, skip1, skip2 int) (p float64) {
	p = 1
	for d, rd := range r {
		if d != skip1 && d != skip2 {
			p *= 1 + point[d]*rd
		}
	}
	return
}

// edgeAxis is the axis along which vertex r sits inside an edge, or -1 for a
// corner.
func edgeAxis(r []float64) int {
	for d, rd := range r {
		if rd != 1 && rd != -1 {
			return d
		}
	}
	return -1
}

func (el *Element) value(i int, point []float64) (v float64) {
	var (
		r  = el.vertices[i]
		D  = float64(el.dim)
		z  = edgeAxis(r)
		cC = math.Pow(0.5, D)
	)
	switch {
	case el.family == Multilinear:
		v = cC * linear(point, r, -1, -1)
	case el.family == CubicSerendipity && z < 0:
		v = cC / 8 * linear(point, r, -1, -1) * (9*sumSquares(point) - (9*D - 8))
	case el.family == CubicSerendipity:
		v = 9 * cC / 8 * (1 - point[z]*point[z]) * (1 + 9*point[z]*r[z]) * linear(point, r, z, -1)
	case z < 0:
		var s float64
		for d, rd := range r {
			s += point[d] * rd
		}
		v = cC * linear(point, r, -1, -1) * (s - (D - 1))
	default:
		v = 2 * cC * (1 - point[z]*point[z]) * linear(point, r, z, -1)
	}
	return
}

func sumSquares(point []float64) (s float64) {
	for _, x := range point {
		s += x * x
	}
	return
}

func (el *Element) partial(i, g int, point []float64) (v float64) {
	var (
		r  = el.vertices[i]
		D  = float64(el.dim)
		z  = edgeAxis(r)
		cC = math.Pow(0.5, D)
	)
	switch {
	case el.family == Multilinear:
		v = cC * r[g] * linear(point, r, g, -1)
	case el.family == CubicSerendipity && z < 0:
		v = cC / 8 * (r[g]*linear(point, r, g, -1)*(9*sumSquares(point)-(9*D-8)) +
			18*point[g]*linear(point, r, -1, -1))
	case el.family == CubicSerendipity && g == z:
		xz := point[z]
		v = 9 * cC / 8 * (-2*xz*(1+9*xz*r[z]) + 9*r[z]*(1-xz*xz)) * linear(point, r, z, -1)
	case el.family == CubicSerendipity:
		v = 9 * cC / 8 * (1 - point[z]*point[z]) * (1 + 9*point[z]*r[z]) * r[g] * linear(point, r, z, g)
	case z < 0:
		var s float64
		for d, rd := range r {
			s += point[d] * rd
		}
		v = cC * r[g] * (linear(point, r, g, -1)*(s-(D-1)) + linear(point, r, -1, -1))
	case g == z:
		v = 2 * cC * (-2 * point[z]) * linear(point, r, z, -1)
	default:
		v = 2 * cC * (1 - point[z]*point[z]) * r[g] * linear(point, r, z, g)
	}
	return
}

// Eval writes the NumBasis shape function values at point into out.
func (el *Element) Eval(point, out []float64) (err error) {
	if err = el.checkPoint(point); err != nil {
		return
	}
	if len(out) != len(el.vertices) {
		return fmt.Errorf("output has length %d, need %d: %w",
			len(out), len(el.vertices), utils.ErrDimensionMismatch)
	}
	for i := range out {
		out[i] = el.value(i, point)
	}
	return
}

// Partial writes d phi_i / d xi_d for every vertex i into out.
func (el *Element) Partial(d int, point, out []float64) (err error) {
	if err = el.checkPoint(point); err != nil {
		return
	}
	if d < 0 || d >= el.dim || len(out) != len(el.vertices) {
		return fmt.Errorf("partial along axis %d with output length %d for %s: %w",
			d, len(out), el.name, utils.ErrDimensionMismatch)
	}
	for i := range out {
		out[i] = el.partial(i, d, point)
	}
	return
}

// Gradient writes out[i][d] = d phi_i / d xi_d.
func (el *Element) Gradient(point []float64, out [][]float64) (err error) {
	if err = el.checkPoint(point); err != nil {
		return
	}
	if len(out) != len(el.vertices) {
		return fmt.Errorf("gradient output has %d rows, need %d: %w",
			len(out), len(el.vertices), utils.ErrDimensionMismatch)
	}
	for i := range out {
		if len(out[i]) != el.dim {
			return fmt.Errorf("gradient row %d has length %d, need %d: %w",
				i, len(out[i]), el.dim, utils.ErrDimensionMismatch)
		}
		for g := 0; g < el.dim; g++ {
			out[i][g] = el.partial(i, g, point)
		}
	}
	return
}
