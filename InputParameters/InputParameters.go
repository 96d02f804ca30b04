package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/tensorbasis/element"
	"github.com/notargets/tensorbasis/nodes"
	"github.com/notargets/tensorbasis/utils"
)

// Parameters obtained from the YAML element description
type ElementParameters struct {
	Title           string      `yaml:"Title"`
	Dimension       int         `yaml:"Dimension"`
	Order           int         `yaml:"Order"`
	NodeType        string      `yaml:"NodeType"`        // Equispaced, Chebyshev or Lobatto
	Family          string      `yaml:"Family"`          // Tensor, Fixed or Auto
	QuadratureOrder int         `yaml:"QuadratureOrder"` // Gauss points per axis, defaults to Order+1
	Vertices        [][]float64 `yaml:"Vertices"`        // Physical vertices in basis order, defaults to the reference element
	Coefficients    []float64   `yaml:"Coefficients"`    // Optional field to interpolate
	Points          [][]float64 `yaml:"Points"`          // Reference points to evaluate at
	Threads         int         `yaml:"Threads"`
}

func (ep *ElementParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ep)
}

func (ep *ElementParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ep.Title)
	fmt.Printf("[%d]\t\t\t\t= Dimension\n", ep.Dimension)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", ep.Order)
	fmt.Printf("[%s]\t\t\t= Node Type\n", ep.NodeType)
	fmt.Printf("[%s]\t\t\t= Family\n", ep.Family)
	fmt.Printf("[%d]\t\t\t\t= Quadrature Points per Axis\n", ep.QuadraturePoints())
	fmt.Printf("[%d]\t\t\t\t= Threads\n", ep.Threads)
	if len(ep.Vertices) != 0 {
		fmt.Printf("%d Vertices = %v\n", len(ep.Vertices), ep.Vertices)
	}
	if len(ep.Coefficients) != 0 {
		fmt.Printf("%d Coefficients = %v\n", len(ep.Coefficients), ep.Coefficients)
	}
}

// QuadraturePoints is the number of Gauss points per axis.
func (ep *ElementParameters) QuadraturePoints() int {
	if ep.QuadratureOrder > 0 {
		return ep.QuadratureOrder
	}
	return ep.Order + 1
}

func (ep *ElementParameters) ElementConfig() (cfg element.Config, err error) {
	var (
		family element.Family
	)
	if family, err = element.NewFamily(ep.Family); err != nil {
		return
	}
	cfg = element.Config{
		Dimension: ep.Dimension,
		Order:     ep.Order,
		NodeType:  nodes.NodeType(ep.NodeType),
		Family:    family,
	}
	return
}

// Validate checks the optional arrays against an element with numBasis
// basis functions.
func (ep *ElementParameters) Validate(numBasis int) (err error) {
	if len(ep.Vertices) != 0 {
		if len(ep.Vertices) != numBasis {
			return fmt.Errorf("%d vertices for %d basis functions: %w",
				len(ep.Vertices), numBasis, utils.ErrDimensionMismatch)
		}
		for i, v := range ep.Vertices {
			if len(v) != ep.Dimension {
				return fmt.Errorf("vertex %d has %d coordinates, need %d: %w",
					i, len(v), ep.Dimension, utils.ErrDimensionMismatch)
			}
		}
	}
	if len(ep.Coefficients) != 0 && len(ep.Coefficients) != numBasis {
		return fmt.Errorf("%d coefficients for %d basis functions: %w",
			len(ep.Coefficients), numBasis, utils.ErrDimensionMismatch)
	}
	for i, p := range ep.Points {
		if len(p) != ep.Dimension {
			return fmt.Errorf("point %d has %d coordinates, need %d: %w",
				i, len(p), ep.Dimension, utils.ErrDimensionMismatch)
		}
	}
	return
}
