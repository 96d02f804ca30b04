package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/notargets/tensorbasis/InputParameters"
	"github.com/notargets/tensorbasis/element"
	"github.com/notargets/tensorbasis/geometry"
)

// ElementSetup is an element built from an input file, with its geometric
// map and the thread count to evaluate it with.
type ElementSetup struct {
	Params  *InputParameters.ElementParameters
	Element element.Element
	Map     *geometry.Map
	Threads int
}

const exampleFile = `
########################################
Title: "Skewed quadratic quad"
Dimension: 2
Order: 2
NodeType: Lobatto # Equispaced, Chebyshev
Family: Tensor    # Auto (tensor vertex order), Fixed (Quad4..Hex32 in their own vertex order)
QuadratureOrder: 4
Vertices: # optional, in basis order, defaults to the reference element
  - [0, 0]
  - [1, 0]
  - [2, 0]
  - [0, 1]
  - [1.1, 1.1]
  - [2, 1]
  - [0, 2]
  - [1, 2]
  - [2, 2.5]
Coefficients: [0, 1, 2, 1, 2, 3, 2, 3, 4] # optional
Points:
  - [0.25, -0.5]
Threads: 4
########################################
`

func processInput(inputFile string, threads int) (es *ElementSetup) {
	var (
		err  error
		data []byte
	)
	if len(inputFile) == 0 {
		err = fmt.Errorf("must supply an element description file (-I, --inputFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	if data, err = os.ReadFile(inputFile); err != nil {
		panic(err)
	}
	es = &ElementSetup{Params: &InputParameters.ElementParameters{}}
	if err = es.Params.Parse(data); err != nil {
		panic(err)
	}
	if es.Element, es.Map, err = buildElement(es.Params); err != nil {
		panic(err)
	}
	switch {
	case threads > 0:
		es.Threads = threads
	case es.Params.Threads > 0:
		es.Threads = es.Params.Threads
	default:
		es.Threads = runtime.NumCPU()
	}
	return
}

// buildElement constructs the element and its map, using the reference
// element itself when no vertices are given.
func buildElement(ep *InputParameters.ElementParameters) (el element.Element, gm *geometry.Map, err error) {
	var (
		cfg element.Config
	)
	if cfg, err = ep.ElementConfig(); err != nil {
		return
	}
	if el, err = element.New(cfg); err != nil {
		return
	}
	if err = ep.Validate(el.NumBasis()); err != nil {
		return
	}
	vertices := ep.Vertices
	if len(vertices) == 0 {
		vertices = el.ReferenceNodes()
	}
	gm, err = geometry.NewMap(el, vertices)
	return
}
