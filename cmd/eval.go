/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/tensorbasis/element"
	"github.com/notargets/tensorbasis/quadrature"
	"github.com/notargets/tensorbasis/tensor"
)

// EvalCmd represents the eval command
var EvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate the shape functions and Jacobian of an element at reference points",
	Long: `Evaluate the shape functions and Jacobian of an element at reference points.
The element is read from a YAML file (-I), for example:
` + exampleFile,
	Run: func(cmd *cobra.Command, args []string) {
		es := processInput(viper.GetString("inputFile"), viper.GetInt("threads"))
		es.Params.Print()
		point, _ := cmd.Flags().GetFloat64Slice("point")
		points := es.Params.Points
		if len(point) != 0 {
			points = [][]float64{point}
		}
		if len(points) == 0 {
			points = [][]float64{make([]float64, es.Element.Dim())}
		}
		RunEval(es, points)
	},
}

func init() {
	rootCmd.AddCommand(EvalCmd)
	EvalCmd.Flags().Float64SliceP("point", "p", nil, "reference point to evaluate at, e.g. -p 0.1,-0.3")
}

func RunEval(es *ElementSetup, points [][]float64) {
	var (
		el  = es.Element
		dim = el.Dim()
		ep  = es.Params
	)
	fmt.Printf("Element %s, %d basis functions, %d threads\n", el.Name(), el.NumBasis(), es.Threads)
	pd := element.EvaluateAll(el, es.Map, points, es.Threads)
	var u []float64
	if len(ep.Coefficients) != 0 {
		var err error
		if u, err = element.InterpolateAll(el, ep.Coefficients, points, es.Threads); err != nil {
			fmt.Printf("interpolation failed: %v\n", err)
			u = nil
		}
	}
	for k, p := range pd {
		fmt.Printf("\nPoint %v\n", p.Point)
		if p.Values != nil {
			fmt.Printf("Basis = %8.5f\n", p.Values)
			G := mat.NewDense(el.NumBasis(), dim, nil)
			for i, g := range p.Gradient {
				G.SetRow(i, g)
			}
			fmt.Printf("Gradient = \n%8.5f\n", mat.Formatted(G, mat.Squeeze()))
		}
		if p.Position != nil {
			fmt.Printf("X = %8.5f\n", p.Position)
		}
		if J, err := es.Map.Jacobian(p.Point); err == nil {
			fmt.Printf("J = \n%8.5f\n", mat.Formatted(J, mat.Squeeze()))
			fmt.Printf("det J = %g\n", p.DetJ)
		}
		if p.Err != nil {
			fmt.Printf("error: %v\n", p.Err)
			continue
		}
		Jinv, err := es.Map.InvJacobian(p.Point)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Printf("J^-1 = \n%8.5f\n", mat.Formatted(Jinv, mat.Squeeze()))
		if u != nil {
			refGrad := make([]float64, dim)
			for i, c := range ep.Coefficients {
				for d := range refGrad {
					refGrad[d] += c * p.Gradient[i][d]
				}
			}
			grad := make([]float64, dim)
			if err = es.Map.PhysicalGradient(p.Point, refGrad, grad); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Printf("u = %g, grad_xi u = %8.5f, grad_x u = %8.5f\n", u[k], refGrad, grad)
		}
	}
	rule, err := quadrature.NewGaussLegendre(dim, ep.QuadraturePoints())
	if err != nil {
		panic(err)
	}
	if vol, err := es.Map.Measure(rule); err != nil {
		fmt.Printf("\nmeasure: %v\n", err)
	} else {
		fmt.Printf("\nElement measure (%d point rule) = %g\n", rule.Len(), vol)
	}
	if tb, ok := el.(*tensor.Basis[float64]); ok {
		if op, err := tensor.InterpolationOperator(tb, rule.Points); err == nil {
			nr, nc := op.Dims()
			fmt.Printf("Quadrature interpolation operator %d x %d, %d non-zeros\n", nr, nc, op.NNZ())
		}
	}
}
