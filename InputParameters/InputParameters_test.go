package InputParameters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/tensorbasis/element"
	"github.com/notargets/tensorbasis/nodes"
	"github.com/notargets/tensorbasis/utils"
)

var hexInput = []byte(`
Title: "Skewed hex"
Dimension: 3
Order: 1
NodeType: Lobatto
Family: Fixed
QuadratureOrder: 3
Vertices:
  - [0, 0, 0]
  - [2, 0, 0]
  - [0, 1, 0]
  - [2, 1, 0]
  - [0, 0, 1]
  - [2, 0, 1]
  - [0, 1, 1]
  - [2.5, 1, 1]
Coefficients: [1, 2, 3, 4, 5, 6, 7, 8]
Points:
  - [0, 0, 0]
  - [0.5, -0.5, 1]
Threads: 2
`)

func TestElementParameters(t *testing.T) {
	{
		var ep ElementParameters
		require.NoError(t, ep.Parse(hexInput))
		assert.Equal(t, "Skewed hex", ep.Title)
		assert.Equal(t, 3, ep.Dimension)
		assert.Equal(t, 3, ep.QuadraturePoints())
		assert.Equal(t, 8, len(ep.Vertices))
		assert.Equal(t, 2.5, ep.Vertices[7][0])
		assert.Equal(t, []float64{0.5, -0.5, 1}, ep.Points[1])
		assert.Equal(t, 2, ep.Threads)
		cfg, err := ep.ElementConfig()
		require.NoError(t, err)
		assert.Equal(t, element.Fixed, cfg.Family)
		assert.Equal(t, nodes.Lobatto, cfg.NodeType)
		el, err := element.New(cfg)
		require.NoError(t, err)
		assert.Equal(t, "Hex8", el.Name())
		require.NoError(t, ep.Validate(el.NumBasis()))
		assert.True(t, errors.Is(ep.Validate(27), utils.ErrDimensionMismatch))
		ep.Print()
	}
	{ // Defaults and shape errors
		var ep ElementParameters
		require.NoError(t, ep.Parse([]byte("Dimension: 2\nOrder: 4\n")))
		assert.Equal(t, 5, ep.QuadraturePoints())
		cfg, err := ep.ElementConfig()
		require.NoError(t, err)
		assert.Equal(t, element.Auto, cfg.Family)
		require.NoError(t, ep.Validate(25))
		ep.Coefficients = make([]float64, 24)
		assert.True(t, errors.Is(ep.Validate(25), utils.ErrDimensionMismatch))
		ep.Coefficients = nil
		ep.Vertices = make([][]float64, 25)
		for i := range ep.Vertices {
			ep.Vertices[i] = []float64{0, 0}
		}
		ep.Vertices[3] = []float64{0}
		assert.True(t, errors.Is(ep.Validate(25), utils.ErrDimensionMismatch))
		ep.Vertices = nil
		ep.Points = [][]float64{{0, 0, 0}}
		assert.True(t, errors.Is(ep.Validate(25), utils.ErrDimensionMismatch))
		ep.Family = "simplex"
		_, err = ep.ElementConfig()
		assert.Error(t, err)
	}
}
