package layer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexVanMeegen/nest-simulator/gids"
	"github.com/AlexVanMeegen/nest-simulator/model"
)

// sequentialCreator allocates contiguous GID ranges the way the node registry
// does, recording what was requested.
type sequentialCreator struct {
	next    model.GID
	created []string
}

func (s *sequentialCreator) create(_ context.Context, modelName string, n int) (*gids.Collection, error) {
	s.created = append(s.created, modelName)
	c, err := gids.NewRange(s.next, n)
	if err != nil {
		return nil, err
	}
	s.next += model.GID(n)
	return c, nil
}

func TestBuildGrid(t *testing.T) {
	creator := &sequentialCreator{}
	l, err := Build(context.Background(), Spec{
		Elements: []Element{{Model: "neuron"}},
		Columns:  3,
		Rows:     2,
		Extent:   []float64{3, 2},
	}, creator.create, Deps{})
	require.NoError(t, err)

	grid, ok := l.(*GridLayer)
	require.True(t, ok)
	cols, rows, layers := grid.Shape()
	assert.Equal(t, 3, cols)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 1, layers)
	assert.Equal(t, 6, l.Collection().Size())
	assert.Equal(t, []string{"neuron"}, creator.created)

	// Box defaults center on the origin.
	assert.Equal(t, []float64{-1.5, -1}, []float64(l.LowerLeft()))

	// The layer is reachable from its collection.
	attached, ok := Of(l.Collection())
	require.True(t, ok)
	assert.Same(t, l, attached)
}

func TestBuildFree(t *testing.T) {
	creator := &sequentialCreator{}
	l, err := Build(context.Background(), Spec{
		Elements:  []Element{{Model: "neuron"}},
		Positions: [][]float64{{0.1, 0.1}, {0.2, 0.2}, {0.3, 0.3}},
	}, creator.create, Deps{})
	require.NoError(t, err)

	assert.Equal(t, 3, l.Collection().Size())
	assert.Equal(t, 1, l.Depth())
	assert.True(t, l.Position(1).Equal(model.NewPosition(0.2, 0.2)))

	// Default box is the unit square centered on the origin.
	assert.Equal(t, []float64{-0.5, -0.5}, []float64(l.LowerLeft()))
	assert.Equal(t, []float64{1, 1}, []float64(l.Extent()))
}

func TestBuildMultipleElements(t *testing.T) {
	// Two element models and a repeated one: every element contributes one
	// contiguous GID block of cell count size, joined in element order.
	creator := &sequentialCreator{}
	l, err := Build(context.Background(), Spec{
		Elements: []Element{
			{Model: "pyramidal", Count: 2},
			{Model: "interneuron"},
		},
		Positions: [][]float64{{0.1, 0.1}, {0.2, 0.2}},
	}, creator.create, Deps{})
	require.NoError(t, err)

	assert.Equal(t, []string{"pyramidal", "pyramidal", "interneuron"}, creator.created)
	assert.Equal(t, 3, l.Depth())
	assert.Equal(t, 6, l.Collection().Size())

	// Positions repeat per element block.
	assert.True(t, l.Position(0).Equal(l.Position(2)))
	assert.True(t, l.Position(0).Equal(l.Position(4)))
	assert.True(t, l.Position(1).Equal(l.Position(5)))
}

func TestBuildSpecErrors(t *testing.T) {
	creator := &sequentialCreator{}
	var invalid *ErrInvalidSpec

	_, err := Build(context.Background(), Spec{}, creator.create, Deps{})
	require.ErrorAs(t, err, &invalid)

	_, err = Build(context.Background(), Spec{
		Elements:  []Element{{Model: "neuron"}},
		Positions: [][]float64{{0, 0}},
		Columns:   2,
		Rows:      2,
	}, creator.create, Deps{})
	require.ErrorAs(t, err, &invalid)

	_, err = Build(context.Background(), Spec{
		Elements: []Element{{Model: "neuron"}},
		Columns:  2,
	}, creator.create, Deps{})
	require.ErrorAs(t, err, &invalid)

	_, err = Build(context.Background(), Spec{
		Elements:  []Element{{Model: "neuron"}},
		Positions: [][]float64{{0, 0}, {0, 0, 0}},
	}, creator.create, Deps{})
	require.ErrorAs(t, err, &invalid)

	// Positions outside an explicit box fail during assignment.
	_, err = Build(context.Background(), Spec{
		Elements:  []Element{{Model: "neuron"}},
		Positions: [][]float64{{5, 5}},
		LowerLeft: []float64{0, 0},
		Extent:    []float64{1, 1},
	}, creator.create, Deps{})
	var oob *ErrOutOfBounds
	require.ErrorAs(t, err, &oob)
}
