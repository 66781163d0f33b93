package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexVanMeegen/nest-simulator/model"
)

func TestNewGridValidation(t *testing.T) {
	var invalid *ErrInvalidSpec
	var mismatch *ErrSizeMismatch

	_, err := NewGrid(newTestCollection(t, 4), model.NewPosition(0, 0), model.NewPosition(1, 1), 0, 2, 1, 1, Deps{})
	require.ErrorAs(t, err, &invalid)

	// 2-D grid with a 3-D box.
	_, err = NewGrid(newTestCollection(t, 4), model.NewPosition(0, 0, 0), model.NewPosition(1, 1, 1), 2, 2, 1, 1, Deps{})
	require.ErrorAs(t, err, &invalid)

	// Collection size must match cells times depth.
	_, err = NewGrid(newTestCollection(t, 5), model.NewPosition(0, 0), model.NewPosition(1, 1), 2, 2, 1, 1, Deps{})
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 4, mismatch.Expected)
	assert.Equal(t, 5, mismatch.Actual)

	_, err = NewGrid(newTestCollection(t, 8), model.NewPosition(0, 0), model.NewPosition(1, 1), 2, 2, 1, 2, Deps{})
	require.NoError(t, err)
}

func TestGridPositions2D(t *testing.T) {
	// 2x2 grid over the unit box. Enumeration is column-major with the y
	// axis counted top-down, so local index 0 is the upper-left cell center.
	l, err := NewGrid(newTestCollection(t, 4), model.NewPosition(0, 0), model.NewPosition(1, 1), 2, 2, 1, 1, Deps{})
	require.NoError(t, err)

	cols, rows, layers := l.Shape()
	assert.Equal(t, 2, cols)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 1, layers)

	assert.True(t, l.Position(0).Equal(model.NewPosition(0.25, 0.75)))
	assert.True(t, l.Position(1).Equal(model.NewPosition(0.25, 0.25)))
	assert.True(t, l.Position(2).Equal(model.NewPosition(0.75, 0.75)))
	assert.True(t, l.Position(3).Equal(model.NewPosition(0.75, 0.25)))

	// Lookup is a formula; repeated calls return the same value.
	assert.True(t, l.Position(2).Equal(l.Position(2)))

	assert.Panics(t, func() { l.Position(4) })
	assert.Panics(t, func() { l.Position(-1) })
}

func TestGridPositionsDepth(t *testing.T) {
	// Two elements per cell: local indices wrap around the cell count, so
	// the second element block repeats the cell positions.
	l, err := NewGrid(newTestCollection(t, 8), model.NewPosition(0, 0), model.NewPosition(1, 1), 2, 2, 1, 2, Deps{})
	require.NoError(t, err)
	assert.Equal(t, 2, l.Depth())

	for lid := 0; lid < 4; lid++ {
		assert.True(t, l.Position(lid).Equal(l.Position(lid+4)), "lid %d", lid)
	}
}

func TestGridPositions3D(t *testing.T) {
	l, err := NewGrid(newTestCollection(t, 8), model.NewPosition(0, 0, 0), model.NewPosition(2, 2, 2), 2, 2, 2, 1, Deps{})
	require.NoError(t, err)
	assert.Equal(t, 3, l.Dim())

	// Index 0: first column, first row, first depth layer.
	assert.True(t, l.Position(0).Equal(model.NewPosition(0.5, 1.5, 0.5)))
	// Index 1: same cell column/row, second depth layer.
	assert.True(t, l.Position(1).Equal(model.NewPosition(0.5, 1.5, 1.5)))
	// Index 2: first column, second row.
	assert.True(t, l.Position(2).Equal(model.NewPosition(0.5, 0.5, 0.5)))
	// Index 4: second column.
	assert.True(t, l.Position(4).Equal(model.NewPosition(1.5, 1.5, 0.5)))
}

func TestGridStatus(t *testing.T) {
	l, err := NewGrid(newTestCollection(t, 6), model.NewPosition(0, 0), model.NewPosition(3, 2), 3, 2, 1, 1, Deps{})
	require.NoError(t, err)

	status := l.Status()
	assert.Equal(t, 3, status["columns"])
	assert.Equal(t, 2, status["rows"])
	assert.Equal(t, 1, status["layers"])
	assert.Equal(t, []float64{3, 2}, status["extent"])

	// Grid positions are derived; assigning explicit ones is invalid.
	err = l.SetStatus(map[string]any{"positions": [][]float64{{0, 0}}})
	var invalid *ErrInvalidSpec
	require.ErrorAs(t, err, &invalid)

	require.NoError(t, l.SetStatus(map[string]any{"columns": 5}))
}
