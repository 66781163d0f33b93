package ntree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexVanMeegen/nest-simulator/internal/testutil"
	"github.com/AlexVanMeegen/nest-simulator/model"
)

func TestNewValidation(t *testing.T) {
	ll := model.NewPosition(0, 0)
	ext := model.NewPosition(1, 1)

	_, err := New[int](1, ll, ext)
	assert.Error(t, err)

	_, err = New[int](4, ll, ext)
	assert.Error(t, err)

	_, err = New[int](3, ll, ext)
	assert.Error(t, err, "box dimension must match tree dimension")

	_, err = New[int](2, ll, model.NewPosition(1, 0))
	assert.Error(t, err, "extent must be positive")

	tr, err := New[int](2, ll, ext)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Dim())
	assert.Equal(t, 0, tr.Len())
}

func TestInsertOutOfBounds(t *testing.T) {
	tr, err := New[int](2, model.NewPosition(0, 0), model.NewPosition(1, 1))
	require.NoError(t, err)

	var oob *ErrOutOfBounds
	err = tr.Insert(model.NewPosition(1, 0.5), 0)
	require.ErrorAs(t, err, &oob, "upper bound is exclusive")

	err = tr.Insert(model.NewPosition(-0.1, 0.5), 0)
	require.ErrorAs(t, err, &oob)

	require.NoError(t, tr.Insert(model.NewPosition(0, 0), 0))
	assert.Equal(t, 1, tr.Len())
}

func TestSplitKeepsAllEntries(t *testing.T) {
	ll := model.NewPosition(-1, -1)
	ext := model.NewPosition(2, 2)
	tr, err := New[int](2, ll, ext, WithCapacity[int](4))
	require.NoError(t, err)

	rng := testutil.NewRNG(7)
	positions := rng.GeneratePositions(200, ll, ext)
	for i, p := range positions {
		require.NoError(t, tr.Insert(p, i))
	}

	assert.Equal(t, 200, tr.Len())
	seen := make(map[int]bool, 200)
	tr.Each(func(e Entry[int]) bool {
		seen[e.Value] = true
		return true
	})
	assert.Len(t, seen, 200)
}

func TestDegenerateCoordinates(t *testing.T) {
	// Many entries at the same point must not split forever.
	tr, err := New[int](2, model.NewPosition(0, 0), model.NewPosition(1, 1), WithCapacity[int](2))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, tr.Insert(model.NewPosition(0.5, 0.5), i))
	}
	assert.Equal(t, 100, tr.Len())
	assert.Len(t, tr.InRadius(model.NewPosition(0.5, 0.5), 0), 100)
}

func TestInRegion(t *testing.T) {
	tr, err := New[int](2, model.NewPosition(0, 0), model.NewPosition(4, 4), WithCapacity[int](2))
	require.NoError(t, err)

	// Grid of 16 points at half-integer coordinates.
	id := 0
	for x := 0.5; x < 4; x++ {
		for y := 0.5; y < 4; y++ {
			require.NoError(t, tr.Insert(model.NewPosition(x, y), id))
			id++
		}
	}

	got := tr.InRegion(model.NewPosition(0, 0), model.NewPosition(1.9, 1.9))
	assert.Len(t, got, 4)
	for _, e := range got {
		assert.Less(t, e.Pos[0], 2.0)
		assert.Less(t, e.Pos[1], 2.0)
	}

	// Region bounds are closed.
	got = tr.InRegion(model.NewPosition(0.5, 0.5), model.NewPosition(0.5, 0.5))
	require.Len(t, got, 1)
	assert.True(t, got[0].Pos.Equal(model.NewPosition(0.5, 0.5)))

	// Mismatched query dimension returns nothing.
	assert.Empty(t, tr.InRegion(model.NewPosition(0, 0, 0), model.NewPosition(1, 1, 1)))
}

func TestInRadius(t *testing.T) {
	tr, err := New[string](2, model.NewPosition(-2, -2), model.NewPosition(4, 4))
	require.NoError(t, err)

	require.NoError(t, tr.Insert(model.NewPosition(0, 0), "center"))
	require.NoError(t, tr.Insert(model.NewPosition(1, 0), "east"))
	require.NoError(t, tr.Insert(model.NewPosition(0, 1), "north"))
	require.NoError(t, tr.Insert(model.NewPosition(1, 1), "corner"))

	got := tr.InRadius(model.NewPosition(0, 0), 1)
	values := make([]string, 0, len(got))
	for _, e := range got {
		values = append(values, e.Value)
	}
	// (1,1) is at distance sqrt(2) and must be excluded even though it is
	// inside the bounding box of the query.
	assert.ElementsMatch(t, []string{"center", "east", "north"}, values)

	assert.Empty(t, tr.InRadius(model.NewPosition(0, 0), -1))
}

func TestThreeDimensional(t *testing.T) {
	ll := model.NewPosition(0, 0, 0)
	ext := model.NewPosition(1, 1, 1)
	tr, err := New[int](3, ll, ext, WithCapacity[int](2))
	require.NoError(t, err)

	rng := testutil.NewRNG(11)
	for i, p := range rng.GeneratePositions(50, ll, ext) {
		require.NoError(t, tr.Insert(p, i))
	}
	assert.Equal(t, 50, tr.Len())
	assert.Len(t, tr.InRegion(ll, model.NewPosition(1, 1, 1)), 50)
}
