package exchange

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal(t *testing.T) {
	l := NewLocal()
	assert.Equal(t, 0, l.Rank())
	assert.Equal(t, 1, l.Size())

	local := []float64{1, 2, 3}
	global, displs, err := l.AllGather(context.Background(), local)
	require.NoError(t, err)
	assert.Equal(t, local, global)
	assert.Equal(t, []int{0}, displs)

	// The returned buffer is a copy.
	global[0] = 99
	assert.Equal(t, 1.0, local[0])
}

func TestGroupAllGather(t *testing.T) {
	g, err := NewGroup(3)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Size())

	contributions := [][]float64{
		{0, 0},
		{1},
		{2, 2, 2},
	}

	var wg sync.WaitGroup
	globals := make([][]float64, 3)
	displs := make([][]int, 3)
	errs := make([]error, 3)
	for rank := 0; rank < 3; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			comm := g.Rank(rank)
			globals[rank], displs[rank], errs[rank] = comm.AllGather(context.Background(), contributions[rank])
		}(rank)
	}
	wg.Wait()

	want := []float64{0, 0, 1, 2, 2, 2}
	wantDispls := []int{0, 2, 3}
	for rank := 0; rank < 3; rank++ {
		require.NoError(t, errs[rank])
		assert.Equal(t, want, globals[rank], "rank %d", rank)
		assert.Equal(t, wantDispls, displs[rank], "rank %d", rank)
	}

	// Buffers are per-rank copies; mutating one must not leak into another.
	globals[0][0] = 42
	assert.Equal(t, 0.0, globals[1][0])
}

func TestGroupEmptyContribution(t *testing.T) {
	g, err := NewGroup(2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	globals := make([][]float64, 2)
	errs := make([]error, 2)
	inputs := [][]float64{nil, {7}}
	for rank := 0; rank < 2; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			globals[rank], _, errs[rank] = g.Rank(rank).AllGather(context.Background(), inputs[rank])
		}(rank)
	}
	wg.Wait()

	for rank := 0; rank < 2; rank++ {
		require.NoError(t, errs[rank])
		assert.Equal(t, []float64{7}, globals[rank])
	}
}

func TestGroupSequentialRounds(t *testing.T) {
	g, err := NewGroup(2)
	require.NoError(t, err)

	run := func(values [2]float64) [2][]float64 {
		var wg sync.WaitGroup
		var out [2][]float64
		for rank := 0; rank < 2; rank++ {
			wg.Add(1)
			go func(rank int) {
				defer wg.Done()
				global, _, err := g.Rank(rank).AllGather(context.Background(), []float64{values[rank]})
				require.NoError(t, err)
				out[rank] = global
			}(rank)
		}
		wg.Wait()
		return out
	}

	first := run([2]float64{1, 2})
	second := run([2]float64{3, 4})
	assert.Equal(t, []float64{1, 2}, first[0])
	assert.Equal(t, []float64{3, 4}, second[1])
}

func TestGroupDoubleContribution(t *testing.T) {
	g, err := NewGroup(2)
	require.NoError(t, err)

	comm := g.Rank(0)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// First contribution blocks on the missing peer and times out.
	_, _, err = comm.AllGather(ctx, []float64{1})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The round still holds rank 0's contribution.
	_, _, err = comm.AllGather(context.Background(), []float64{1})
	require.ErrorIs(t, err, ErrDoubleContribution)
}

func TestGroupRankValidation(t *testing.T) {
	_, err := NewGroup(0)
	assert.Error(t, err)

	g, err := NewGroup(1)
	require.NoError(t, err)
	assert.Panics(t, func() { g.Rank(1) })
	assert.Panics(t, func() { g.Rank(-1) })
}
