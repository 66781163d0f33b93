package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopologyValidation(t *testing.T) {
	_, err := NewTopology(0, 1, 0)
	assert.Error(t, err)

	_, err = NewTopology(1, 0, 0)
	assert.Error(t, err)

	_, err = NewTopology(2, 1, 2)
	assert.Error(t, err)

	topo, err := NewTopology(2, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, topo.NumVPs())
	assert.Equal(t, Rank(1), topo.Rank())
}

func TestTopologyRoundRobin(t *testing.T) {
	topo, err := NewTopology(2, 2, 0)
	require.NoError(t, err)

	// 4 VPs, round-robin over GIDs.
	assert.Equal(t, VP(0), topo.VPOf(0))
	assert.Equal(t, VP(1), topo.VPOf(1))
	assert.Equal(t, VP(2), topo.VPOf(2))
	assert.Equal(t, VP(3), topo.VPOf(3))
	assert.Equal(t, VP(0), topo.VPOf(4))

	// VPs round-robin over ranks; thread advances every full cycle.
	assert.Equal(t, Rank(0), topo.RankOf(0))
	assert.Equal(t, Rank(1), topo.RankOf(1))
	assert.Equal(t, Rank(0), topo.RankOf(2))
	assert.Equal(t, Rank(1), topo.RankOf(3))
	assert.Equal(t, Thread(0), topo.ThreadOf(0))
	assert.Equal(t, Thread(0), topo.ThreadOf(1))
	assert.Equal(t, Thread(1), topo.ThreadOf(2))
	assert.Equal(t, Thread(1), topo.ThreadOf(3))

	// The local rank hosts exactly one VP per thread.
	assert.Equal(t, VP(0), topo.VPForThread(0))
	assert.Equal(t, VP(2), topo.VPForThread(1))
	assert.True(t, topo.IsLocalVP(0))
	assert.False(t, topo.IsLocalVP(1))
}

func TestPositionWithin(t *testing.T) {
	lowerLeft := NewPosition(0, 0)
	extent := NewPosition(2, 2)

	assert.True(t, NewPosition(0, 0).Within(lowerLeft, extent))
	assert.True(t, NewPosition(1.999, 0).Within(lowerLeft, extent))
	// Upper bound is exclusive.
	assert.False(t, NewPosition(2, 0).Within(lowerLeft, extent))
	assert.False(t, NewPosition(0, 2).Within(lowerLeft, extent))
	assert.False(t, NewPosition(-0.001, 0).Within(lowerLeft, extent))
	// Dimension mismatch never matches.
	assert.False(t, NewPosition(0, 0, 0).Within(lowerLeft, extent))
}
