package exchange

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrDoubleContribution is returned when a rank contributes twice to the same
// collective round.
var ErrDoubleContribution = errors.New("rank contributed twice to the same collective round")

// Group couples n in-process ranks into one collective domain. Each rank is
// driven by its own goroutine and obtains its Communicator via Rank.
//
// Rounds are sequential: a new round starts once all ranks of the previous
// round have contributed. Abandoning a round (e.g. via context cancellation)
// leaves the group poisoned for the remaining ranks, matching the
// no-cancellation semantics of a real collective.
type Group struct {
	size int

	mu  sync.Mutex
	cur *round
}

type round struct {
	bufs    [][]float64
	arrived int
	global  []float64
	displs  []int
	done    chan struct{}
}

func newRound(size int) *round {
	return &round{bufs: make([][]float64, size), done: make(chan struct{})}
}

// NewGroup creates a collective group of size ranks.
func NewGroup(size int) (*Group, error) {
	if size < 1 {
		return nil, fmt.Errorf("group size must be >= 1, got %d", size)
	}
	return &Group{size: size, cur: newRound(size)}, nil
}

// Size returns the number of ranks in the group.
func (g *Group) Size() int { return g.size }

// Rank returns the communicator of the given rank. Ranks outside [0, size)
// panic.
func (g *Group) Rank(rank int) Communicator {
	if rank < 0 || rank >= g.size {
		panic(fmt.Sprintf("exchange: rank %d outside group of size %d", rank, g.size))
	}
	return &member{g: g, rank: rank}
}

type member struct {
	g    *Group
	rank int
}

func (m *member) Rank() int { return m.rank }

func (m *member) Size() int { return m.g.size }

func (m *member) AllGather(ctx context.Context, local []float64) ([]float64, []int, error) {
	g := m.g

	g.mu.Lock()
	r := g.cur
	if r.bufs[m.rank] != nil {
		g.mu.Unlock()
		return nil, nil, ErrDoubleContribution
	}
	// Non-nil even when empty: nil marks "not yet contributed".
	buf := make([]float64, len(local))
	copy(buf, local)
	r.bufs[m.rank] = buf
	r.arrived++
	if r.arrived == g.size {
		r.assemble()
		g.cur = newRound(g.size)
		close(r.done)
	}
	g.mu.Unlock()

	select {
	case <-r.done:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}

	// Every rank gets its own copy: the protocol sorts the buffer in place.
	global := make([]float64, len(r.global))
	copy(global, r.global)
	displs := make([]int, len(r.displs))
	copy(displs, r.displs)
	return global, displs, nil
}

func (r *round) assemble() {
	total := 0
	r.displs = make([]int, len(r.bufs))
	for i, b := range r.bufs {
		r.displs[i] = total
		total += len(b)
	}
	r.global = make([]float64, 0, total)
	for _, b := range r.bufs {
		r.global = append(r.global, b...)
	}
}
