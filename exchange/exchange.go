package exchange

import "context"

// Communicator is the collective transport of one rank.
//
// Implementations must guarantee that every rank observes the identical
// global buffer and displacement table for one collective round.
type Communicator interface {
	// Rank returns the local rank within the group.
	Rank() int

	// Size returns the number of ranks in the group.
	Size() int

	// AllGather contributes local and blocks until every rank of the group
	// has contributed, then returns the concatenation of all contributions
	// in rank order. displs[r] is the offset of rank r's contribution in
	// the global buffer.
	//
	// The returned buffer is owned by the caller and safe to mutate.
	AllGather(ctx context.Context, local []float64) (global []float64, displs []int, err error)
}

// Local is the degenerate single-rank communicator.
type Local struct{}

// NewLocal creates a communicator for a run with exactly one rank.
func NewLocal() *Local { return &Local{} }

// Rank implements Communicator.
func (l *Local) Rank() int { return 0 }

// Size implements Communicator.
func (l *Local) Size() int { return 1 }

// AllGather implements Communicator by returning a copy of the local
// contribution.
func (l *Local) AllGather(_ context.Context, local []float64) ([]float64, []int, error) {
	global := make([]float64, len(local))
	copy(global, local)
	return global, []int{0}, nil
}
