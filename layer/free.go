package layer

import (
	"context"
	"fmt"

	"github.com/AlexVanMeegen/nest-simulator/exchange"
	"github.com/AlexVanMeegen/nest-simulator/gids"
	"github.com/AlexVanMeegen/nest-simulator/model"
	"github.com/AlexVanMeegen/nest-simulator/ntree"
)

// Deps wires a layer to its collaborators: the node registry's locality view
// and the collective transport.
type Deps struct {
	Locality Locality
	Comm     exchange.Communicator
}

// FreeLayer positions its members at arbitrary user-supplied coordinates,
// stored densely by local index.
type FreeLayer struct {
	base
	positions []model.Position
}

// NewFree creates a free layer over the collection with the given box.
// Positions are assigned afterwards via SetPositions or SetStatus.
func NewFree(c *gids.Collection, lowerLeft, extent model.Position, depth int, deps Deps) (*FreeLayer, error) {
	dim := lowerLeft.Dim()
	if dim != 2 && dim != 3 {
		return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("dimension must be 2 or 3, got %d", dim)}
	}
	if extent.Dim() != dim {
		return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("lower left is %d-dimensional but extent is %d-dimensional",
			dim, extent.Dim())}
	}
	for i := 0; i < dim; i++ {
		if extent[i] <= 0 {
			return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("extent must be positive on every axis, got %s", extent)}
		}
	}
	if depth < 1 {
		return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("depth must be >= 1, got %d", depth)}
	}
	l := &FreeLayer{
		base: base{
			coll:      c,
			dim:       dim,
			depth:     depth,
			lowerLeft: lowerLeft.Clone(),
			extent:    extent.Clone(),
			locality:  deps.Locality,
			comm:      deps.Comm,
		},
	}
	l.base.position = l.Position
	return l, nil
}

// SetPositions validates and stores one position per collection member.
// The count must equal the collection size and every position must lie in
// [lowerLeft, lowerLeft+extent) on every axis. On error no position is
// stored.
func (l *FreeLayer) SetPositions(positions []model.Position) error {
	if len(positions) != l.coll.Size() {
		return &ErrSizeMismatch{Expected: l.coll.Size(), Actual: len(positions)}
	}
	stored := make([]model.Position, len(positions))
	for i, p := range positions {
		if p.Dim() != l.dim {
			return &ErrInvalidSpec{Reason: fmt.Sprintf("position %d is %d-dimensional, layer is %d-dimensional",
				i, p.Dim(), l.dim)}
		}
		if !p.Within(l.lowerLeft, l.extent) {
			return &ErrOutOfBounds{Position: p.Clone(), LowerLeft: l.lowerLeft, Extent: l.extent}
		}
		stored[i] = p.Clone()
	}
	l.positions = stored
	return nil
}

// Position implements Layer. Calling it before positions were assigned, or
// with an out-of-range lid, is a programming error and panics.
func (l *FreeLayer) Position(lid int) model.Position {
	return l.positions[lid]
}

// InsertPositionsInto implements Layer.
func (l *FreeLayer) InsertPositionsInto(ctx context.Context, tree *ntree.Tree[model.GID]) error {
	return l.insertPositionsInto(ctx, tree)
}

// GlobalPositions implements Layer.
func (l *FreeLayer) GlobalPositions(ctx context.Context) ([]Entry, error) {
	return l.globalPositions(ctx)
}

// Status implements Layer.
func (l *FreeLayer) Status() map[string]any {
	positions := make([][]float64, len(l.positions))
	for i, p := range l.positions {
		positions[i] = p.Clone()
	}
	return map[string]any{
		"lower_left": []float64(l.LowerLeft()),
		"extent":     []float64(l.Extent()),
		"positions":  positions,
		"depth":      l.depth,
	}
}

// SetStatus implements Layer. Only the "positions" property is writable; it
// round-trips with Status.
func (l *FreeLayer) SetStatus(status map[string]any) error {
	raw, ok := status["positions"]
	if !ok {
		return nil
	}
	coords, ok := raw.([][]float64)
	if !ok {
		return &ErrInvalidSpec{Reason: fmt.Sprintf("positions must be [][]float64, got %T", raw)}
	}
	positions := make([]model.Position, len(coords))
	for i, c := range coords {
		positions[i] = model.NewPosition(c...)
	}
	return l.SetPositions(positions)
}
