package layer

import (
	"context"
	"fmt"

	"github.com/AlexVanMeegen/nest-simulator/gids"
	"github.com/AlexVanMeegen/nest-simulator/model"
	"github.com/AlexVanMeegen/nest-simulator/ntree"
)

// GridLayer positions its members on a regular grid derived from the layer
// box and the grid shape. Nothing is stored; lookup is a formula.
//
// Enumeration is column-major: the cell of local index lid is
// cell = lid mod cells, col = cell / (rows*layers), then row, then depth
// layer. Positions are cell centers; the y axis is counted top-down from the
// upper edge of the box.
type GridLayer struct {
	base
	columns int
	rows    int
	layers  int // depth layers along z; 1 for 2-D grids
}

// NewGrid creates a grid layer over the collection. layers == 1 yields a
// 2-D layer, layers > 1 a 3-D one; the box dimension must match. The
// collection size must equal columns*rows*layers times the element depth.
func NewGrid(c *gids.Collection, lowerLeft, extent model.Position, columns, rows, layers, depth int, deps Deps) (*GridLayer, error) {
	if columns < 1 || rows < 1 || layers < 1 {
		return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("grid shape must be positive, got %dx%dx%d",
			columns, rows, layers)}
	}
	dim := 2
	if layers > 1 {
		dim = 3
	}
	if lowerLeft.Dim() != dim || extent.Dim() != dim {
		return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("grid is %d-dimensional but box is %dx%d-dimensional",
			dim, lowerLeft.Dim(), extent.Dim())}
	}
	for i := 0; i < dim; i++ {
		if extent[i] <= 0 {
			return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("extent must be positive on every axis, got %s", extent)}
		}
	}
	if depth < 1 {
		return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("depth must be >= 1, got %d", depth)}
	}
	cells := columns * rows * layers
	if c.Size() != cells*depth {
		return nil, &ErrSizeMismatch{Expected: cells * depth, Actual: c.Size()}
	}
	l := &GridLayer{
		base: base{
			coll:      c,
			dim:       dim,
			depth:     depth,
			lowerLeft: lowerLeft.Clone(),
			extent:    extent.Clone(),
			locality:  deps.Locality,
			comm:      deps.Comm,
		},
		columns: columns,
		rows:    rows,
		layers:  layers,
	}
	l.base.position = l.Position
	return l, nil
}

// Shape returns the grid shape as (columns, rows, layers).
func (l *GridLayer) Shape() (columns, rows, layers int) {
	return l.columns, l.rows, l.layers
}

// Position implements Layer. The result is derived, never stored, so
// repeated calls are trivially invariant.
func (l *GridLayer) Position(lid int) model.Position {
	if lid < 0 || lid >= l.coll.Size() {
		panic(fmt.Sprintf("layer: local index %d out of range [0, %d)", lid, l.coll.Size()))
	}
	cells := l.columns * l.rows * l.layers
	cell := lid % cells
	col := cell / (l.rows * l.layers)
	rem := cell % (l.rows * l.layers)
	row := rem / l.layers
	lay := rem % l.layers

	pos := make(model.Position, l.dim)
	pos[0] = l.lowerLeft[0] + (float64(col)+0.5)*l.extent[0]/float64(l.columns)
	pos[1] = l.lowerLeft[1] + l.extent[1] - (float64(row)+0.5)*l.extent[1]/float64(l.rows)
	if l.dim == 3 {
		pos[2] = l.lowerLeft[2] + (float64(lay)+0.5)*l.extent[2]/float64(l.layers)
	}
	return pos
}

// InsertPositionsInto implements Layer.
func (l *GridLayer) InsertPositionsInto(ctx context.Context, tree *ntree.Tree[model.GID]) error {
	return l.insertPositionsInto(ctx, tree)
}

// GlobalPositions implements Layer.
func (l *GridLayer) GlobalPositions(ctx context.Context) ([]Entry, error) {
	return l.globalPositions(ctx)
}

// Status implements Layer.
func (l *GridLayer) Status() map[string]any {
	return map[string]any{
		"lower_left": []float64(l.LowerLeft()),
		"extent":     []float64(l.Extent()),
		"columns":    l.columns,
		"rows":       l.rows,
		"layers":     l.layers,
		"depth":      l.depth,
	}
}

// SetStatus implements Layer. Grid positions are formula-derived; supplying
// explicit positions is invalid.
func (l *GridLayer) SetStatus(status map[string]any) error {
	if _, ok := status["positions"]; ok {
		return &ErrInvalidSpec{Reason: "cannot assign explicit positions to a grid layer"}
	}
	return nil
}

var _ Layer = (*FreeLayer)(nil)
var _ Layer = (*GridLayer)(nil)
