package layer

import (
	"context"

	"github.com/AlexVanMeegen/nest-simulator/gids"
	"github.com/AlexVanMeegen/nest-simulator/model"
)

// Creator creates n entities of a model and returns their identifier set.
// Satisfied by a closure over the node registry's Create.
type Creator func(ctx context.Context, modelName string, n int) (*gids.Collection, error)

// Build creates the entities of a layer spec and assembles the layer.
//
// Every element model yields one collection of size cells; the collections
// are joined in element order, so the joined set is the concatenation of one
// contiguous range per element. The layer descriptor is attached to the
// joined collection's metadata slot.
func Build(ctx context.Context, spec Spec, create Creator, deps Deps) (Layer, error) {
	n, err := spec.normalize()
	if err != nil {
		return nil, err
	}

	coll, err := create(ctx, n.elements[0], n.cells)
	if err != nil {
		return nil, err
	}
	for _, elem := range n.elements[1:] {
		next, err := create(ctx, elem, n.cells)
		if err != nil {
			return nil, err
		}
		coll, err = gids.Join(coll, next)
		if err != nil {
			return nil, err
		}
	}

	depth := len(n.elements)
	lowerLeft := model.NewPosition(n.lowerLeft...)
	extent := model.NewPosition(n.extent...)

	var l Layer
	if n.grid {
		l, err = NewGrid(coll, lowerLeft, extent, n.columns, n.rows, n.layers, depth, deps)
		if err != nil {
			return nil, err
		}
	} else {
		free, err := NewFree(coll, lowerLeft, extent, depth, deps)
		if err != nil {
			return nil, err
		}
		// One user position per cell; with several elements per cell the
		// joined set repeats the cell ranges, so the position table does
		// too, keeping len(positions) == collection size.
		positions := make([]model.Position, 0, n.cells*depth)
		for d := 0; d < depth; d++ {
			for _, p := range n.positions {
				positions = append(positions, model.NewPosition(p...))
			}
		}
		if err := free.SetPositions(positions); err != nil {
			return nil, err
		}
		l = free
	}

	if err := coll.SetMetadata(NewMetadata(l)); err != nil {
		return nil, err
	}
	return l, nil
}
