package layer

import (
	"context"

	"github.com/AlexVanMeegen/nest-simulator/exchange"
	"github.com/AlexVanMeegen/nest-simulator/gids"
	"github.com/AlexVanMeegen/nest-simulator/model"
	"github.com/AlexVanMeegen/nest-simulator/ntree"
)

// Locality is the slice of the node registry a layer needs: iteration over
// the locally owned (real) members of a collection. Satisfied by
// *nodes.Manager.
type Locality interface {
	EachLocalReal(c *gids.Collection, fn func(lid int, gid model.GID, n model.Node) bool)
}

// Entry is one synchronized (identifier, position) pair.
type Entry struct {
	GID model.GID
	Pos model.Position
}

// Layer assigns a position to every member of one identifier set.
//
// Position lookups by local index are O(1) for both variants. The global
// accessors run the position synchronization protocol and therefore are
// collective: every rank must call them together.
type Layer interface {
	// Dim returns the dimensionality of the layer (2 or 3).
	Dim() int

	// Collection returns the identifier set the layer is attached to.
	Collection() *gids.Collection

	// Depth returns the number of element models per grid position.
	Depth() int

	// LowerLeft returns the lower-left corner of the layer box.
	LowerLeft() model.Position

	// Extent returns the edge lengths of the layer box.
	Extent() model.Position

	// Position returns the position of the member at local index lid.
	// Out-of-range lids are a programming error and panic.
	Position(lid int) model.Position

	// InsertPositionsInto synchronizes positions across all ranks and
	// inserts the deduplicated global view into tree.
	InsertPositionsInto(ctx context.Context, tree *ntree.Tree[model.GID]) error

	// GlobalPositions synchronizes positions across all ranks and returns
	// the global view sorted by GID, identical on every rank.
	GlobalPositions(ctx context.Context) ([]Entry, error)

	// Status returns the layer's properties as a generic property map.
	Status() map[string]any

	// SetStatus applies position data from a generic property map.
	SetStatus(status map[string]any) error
}

// Metadata is the shared descriptor stored in a collection's metadata slot,
// linking the collection back to its layer.
type Metadata struct {
	layer Layer
}

// NewMetadata wraps a layer for attachment to a collection.
func NewMetadata(l Layer) *Metadata { return &Metadata{layer: l} }

// Layer returns the attached layer.
func (m *Metadata) Layer() Layer { return m.layer }

// Of returns the layer attached to a collection, if any.
func Of(c *gids.Collection) (Layer, bool) {
	meta, ok := c.Metadata().(*Metadata)
	if !ok {
		return nil, false
	}
	return meta.layer, true
}

// base carries the state and wiring shared by both layer variants.
type base struct {
	coll      *gids.Collection
	dim       int
	depth     int
	lowerLeft model.Position
	extent    model.Position

	locality Locality
	comm     exchange.Communicator

	// position is the variant's local-index lookup, used by the protocol.
	position func(lid int) model.Position
}

func (b *base) Dim() int { return b.dim }

func (b *base) Collection() *gids.Collection { return b.coll }

func (b *base) Depth() int { return b.depth }

func (b *base) LowerLeft() model.Position { return b.lowerLeft.Clone() }

func (b *base) Extent() model.Position { return b.extent.Clone() }
