package ntree

import (
	"fmt"

	"github.com/AlexVanMeegen/nest-simulator/model"
)

// DefaultCapacity is the number of entries a cell buffers before it splits.
const DefaultCapacity = 100

// maxDepth bounds subdivision so that many entries at the same coordinate
// degrade into an overfull leaf instead of infinite splitting.
const maxDepth = 24

// ErrOutOfBounds is returned when an inserted position lies outside the
// tree's box.
type ErrOutOfBounds struct {
	Position  model.Position
	LowerLeft model.Position
	Extent    model.Position
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("position %s outside tree box [%s, %s+%s)",
		e.Position, e.LowerLeft, e.LowerLeft, e.Extent)
}

// Entry is one stored (position, payload) pair.
type Entry[T any] struct {
	Pos   model.Position
	Value T
}

// Tree is a D-dimensional spatial index over payloads of type T.
type Tree[T any] struct {
	dim       int
	lowerLeft model.Position
	extent    model.Position
	capacity  int
	root      *cell[T]
	size      int
}

type cell[T any] struct {
	lowerLeft model.Position
	extent    model.Position
	entries   []Entry[T] // leaf storage; nil after split
	children  []*cell[T] // 2^dim children; nil while leaf
	depth     int
}

// Option configures a Tree.
type Option[T any] func(*Tree[T])

// WithCapacity overrides the per-cell split threshold.
func WithCapacity[T any](capacity int) Option[T] {
	return func(t *Tree[T]) {
		if capacity > 0 {
			t.capacity = capacity
		}
	}
}

// New creates a tree covering the half-open box [lowerLeft, lowerLeft+extent)
// with the given dimension (2 or 3).
func New[T any](dim int, lowerLeft, extent model.Position, optFns ...Option[T]) (*Tree[T], error) {
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("ntree: dimension must be 2 or 3, got %d", dim)
	}
	if lowerLeft.Dim() != dim || extent.Dim() != dim {
		return nil, fmt.Errorf("ntree: box dimension mismatch: lower left %d, extent %d, want %d",
			lowerLeft.Dim(), extent.Dim(), dim)
	}
	for i := 0; i < dim; i++ {
		if extent[i] <= 0 {
			return nil, fmt.Errorf("ntree: extent must be positive on every axis, got %s", extent)
		}
	}
	t := &Tree[T]{
		dim:       dim,
		lowerLeft: lowerLeft.Clone(),
		extent:    extent.Clone(),
		capacity:  DefaultCapacity,
	}
	for _, fn := range optFns {
		fn(t)
	}
	t.root = &cell[T]{lowerLeft: t.lowerLeft, extent: t.extent}
	return t, nil
}

// Dim returns the tree's dimension.
func (t *Tree[T]) Dim() int { return t.dim }

// Len returns the number of stored entries.
func (t *Tree[T]) Len() int { return t.size }

// LowerLeft returns the lower-left corner of the tree's box.
func (t *Tree[T]) LowerLeft() model.Position { return t.lowerLeft.Clone() }

// Extent returns the edge lengths of the tree's box.
func (t *Tree[T]) Extent() model.Position { return t.extent.Clone() }

// Insert adds one (position, payload) pair. The position must lie inside the
// tree's box.
func (t *Tree[T]) Insert(pos model.Position, value T) error {
	if pos.Dim() != t.dim || !pos.Within(t.lowerLeft, t.extent) {
		return &ErrOutOfBounds{Position: pos.Clone(), LowerLeft: t.lowerLeft, Extent: t.extent}
	}
	t.root.insert(Entry[T]{Pos: pos.Clone(), Value: value}, t.capacity, t.dim)
	t.size++
	return nil
}

func (c *cell[T]) insert(e Entry[T], capacity, dim int) {
	if c.children == nil {
		if len(c.entries) < capacity || c.depth >= maxDepth {
			c.entries = append(c.entries, e)
			return
		}
		c.split(capacity, dim)
	}
	c.children[c.childIndex(e.Pos, dim)].insert(e, capacity, dim)
}

// childIndex selects the sub-cell for pos: bit d is set when pos is in the
// upper half along axis d.
func (c *cell[T]) childIndex(pos model.Position, dim int) int {
	idx := 0
	for d := 0; d < dim; d++ {
		if pos[d] >= c.lowerLeft[d]+c.extent[d]/2 {
			idx |= 1 << d
		}
	}
	return idx
}

func (c *cell[T]) split(capacity, dim int) {
	n := 1 << dim
	c.children = make([]*cell[T], n)
	for i := 0; i < n; i++ {
		lower := c.lowerLeft.Clone()
		half := c.extent.Clone()
		for d := 0; d < dim; d++ {
			half[d] /= 2
			if i&(1<<d) != 0 {
				lower[d] += half[d]
			}
		}
		c.children[i] = &cell[T]{lowerLeft: lower, extent: half, depth: c.depth + 1}
	}
	for _, e := range c.entries {
		c.children[c.childIndex(e.Pos, dim)].insert(e, capacity, dim)
	}
	c.entries = nil
}

// Each walks all entries in unspecified order, stopping early when fn returns
// false.
func (t *Tree[T]) Each(fn func(Entry[T]) bool) {
	t.root.each(fn)
}

func (c *cell[T]) each(fn func(Entry[T]) bool) bool {
	if c.children == nil {
		for _, e := range c.entries {
			if !fn(e) {
				return false
			}
		}
		return true
	}
	for _, child := range c.children {
		if !child.each(fn) {
			return false
		}
	}
	return true
}

// Entries returns all stored entries in unspecified order.
func (t *Tree[T]) Entries() []Entry[T] {
	out := make([]Entry[T], 0, t.size)
	t.Each(func(e Entry[T]) bool {
		out = append(out, e)
		return true
	})
	return out
}

// InRegion returns all entries whose position lies in the closed box
// [lower, upper] on every axis.
func (t *Tree[T]) InRegion(lower, upper model.Position) []Entry[T] {
	var out []Entry[T]
	if lower.Dim() != t.dim || upper.Dim() != t.dim {
		return out
	}
	t.root.inRegion(lower, upper, t.dim, &out)
	return out
}

func (c *cell[T]) inRegion(lower, upper model.Position, dim int, out *[]Entry[T]) {
	for d := 0; d < dim; d++ {
		if c.lowerLeft[d] > upper[d] || c.lowerLeft[d]+c.extent[d] <= lower[d] {
			return
		}
	}
	if c.children == nil {
		for _, e := range c.entries {
			if inBox(e.Pos, lower, upper, dim) {
				*out = append(*out, e)
			}
		}
		return
	}
	for _, child := range c.children {
		child.inRegion(lower, upper, dim, out)
	}
}

func inBox(pos, lower, upper model.Position, dim int) bool {
	for d := 0; d < dim; d++ {
		if pos[d] < lower[d] || pos[d] > upper[d] {
			return false
		}
	}
	return true
}

// InRadius returns all entries within Euclidean distance radius of center.
func (t *Tree[T]) InRadius(center model.Position, radius float64) []Entry[T] {
	if center.Dim() != t.dim || radius < 0 {
		return nil
	}
	lower := center.Clone()
	upper := center.Clone()
	for d := 0; d < t.dim; d++ {
		lower[d] -= radius
		upper[d] += radius
	}
	candidates := t.InRegion(lower, upper)
	out := candidates[:0]
	for _, e := range candidates {
		if e.Pos.DistanceTo(center) <= radius {
			out = append(out, e)
		}
	}
	return out
}
