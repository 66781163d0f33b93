package gids

import (
	"fmt"
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/AlexVanMeegen/nest-simulator/model"
)

// ErrMetadataAlreadySet is returned when the shared metadata slot of a
// collection is assigned twice.
type ErrMetadataAlreadySet struct{}

func (e *ErrMetadataAlreadySet) Error() string {
	return "collection metadata is already set"
}

// ErrJoin indicates that two collections cannot be concatenated.
type ErrJoin struct {
	Reason string
}

func (e *ErrJoin) Error() string {
	return fmt.Sprintf("collections cannot be joined: %s", e.Reason)
}

// part is one contiguous GID range [first, first+size).
type part struct {
	first model.GID
	size  int
}

func (p part) last() model.GID { return p.first + model.GID(p.size) - 1 }

// Collection is an ordered, immutable set of GIDs, possibly composed of
// several contiguous ranges. The zero value is not usable; use NewRange and
// Join.
//
// All read accessors are safe for concurrent use. The metadata slot is
// settable exactly once and read-only afterwards.
type Collection struct {
	parts   []part
	offsets []int // cumulative sizes, offsets[i] = index of parts[i][0]
	size    int

	metaMu sync.Mutex
	meta   any

	bitmapOnce sync.Once
	bitmap     *roaring64.Bitmap
}

// NewRange creates a collection covering the contiguous range
// [first, first+n).
func NewRange(first model.GID, n int) (*Collection, error) {
	if n <= 0 {
		return nil, fmt.Errorf("collection size must be positive, got %d", n)
	}
	return &Collection{
		parts:   []part{{first: first, size: n}},
		offsets: []int{0},
		size:    n,
	}, nil
}

// Join concatenates a and b into a new collection, preserving creation order.
// The inputs must be disjoint and must carry the same metadata (a layer split
// across distinct metadata slots is not one layer). The result shares the
// inputs' metadata.
func Join(a, b *Collection) (*Collection, error) {
	if a.Metadata() != b.Metadata() {
		return nil, &ErrJoin{Reason: "metadata differs"}
	}
	for _, pb := range b.parts {
		for _, pa := range a.parts {
			if pb.first <= pa.last() && pa.first <= pb.last() {
				return nil, &ErrJoin{Reason: fmt.Sprintf("overlapping ranges [%d, %d] and [%d, %d]",
					pa.first, pa.last(), pb.first, pb.last())}
			}
		}
	}

	parts := make([]part, 0, len(a.parts)+len(b.parts))
	parts = append(parts, a.parts...)
	parts = append(parts, b.parts...)

	joined := &Collection{parts: parts, meta: a.Metadata()}
	joined.offsets = make([]int, len(parts))
	for i, p := range parts {
		joined.offsets[i] = joined.size
		joined.size += p.size
	}
	return joined, nil
}

// Size returns the number of GIDs in the collection.
func (c *Collection) Size() int { return c.size }

// GID returns the identifier at local index lid. Out-of-range lids are a
// programming error and panic.
func (c *Collection) GID(lid int) model.GID {
	if lid < 0 || lid >= c.size {
		panic(fmt.Sprintf("gids: local index %d out of range [0, %d)", lid, c.size))
	}
	i := sort.Search(len(c.offsets), func(i int) bool { return c.offsets[i] > lid }) - 1
	return c.parts[i].first + model.GID(lid-c.offsets[i])
}

// Index returns the local index of gid, or false if gid is not a member.
func (c *Collection) Index(gid model.GID) (int, bool) {
	for i, p := range c.parts {
		if gid >= p.first && gid <= p.last() {
			return c.offsets[i] + int(gid-p.first), true
		}
	}
	return 0, false
}

// Contains reports membership of gid. The first call builds a compressed
// bitmap over all parts; later calls are O(1) amortized.
func (c *Collection) Contains(gid model.GID) bool {
	c.bitmapOnce.Do(func() {
		bm := roaring64.New()
		for _, p := range c.parts {
			bm.AddRange(uint64(p.first), uint64(p.first)+uint64(p.size))
		}
		c.bitmap = bm
	})
	return c.bitmap.Contains(uint64(gid))
}

// Each calls fn for every (local index, GID) pair in order, stopping early if
// fn returns false.
func (c *Collection) Each(fn func(lid int, gid model.GID) bool) {
	lid := 0
	for _, p := range c.parts {
		for g := p.first; g <= p.last(); g++ {
			if !fn(lid, g) {
				return
			}
			lid++
		}
	}
}

// GIDs returns all identifiers in order. Intended for small collections and
// tests; prefer Each for iteration.
func (c *Collection) GIDs() []model.GID {
	out := make([]model.GID, 0, c.size)
	c.Each(func(_ int, g model.GID) bool {
		out = append(out, g)
		return true
	})
	return out
}

// SetMetadata assigns the shared metadata slot. The slot can be written
// exactly once; further writes fail.
func (c *Collection) SetMetadata(meta any) error {
	c.metaMu.Lock()
	defer c.metaMu.Unlock()
	if c.meta != nil {
		return &ErrMetadataAlreadySet{}
	}
	c.meta = meta
	return nil
}

// Metadata returns the shared metadata slot, or nil if unset.
func (c *Collection) Metadata() any {
	c.metaMu.Lock()
	defer c.metaMu.Unlock()
	return c.meta
}

// String renders the collection as its list of ranges.
func (c *Collection) String() string {
	s := "gids{"
	for i, p := range c.parts {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("[%d..%d]", p.first, p.last())
	}
	return s + "}"
}
