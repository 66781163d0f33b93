package layer

import (
	"context"
	"fmt"
	"slices"

	"github.com/AlexVanMeegen/nest-simulator/model"
	"github.com/AlexVanMeegen/nest-simulator/ntree"
)

// record is one wire record of the position exchange: a GID followed by D
// coordinates, (D+1) float64 values on the wire. GIDs survive the float64
// round-trip exactly up to 2^53, far beyond any realistic network size.
type record struct {
	gid model.GID
	pos model.Position
}

// gatherLocal flattens the locally owned (gid, position) pairs of the
// layer's collection into wire format. Proxies are skipped; device clones
// are reported once per hosting VP and deduplicated after the exchange.
func (b *base) gatherLocal() []float64 {
	local := make([]float64, 0, (b.dim+1)*b.coll.Size())
	b.locality.EachLocalReal(b.coll, func(lid int, gid model.GID, _ model.Node) bool {
		local = append(local, float64(gid))
		local = append(local, b.position(lid)...)
		return true
	})
	return local
}

// decodeRecords reinterprets the flat exchange buffer as fixed-width
// records via checked conversion.
func (b *base) decodeRecords(global []float64) ([]record, error) {
	width := b.dim + 1
	if len(global)%width != 0 {
		return nil, &ErrConsistency{
			Expected: b.coll.Size(),
			Actual:   len(global) / width,
			Ranks:    b.comm.Size(),
			Detail:   "exchange buffer is not a whole number of records",
		}
	}
	records := make([]record, 0, len(global)/width)
	for off := 0; off < len(global); off += width {
		records = append(records, record{
			gid: model.GID(global[off]),
			pos: model.Position(global[off+1 : off+width : off+width]),
		})
	}
	return records, nil
}

// communicatePositions runs the collective protocol: gather local records,
// all-gather across ranks, sort by GID, drop duplicate reports, verify
// completeness, and emit the global view in GID order.
//
// The sort+dedup step is what makes the result independent of rank count and
// thread scheduling: however the exchange interleaved contributions, every
// rank ends up with the identical sorted sequence.
func (b *base) communicatePositions(ctx context.Context, emit func(Entry) error) error {
	global, _, err := b.comm.AllGather(ctx, b.gatherLocal())
	if err != nil {
		return err
	}

	records, err := b.decodeRecords(global)
	if err != nil {
		return err
	}

	slices.SortFunc(records, func(a, b record) int {
		switch {
		case a.gid < b.gid:
			return -1
		case a.gid > b.gid:
			return 1
		default:
			return 0
		}
	})

	// Drop duplicate reports of the same entity (device clones, one report
	// per hosting VP). Duplicate payloads must be byte-identical; a
	// divergent duplicate means the ranks disagree about the topology.
	unique := records[:0]
	for i, r := range records {
		if i > 0 && r.gid == unique[len(unique)-1].gid {
			if !r.pos.Equal(unique[len(unique)-1].pos) {
				return &ErrConsistency{
					Expected: b.coll.Size(),
					Actual:   len(records),
					Ranks:    b.comm.Size(),
					Detail:   fmt.Sprintf("conflicting positions reported for gid %d", r.gid),
				}
			}
			continue
		}
		unique = append(unique, r)
	}

	if len(unique) != b.coll.Size() {
		return &ErrConsistency{
			Expected: b.coll.Size(),
			Actual:   len(unique),
			Ranks:    b.comm.Size(),
		}
	}

	for _, r := range unique {
		if err := emit(Entry{GID: r.gid, Pos: r.pos}); err != nil {
			return err
		}
	}
	return nil
}

// insertPositionsInto populates tree with the synchronized global view.
// Tree construction does not depend on insertion order, so records are
// inserted as emitted.
func (b *base) insertPositionsInto(ctx context.Context, tree *ntree.Tree[model.GID]) error {
	return b.communicatePositions(ctx, func(e Entry) error {
		return tree.Insert(e.Pos, e.GID)
	})
}

// globalPositions returns the synchronized view as a slice sorted by GID.
func (b *base) globalPositions(ctx context.Context) ([]Entry, error) {
	entries := make([]Entry, 0, b.coll.Size())
	err := b.communicatePositions(ctx, func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// The protocol already emits in GID order; the explicit re-sort pins the
	// reproducible-ordering guarantee to this function rather than to an
	// implementation detail of the protocol.
	slices.SortFunc(entries, func(a, b Entry) int {
		switch {
		case a.GID < b.GID:
			return -1
		case a.GID > b.GID:
			return 1
		default:
			return 0
		}
	})
	return entries, nil
}
