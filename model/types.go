package model

import (
	"fmt"
	"math"
	"strings"
)

// GID is the stable global identifier of one entity. GIDs are dense within a
// single creation batch and are never reused until the registry is reset.
type GID uint64

// VP is a virtual process, the logical unit of parallelism. Entities are
// distributed across VPs; each VP is hosted by exactly one (rank, thread)
// pair.
type VP int

// Thread is a worker-thread index local to one rank.
type Thread int

// Rank identifies one participating process in the distributed run.
type Rank int

// Kind classifies a model with respect to the distribution policy applied at
// creation time.
type Kind int

const (
	// KindRegular entities live on exactly one VP; every other VP holds a
	// proxy.
	KindRegular Kind = iota

	// KindDevice entities are cloned onto every VP, no proxies.
	KindDevice

	// KindCoordination entities exist once per rank, pinned to thread 0.
	KindCoordination
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindDevice:
		return "device"
	case KindCoordination:
		return "coordination"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Position is a fixed-dimension coordinate in layer space. Supported
// dimensions are 2 and 3.
type Position []float64

// NewPosition copies coords into a fresh Position.
func NewPosition(coords ...float64) Position {
	p := make(Position, len(coords))
	copy(p, coords)
	return p
}

// Dim returns the dimensionality of the position.
func (p Position) Dim() int { return len(p) }

// Clone returns an independent copy of the position.
func (p Position) Clone() Position {
	q := make(Position, len(p))
	copy(q, p)
	return q
}

// Equal reports whether p and q have identical dimension and coordinates.
func (p Position) Equal(q Position) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Within reports whether p lies inside the half-open box
// [lowerLeft, lowerLeft+extent) on every axis.
func (p Position) Within(lowerLeft, extent Position) bool {
	if len(p) != len(lowerLeft) || len(p) != len(extent) {
		return false
	}
	for i := range p {
		if p[i] < lowerLeft[i] || p[i] >= lowerLeft[i]+extent[i] {
			return false
		}
	}
	return true
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Position) DistanceTo(q Position) float64 {
	var sum float64
	for i := range p {
		d := p[i] - q[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// String formats the position as "(x, y[, z])".
func (p Position) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = fmt.Sprintf("%g", c)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
