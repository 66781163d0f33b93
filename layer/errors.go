package layer

import (
	"fmt"

	"github.com/AlexVanMeegen/nest-simulator/model"
)

// ErrSizeMismatch indicates that the number of supplied positions does not
// equal the identifier set's size.
type ErrSizeMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrSizeMismatch) Error() string {
	return fmt.Sprintf("position count mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrOutOfBounds indicates a position outside the layer box
// [lowerLeft, lowerLeft+extent).
type ErrOutOfBounds struct {
	Position  model.Position
	LowerLeft model.Position
	Extent    model.Position
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("position %s outside layer box [%s, %s+%s)",
		e.Position, e.LowerLeft, e.LowerLeft, e.Extent)
}

// ErrConsistency indicates that the synchronized global view diverged from
// the identifier set: an entity was lost, duplicated, or reported with
// conflicting payloads. It signals a topology inconsistency across ranks.
// The protocol never retries; a retry cannot fix a diverged topology, so
// callers must treat this as fatal and terminate the run.
type ErrConsistency struct {
	Expected int
	Actual   int
	Ranks    int
	Detail   string
}

func (e *ErrConsistency) Error() string {
	msg := fmt.Sprintf("position synchronization inconsistency across %d ranks: expected %d entries, got %d",
		e.Ranks, e.Expected, e.Actual)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// ErrInvalidSpec indicates an invalid layer specification.
type ErrInvalidSpec struct {
	Reason string
}

func (e *ErrInvalidSpec) Error() string {
	return fmt.Sprintf("invalid layer spec: %s", e.Reason)
}
