package nest

import (
	"errors"
	"fmt"

	"github.com/AlexVanMeegen/nest-simulator/layer"
	"github.com/AlexVanMeegen/nest-simulator/model"
	"github.com/AlexVanMeegen/nest-simulator/models"
	"github.com/AlexVanMeegen/nest-simulator/nodes"
)

// ErrSizeMismatch indicates that the number of supplied positions does not
// equal the identifier set's size. Recoverable: retry with corrected input.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrSizeMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrSizeMismatch) Error() string {
	return fmt.Sprintf("size mismatch: expected %d positions, got %d", e.Expected, e.Actual)
}

func (e *ErrSizeMismatch) Unwrap() error { return e.cause }

// ErrOutOfBounds indicates a position outside the layer extent. Recoverable.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrOutOfBounds struct {
	Position model.Position
	cause    error
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("position %s out of bounds", e.Position)
}

func (e *ErrOutOfBounds) Unwrap() error { return e.cause }

// ErrUnknownModel indicates an unresolved model name at creation.
// Recoverable.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrUnknownModel struct {
	Name  string
	cause error
}

func (e *ErrUnknownModel) Error() string {
	return fmt.Sprintf("unknown model %q", e.Name)
}

func (e *ErrUnknownModel) Unwrap() error { return e.cause }

// ErrUnknownNode indicates a lookup of a never-created identifier.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrUnknownNode struct {
	GID   model.GID
	cause error
}

func (e *ErrUnknownNode) Error() string {
	return fmt.Sprintf("unknown node %d", e.GID)
}

func (e *ErrUnknownNode) Unwrap() error { return e.cause }

// ErrConsistency indicates that position synchronization produced a global
// view that diverged from the identifier set. It implies a topology
// inconsistency across ranks and is fatal: the run must terminate, as a
// retry cannot fix a diverged topology.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrConsistency struct {
	Expected int
	Actual   int
	Ranks    int
	cause    error
}

func (e *ErrConsistency) Error() string {
	return fmt.Sprintf("consistency fault across %d ranks: expected %d entries, got %d",
		e.Ranks, e.Expected, e.Actual)
}

func (e *ErrConsistency) Unwrap() error { return e.cause }

// translateError normalizes subpackage errors into the facade's error types.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var sm *layer.ErrSizeMismatch
	if errors.As(err, &sm) {
		return &ErrSizeMismatch{Expected: sm.Expected, Actual: sm.Actual, cause: err}
	}
	var ob *layer.ErrOutOfBounds
	if errors.As(err, &ob) {
		return &ErrOutOfBounds{Position: ob.Position, cause: err}
	}
	var um *models.ErrUnknownModel
	if errors.As(err, &um) {
		return &ErrUnknownModel{Name: um.Name, cause: err}
	}
	var un *nodes.ErrUnknownNode
	if errors.As(err, &un) {
		return &ErrUnknownNode{GID: un.GID, cause: err}
	}
	var cf *layer.ErrConsistency
	if errors.As(err, &cf) {
		return &ErrConsistency{Expected: cf.Expected, Actual: cf.Actual, Ranks: cf.Ranks, cause: err}
	}

	return err
}
