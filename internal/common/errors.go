// Package common defines the sentinel and typed errors shared by the
// repositories, the note service and the transport layers. Callers should
// match them with errors.Is / errors.As.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal        = errors.New("internal error")
	ErrReferenceNotFound = errors.New("referenced entity not found")
	ErrPersistence       = errors.New("persistence error")
)

// ReferenceNotFoundError reports that an entity required by an operation
// (for example the owner of a new note) does not exist.
type ReferenceNotFoundError struct {
	Entity string
	ID     int64
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// Is makes errors.Is(err, ErrReferenceNotFound) true.
func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}

// PersistenceError wraps a failure reported by the store. Constraint is set
// when the store rejected the data itself (unique, foreign key, not null,
// check), as opposed to connectivity or transaction failures.
type PersistenceError struct {
	Op         string
	Constraint bool
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPersistence) true.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
