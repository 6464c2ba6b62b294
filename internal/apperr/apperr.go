// Package apperr defines the error taxonomy of the rental core.
//
// ValidationError and NotFoundError are client-correctable and are raised
// before the persistence layer is touched. ConflictError signals a
// referential-integrity violation on delete. PersistenceError wraps a
// storage failure; callers show a generic message and log the cause.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries per-field messages so callers can render
// field-specific feedback instead of one opaque string.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Fields[field] = msg
	return e
}

func (e *ValidationError) Addf(field, format string, args ...any) *ValidationError {
	e.Fields[field] = fmt.Sprintf(format, args...)
	return e
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError names the missing entity and its id.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ConflictError signals that a delete is blocked by referencing entities.
// BlockingIDs lists the ids that hold the reference, when known.
type ConflictError struct {
	Message     string
	BlockingIDs []string
}

func NewConflictError(msg string, blocking ...string) *ConflictError {
	return &ConflictError{Message: msg, BlockingIDs: blocking}
}

func (e *ConflictError) Error() string {
	if len(e.BlockingIDs) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (blocked by: %s)", e.Message, strings.Join(e.BlockingIDs, ", "))
}

// PersistenceError wraps a storage-layer failure. The wrapped cause is for
// logs only; user-facing output stays generic.
type PersistenceError struct {
	Op  string
	Err error
}

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
