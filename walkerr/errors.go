// Package walkerr defines the error taxonomy shared by the object pool,
// the generator pipeline, the object walker, and the bitmap reachability
// engine, following the teacher's plumbing.PermanentError /
// core.UnexpectedError wrap-with-context convention.
package walkerr

import (
	"errors"
	"fmt"

	"github.com/dagwalk/revwalk/identity"
)

// Sentinel base errors. MissingObjectError unwraps to ErrObjectNotFound,
// so callers can use errors.Is against either it or the concrete type;
// no error in this module wraps ErrCancelled.
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrCancelled      = errors.New("walk cancelled")
)

// MissingObjectError is returned when parsing or opening an object the
// pool does not have fails. It is never retried.
type MissingObjectError struct {
	ID identity.Identifier
}

func (e *MissingObjectError) Error() string {
	return fmt.Sprintf("missing object %s: %s", e.ID, ErrObjectNotFound)
}

func (e *MissingObjectError) Unwrap() error { return ErrObjectNotFound }

// IncorrectObjectTypeError is returned when an object is found but is not
// of the type the caller required (e.g. parse_commit on a blob).
type IncorrectObjectTypeError struct {
	ID       identity.Identifier
	Expected string
	Actual   string
}

func (e *IncorrectObjectTypeError) Error() string {
	return fmt.Sprintf("object %s: expected %s, got %s", e.ID, e.Expected, e.Actual)
}

// CorruptObjectError is returned by the byte-format validators and by
// decode paths that reject malformed canonical bytes.
type CorruptObjectError struct {
	ID     identity.Identifier
	Reason string
}

func (e *CorruptObjectError) Error() string {
	if e.ID.IsZero() {
		return fmt.Sprintf("corrupt object: %s", e.Reason)
	}
	return fmt.Sprintf("corrupt object %s: %s", e.ID, e.Reason)
}

// LargeObjectError is returned when a retained object body exceeds the
// 5 MiB cap described in the failure semantics table.
type LargeObjectError struct {
	ID   identity.Identifier
	Size int64
}

const MaxRetainedObjectSize = 5 * 1024 * 1024

func (e *LargeObjectError) Error() string {
	return fmt.Sprintf("object %s is too large to retain (%d bytes > %d)", e.ID, e.Size, MaxRetainedObjectSize)
}

// RevWalkError wraps any of the above when it is raised from an iterator
// whose Next() signature cannot propagate a checked error directly (i.e.
// the caller only has err error to look at, and wants a single type it can
// type-switch on regardless of the underlying cause).
type RevWalkError struct {
	Err error
}

func (e *RevWalkError) Error() string {
	return fmt.Sprintf("rev-list traversal failed: %s", e.Err)
}

func (e *RevWalkError) Unwrap() error { return e.Err }

// Wrap returns err unchanged if it is already a RevWalkError (or nil),
// otherwise wraps it.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var rw *RevWalkError
	if errors.As(err, &rw) {
		return err
	}
	return &RevWalkError{Err: err}
}
