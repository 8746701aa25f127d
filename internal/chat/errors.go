package chat

import (
	"errors"
	"fmt"

	"github.com/good-yellow-bee/chatter/internal/docstore"
)

// ValidationError reports a missing or blank required field. Validation runs
// before any store call, so a ValidationError guarantees no side effects.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// NotFoundError reports that a project or message required to exist is absent.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ForbiddenError reports a sender mismatch on an edit or delete.
type ForbiddenError struct {
	Action string
}

func (e *ForbiddenError) Error() string {
	return "you can only " + e.Action + " your own messages"
}

// StoreError wraps a failure from the backing document store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IndexRequired reports whether the underlying failure is the store asking
// for a composite index on the scanned collection.
func (e *StoreError) IndexRequired() bool {
	return errors.Is(e.Err, docstore.ErrIndexRequired)
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
