package scoreboard

import (
	"fmt"
	"github.com/pkg/errors"
)

// ErrInvalidAmount is returned when a removal amount isn't a positive integer
var ErrInvalidAmount = errors.New("amount must be a positive integer")

// PersistenceError is returned when the scoreboard document can't be read or written. When
// returned by a mutation, the in-memory state has been left as it was before the call
type PersistenceError struct {
	Op  string
	err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("scoreboard %s failed: %v", e.Op, e.err)
}

// Cause returns the underlying storage error
func (e *PersistenceError) Cause() error {
	return e.err
}

// Unwrap returns the underlying storage error
func (e *PersistenceError) Unwrap() error {
	return e.err
}

func newPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, err: err}
}
