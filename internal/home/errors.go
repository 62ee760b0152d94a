package home

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when an intent names a tab that is not open.
var ErrSessionNotFound = errors.New("session not found")

// PreconditionError reports an intent the UI should never have sent, such
// as selecting a tab that is not open.
type PreconditionError struct {
	Op  string
	ID  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.ID, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}
