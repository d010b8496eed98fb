package hook

import (
	"errors"
	"fmt"
)

// Sentinel errors for action registration.
var (
	// ErrEmptyName is returned when an action name is empty.
	ErrEmptyName = errors.New("action name cannot be empty")

	// ErrNilAction is returned when a nil listener is registered.
	ErrNilAction = errors.New("action listener cannot be nil")
)

// Error reports a listener failure during dispatch.
type Error struct {
	// Action is the name of the action being dispatched.
	Action string

	// Priority is the priority of the failing listener.
	Priority int

	// Listener is the registration ID of the failing listener.
	Listener ID

	// Err is the listener's error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("action %q (priority %d): %v", e.Action, e.Priority, e.Err)
}

// Unwrap returns the listener's error.
func (e *Error) Unwrap() error {
	return e.Err
}
