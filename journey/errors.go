package journey

import (
	"errors"
	"fmt"
)

// ErrKind classifies engine failures. All of them are local and recoverable:
// the session state is left untouched and the same or another event may be
// retried.
type ErrKind string

const (
	// ErrIllegalTransition marks an event that is not valid for the current
	// state. Callers discard it without applying any change.
	ErrIllegalTransition ErrKind = "illegal_transition"
	// ErrProductNotFound is a storekeeper lookup miss on the product id.
	ErrProductNotFound ErrKind = "product_not_found"
	// ErrNoMatchingCustomer is a storekeeper lookup with a known product but
	// no purchasing customer on record.
	ErrNoMatchingCustomer ErrKind = "no_matching_customer"
	// ErrSessionBusy rejects an advance while a simulated step is in flight.
	ErrSessionBusy ErrKind = "session_busy"
)

// Error is the engine's declarative failure value.
type Error struct {
	Kind    ErrKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func illegal(format string, args ...any) *Error {
	return &Error{Kind: ErrIllegalTransition, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the failure kind from an error chain. Returns "" for
// non-engine errors.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
