package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOrderNotFound reports an order id that resolves to nothing.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition is the sentinel behind InvalidTransitionError so
	// callers can match the whole family with errors.Is.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InvalidTransitionError describes a rejected status change with enough
// context for a precise diagnostic.
type InvalidTransitionError struct {
	Current   Status
	Requested Status
	Allowed   []Status
}

func (e *InvalidTransitionError) Error() string {
	allowed := "none"
	if len(e.Allowed) > 0 {
		parts := make([]string, len(e.Allowed))
		for i, status := range e.Allowed {
			parts[i] = string(status)
		}
		allowed = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("cannot transition order from %s to %s. Valid transitions: %s", e.Current, e.Requested, allowed)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
