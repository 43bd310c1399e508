package domain

import "strings"

// Status is the preparation stage of an order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusCompleted Status = "COMPLETED"
)

// validTransitions encodes the kitchen pipeline. COMPLETED is reachable from
// every non-terminal state so staff can short-circuit an order without
// walking the whole pipeline.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCompleted},
	StatusConfirmed: {StatusPreparing, StatusCompleted},
	StatusPreparing: {StatusReady, StatusCompleted},
	StatusReady:     {StatusCompleted},
	StatusCompleted: {},
}

// ParseStatus returns the canonical Status for raw input, reporting whether
// the input named a known status.
func ParseStatus(raw string) (Status, bool) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := validTransitions[status]; !ok {
		return "", false
	}
	return status, true
}

// AllowedNext returns the statuses reachable from current, in pipeline order.
func AllowedNext(current Status) []Status {
	next := validTransitions[current]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// ValidateTransition checks whether an order may move from current to
// requested. Requesting the current status again is an idempotent no-op and
// always succeeds.
func ValidateTransition(current, requested Status) error {
	if current == requested {
		return nil
	}
	for _, allowed := range validTransitions[current] {
		if requested == allowed {
			return nil
		}
	}
	return &InvalidTransitionError{
		Current:   current,
		Requested: requested,
		Allowed:   AllowedNext(current),
	}
}
