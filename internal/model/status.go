package model

import "fmt"

const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Work items are consumed exactly once, so terminal states have no exits.
var allowedTransitions = map[string]map[string]bool{
	"": {
		StatusPending: true,
	},
	StatusPending: {
		StatusRunning: true,
		StatusFailed:  true,
	},
	StatusRunning: {
		StatusCompleted: true,
		StatusFailed:    true,
	},
	StatusCompleted: {},
	StatusFailed:    {},
}

func IsKnownStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

func CanTransition(from, to string) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

func TransitionItemStatus(item *WorkItem, toStatus string, reason string) error {
	from := item.Status
	if !CanTransition(from, toStatus) {
		return fmt.Errorf("invalid item status transition: %q -> %q (index=%d input=%s)", from, toStatus, item.Index, item.Input)
	}
	item.Status = toStatus
	item.Reason = reason
	return nil
}
