package domain

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusActive, StatusPaused, StatusCancelled}

func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusActive, StatusPaused, StatusCancelled:
		return s, nil
	default:
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unsupported status %q", raw)}
	}
}

// TransitionTo returns the next status. Every transition is allowed,
// including reactivation of a cancelled subscription and self-transitions.
func (s Status) TransitionTo(next Status) Status {
	return next
}

func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusPaused:
		return "Paused"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}
