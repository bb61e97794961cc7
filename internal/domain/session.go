package domain

import (
	"strings"
	"time"
)

// Session identifies the user whose record set an operation targets.
type Session struct {
	UserID    UserID
	StartedAt time.Time
}

func NewSession(user string, now time.Time) (Session, error) {
	trimmed := strings.TrimSpace(user)
	if trimmed == "" {
		return Session{}, &ValidationError{Field: "user", Reason: "user is required"}
	}

	return Session{UserID: UserID(trimmed), StartedAt: now}, nil
}

func (s Session) Valid() bool {
	return strings.TrimSpace(string(s.UserID)) != ""
}
