package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrValidation           = errors.New("validation failed")
	ErrAmbiguousID          = errors.New("ambiguous subscription id")
	ErrNoSession            = errors.New("no active session")
	ErrCorruptRecord        = errors.New("corrupt subscription record")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
