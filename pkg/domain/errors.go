package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates the requested entity does not exist
var ErrNotFound = errors.New("not found")

// ValidationError rejects bad caller input synchronously, never retried
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RateLimitError is a defined outcome, not a failure: the caller should wait
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %ds", int(e.RetryAfter.Seconds()))
}

// TransientError wraps an external failure that may succeed on retry. The
// wrapped cause is for logs only; user-facing output gets the generic message.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient failure in %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// ConflictError indicates a lost compare-and-swap on shared per-user state
type ConflictError struct {
	Entity string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrent update conflict on %s", e.Entity)
}

// UserMessage maps any engine error to a message safe to show to the caller.
// Provider-internal error text must never leak through this boundary.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr.Error()
	}
	if errors.Is(err, ErrNotFound) {
		return "not found"
	}
	return "service temporarily unavailable, try again later"
}
