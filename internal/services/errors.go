package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service unwraps to exactly one of
// these, so callers can branch with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStore        = errors.New("store error")
)

// Error is a domain error with a client-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrInvalidTaskID     = newError(ErrValidation, "invalid task id")
	ErrInvalidBidID      = newError(ErrValidation, "invalid bid id")
	ErrInvalidAmount     = newError(ErrValidation, "amount must be a positive number")
	ErrInvalidBudget     = newError(ErrValidation, "budget must be a positive number")
	ErrInvalidDeadline   = newError(ErrValidation, "deadline must be a valid date")
	ErrBidderRequired    = newError(ErrValidation, "userEmail is required")
	ErrOwnerRequired     = newError(ErrValidation, "userEmail is required")
	ErrTaskNotFound      = newError(ErrNotFound, "task not found")
	ErrBidNotFound       = newError(ErrNotFound, "bid not found")
	ErrBidNotRecorded    = newError(ErrNotFound, "bid was not recorded on the task")
	ErrNotTaskOwner      = newError(ErrForbidden, "only the task owner can perform this action")
	ErrNotBidParticipant = newError(ErrForbidden, "only the bidder or the task owner can remove this bid")
	ErrMissingCredential = newError(ErrUnauthorized, "authorization token is required")
	ErrInvalidCredential = newError(ErrUnauthorized, "invalid or expired token")
)

func missingField(name string) error {
	return newError(ErrValidation, name+" is required")
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

// Message returns the client-facing message of a domain error, or fallback
// for anything else.
func Message(err error, fallback string) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return fallback
}
