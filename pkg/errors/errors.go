package errors

import "fmt"

// ErrNotFound indicates a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates missing or invalid credentials
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrValidation indicates a rejected request payload; recoverable,
// no state change has happened
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrInvalidStateTransition indicates an illegal status transition
type ErrInvalidStateTransition struct {
	From fmt.Stringer
	To   fmt.Stringer
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrPersistence indicates a store write or read failed; the caller may retry
type ErrPersistence struct {
	Op  string
	Err error
}

func (e *ErrPersistence) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *ErrPersistence) Unwrap() error {
	return e.Err
}

// ErrPayment indicates the gateway did not capture the payment.
// Declined distinguishes a gateway decline from a transport failure,
// when the adapter exposes that difference.
type ErrPayment struct {
	Reason   string
	Declined bool
	Err      error
}

func (e *ErrPayment) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("payment failed: %s", e.Reason)
	}
	return "payment failed"
}

func (e *ErrPayment) Unwrap() error {
	return e.Err
}

// ErrInvariant indicates a broken internal invariant; fatal to the attempt
type ErrInvariant struct {
	Message string
}

func (e *ErrInvariant) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Message)
}
