package services

import (
	"errors"
	"fmt"
)

// User-visible error kinds. Handlers branch on these with errors.Is/As; no
// repository or gateway error type crosses the service boundary raw.
var (
	// ErrEmptyCart rejects a checkout attempt against an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNotFound covers both genuinely missing records and records owned by
	// someone else, so existence is never leaked across users or sessions.
	ErrNotFound = errors.New("not found")

	// ErrSignatureMismatch marks a payment callback whose provider signature
	// failed verification. It is handled like a failed payment.
	ErrSignatureMismatch = errors.New("payment signature verification failed")
)

// GatewayError wraps a payment provider failure during checkout. The order
// has already been compensated to failed/cancelled by the time the caller
// sees it; the user is prompted to retry, the cart is not restored.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
