package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the settlement flow. Handlers map these to stable
// error codes in API responses.
var (
	// ErrInvalidInput is returned when an order request carries a
	// non-positive amount or an empty user id.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMisconfiguredCredentials is returned when gateway keys are
	// missing from the service configuration.
	ErrMisconfiguredCredentials = errors.New("payment gateway credentials are not configured")

	// ErrGatewayUnavailable is returned when the remote gateway cannot be
	// reached or responds with a server error.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrInvalidCallback is returned when a gateway callback payload is
	// structurally invalid. No order state is changed.
	ErrInvalidCallback = errors.New("invalid gateway callback")

	// ErrSignatureInvalid is returned when the callback signature does not
	// match the expected HMAC digest.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrPaymentNotCompleted is returned when the gateway reports a
	// non-final status during a trusted server-to-server capture.
	ErrPaymentNotCompleted = errors.New("payment not completed")

	// ErrDuplicateOrder is returned when the gateway hands out an order id
	// that is already registered.
	ErrDuplicateOrder = errors.New("duplicate order id")

	// ErrUnknownOrder is returned when a callback references an order that
	// was never created.
	ErrUnknownOrder = errors.New("unknown order")

	// ErrCaptureInProgress is returned when another capture of the same
	// order is currently holding the capture lease.
	ErrCaptureInProgress = errors.New("capture already in progress")

	// ErrCreditFailed is returned when the payment was verified but the
	// wallet credit could not be written. The order is left in a
	// credit_failed state for out-of-band reconciliation; money was
	// received and must never be silently dropped.
	ErrCreditFailed = errors.New("wallet credit failed")
)

// AlreadyFinalizedError is returned by the order registry when a capture is
// attempted on an order that already reached a terminal status.
type AlreadyFinalizedError struct {
	OrderID string
	Status  string
}

func (e *AlreadyFinalizedError) Error() string {
	return fmt.Sprintf("order %s already finalized with status %s", e.OrderID, e.Status)
}

// GatewayError carries the error detail returned by a remote payment
// gateway API.
type GatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *GatewayError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return ErrGatewayUnavailable
}

// InsufficientBalanceError is returned when a wallet debit exceeds the
// available balance.
type InsufficientBalanceError struct {
	RequestedCents int64
	AvailableCents int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient wallet balance: requested %d, available %d", e.RequestedCents, e.AvailableCents)
}

// NewInsufficientBalanceError creates a new InsufficientBalanceError
func NewInsufficientBalanceError(requested, available int64) *InsufficientBalanceError {
	return &InsufficientBalanceError{
		RequestedCents: requested,
		AvailableCents: available,
	}
}
