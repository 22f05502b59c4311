package gateway

import (
	"context"
)

// Gateway names
const (
	NameRazorpay = "razorpay"
	NamePayPal   = "paypal"
)

// CreateOrderRequest is a gateway-agnostic remote order creation request.
// Amount is in integer minor units; adapters never do float arithmetic.
type CreateOrderRequest struct {
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
}

// RemoteOrder is the gateway's view of a created order. The gateway-assigned
// OrderID is the idempotence key for the whole settlement flow; the receipt
// only aids reconciliation.
type RemoteOrder struct {
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// CaptureStatus is the remote settlement status reported by a
// server-to-server capture.
type CaptureStatus string

const (
	CaptureStatusCompleted CaptureStatus = "completed"
	CaptureStatusPending   CaptureStatus = "pending"
	CaptureStatusDeclined  CaptureStatus = "declined"
)

// CaptureResult is the outcome of a trusted server-to-server capture call.
// AmountCents is the gateway-reported captured amount; it is compared
// against the recorded order amount but never used for crediting.
type CaptureResult struct {
	OrderID     string        `json:"order_id"`
	PaymentID   string        `json:"payment_id"`
	Status      CaptureStatus `json:"status"`
	AmountCents int64         `json:"amount_cents"`
}

// Gateway is the minimal contract every payment gateway adapter satisfies.
type Gateway interface {
	// Name returns the gateway name used on stored orders.
	Name() string

	// CreateRemoteOrder creates an order with the remote gateway. Fails
	// with errors.ErrMisconfiguredCredentials when keys are missing and
	// errors wrapping ErrGatewayUnavailable on remote failure.
	CreateRemoteOrder(ctx context.Context, req *CreateOrderRequest) (*RemoteOrder, error)
}

// SignatureGateway is the redirect/checkout variant: the gateway calls back
// through the client with a keyed signature over the order and payment ids.
type SignatureGateway interface {
	Gateway

	// VerifySignature checks a client-forwarded callback signature.
	VerifySignature(orderID, paymentID, signature string) bool

	// CheckoutKeyID returns the public key id the client embeds in the
	// checkout widget.
	CheckoutKeyID() string
}

// CaptureGateway is the trusted-capture variant: the server captures the
// order directly with the gateway, so the response needs no signature.
type CaptureGateway interface {
	Gateway

	// Capture performs the server-to-server capture call.
	Capture(ctx context.Context, orderID string) (*CaptureResult, error)
}
