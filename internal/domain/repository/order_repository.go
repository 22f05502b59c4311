package repository

import (
	"context"

	"github.com/growvest/wallet-service/internal/domain/model"
)

// CaptureToken proves that its holder won the capture lease for an order.
// Exactly one token is handed out per order; the settlement outcome must be
// finalized (or the lease released) with it.
type CaptureToken struct {
	Order *model.PaymentOrder
}

// OrderRepository is the registry of payment orders. It provides the
// atomic test-and-set that makes capture exactly-once under concurrent
// callbacks, using conditional updates rather than in-process locks so it
// holds across independent workers.
type OrderRepository interface {
	// RecordCreated stores a freshly created gateway order. Returns
	// errors.ErrDuplicateOrder if the order id is already registered.
	RecordCreated(ctx context.Context, order *model.PaymentOrder) error

	// GetByOrderID fetches an order by its gateway-assigned id. Returns
	// errors.ErrUnknownOrder when no such order exists.
	GetByOrderID(ctx context.Context, orderID string) (*model.PaymentOrder, error)

	// TryBeginCapture atomically moves the order from created to
	// capturing. Exactly one caller obtains the token; concurrent callers
	// receive errors.ErrCaptureInProgress and callers arriving after
	// finalization receive *errors.AlreadyFinalizedError carrying the
	// terminal status.
	TryBeginCapture(ctx context.Context, orderID string) (*CaptureToken, error)

	// FinalizeCapture transitions the order held by token into a terminal
	// status. paymentID, when non-empty, records the gateway payment id.
	FinalizeCapture(ctx context.Context, token *CaptureToken, status model.OrderStatus, paymentID string) error

	// ReleaseCapture returns the order to created so a later callback can
	// retry. Used only when the remote capture call failed in transit and
	// nothing was settled.
	ReleaseCapture(ctx context.Context, token *CaptureToken) error
}
