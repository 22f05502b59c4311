package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/growvest/wallet-service/internal/domain/errors"
	"github.com/growvest/wallet-service/internal/domain/gateway"
	"github.com/growvest/wallet-service/internal/domain/model"
	"github.com/growvest/wallet-service/internal/domain/repository"
)

const (
	// How long a capture racing an in-flight capture of the same order
	// waits for the winner's outcome before giving up.
	captureWaitInterval = 25 * time.Millisecond
	captureWaitAttempts = 80
)

// GatewayResolver returns gateway adapters by name.
type GatewayResolver interface {
	GetGateway(name string) (gateway.Gateway, error)
}

// DepositListener is notified after a deposit has been settled and
// credited. Listener failures must not un-settle the order; listeners log
// and swallow their own errors.
type DepositListener interface {
	OnDepositSettled(ctx context.Context, order *model.PaymentOrder)
}

// SettlementResult is returned to the caller after a capture attempt.
type SettlementResult struct {
	Order           *model.PaymentOrder
	BalanceCents    int64
	AlreadyCaptured bool
}

// SettlementService coordinates the payment settlement state machine:
// order creation, callback verification, and the exactly-once wallet
// credit.
type SettlementService struct {
	orderRepo  repository.OrderRepository
	walletRepo repository.WalletRepository
	gateways   GatewayResolver
	listeners  []DepositListener
	currency   string
	logger     *zap.Logger
}

// NewSettlementService creates a new settlement service instance
func NewSettlementService(
	orderRepo repository.OrderRepository,
	walletRepo repository.WalletRepository,
	gateways GatewayResolver,
	currency string,
	logger *zap.Logger,
) *SettlementService {
	if currency == "" {
		currency = "USD"
	}
	return &SettlementService{
		orderRepo:  orderRepo,
		walletRepo: walletRepo,
		gateways:   gateways,
		currency:   currency,
		logger:     logger,
	}
}

// AddListener registers a post-settlement listener.
func (s *SettlementService) AddListener(l DepositListener) {
	s.listeners = append(s.listeners, l)
}

// CreateOrder validates the request, creates a remote order with the
// gateway, and registers it. The registered amount is the only amount that
// will ever be credited for this order.
func (s *SettlementService) CreateOrder(ctx context.Context, userID uuid.UUID, amountCents int64, gatewayName string) (*model.PaymentOrder, error) {
	if amountCents <= 0 || userID == uuid.Nil {
		return nil, domainErrors.ErrInvalidInput
	}
	if gatewayName != gateway.NameRazorpay && gatewayName != gateway.NamePayPal {
		return nil, domainErrors.ErrInvalidInput
	}

	gw, err := s.gateways.GetGateway(gatewayName)
	if err != nil {
		s.logger.Error("Gateway not available",
			zap.String("gateway", gatewayName),
			zap.Error(err))
		return nil, domainErrors.ErrMisconfiguredCredentials
	}

	receipt := fmt.Sprintf("receipt_user_%s_%d", userID.String(), time.Now().UnixMilli())

	remote, err := gw.CreateRemoteOrder(ctx, &gateway.CreateOrderRequest{
		UserID:      userID.String(),
		AmountCents: amountCents,
		Currency:    s.currency,
		Receipt:     receipt,
	})
	if err != nil {
		s.logger.Error("Remote order creation failed",
			zap.String("gateway", gatewayName),
			zap.String("user_id", userID.String()),
			zap.Int64("amount_cents", amountCents),
			zap.Error(err))
		return nil, err
	}

	order := &model.PaymentOrder{
		OrderID:     remote.OrderID,
		UserID:      userID,
		Gateway:     gatewayName,
		AmountCents: amountCents,
		Currency:    s.currency,
		Receipt:     receipt,
		Status:      model.OrderStatusCreated,
	}

	if err := s.orderRepo.RecordCreated(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Payment order created",
		zap.String("order_id", order.OrderID),
		zap.String("gateway", gatewayName),
		zap.String("user_id", userID.String()),
		zap.Int64("amount_cents", amountCents))

	return order, nil
}

// SignatureCallback is the client-forwarded checkout callback of the
// signature-verification gateway variant.
type SignatureCallback struct {
	OrderID   string
	PaymentID string
	Signature string
}

// CaptureWithSignature settles an order of the signature variant. The
// callback signature is verified server-side and the wallet is credited
// with the amount recorded at creation time; callback data never
// influences the credited amount.
func (s *SettlementService) CaptureWithSignature(ctx context.Context, cb SignatureCallback) (*SettlementResult, error) {
	if cb.OrderID == "" || cb.PaymentID == "" || cb.Signature == "" {
		return nil, domainErrors.ErrInvalidCallback
	}

	token, prior, err := s.beginCapture(ctx, cb.OrderID)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		return s.replayOutcome(ctx, prior, domainErrors.ErrSignatureInvalid)
	}

	order := token.Order
	if order.Gateway != gateway.NameRazorpay {
		s.releaseQuietly(ctx, token)
		return nil, domainErrors.ErrInvalidCallback
	}

	gw, err := s.gateways.GetGateway(order.Gateway)
	if err != nil {
		s.releaseQuietly(ctx, token)
		return nil, domainErrors.ErrMisconfiguredCredentials
	}
	sigGateway, ok := gw.(gateway.SignatureGateway)
	if !ok {
		s.releaseQuietly(ctx, token)
		return nil, domainErrors.ErrMisconfiguredCredentials
	}

	if !sigGateway.VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature) {
		s.logger.Warn("Callback signature rejected",
			zap.String("order_id", cb.OrderID),
			zap.String("payment_id", cb.PaymentID))
		s.finalize(ctx, token, model.OrderStatusVerificationFailed, cb.PaymentID)
		return nil, domainErrors.ErrSignatureInvalid
	}

	return s.credit(ctx, token, cb.PaymentID)
}

// TrustedCallback is the callback of the trusted-capture gateway variant.
type TrustedCallback struct {
	OrderID string
}

// CaptureTrusted settles an order of the trusted-capture variant by
// capturing it server-to-server with the gateway.
func (s *SettlementService) CaptureTrusted(ctx context.Context, cb TrustedCallback) (*SettlementResult, error) {
	if cb.OrderID == "" {
		return nil, domainErrors.ErrInvalidCallback
	}

	token, prior, err := s.beginCapture(ctx, cb.OrderID)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		return s.replayOutcome(ctx, prior, domainErrors.ErrPaymentNotCompleted)
	}

	order := token.Order
	if order.Gateway != gateway.NamePayPal {
		s.releaseQuietly(ctx, token)
		return nil, domainErrors.ErrInvalidCallback
	}

	gw, err := s.gateways.GetGateway(order.Gateway)
	if err != nil {
		s.releaseQuietly(ctx, token)
		return nil, domainErrors.ErrMisconfiguredCredentials
	}
	capGateway, ok := gw.(gateway.CaptureGateway)
	if !ok {
		s.releaseQuietly(ctx, token)
		return nil, domainErrors.ErrMisconfiguredCredentials
	}

	result, err := capGateway.Capture(ctx, cb.OrderID)
	if err != nil {
		// Nothing was settled; release the lease so a retry can capture.
		s.releaseQuietly(ctx, token)
		s.logger.Error("Server-to-server capture failed",
			zap.String("order_id", cb.OrderID),
			zap.Error(err))
		return nil, err
	}

	if result.Status != gateway.CaptureStatusCompleted {
		s.logger.Warn("Remote capture not completed",
			zap.String("order_id", cb.OrderID),
			zap.String("status", string(result.Status)))
		s.finalize(ctx, token, model.OrderStatusVerificationFailed, result.PaymentID)
		return nil, domainErrors.ErrPaymentNotCompleted
	}

	// The gateway-reported amount is informational only; the credit below
	// always uses the amount recorded at creation time.
	if result.AmountCents != 0 && result.AmountCents != order.AmountCents {
		s.logger.Warn("Captured amount differs from recorded amount",
			zap.String("order_id", cb.OrderID),
			zap.Int64("recorded_cents", order.AmountCents),
			zap.Int64("reported_cents", result.AmountCents))
	}

	return s.credit(ctx, token, result.PaymentID)
}

// beginCapture acquires the capture lease. When another capture is in
// flight it waits briefly for the winner's terminal outcome, so a client
// retry racing a webhook reports the same result instead of an error.
// Exactly one of token and prior is non-nil on success.
func (s *SettlementService) beginCapture(ctx context.Context, orderID string) (*repository.CaptureToken, *model.PaymentOrder, error) {
	token, err := s.orderRepo.TryBeginCapture(ctx, orderID)
	if err == nil {
		return token, nil, nil
	}

	var finalized *domainErrors.AlreadyFinalizedError
	if errors.As(err, &finalized) {
		order, getErr := s.orderRepo.GetByOrderID(ctx, orderID)
		if getErr != nil {
			return nil, nil, getErr
		}
		return nil, order, nil
	}

	if !errors.Is(err, domainErrors.ErrCaptureInProgress) {
		return nil, nil, err
	}

	for attempt := 0; attempt < captureWaitAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(captureWaitInterval):
		}

		order, getErr := s.orderRepo.GetByOrderID(ctx, orderID)
		if getErr != nil {
			return nil, nil, getErr
		}
		if order.Status.IsTerminal() {
			return nil, order, nil
		}
		if order.Status == model.OrderStatusCreated {
			// The in-flight capture released its lease; try to claim it.
			token, err = s.orderRepo.TryBeginCapture(ctx, orderID)
			if err == nil {
				return token, nil, nil
			}
			if !errors.Is(err, domainErrors.ErrCaptureInProgress) {
				var fin *domainErrors.AlreadyFinalizedError
				if errors.As(err, &fin) {
					continue
				}
				return nil, nil, err
			}
		}
	}

	return nil, nil, domainErrors.ErrCaptureInProgress
}

// replayOutcome maps an already-finalized order back to the caller-visible
// outcome of the original capture. A retried callback after a successful
// settlement is reported as success, never as a failure and never as a
// second credit.
func (s *SettlementService) replayOutcome(ctx context.Context, order *model.PaymentOrder, verificationErr error) (*SettlementResult, error) {
	switch order.Status {
	case model.OrderStatusCaptured:
		balance, err := s.walletRepo.GetBalance(ctx, order.UserID)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Capture replayed idempotently",
			zap.String("order_id", order.OrderID))
		return &SettlementResult{
			Order:           order,
			BalanceCents:    balance.BalanceCents,
			AlreadyCaptured: true,
		}, nil
	case model.OrderStatusVerificationFailed:
		return nil, verificationErr
	case model.OrderStatusCreditFailed:
		return nil, domainErrors.ErrCreditFailed
	default:
		return nil, domainErrors.ErrCaptureInProgress
	}
}

// credit performs the exactly-once wallet credit and finalizes the order.
func (s *SettlementService) credit(ctx context.Context, token *repository.CaptureToken, paymentID string) (*SettlementResult, error) {
	order := token.Order

	description := fmt.Sprintf("Deposit via %s", order.Gateway)
	balance, err := s.walletRepo.Credit(ctx, order.UserID, order.AmountCents,
		model.TransactionTypeDeposit, description, order.OrderID)
	if err != nil {
		// Money was received but not credited. Record the state so
		// reconciliation can find it; never swallow.
		s.logger.Error("Wallet credit failed after verified payment",
			zap.String("order_id", order.OrderID),
			zap.String("user_id", order.UserID.String()),
			zap.Int64("amount_cents", order.AmountCents),
			zap.Error(err))
		s.finalize(ctx, token, model.OrderStatusCreditFailed, paymentID)
		return nil, domainErrors.ErrCreditFailed
	}

	if err := s.orderRepo.FinalizeCapture(ctx, token, model.OrderStatusCaptured, paymentID); err != nil {
		// The credit is durable; the order record is behind. Log loudly
		// and report success to the caller.
		s.logger.Error("Failed to finalize captured order",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}
	order.Status = model.OrderStatusCaptured

	s.logger.Info("Deposit settled",
		zap.String("order_id", order.OrderID),
		zap.String("payment_id", paymentID),
		zap.String("user_id", order.UserID.String()),
		zap.Int64("amount_cents", order.AmountCents),
		zap.Int64("balance_after", balance.BalanceCents))

	for _, l := range s.listeners {
		l.OnDepositSettled(ctx, order)
	}

	return &SettlementResult{
		Order:        order,
		BalanceCents: balance.BalanceCents,
	}, nil
}

func (s *SettlementService) finalize(ctx context.Context, token *repository.CaptureToken, status model.OrderStatus, paymentID string) {
	if err := s.orderRepo.FinalizeCapture(ctx, token, status, paymentID); err != nil {
		s.logger.Error("Failed to finalize capture",
			zap.String("order_id", token.Order.OrderID),
			zap.String("status", string(status)),
			zap.Error(err))
	}
}

func (s *SettlementService) releaseQuietly(ctx context.Context, token *repository.CaptureToken) {
	if err := s.orderRepo.ReleaseCapture(ctx, token); err != nil {
		s.logger.Error("Failed to release capture lease",
			zap.String("order_id", token.Order.OrderID),
			zap.Error(err))
	}
}
