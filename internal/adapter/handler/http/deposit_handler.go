package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/growvest/wallet-service/internal/domain/errors"
	"github.com/growvest/wallet-service/internal/domain/gateway"
	"github.com/growvest/wallet-service/internal/domain/money"
	"github.com/growvest/wallet-service/internal/middleware/auth"
	"github.com/growvest/wallet-service/internal/usecase"
)

// DepositHandler handles deposit order creation and gateway callbacks
type DepositHandler struct {
	logger     *zap.Logger
	settlement *usecase.SettlementService
	gateways   usecase.GatewayResolver
}

// NewDepositHandler creates a new deposit handler instance
func NewDepositHandler(
	logger *zap.Logger,
	settlement *usecase.SettlementService,
	gateways usecase.GatewayResolver,
) *DepositHandler {
	return &DepositHandler{
		logger:     logger,
		settlement: settlement,
		gateways:   gateways,
	}
}

type CreateDepositRequest struct {
	Amount  string `json:"amount" validate:"required"`
	Gateway string `json:"gateway" validate:"required,oneof=razorpay paypal"`
}

type CreateDepositResponse struct {
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Gateway     string `json:"gateway"`
	KeyID       string `json:"key_id,omitempty"`
}

// CreateDeposit handles POST /api/v1/deposits. The amount is a decimal
// string; it is converted to minor units exactly once, here.
func (h *DepositHandler) CreateDeposit(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req CreateDepositRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "invalid request body", Code: "INVALID_INPUT",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: err.Error(), Code: "INVALID_INPUT",
		})
	}

	amountCents, err := money.ParseCents(req.Amount)
	if err != nil {
		h.logger.Warn("Rejected deposit amount",
			zap.String("amount", req.Amount),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "amount must be a decimal with at most two fraction digits", Code: "INVALID_INPUT",
		})
	}

	order, err := h.settlement.CreateOrder(c.Request().Context(), user.UserID, amountCents, req.Gateway)
	if err != nil {
		return settlementError(c, err)
	}

	resp := CreateDepositResponse{
		OrderID:     order.OrderID,
		AmountCents: order.AmountCents,
		Currency:    order.Currency,
		Gateway:     order.Gateway,
	}

	// The signature variant's checkout widget needs the public key id.
	if gw, err := h.gateways.GetGateway(order.Gateway); err == nil {
		if sigGateway, ok := gw.(gateway.SignatureGateway); ok {
			resp.KeyID = sigGateway.CheckoutKeyID()
		}
	}

	return c.JSON(http.StatusCreated, resp)
}

type VerifyDepositRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type CaptureDepositRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type SettlementResponse struct {
	Success         bool   `json:"success"`
	OrderID         string `json:"order_id"`
	BalanceCents    int64  `json:"balance_cents"`
	AlreadyCaptured bool   `json:"already_captured,omitempty"`
}

// VerifyRazorpayDeposit handles POST /api/v1/deposits/razorpay/verify, the
// client-forwarded checkout callback.
func (h *DepositHandler) VerifyRazorpayDeposit(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	var req VerifyDepositRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "invalid request body", Code: "INVALID_CALLBACK",
		})
	}
	if err := c.Validate(&req); err != nil {
		return settlementError(c, domainErrors.ErrInvalidCallback)
	}

	result, err := h.settlement.CaptureWithSignature(c.Request().Context(), usecase.SignatureCallback{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		return settlementError(c, err)
	}

	return c.JSON(http.StatusOK, SettlementResponse{
		Success:         true,
		OrderID:         result.Order.OrderID,
		BalanceCents:    result.BalanceCents,
		AlreadyCaptured: result.AlreadyCaptured,
	})
}

// CapturePayPalDeposit handles POST /api/v1/deposits/paypal/capture, the
// trusted server-to-server capture.
func (h *DepositHandler) CapturePayPalDeposit(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	var req CaptureDepositRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "invalid request body", Code: "INVALID_CALLBACK",
		})
	}
	if err := c.Validate(&req); err != nil {
		return settlementError(c, domainErrors.ErrInvalidCallback)
	}

	result, err := h.settlement.CaptureTrusted(c.Request().Context(), usecase.TrustedCallback{
		OrderID: req.OrderID,
	})
	if err != nil {
		return settlementError(c, err)
	}

	return c.JSON(http.StatusOK, SettlementResponse{
		Success:         true,
		OrderID:         result.Order.OrderID,
		BalanceCents:    result.BalanceCents,
		AlreadyCaptured: result.AlreadyCaptured,
	})
}
