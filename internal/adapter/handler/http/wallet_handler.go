package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/growvest/wallet-service/internal/domain/money"
	"github.com/growvest/wallet-service/internal/middleware/auth"
	"github.com/growvest/wallet-service/internal/usecase"
)

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	logger        *zap.Logger
	walletService *usecase.WalletService
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(logger *zap.Logger, walletService *usecase.WalletService) *WalletHandler {
	return &WalletHandler{
		logger:        logger,
		walletService: walletService,
	}
}

// GetWallet handles GET /api/v1/wallet
func (h *WalletHandler) GetWallet(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	balance, err := h.walletService.GetBalance(c.Request().Context(), user.UserID)
	if err != nil {
		h.logger.Error("Failed to get wallet balance",
			zap.String("user_id", user.UserID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "failed to retrieve wallet balance", Code: "INTERNAL_ERROR",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"balance_cents": balance.BalanceCents,
		"balance":       money.FromCents(balance.BalanceCents).StringFixed(2),
	})
}

// GetTransactions handles GET /api/v1/wallet/transactions
func (h *WalletHandler) GetTransactions(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, errorResponse{
				Error: "invalid limit parameter", Code: "INVALID_INPUT",
			})
		}
		limit = parsed
	}

	offset := 0
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{
				Error: "invalid offset parameter", Code: "INVALID_INPUT",
			})
		}
		offset = parsed
	}

	transactions, err := h.walletService.GetTransactionHistory(c.Request().Context(), user.UserID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get transaction history",
			zap.String("user_id", user.UserID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "failed to retrieve transaction history", Code: "INTERNAL_ERROR",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"transactions": transactions,
	})
}
