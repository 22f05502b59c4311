package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/growvest/wallet-service/internal/domain/errors"
	"github.com/growvest/wallet-service/internal/middleware/auth"
	"github.com/growvest/wallet-service/internal/usecase"
)

// InvestmentHandler handles the product catalog and investment purchases
type InvestmentHandler struct {
	logger            *zap.Logger
	investmentService *usecase.InvestmentService
}

// NewInvestmentHandler creates a new investment handler instance
func NewInvestmentHandler(logger *zap.Logger, investmentService *usecase.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		logger:            logger,
		investmentService: investmentService,
	}
}

// GetProducts handles GET /api/v1/products
func (h *InvestmentHandler) GetProducts(c echo.Context) error {
	products, err := h.investmentService.ListProducts(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "failed to retrieve products", Code: "INTERNAL_ERROR",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
	})
}

type PurchaseRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
}

// Purchase handles POST /api/v1/investments
func (h *InvestmentHandler) Purchase(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "invalid request body", Code: "INVALID_INPUT",
		})
	}
	if err := c.Validate(&req); err != nil {
		return settlementError(c, domainErrors.ErrInvalidInput)
	}

	investment, err := h.investmentService.Purchase(c.Request().Context(), user.UserID, req.ProductCode)
	if err != nil {
		return settlementError(c, err)
	}

	return c.JSON(http.StatusCreated, investment)
}

// GetInvestments handles GET /api/v1/investments
func (h *InvestmentHandler) GetInvestments(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	investments, err := h.investmentService.GetInvestments(c.Request().Context(), user.UserID)
	if err != nil {
		h.logger.Error("Failed to get investments",
			zap.String("user_id", user.UserID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "failed to retrieve investments", Code: "INTERNAL_ERROR",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"investments": investments,
	})
}
