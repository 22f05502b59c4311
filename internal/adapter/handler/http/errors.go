package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	domainErrors "github.com/growvest/wallet-service/internal/domain/errors"
)

// errorResponse is the error envelope returned by every endpoint. Code is a
// stable machine-readable identifier; message is for humans.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// settlementError maps domain errors to HTTP status and stable error codes.
func settlementError(c echo.Context, err error) error {
	var insufficientErr *domainErrors.InsufficientBalanceError
	switch {
	case errors.Is(err, domainErrors.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "invalid request", Code: "INVALID_INPUT",
		})
	case errors.Is(err, domainErrors.ErrInvalidCallback):
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "invalid gateway callback", Code: "INVALID_CALLBACK",
		})
	case errors.Is(err, domainErrors.ErrSignatureInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "signature verification failed", Code: "SIGNATURE_INVALID",
		})
	case errors.Is(err, domainErrors.ErrPaymentNotCompleted):
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "payment not completed", Code: "PAYMENT_NOT_COMPLETED",
		})
	case errors.Is(err, domainErrors.ErrMisconfiguredCredentials):
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "payment gateway is not configured", Code: "MISCONFIGURED_CREDENTIALS",
		})
	case errors.Is(err, domainErrors.ErrGatewayUnavailable):
		return c.JSON(http.StatusBadGateway, errorResponse{
			Error: "payment gateway unavailable", Code: "GATEWAY_UNAVAILABLE",
		})
	case errors.Is(err, domainErrors.ErrDuplicateOrder):
		return c.JSON(http.StatusConflict, errorResponse{
			Error: "order already exists", Code: "DUPLICATE_ORDER",
		})
	case errors.Is(err, domainErrors.ErrUnknownOrder):
		return c.JSON(http.StatusNotFound, errorResponse{
			Error: "unknown order", Code: "UNKNOWN_ORDER",
		})
	case errors.Is(err, domainErrors.ErrCaptureInProgress):
		return c.JSON(http.StatusConflict, errorResponse{
			Error: "capture already in progress", Code: "ALREADY_CAPTURED",
		})
	case errors.Is(err, domainErrors.ErrCreditFailed):
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "payment received but wallet credit failed", Code: "CREDIT_FAILED",
		})
	case errors.Is(err, domainErrors.ErrUnknownProduct):
		return c.JSON(http.StatusNotFound, errorResponse{
			Error: "unknown product", Code: "UNKNOWN_PRODUCT",
		})
	case errors.Is(err, domainErrors.ErrPurchaseLimitReached):
		return c.JSON(http.StatusConflict, errorResponse{
			Error: "product purchase limit reached", Code: "PURCHASE_LIMIT_REACHED",
		})
	case errors.As(err, &insufficientErr):
		return c.JSON(http.StatusPaymentRequired, errorResponse{
			Error: insufficientErr.Error(), Code: "INSUFFICIENT_BALANCE",
		})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "internal server error", Code: "INTERNAL_ERROR",
		})
	}
}
