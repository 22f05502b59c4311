package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/growvest/wallet-service/internal/middleware/auth"
	"github.com/growvest/wallet-service/internal/usecase"
)

// ReferralHandler handles referral summary requests
type ReferralHandler struct {
	logger          *zap.Logger
	referralService *usecase.ReferralService
}

// NewReferralHandler creates a new referral handler instance
func NewReferralHandler(logger *zap.Logger, referralService *usecase.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		logger:          logger,
		referralService: referralService,
	}
}

// GetReferrals handles GET /api/v1/referrals
func (h *ReferralHandler) GetReferrals(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	summary, err := h.referralService.GetSummary(c.Request().Context(), user.UserID)
	if err != nil {
		h.logger.Error("Failed to get referral summary",
			zap.String("user_id", user.UserID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "failed to retrieve referral summary", Code: "INTERNAL_ERROR",
		})
	}

	return c.JSON(http.StatusOK, summary)
}
