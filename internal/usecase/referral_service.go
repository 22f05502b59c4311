package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/growvest/wallet-service/internal/domain/model"
	"github.com/growvest/wallet-service/internal/domain/repository"
)

// ReferralService pays out referral commissions on settled deposits and
// serves the referral summary API.
type ReferralService struct {
	referralRepo repository.ReferralRepository
	walletRepo   repository.WalletRepository
	logger       *zap.Logger
}

// NewReferralService creates a new referral service instance
func NewReferralService(
	referralRepo repository.ReferralRepository,
	walletRepo repository.WalletRepository,
	logger *zap.Logger,
) *ReferralService {
	return &ReferralService{
		referralRepo: referralRepo,
		walletRepo:   walletRepo,
		logger:       logger,
	}
}

// OnDepositSettled credits each referrer in the chain their level's
// commission percentage of the deposit, rounded down to whole cents. The
// settlement flow guarantees this runs at most once per order, so the
// order id doubles as the commission reference.
func (s *ReferralService) OnDepositSettled(ctx context.Context, order *model.PaymentOrder) {
	levels, err := s.referralRepo.GetLevels(ctx)
	if err != nil {
		s.logger.Error("Failed to load referral levels",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
		return
	}
	if len(levels) == 0 {
		return
	}

	chain, err := s.referralRepo.GetReferrerChain(ctx, order.UserID, len(levels))
	if err != nil {
		s.logger.Error("Failed to load referrer chain",
			zap.String("order_id", order.OrderID),
			zap.String("user_id", order.UserID.String()),
			zap.Error(err))
		return
	}

	for i, referrerID := range chain {
		level := levels[i]
		commission := order.AmountCents * int64(level.CommissionPercent) / 100
		if commission <= 0 {
			continue
		}

		description := fmt.Sprintf("Level %d referral commission on deposit %s", level.Level, order.OrderID)
		reference := fmt.Sprintf("%s:l%d", order.OrderID, level.Level)

		if _, err := s.walletRepo.Credit(ctx, referrerID, commission,
			model.TransactionTypeReferralCommission, description, reference); err != nil {
			s.logger.Error("Failed to credit referral commission",
				zap.String("order_id", order.OrderID),
				zap.String("referrer_id", referrerID.String()),
				zap.Int("level", level.Level),
				zap.Int64("commission_cents", commission),
				zap.Error(err))
			continue
		}

		s.logger.Info("Referral commission credited",
			zap.String("order_id", order.OrderID),
			zap.String("referrer_id", referrerID.String()),
			zap.Int("level", level.Level),
			zap.Int64("commission_cents", commission))
	}
}

// ReferralSummary is the referral overview returned to the API.
type ReferralSummary struct {
	DirectReferrals int64                  `json:"direct_referrals"`
	Levels          []*model.ReferralLevel `json:"levels"`
}

// GetSummary returns the user's referral overview.
func (s *ReferralService) GetSummary(ctx context.Context, userID uuid.UUID) (*ReferralSummary, error) {
	levels, err := s.referralRepo.GetLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get referral levels: %w", err)
	}

	count, err := s.referralRepo.CountDirectReferrals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count referrals: %w", err)
	}

	return &ReferralSummary{
		DirectReferrals: count,
		Levels:          levels,
	}, nil
}
