package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/growvest/wallet-service/internal/domain/model"
)

// ReferralRepository stores referral edges and the commission schedule.
type ReferralRepository interface {
	// GetReferrerChain walks the referral edges upward from userID,
	// returning at most maxLevels referrer ids, closest first.
	GetReferrerChain(ctx context.Context, userID uuid.UUID, maxLevels int) ([]uuid.UUID, error)

	// GetLevels returns the commission schedule ordered by level.
	GetLevels(ctx context.Context) ([]*model.ReferralLevel, error)

	// CountDirectReferrals returns how many users name userID as their
	// referrer.
	CountDirectReferrals(ctx context.Context, userID uuid.UUID) (int64, error)
}
