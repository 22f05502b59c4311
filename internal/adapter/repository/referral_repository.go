package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/growvest/wallet-service/internal/domain/model"
	domainRepo "github.com/growvest/wallet-service/internal/domain/repository"
)

// referralRepository implements the ReferralRepository interface
type referralRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewReferralRepository creates a new referral repository instance
func NewReferralRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ReferralRepository {
	return &referralRepository{db: db, logger: logger}
}

// GetReferrerChain walks referral edges upward from userID, closest
// referrer first. The walk stops at maxLevels, at a missing edge, or on a
// cycle.
func (r *referralRepository) GetReferrerChain(ctx context.Context, userID uuid.UUID, maxLevels int) ([]uuid.UUID, error) {
	chain := make([]uuid.UUID, 0, maxLevels)
	seen := map[uuid.UUID]bool{userID: true}
	current := userID

	for level := 0; level < maxLevels; level++ {
		var edge model.Referral
		err := r.db.WithContext(ctx).
			Where("user_id = ?", current).
			First(&edge).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			r.logger.Error("Failed to walk referral chain",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			return nil, fmt.Errorf("failed to walk referral chain: %w", err)
		}

		if seen[edge.ReferrerID] {
			r.logger.Warn("Referral cycle detected",
				zap.String("user_id", userID.String()),
				zap.String("referrer_id", edge.ReferrerID.String()))
			break
		}

		chain = append(chain, edge.ReferrerID)
		seen[edge.ReferrerID] = true
		current = edge.ReferrerID
	}

	return chain, nil
}

// GetLevels returns the commission schedule ordered by level
func (r *referralRepository) GetLevels(ctx context.Context) ([]*model.ReferralLevel, error) {
	var levels []*model.ReferralLevel

	err := r.db.WithContext(ctx).
		Order("level ASC").
		Find(&levels).Error

	if err != nil {
		r.logger.Error("Failed to get referral levels", zap.Error(err))
		return nil, fmt.Errorf("failed to get referral levels: %w", err)
	}

	return levels, nil
}

// CountDirectReferrals counts users referred directly by userID
func (r *referralRepository) CountDirectReferrals(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.Referral{}).
		Where("referrer_id = ?", userID).
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count referrals: %w", err)
	}

	return count, nil
}
