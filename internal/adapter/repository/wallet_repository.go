package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainErrors "github.com/growvest/wallet-service/internal/domain/errors"
	"github.com/growvest/wallet-service/internal/domain/model"
	domainRepo "github.com/growvest/wallet-service/internal/domain/repository"
)

// walletRepository implements the WalletRepository interface
type walletRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewWalletRepository creates a new wallet repository instance
func NewWalletRepository(db *gorm.DB, logger *zap.Logger) domainRepo.WalletRepository {
	return &walletRepository{
		db:     db,
		logger: logger,
	}
}

// GetBalance retrieves the current wallet balance for a user
func (r *walletRepository) GetBalance(ctx context.Context, userID uuid.UUID) (*model.WalletBalance, error) {
	var balance model.WalletBalance

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&balance).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Return zero balance if not found
			return &model.WalletBalance{
				UserID:       userID,
				BalanceCents: 0,
			}, nil
		}
		r.logger.Error("Failed to get wallet balance",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get wallet balance: %w", err)
	}

	return &balance, nil
}

// Credit adds to a user's balance with a single atomic increment. The
// application never reads the balance before writing it, so concurrent
// settlements for the same user cannot lose updates.
func (r *walletRepository) Credit(ctx context.Context, userID uuid.UUID, amountCents int64, txType model.TransactionType, description string, referenceID string) (*model.WalletBalance, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("credit amount must be positive, got %d", amountCents)
	}

	var balance model.WalletBalance

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// Atomic increment; the row lock it takes also pins the row for
		// the balance readback below.
		result := tx.Model(&model.WalletBalance{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"balance_cents":       gorm.Expr("balance_cents + ?", amountCents),
				"last_transaction_at": now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to increment balance: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			// First credit for this user
			created := model.WalletBalance{
				UserID:            userID,
				BalanceCents:      amountCents,
				LastTransactionAt: now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"balance_cents":       gorm.Expr("wallet_balances.balance_cents + ?", amountCents),
					"last_transaction_at": now,
				}),
			}).Create(&created).Error; err != nil {
				return fmt.Errorf("failed to create balance row: %w", err)
			}
		}

		if err := tx.Where("user_id = ?", userID).First(&balance).Error; err != nil {
			return fmt.Errorf("failed to read balance: %w", err)
		}

		transaction := &model.WalletTransaction{
			UserID:          userID,
			TransactionType: txType,
			AmountCents:     amountCents,
			BalanceAfter:    balance.BalanceCents,
			Description:     description,
		}
		if referenceID != "" {
			transaction.ReferenceID = &referenceID
		}

		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		return nil
	})

	if err != nil {
		r.logger.Error("Failed to credit wallet",
			zap.String("user_id", userID.String()),
			zap.Int64("amount_cents", amountCents),
			zap.String("reference_id", referenceID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	r.logger.Info("Wallet credited",
		zap.String("user_id", userID.String()),
		zap.Int64("amount_cents", amountCents),
		zap.Int64("balance_after", balance.BalanceCents),
		zap.String("type", string(txType)),
		zap.String("reference_id", referenceID))

	return &balance, nil
}

// Debit deducts from a user's balance atomically, failing without side
// effects when the balance is insufficient.
func (r *walletRepository) Debit(ctx context.Context, userID uuid.UUID, amountCents int64, txType model.TransactionType, description string, referenceID string) (*model.WalletBalance, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("debit amount must be positive, got %d", amountCents)
	}

	var balance *model.WalletBalance

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the user's balance row for update
		var currentBalance model.WalletBalance
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&currentBalance).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErrors.NewInsufficientBalanceError(amountCents, 0)
			}
			return fmt.Errorf("failed to lock balance: %w", err)
		}

		if currentBalance.BalanceCents < amountCents {
			return domainErrors.NewInsufficientBalanceError(amountCents, currentBalance.BalanceCents)
		}

		newBalance := currentBalance.BalanceCents - amountCents

		transaction := &model.WalletTransaction{
			UserID:          userID,
			TransactionType: txType,
			AmountCents:     -amountCents, // Negative for debits
			BalanceAfter:    newBalance,
			Description:     description,
		}
		if referenceID != "" {
			transaction.ReferenceID = &referenceID
		}

		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		currentBalance.BalanceCents = newBalance
		currentBalance.LastTransactionAt = transaction.CreatedAt

		if err := tx.Save(&currentBalance).Error; err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}

		balance = &currentBalance
		return nil
	})

	if err != nil {
		var insufficient *domainErrors.InsufficientBalanceError
		if !errors.As(err, &insufficient) {
			r.logger.Error("Failed to debit wallet",
				zap.String("user_id", userID.String()),
				zap.Int64("amount_cents", amountCents),
				zap.Error(err))
		}
		return nil, err
	}

	r.logger.Info("Wallet debited",
		zap.String("user_id", userID.String()),
		zap.Int64("amount_cents", amountCents),
		zap.Int64("balance_after", balance.BalanceCents),
		zap.String("type", string(txType)))

	return balance, nil
}

// GetTransactionHistory retrieves ledger entries for a user, newest first
func (r *walletRepository) GetTransactionHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.WalletTransaction, error) {
	var transactions []*model.WalletTransaction

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&transactions).Error
	if err != nil {
		r.logger.Error("Failed to get transaction history",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}

	return transactions, nil
}
