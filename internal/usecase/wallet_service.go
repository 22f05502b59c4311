package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/growvest/wallet-service/internal/domain/model"
	"github.com/growvest/wallet-service/internal/domain/repository"
)

// WalletService handles wallet read access for the API.
type WalletService struct {
	walletRepo repository.WalletRepository
	logger     *zap.Logger
}

// NewWalletService creates a new wallet service instance
func NewWalletService(walletRepo repository.WalletRepository, logger *zap.Logger) *WalletService {
	return &WalletService{
		walletRepo: walletRepo,
		logger:     logger,
	}
}

// GetBalance retrieves the current wallet balance for a user
func (s *WalletService) GetBalance(ctx context.Context, userID uuid.UUID) (*model.WalletBalance, error) {
	balance, err := s.walletRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// GetTransactionHistory retrieves the user's ledger entries, newest first.
func (s *WalletService) GetTransactionHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.WalletTransaction, error) {
	if limit < 1 {
		limit = 20 // Default limit
	} else if limit > 100 {
		limit = 100 // Maximum limit
	}
	if offset < 0 {
		offset = 0
	}

	return s.walletRepo.GetTransactionHistory(ctx, userID, limit, offset)
}
