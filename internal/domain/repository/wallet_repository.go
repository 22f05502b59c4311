package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/growvest/wallet-service/internal/domain/model"
)

// WalletRepository is the per-user ledger. Balances are only ever mutated
// through Credit and Debit, both single atomic operations, so concurrent
// settlements for the same user are never lost.
type WalletRepository interface {
	// Credit atomically increments the user's balance by amountCents and
	// appends a ledger transaction. The balance row is created on first
	// credit.
	Credit(ctx context.Context, userID uuid.UUID, amountCents int64, txType model.TransactionType, description string, referenceID string) (*model.WalletBalance, error)

	// Debit atomically decrements the user's balance, failing with
	// *errors.InsufficientBalanceError when the balance does not cover the
	// amount.
	Debit(ctx context.Context, userID uuid.UUID, amountCents int64, txType model.TransactionType, description string, referenceID string) (*model.WalletBalance, error)

	// GetBalance returns the user's balance, zero-valued when the user has
	// no wallet row yet.
	GetBalance(ctx context.Context, userID uuid.UUID) (*model.WalletBalance, error)

	// GetTransactionHistory returns the user's ledger entries, newest
	// first.
	GetTransactionHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.WalletTransaction, error)
}
