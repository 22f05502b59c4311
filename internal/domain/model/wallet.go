package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the type of wallet transaction
type TransactionType string

const (
	TransactionTypeDeposit            TransactionType = "deposit"
	TransactionTypeInvestment         TransactionType = "investment"
	TransactionTypeReferralCommission TransactionType = "referral_commission"
	TransactionTypeTaskReward         TransactionType = "task_reward"
	TransactionTypeAdjustment         TransactionType = "adjustment"
)

// Scan implements sql.Scanner interface
func (t *TransactionType) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TransactionType(v)
	case []byte:
		*t = TransactionType(v)
	default:
		return nil
	}
	return nil
}

// Value implements driver.Valuer interface
func (t TransactionType) Value() (driver.Value, error) {
	return string(t), nil
}

// WalletBalance represents the current wallet balance for a user, in
// integer minor units. The balance is only ever mutated through the wallet
// repository's atomic credit/debit primitives.
type WalletBalance struct {
	UserID            uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	BalanceCents      int64     `gorm:"not null;default:0" json:"balance_cents"`
	LastTransactionAt time.Time `json:"last_transaction_at"`
}

// TableName specifies the table name for GORM
func (WalletBalance) TableName() string {
	return "wallet_balances"
}

// WalletTransaction is the immutable ledger entry written alongside every
// balance mutation. Amount is negative for debits.
type WalletTransaction struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index:idx_wallet_transactions_user_created" json:"user_id"`
	TransactionType TransactionType `gorm:"type:transaction_type;not null" json:"transaction_type"`
	AmountCents     int64           `gorm:"not null" json:"amount_cents"`
	BalanceAfter    int64           `gorm:"not null" json:"balance_after"`
	Description     string          `gorm:"not null" json:"description"`
	ReferenceID     *string         `gorm:"size:200;index:idx_wallet_transactions_reference,where:reference_id IS NOT NULL" json:"reference_id,omitempty"`
	CreatedAt       time.Time       `gorm:"default:now();index:idx_wallet_transactions_user_created" json:"created_at"`
}

// TableName specifies the table name for GORM
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
