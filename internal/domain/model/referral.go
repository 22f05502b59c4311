package model

import (
	"time"

	"github.com/google/uuid"
)

// ReferralLevel defines the commission percentage paid to a referrer at a
// given depth of the referral chain.
type ReferralLevel struct {
	Level             int `gorm:"primaryKey" json:"level"`
	CommissionPercent int `gorm:"not null" json:"commission_percent"`
}

// TableName specifies the table name for GORM
func (ReferralLevel) TableName() string {
	return "referral_levels"
}

// Referral is an edge from a user to the user who invited them. The chain
// of edges is walked upward when commissions are paid out.
type Referral struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;unique;not null" json:"user_id"`
	ReferrerID uuid.UUID `gorm:"column:referrer_id;type:uuid;not null;index" json:"referrer_id"`
	CreatedAt  time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Referral) TableName() string {
	return "referrals"
}
