package model

import (
	"time"

	"github.com/google/uuid"
)

// InvestmentProduct represents a purchasable investment product shown on
// the dashboard.
type InvestmentProduct struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code             string    `gorm:"unique;not null;size:50" json:"code"`
	Name             string    `gorm:"not null;size:200" json:"name"`
	Description      string    `json:"description"`
	PriceCents       int64     `gorm:"not null" json:"price_cents"`
	DailyReturnCents int64     `gorm:"not null" json:"daily_return_cents"`
	CycleDays        int       `gorm:"not null" json:"cycle_days"`
	TotalReturnCents int64     `gorm:"not null" json:"total_return_cents"`
	PurchaseLimit    *int      `json:"purchase_limit,omitempty"`
	ImageID          string    `gorm:"size:100" json:"image_id"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	SortOrder        int       `gorm:"default:0" json:"sort_order"`
	CreatedAt        time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (InvestmentProduct) TableName() string {
	return "investment_products"
}

// Investment represents a user's purchase of an investment product, paid
// for from the wallet balance.
type Investment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	ProductID  int64     `gorm:"not null;index" json:"product_id"`
	AmountCents int64    `gorm:"not null" json:"amount_cents"`
	Status     string    `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt  time.Time `gorm:"default:now()" json:"created_at"`

	// Relations
	Product *InvestmentProduct `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName specifies the table name for GORM
func (Investment) TableName() string {
	return "investments"
}
