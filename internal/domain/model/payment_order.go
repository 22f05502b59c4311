package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of a payment order. Transitions
// move forward only: created -> capturing -> one of the terminal states.
type OrderStatus string

const (
	OrderStatusCreated            OrderStatus = "created"
	OrderStatusCapturing          OrderStatus = "capturing"
	OrderStatusCaptured           OrderStatus = "captured"
	OrderStatusVerificationFailed OrderStatus = "verification_failed"
	OrderStatusCreditFailed       OrderStatus = "credit_failed"
)

// Scan implements sql.Scanner interface
func (s *OrderStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = OrderStatus(v)
	case []byte:
		*s = OrderStatus(v)
	default:
		return nil
	}
	return nil
}

// Value implements driver.Valuer interface
func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// IsTerminal reports whether the status allows no further transition.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusCaptured, OrderStatusVerificationFailed, OrderStatusCreditFailed:
		return true
	}
	return false
}

// PaymentOrder represents a deposit order created with an external payment
// gateway. Orders are kept forever for auditing and replay protection.
type PaymentOrder struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     string      `gorm:"column:order_id;unique;not null;size:100" json:"order_id"`
	UserID      uuid.UUID   `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Gateway     string      `gorm:"not null;size:20" json:"gateway"`
	AmountCents int64       `gorm:"not null" json:"amount_cents"`
	Currency    string      `gorm:"size:3;default:'USD'" json:"currency"`
	Receipt     string      `gorm:"size:120" json:"receipt"`
	Status      OrderStatus `gorm:"type:order_status;not null;default:'created'" json:"status"`
	PaymentID   *string     `gorm:"size:100" json:"payment_id,omitempty"`
	FailureCode *string     `gorm:"size:100" json:"failure_code,omitempty"`
	CapturedAt  *time.Time  `json:"captured_at,omitempty"`
	CreatedAt   time.Time   `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (PaymentOrder) TableName() string {
	return "payment_orders"
}
