package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/growvest/wallet-service/internal/domain/model"
)

// ProductRepository provides read access to the investment product catalog.
type ProductRepository interface {
	GetActive(ctx context.Context) ([]*model.InvestmentProduct, error)
	GetByCode(ctx context.Context, code string) (*model.InvestmentProduct, error)
}

// InvestmentRepository stores user purchases of investment products.
type InvestmentRepository interface {
	Create(ctx context.Context, investment *model.Investment) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Investment, error)
	CountByUserAndProduct(ctx context.Context, userID uuid.UUID, productID int64) (int64, error)
}
