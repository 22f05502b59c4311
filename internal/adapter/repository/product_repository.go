package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/growvest/wallet-service/internal/domain/errors"
	"github.com/growvest/wallet-service/internal/domain/model"
	domainRepo "github.com/growvest/wallet-service/internal/domain/repository"
)

// productRepository implements the ProductRepository interface
type productRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository instance
func NewProductRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ProductRepository {
	return &productRepository{db: db, logger: logger}
}

// GetActive returns all active products in display order
func (r *productRepository) GetActive(ctx context.Context) ([]*model.InvestmentProduct, error) {
	var products []*model.InvestmentProduct

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&products).Error

	if err != nil {
		r.logger.Error("Failed to get products", zap.Error(err))
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// GetByCode returns an active product by its code. Inactive products are
// not purchasable and report as unknown.
func (r *productRepository) GetByCode(ctx context.Context, code string) (*model.InvestmentProduct, error) {
	var product model.InvestmentProduct

	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&product).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrUnknownProduct
		}
		r.logger.Error("Failed to get product",
			zap.String("code", code),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// investmentRepository implements the InvestmentRepository interface
type investmentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewInvestmentRepository creates a new investment repository instance
func NewInvestmentRepository(db *gorm.DB, logger *zap.Logger) domainRepo.InvestmentRepository {
	return &investmentRepository{db: db, logger: logger}
}

func (r *investmentRepository) Create(ctx context.Context, investment *model.Investment) error {
	if err := r.db.WithContext(ctx).Create(investment).Error; err != nil {
		r.logger.Error("Failed to create investment",
			zap.String("user_id", investment.UserID.String()),
			zap.Int64("product_id", investment.ProductID),
			zap.Error(err))
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

func (r *investmentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Investment, error) {
	var investments []*model.Investment

	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&investments).Error

	if err != nil {
		r.logger.Error("Failed to get investments",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get investments: %w", err)
	}

	return investments, nil
}

func (r *investmentRepository) CountByUserAndProduct(ctx context.Context, userID uuid.UUID, productID int64) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.Investment{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count investments: %w", err)
	}

	return count, nil
}
