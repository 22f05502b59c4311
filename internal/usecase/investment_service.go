package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainerrors "github.com/growvest/wallet-service/internal/domain/errors"
	"github.com/growvest/wallet-service/internal/domain/model"
	"github.com/growvest/wallet-service/internal/domain/repository"
)

// InvestmentService sells catalog products against the wallet balance.
type InvestmentService struct {
	productRepo    repository.ProductRepository
	investmentRepo repository.InvestmentRepository
	walletRepo     repository.WalletRepository
	taskService    *TaskService
	logger         *zap.Logger
}

// NewInvestmentService creates a new investment service instance
func NewInvestmentService(
	productRepo repository.ProductRepository,
	investmentRepo repository.InvestmentRepository,
	walletRepo repository.WalletRepository,
	taskService *TaskService,
	logger *zap.Logger,
) *InvestmentService {
	return &InvestmentService{
		productRepo:    productRepo,
		investmentRepo: investmentRepo,
		walletRepo:     walletRepo,
		taskService:    taskService,
		logger:         logger,
	}
}

// ListProducts returns the active product catalog.
func (s *InvestmentService) ListProducts(ctx context.Context) ([]*model.InvestmentProduct, error) {
	products, err := s.productRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// Purchase buys one unit of the product for the user, debiting the wallet
// for the product price. The per-product purchase limit, when set, caps the
// user's total purchases of that product.
func (s *InvestmentService) Purchase(ctx context.Context, userID uuid.UUID, productCode string) (*model.Investment, error) {
	if userID == uuid.Nil || productCode == "" {
		return nil, domainerrors.ErrInvalidInput
	}

	product, err := s.productRepo.GetByCode(ctx, productCode)
	if err != nil {
		return nil, err
	}

	if product.PurchaseLimit != nil {
		count, err := s.investmentRepo.CountByUserAndProduct(ctx, userID, product.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count purchases: %w", err)
		}
		if count >= int64(*product.PurchaseLimit) {
			return nil, domainerrors.ErrPurchaseLimitReached
		}
	}

	description := fmt.Sprintf("Purchase of %s", product.Name)
	reference := fmt.Sprintf("product:%s", product.Code)

	if _, err := s.walletRepo.Debit(ctx, userID, product.PriceCents,
		model.TransactionTypeInvestment, description, reference); err != nil {
		return nil, err
	}

	investment := &model.Investment{
		UserID:      userID,
		ProductID:   product.ID,
		AmountCents: product.PriceCents,
		Status:      "active",
	}
	if err := s.investmentRepo.Create(ctx, investment); err != nil {
		// The debit is durable. Refund instead of leaving the user paid up
		// with no position.
		s.logger.Error("Failed to record investment after debit, refunding",
			zap.String("user_id", userID.String()),
			zap.String("product_code", product.Code),
			zap.Error(err))
		refundDesc := fmt.Sprintf("Refund of failed purchase of %s", product.Name)
		if _, refundErr := s.walletRepo.Credit(ctx, userID, product.PriceCents,
			model.TransactionTypeAdjustment, refundDesc, reference); refundErr != nil {
			s.logger.Error("Refund after failed investment also failed",
				zap.String("user_id", userID.String()),
				zap.String("product_code", product.Code),
				zap.Error(refundErr))
		}
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}

	investment.Product = product

	s.logger.Info("Investment purchased",
		zap.String("user_id", userID.String()),
		zap.String("product_code", product.Code),
		zap.Int64("amount_cents", product.PriceCents))

	if s.taskService != nil {
		s.taskService.RecordInvestment(ctx, userID, product.PriceCents)
	}

	return investment, nil
}

// GetInvestments returns the user's purchased investments with products
// preloaded.
func (s *InvestmentService) GetInvestments(ctx context.Context, userID uuid.UUID) ([]*model.Investment, error) {
	investments, err := s.investmentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get investments: %w", err)
	}
	return investments, nil
}
