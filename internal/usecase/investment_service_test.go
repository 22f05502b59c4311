package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/growvest/wallet-service/internal/domain/errors"
	"github.com/growvest/wallet-service/internal/domain/model"
	"github.com/growvest/wallet-service/internal/usecase"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetActive(ctx context.Context) ([]*model.InvestmentProduct, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.InvestmentProduct), args.Error(1)
}

func (m *MockProductRepository) GetByCode(ctx context.Context, code string) (*model.InvestmentProduct, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvestmentProduct), args.Error(1)
}

// MockInvestmentRepository is a mock implementation of InvestmentRepository
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) Create(ctx context.Context, investment *model.Investment) error {
	args := m.Called(ctx, investment)
	return args.Error(0)
}

func (m *MockInvestmentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Investment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) CountByUserAndProduct(ctx context.Context, userID uuid.UUID, productID int64) (int64, error) {
	args := m.Called(ctx, userID, productID)
	return args.Get(0).(int64), args.Error(1)
}

func TestInvestmentService_Purchase(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	userID := uuid.New()

	limit := 2
	starter := &model.InvestmentProduct{
		ID:            1,
		Code:          "starter",
		Name:          "Starter Plan",
		PriceCents:    4900,
		PurchaseLimit: &limit,
	}

	t.Run("debits wallet and records investment", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		investmentRepo := new(MockInvestmentRepository)
		walletRepo := newMemWalletRepo()
		walletRepo.balances[userID] = 10000
		service := usecase.NewInvestmentService(productRepo, investmentRepo, walletRepo, nil, logger)

		productRepo.On("GetByCode", ctx, "starter").Return(starter, nil)
		investmentRepo.On("CountByUserAndProduct", ctx, userID, int64(1)).Return(int64(0), nil)
		investmentRepo.On("Create", ctx, mock.MatchedBy(func(inv *model.Investment) bool {
			return inv.UserID == userID && inv.ProductID == 1 && inv.AmountCents == 4900
		})).Return(nil)

		investment, err := service.Purchase(ctx, userID, "starter")
		require.NoError(t, err)
		assert.Equal(t, int64(4900), investment.AmountCents)
		assert.Equal(t, starter, investment.Product)

		balance, err := walletRepo.GetBalance(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(5100), balance.BalanceCents)

		productRepo.AssertExpectations(t)
		investmentRepo.AssertExpectations(t)
	})

	t.Run("insufficient balance fails before recording", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		investmentRepo := new(MockInvestmentRepository)
		walletRepo := newMemWalletRepo()
		walletRepo.balances[userID] = 100
		service := usecase.NewInvestmentService(productRepo, investmentRepo, walletRepo, nil, logger)

		productRepo.On("GetByCode", ctx, "starter").Return(starter, nil)
		investmentRepo.On("CountByUserAndProduct", ctx, userID, int64(1)).Return(int64(0), nil)

		_, err := service.Purchase(ctx, userID, "starter")

		var insufficientErr *domainErrors.InsufficientBalanceError
		require.ErrorAs(t, err, &insufficientErr)
		assert.Equal(t, int64(4900), insufficientErr.RequestedCents)
		assert.Equal(t, int64(100), insufficientErr.AvailableCents)
		investmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("purchase limit reached", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		investmentRepo := new(MockInvestmentRepository)
		walletRepo := newMemWalletRepo()
		walletRepo.balances[userID] = 100000
		service := usecase.NewInvestmentService(productRepo, investmentRepo, walletRepo, nil, logger)

		productRepo.On("GetByCode", ctx, "starter").Return(starter, nil)
		investmentRepo.On("CountByUserAndProduct", ctx, userID, int64(1)).Return(int64(2), nil)

		_, err := service.Purchase(ctx, userID, "starter")
		assert.ErrorIs(t, err, domainErrors.ErrPurchaseLimitReached)

		balance, _ := walletRepo.GetBalance(ctx, userID)
		assert.Equal(t, int64(100000), balance.BalanceCents)
	})

	t.Run("unknown product code", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := usecase.NewInvestmentService(productRepo, new(MockInvestmentRepository), newMemWalletRepo(), nil, logger)

		productRepo.On("GetByCode", ctx, "nope").Return(nil, domainErrors.ErrUnknownProduct)

		_, err := service.Purchase(ctx, userID, "nope")
		assert.ErrorIs(t, err, domainErrors.ErrUnknownProduct)
	})

	t.Run("refunds debit when recording the investment fails", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		investmentRepo := new(MockInvestmentRepository)
		walletRepo := newMemWalletRepo()
		walletRepo.balances[userID] = 10000
		service := usecase.NewInvestmentService(productRepo, investmentRepo, walletRepo, nil, logger)

		productRepo.On("GetByCode", ctx, "starter").Return(starter, nil)
		investmentRepo.On("CountByUserAndProduct", ctx, userID, int64(1)).Return(int64(0), nil)
		investmentRepo.On("Create", ctx, mock.Anything).Return(assert.AnError)

		_, err := service.Purchase(ctx, userID, "starter")
		require.Error(t, err)

		balance, _ := walletRepo.GetBalance(ctx, userID)
		assert.Equal(t, int64(10000), balance.BalanceCents)
	})
}
