package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/growvest/wallet-service/internal/domain/model"
	"github.com/growvest/wallet-service/internal/usecase"
)

// MockReferralRepository is a mock implementation of ReferralRepository
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) GetReferrerChain(ctx context.Context, userID uuid.UUID, maxLevels int) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID, maxLevels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockReferralRepository) GetLevels(ctx context.Context) ([]*model.ReferralLevel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ReferralLevel), args.Error(1)
}

func (m *MockReferralRepository) CountDirectReferrals(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestReferralService_OnDepositSettled(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	levels := []*model.ReferralLevel{
		{Level: 1, CommissionPercent: 10},
		{Level: 2, CommissionPercent: 5},
		{Level: 3, CommissionPercent: 2},
	}

	t.Run("pays floored commissions up the chain", func(t *testing.T) {
		depositor := uuid.New()
		level1 := uuid.New()
		level2 := uuid.New()

		mockRepo := new(MockReferralRepository)
		walletRepo := newMemWalletRepo()
		service := usecase.NewReferralService(mockRepo, walletRepo, logger)

		mockRepo.On("GetLevels", ctx).Return(levels, nil)
		mockRepo.On("GetReferrerChain", ctx, depositor, 3).Return([]uuid.UUID{level1, level2}, nil)

		order := &model.PaymentOrder{
			OrderID:     "order_ref",
			UserID:      depositor,
			AmountCents: 10050, // 10% of 10050 floors to 1005, 5% to 502
		}
		service.OnDepositSettled(ctx, order)

		b1, err := walletRepo.GetBalance(ctx, level1)
		require.NoError(t, err)
		assert.Equal(t, int64(1005), b1.BalanceCents)

		b2, err := walletRepo.GetBalance(ctx, level2)
		require.NoError(t, err)
		assert.Equal(t, int64(502), b2.BalanceCents)

		mockRepo.AssertExpectations(t)
	})

	t.Run("no referrers means no credits", func(t *testing.T) {
		depositor := uuid.New()
		mockRepo := new(MockReferralRepository)
		walletRepo := newMemWalletRepo()
		service := usecase.NewReferralService(mockRepo, walletRepo, logger)

		mockRepo.On("GetLevels", ctx).Return(levels, nil)
		mockRepo.On("GetReferrerChain", ctx, depositor, 3).Return([]uuid.UUID{}, nil)

		service.OnDepositSettled(ctx, &model.PaymentOrder{
			OrderID: "order_none", UserID: depositor, AmountCents: 10000,
		})

		assert.Equal(t, 0, walletRepo.creditCount())
	})

	t.Run("zero-cent commission is skipped", func(t *testing.T) {
		depositor := uuid.New()
		level1 := uuid.New()
		mockRepo := new(MockReferralRepository)
		walletRepo := newMemWalletRepo()
		service := usecase.NewReferralService(mockRepo, walletRepo, logger)

		mockRepo.On("GetLevels", ctx).Return(levels, nil)
		mockRepo.On("GetReferrerChain", ctx, depositor, 3).Return([]uuid.UUID{level1}, nil)

		// 10% of 9 cents floors to 0.
		service.OnDepositSettled(ctx, &model.PaymentOrder{
			OrderID: "order_tiny", UserID: depositor, AmountCents: 9,
		})

		assert.Equal(t, 0, walletRepo.creditCount())
	})

	t.Run("chain lookup failure pays nothing and does not panic", func(t *testing.T) {
		depositor := uuid.New()
		mockRepo := new(MockReferralRepository)
		walletRepo := newMemWalletRepo()
		service := usecase.NewReferralService(mockRepo, walletRepo, logger)

		mockRepo.On("GetLevels", ctx).Return(levels, nil)
		mockRepo.On("GetReferrerChain", ctx, depositor, 3).Return(nil, errors.New("db down"))

		service.OnDepositSettled(ctx, &model.PaymentOrder{
			OrderID: "order_err", UserID: depositor, AmountCents: 10000,
		})

		assert.Equal(t, 0, walletRepo.creditCount())
	})
}

func TestReferralService_GetSummary(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns direct referral count and schedule", func(t *testing.T) {
		mockRepo := new(MockReferralRepository)
		service := usecase.NewReferralService(mockRepo, newMemWalletRepo(), logger)

		levels := []*model.ReferralLevel{{Level: 1, CommissionPercent: 10}}
		mockRepo.On("GetLevels", ctx).Return(levels, nil)
		mockRepo.On("CountDirectReferrals", ctx, userID).Return(int64(7), nil)

		summary, err := service.GetSummary(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(7), summary.DirectReferrals)
		assert.Len(t, summary.Levels, 1)

		mockRepo.AssertExpectations(t)
	})
}
