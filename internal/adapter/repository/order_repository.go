package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/growvest/wallet-service/internal/domain/errors"
	"github.com/growvest/wallet-service/internal/domain/model"
	domainRepo "github.com/growvest/wallet-service/internal/domain/repository"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB, logger *zap.Logger) domainRepo.OrderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

// RecordCreated stores a freshly created gateway order.
func (r *orderRepository) RecordCreated(ctx context.Context, order *model.PaymentOrder) error {
	order.Status = model.OrderStatusCreated

	err := r.db.WithContext(ctx).Create(order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.logger.Warn("Duplicate order id from gateway",
				zap.String("order_id", order.OrderID))
			return domainErrors.ErrDuplicateOrder
		}
		r.logger.Error("Failed to record order",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
		return fmt.Errorf("failed to record order: %w", err)
	}

	return nil
}

// GetByOrderID fetches an order by its gateway-assigned id.
func (r *orderRepository) GetByOrderID(ctx context.Context, orderID string) (*model.PaymentOrder, error) {
	var order model.PaymentOrder

	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrUnknownOrder
		}
		r.logger.Error("Failed to get order",
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

// TryBeginCapture atomically claims the capture lease for an order. The
// conditional UPDATE is the single point of serialization: it succeeds for
// exactly one concurrent caller, regardless of which worker process runs
// it.
func (r *orderRepository) TryBeginCapture(ctx context.Context, orderID string) (*domainRepo.CaptureToken, error) {
	result := r.db.WithContext(ctx).
		Model(&model.PaymentOrder{}).
		Where("order_id = ? AND status = ?", orderID, model.OrderStatusCreated).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusCapturing,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("Failed to begin capture",
			zap.String("order_id", orderID),
			zap.Error(result.Error))
		return nil, fmt.Errorf("failed to begin capture: %w", result.Error)
	}

	if result.RowsAffected == 1 {
		order, err := r.GetByOrderID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		r.logger.Info("Capture lease acquired",
			zap.String("order_id", orderID),
			zap.String("user_id", order.UserID.String()))
		return &domainRepo.CaptureToken{Order: order}, nil
	}

	// Lost the race or the order is already settled; report which.
	order, err := r.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == model.OrderStatusCapturing {
		return nil, domainErrors.ErrCaptureInProgress
	}

	return nil, &domainErrors.AlreadyFinalizedError{
		OrderID: orderID,
		Status:  string(order.Status),
	}
}

// FinalizeCapture transitions the held order into a terminal status.
func (r *orderRepository) FinalizeCapture(ctx context.Context, token *domainRepo.CaptureToken, status model.OrderStatus, paymentID string) error {
	if !status.IsTerminal() {
		return fmt.Errorf("status %s is not terminal", status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	if paymentID != "" {
		updates["payment_id"] = paymentID
	}
	if status == model.OrderStatusCaptured {
		updates["captured_at"] = now
	}

	result := r.db.WithContext(ctx).
		Model(&model.PaymentOrder{}).
		Where("order_id = ? AND status = ?", token.Order.OrderID, model.OrderStatusCapturing).
		Updates(updates)

	if result.Error != nil {
		r.logger.Error("Failed to finalize capture",
			zap.String("order_id", token.Order.OrderID),
			zap.String("status", string(status)),
			zap.Error(result.Error))
		return fmt.Errorf("failed to finalize capture: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("order %s not in capturing state", token.Order.OrderID)
	}

	r.logger.Info("Capture finalized",
		zap.String("order_id", token.Order.OrderID),
		zap.String("status", string(status)))

	return nil
}

// ReleaseCapture returns the held order to created for a later retry.
func (r *orderRepository) ReleaseCapture(ctx context.Context, token *domainRepo.CaptureToken) error {
	result := r.db.WithContext(ctx).
		Model(&model.PaymentOrder{}).
		Where("order_id = ? AND status = ?", token.Order.OrderID, model.OrderStatusCapturing).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusCreated,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("Failed to release capture lease",
			zap.String("order_id", token.Order.OrderID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to release capture lease: %w", result.Error)
	}

	r.logger.Info("Capture lease released",
		zap.String("order_id", token.Order.OrderID))

	return nil
}
