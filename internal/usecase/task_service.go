package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/growvest/wallet-service/internal/domain/model"
	"github.com/growvest/wallet-service/internal/domain/repository"
)

// TaskService advances achievement task progress and credits one-time
// rewards on completion.
type TaskService struct {
	taskRepo   repository.TaskRepository
	walletRepo repository.WalletRepository
	logger     *zap.Logger
}

// NewTaskService creates a new task service instance
func NewTaskService(
	taskRepo repository.TaskRepository,
	walletRepo repository.WalletRepository,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		walletRepo: walletRepo,
		logger:     logger,
	}
}

// OnDepositSettled advances the deposit-count metric by one for the
// depositing user.
func (s *TaskService) OnDepositSettled(ctx context.Context, order *model.PaymentOrder) {
	s.advanceMetric(ctx, order.UserID, model.TaskMetricDepositCount, 1)
}

// RecordInvestment advances the investment-total metric by the invested
// amount in cents.
func (s *TaskService) RecordInvestment(ctx context.Context, userID uuid.UUID, amountCents int64) {
	s.advanceMetric(ctx, userID, model.TaskMetricInvestmentTotal, amountCents)
}

// RecordReferral advances the referral-count metric for the referrer.
func (s *TaskService) RecordReferral(ctx context.Context, referrerID uuid.UUID) {
	s.advanceMetric(ctx, referrerID, model.TaskMetricReferralCount, 1)
}

func (s *TaskService) advanceMetric(ctx context.Context, userID uuid.UUID, metric string, delta int64) {
	tasks, err := s.taskRepo.GetActiveByMetric(ctx, metric)
	if err != nil {
		s.logger.Error("Failed to load tasks for metric",
			zap.String("metric", metric),
			zap.Error(err))
		return
	}

	for _, task := range tasks {
		progress, completedNow, err := s.taskRepo.AdvanceProgress(ctx, userID, task, delta)
		if err != nil {
			s.logger.Error("Failed to advance task progress",
				zap.String("task_code", task.Code),
				zap.String("user_id", userID.String()),
				zap.Error(err))
			continue
		}
		if !completedNow {
			continue
		}

		description := fmt.Sprintf("Reward for completing task %s", task.Code)
		reference := fmt.Sprintf("task:%s:%s", task.Code, userID)

		if _, err := s.walletRepo.Credit(ctx, userID, task.RewardCents,
			model.TransactionTypeTaskReward, description, reference); err != nil {
			s.logger.Error("Failed to credit task reward",
				zap.String("task_code", task.Code),
				zap.String("user_id", userID.String()),
				zap.Int64("reward_cents", task.RewardCents),
				zap.Error(err))
			continue
		}

		s.logger.Info("Task reward credited",
			zap.String("task_code", task.Code),
			zap.String("user_id", userID.String()),
			zap.Int64("progress", progress.Progress),
			zap.Int64("reward_cents", task.RewardCents))
	}
}

// TaskView is a task joined with the requesting user's progress.
type TaskView struct {
	Task      *model.AchievementTask `json:"task"`
	Progress  int64                  `json:"progress"`
	Completed bool                   `json:"completed"`
}

// ListTasks returns all active tasks merged with the user's progress.
func (s *TaskService) ListTasks(ctx context.Context, userID uuid.UUID) ([]*TaskView, error) {
	tasks, err := s.taskRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	progressByTask, err := s.taskRepo.GetProgressForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task progress: %w", err)
	}

	views := make([]*TaskView, 0, len(tasks))
	for _, task := range tasks {
		view := &TaskView{Task: task}
		if p, ok := progressByTask[task.ID]; ok {
			view.Progress = p.Progress
			view.Completed = p.CompletedAt != nil
		}
		views = append(views, view)
	}
	return views, nil
}
