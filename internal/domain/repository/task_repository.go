package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/growvest/wallet-service/internal/domain/model"
)

// TaskRepository stores achievement tasks and per-user progress.
type TaskRepository interface {
	GetActiveByMetric(ctx context.Context, metric string) ([]*model.AchievementTask, error)
	GetActive(ctx context.Context) ([]*model.AchievementTask, error)

	// GetOrCreateProgress returns the user's progress row for a task,
	// creating a zero row if none exists.
	GetOrCreateProgress(ctx context.Context, userID uuid.UUID, taskID int64) (*model.UserTaskProgress, error)

	// GetProgressForUser returns all progress rows for the user keyed by
	// task id.
	GetProgressForUser(ctx context.Context, userID uuid.UUID) (map[int64]*model.UserTaskProgress, error)

	// AdvanceProgress adds delta to the user's progress counter and, when
	// the target is reached for the first time, marks the task completed.
	// Returns the updated row and whether completion happened on this call.
	AdvanceProgress(ctx context.Context, userID uuid.UUID, task *model.AchievementTask, delta int64) (*model.UserTaskProgress, bool, error)
}
