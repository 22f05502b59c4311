package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/growvest/wallet-service/internal/domain/model"
	domainRepo "github.com/growvest/wallet-service/internal/domain/repository"
)

// taskRepository implements the TaskRepository interface
type taskRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository instance
func NewTaskRepository(db *gorm.DB, logger *zap.Logger) domainRepo.TaskRepository {
	return &taskRepository{db: db, logger: logger}
}

func (r *taskRepository) GetActive(ctx context.Context) ([]*model.AchievementTask, error) {
	var tasks []*model.AchievementTask

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&tasks).Error

	if err != nil {
		r.logger.Error("Failed to get tasks", zap.Error(err))
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	return tasks, nil
}

func (r *taskRepository) GetActiveByMetric(ctx context.Context, metric string) ([]*model.AchievementTask, error) {
	var tasks []*model.AchievementTask

	err := r.db.WithContext(ctx).
		Where("is_active = ? AND metric = ?", true, metric).
		Find(&tasks).Error

	if err != nil {
		r.logger.Error("Failed to get tasks by metric",
			zap.String("metric", metric),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get tasks by metric: %w", err)
	}

	return tasks, nil
}

func (r *taskRepository) GetOrCreateProgress(ctx context.Context, userID uuid.UUID, taskID int64) (*model.UserTaskProgress, error) {
	var progress model.UserTaskProgress

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		FirstOrCreate(&progress, model.UserTaskProgress{
			UserID: userID,
			TaskID: taskID,
		}).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get task progress: %w", err)
	}

	return &progress, nil
}

func (r *taskRepository) GetProgressForUser(ctx context.Context, userID uuid.UUID) (map[int64]*model.UserTaskProgress, error) {
	var rows []*model.UserTaskProgress

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error

	if err != nil {
		r.logger.Error("Failed to get user task progress",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get user task progress: %w", err)
	}

	progress := make(map[int64]*model.UserTaskProgress, len(rows))
	for _, row := range rows {
		progress[row.TaskID] = row
	}

	return progress, nil
}

// AdvanceProgress adds delta to the counter under a row lock so the
// completion flip happens exactly once even under concurrent settlements.
func (r *taskRepository) AdvanceProgress(ctx context.Context, userID uuid.UUID, task *model.AchievementTask, delta int64) (*model.UserTaskProgress, bool, error) {
	var progress model.UserTaskProgress
	completed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND task_id = ?", userID, task.ID).
			FirstOrCreate(&progress, model.UserTaskProgress{
				UserID: userID,
				TaskID: task.ID,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to lock task progress: %w", err)
		}

		if progress.CompletedAt != nil {
			return nil
		}

		progress.Progress += delta
		progress.UpdatedAt = time.Now()

		if progress.Progress >= task.Target {
			now := time.Now()
			progress.CompletedAt = &now
			completed = true
		}

		if err := tx.Save(&progress).Error; err != nil {
			return fmt.Errorf("failed to save task progress: %w", err)
		}

		return nil
	})

	if err != nil {
		r.logger.Error("Failed to advance task progress",
			zap.String("user_id", userID.String()),
			zap.String("task_code", task.Code),
			zap.Error(err))
		return nil, false, err
	}

	return &progress, completed, nil
}
