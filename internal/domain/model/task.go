package model

import (
	"time"

	"github.com/google/uuid"
)

// Task metric constants. Progress for a task is driven by one of these
// counters.
const (
	TaskMetricDepositCount    = "deposit_count"
	TaskMetricReferralCount   = "referral_count"
	TaskMetricInvestmentTotal = "investment_total"
	TaskMetricCheckinStreak   = "checkin_streak"
)

// AchievementTask represents a gamified task with a wallet reward paid on
// completion.
type AchievementTask struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string    `gorm:"unique;not null;size:50" json:"code"`
	Title       string    `gorm:"not null;size:200" json:"title"`
	Description string    `json:"description"`
	Metric      string    `gorm:"not null;size:50" json:"metric"`
	Target      int64     `gorm:"not null" json:"target"`
	RewardCents int64     `gorm:"not null" json:"reward_cents"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (AchievementTask) TableName() string {
	return "achievement_tasks"
}

// UserTaskProgress tracks a single user's progress toward a task. The
// reward is credited exactly once, when CompletedAt is first set.
type UserTaskProgress struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_task" json:"user_id"`
	TaskID      int64      `gorm:"not null;uniqueIndex:idx_user_task" json:"task_id"`
	Progress    int64      `gorm:"not null;default:0" json:"progress"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `gorm:"default:now()" json:"updated_at"`

	// Relations
	Task *AchievementTask `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

// TableName specifies the table name for GORM
func (UserTaskProgress) TableName() string {
	return "user_task_progress"
}
