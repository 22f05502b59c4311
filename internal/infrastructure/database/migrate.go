package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/growvest/wallet-service/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	// Custom types must exist before auto-migrate references them.
	if err := createCustomTypes(db); err != nil {
		logger.Error("Failed to create custom types", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.PaymentOrder{},
		&model.WalletBalance{},
		&model.WalletTransaction{},
		&model.InvestmentProduct{},
		&model.Investment{},
		&model.Referral{},
		&model.ReferralLevel{},
		&model.AchievementTask{},
		&model.UserTaskProgress{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	if err := seedReferenceData(db, logger); err != nil {
		logger.Error("Failed to seed reference data", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
}

// createCustomTypes creates custom PostgreSQL types
func createCustomTypes(db *gorm.DB) error {
	var exists bool

	db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'order_status')`).Scan(&exists)
	if !exists {
		if err := db.Exec(`CREATE TYPE order_status AS ENUM ('created', 'capturing', 'captured', 'verification_failed', 'credit_failed')`).Error; err != nil {
			return err
		}
	}

	db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'transaction_type')`).Scan(&exists)
	if !exists {
		if err := db.Exec(`CREATE TYPE transaction_type AS ENUM ('deposit', 'investment', 'referral_commission', 'task_reward', 'adjustment')`).Error; err != nil {
			return err
		}
	}

	return nil
}

// createCustomIndexes creates partial indexes that GORM tags cannot express.
func createCustomIndexes(db *gorm.DB) error {
	// Ledger lookups by settlement reference skip rows without one.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_wallet_transactions_reference ON wallet_transactions (reference_id) WHERE reference_id IS NOT NULL`).Error; err != nil {
		return err
	}

	// Reconciliation scans for stuck or failed settlements.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_payment_orders_unsettled ON payment_orders (created_at) WHERE status IN ('capturing', 'credit_failed')`).Error; err != nil {
		return err
	}

	return nil
}

// seedReferenceData inserts the product catalog, achievement tasks, and
// commission schedule. Existing rows are left untouched so operators can
// tune values without migrations overwriting them.
func seedReferenceData(db *gorm.DB, logger *zap.Logger) error {
	one := 1
	products := []model.InvestmentProduct{
		{
			Code:             "ai_quantify_1",
			Name:             "AI Quantify 1",
			Description:      "Limited edition AI-powered investment product.",
			PriceCents:       50000,
			DailyReturnCents: 2500,
			CycleDays:        30,
			TotalReturnCents: 75000,
			PurchaseLimit:    &one,
			ImageID:          "prod1-img",
			SortOrder:        1,
		},
		{
			Code:             "ai_grid_trading",
			Name:             "AI Grid Trading",
			Description:      "Stable returns through automated grid trading.",
			PriceCents:       100000,
			DailyReturnCents: 5500,
			CycleDays:        45,
			TotalReturnCents: 247500,
			ImageID:          "prod2-img",
			SortOrder:        2,
		},
		{
			Code:             "future_tech_fund",
			Name:             "Future Tech Fund",
			Description:      "Invest in emerging technology portfolios.",
			PriceCents:       300000,
			DailyReturnCents: 18000,
			CycleDays:        60,
			TotalReturnCents: 1080000,
			ImageID:          "prod3-img",
			SortOrder:        3,
		},
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&products).Error; err != nil {
		return err
	}

	tasks := []model.AchievementTask{
		{
			Code:        "first_recharge",
			Title:       "First Recharge",
			Description: "Make your first deposit to get a bonus.",
			Metric:      model.TaskMetricDepositCount,
			Target:      1,
			RewardCents: 10000,
			SortOrder:   1,
		},
		{
			Code:        "invite_five",
			Title:       "Invite 5 Friends",
			Description: "Invite 5 new users who successfully register.",
			Metric:      model.TaskMetricReferralCount,
			Target:      5,
			RewardCents: 50000,
			SortOrder:   2,
		},
		{
			Code:        "total_investment",
			Title:       "Total Investment",
			Description: "Reach a total investment amount of 10000.",
			Metric:      model.TaskMetricInvestmentTotal,
			Target:      1000000,
			RewardCents: 100000,
			SortOrder:   3,
		},
		{
			Code:        "checkin_streak",
			Title:       "Daily Check-in Streak",
			Description: "Check in for 7 consecutive days.",
			Metric:      model.TaskMetricCheckinStreak,
			Target:      7,
			RewardCents: 20000,
			SortOrder:   4,
		},
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&tasks).Error; err != nil {
		return err
	}

	levels := []model.ReferralLevel{
		{Level: 1, CommissionPercent: 10},
		{Level: 2, CommissionPercent: 5},
		{Level: 3, CommissionPercent: 2},
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "level"}},
		DoNothing: true,
	}).Create(&levels).Error; err != nil {
		return err
	}

	logger.Info("Reference data seeded",
		zap.Int("products", len(products)),
		zap.Int("tasks", len(tasks)),
		zap.Int("referral_levels", len(levels)))
	return nil
}
