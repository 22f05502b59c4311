package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/growvest/wallet-service/internal/adapter/repository"
	domainRepo "github.com/growvest/wallet-service/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Order      domainRepo.OrderRepository
	Wallet     domainRepo.WalletRepository
	Product    domainRepo.ProductRepository
	Investment domainRepo.InvestmentRepository
	Referral   domainRepo.ReferralRepository
	Task       domainRepo.TaskRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Order:      repository.NewOrderRepository(db, logger),
		Wallet:     repository.NewWalletRepository(db, logger),
		Product:    repository.NewProductRepository(db, logger),
		Investment: repository.NewInvestmentRepository(db, logger),
		Referral:   repository.NewReferralRepository(db, logger),
		Task:       repository.NewTaskRepository(db, logger),
	}
}
