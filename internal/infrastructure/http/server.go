package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/growvest/wallet-service/internal/adapter/handler/http"
	"github.com/growvest/wallet-service/internal/config"
	"github.com/growvest/wallet-service/internal/infrastructure/database"
	"github.com/growvest/wallet-service/internal/infrastructure/gateway"
	"github.com/growvest/wallet-service/internal/middleware/auth"
	"github.com/growvest/wallet-service/internal/usecase"
)

// requestValidator adapts go-playground/validator to echo's Validator
// interface.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config: cfg,
		logger: logger,
		echo:   e,
		repos:  repos,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Gateways and services
	gateways := gateway.NewFactory(s.config, s.logger)

	settlementService := usecase.NewSettlementService(
		s.repos.Order, s.repos.Wallet, gateways, s.config.Service.Currency, s.logger)
	walletService := usecase.NewWalletService(s.repos.Wallet, s.logger)
	referralService := usecase.NewReferralService(s.repos.Referral, s.repos.Wallet, s.logger)
	taskService := usecase.NewTaskService(s.repos.Task, s.repos.Wallet, s.logger)
	investmentService := usecase.NewInvestmentService(
		s.repos.Product, s.repos.Investment, s.repos.Wallet, taskService, s.logger)

	// Settled deposits advance tasks and pay referral commissions.
	settlementService.AddListener(taskService)
	settlementService.AddListener(referralService)

	// Initialize handlers
	depositHandler := handlers.NewDepositHandler(s.logger, settlementService, gateways)
	walletHandler := handlers.NewWalletHandler(s.logger, walletService)
	investmentHandler := handlers.NewInvestmentHandler(s.logger, investmentService)
	referralHandler := handlers.NewReferralHandler(s.logger, referralService)
	taskHandler := handlers.NewTaskHandler(s.logger, taskService)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/api/v1/products",
		},
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Public routes (no authentication required)
	v1.GET("/products", investmentHandler.GetProducts)

	// Protected routes (require JWT authentication)
	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	deposits := protected.Group("/deposits")
	deposits.POST("", depositHandler.CreateDeposit)
	deposits.POST("/razorpay/verify", depositHandler.VerifyRazorpayDeposit)
	deposits.POST("/paypal/capture", depositHandler.CapturePayPalDeposit)

	protected.GET("/wallet", walletHandler.GetWallet)
	protected.GET("/wallet/transactions", walletHandler.GetTransactions)

	protected.POST("/investments", investmentHandler.Purchase)
	protected.GET("/investments", investmentHandler.GetInvestments)

	protected.GET("/referrals", referralHandler.GetReferrals)
	protected.GET("/tasks", taskHandler.GetTasks)
}
