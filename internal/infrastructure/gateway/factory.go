package gateway

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/growvest/wallet-service/internal/config"
	domainGateway "github.com/growvest/wallet-service/internal/domain/gateway"
	"github.com/growvest/wallet-service/internal/infrastructure/gateway/paypal"
	"github.com/growvest/wallet-service/internal/infrastructure/gateway/razorpay"
)

// Factory creates payment gateway adapters by name.
type Factory struct {
	config *config.Config
	logger *zap.Logger
}

// NewFactory creates a new gateway factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		config: cfg,
		logger: logger,
	}
}

// GetGateway returns a gateway adapter for the given name. Defaults to
// Razorpay when name is empty.
func (f *Factory) GetGateway(name string) (domainGateway.Gateway, error) {
	if name == "" {
		name = domainGateway.NameRazorpay
	}

	switch name {
	case domainGateway.NameRazorpay:
		return f.createRazorpay()
	case domainGateway.NamePayPal:
		return f.createPayPal()
	default:
		return nil, fmt.Errorf("unsupported gateway: %s", name)
	}
}

func (f *Factory) createRazorpay() (domainGateway.SignatureGateway, error) {
	cfg := f.config.Service.Razorpay
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, fmt.Errorf("razorpay keys not configured")
	}
	return razorpay.NewProvider(cfg.KeyID, cfg.KeySecret, f.logger), nil
}

func (f *Factory) createPayPal() (domainGateway.CaptureGateway, error) {
	cfg := f.config.Service.PayPal
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("paypal credentials not configured")
	}
	return paypal.NewProvider(cfg.ClientID, cfg.ClientSecret, f.config.Service.Environment, f.logger), nil
}
