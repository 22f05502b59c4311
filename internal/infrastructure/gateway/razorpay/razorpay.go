// Package razorpay implements the redirect/checkout gateway variant. The
// client drives Razorpay's embedded checkout with the order id returned
// here; the resulting callback carries payment id and signature, verified
// server-side before any credit.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/growvest/wallet-service/internal/domain/errors"
	"github.com/growvest/wallet-service/internal/domain/gateway"
	"github.com/growvest/wallet-service/internal/signature"
)

const (
	defaultAPIBaseURL = "https://api.razorpay.com"
	apiVersion        = "v1"
	requestTimeout    = 15 * time.Second
)

// Provider implements gateway.SignatureGateway against the Razorpay Orders
// API.
type Provider struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
	logger    *zap.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API base URL. Used by tests and sandbox setups.
func WithBaseURL(url string) Option {
	return func(p *Provider) { p.baseURL = url }
}

// NewProvider creates a Razorpay gateway adapter.
func NewProvider(keyID, keySecret string, logger *zap.Logger, opts ...Option) *Provider {
	p := &Provider{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultAPIBaseURL,
		client:    &http.Client{Timeout: requestTimeout},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the gateway name
func (p *Provider) Name() string {
	return gateway.NameRazorpay
}

// CheckoutKeyID returns the public key id embedded in the checkout widget.
func (p *Provider) CheckoutKeyID() string {
	return p.keyID
}

type createOrderBody struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// CreateRemoteOrder creates an order with Razorpay. The amount is already
// in minor units; no conversion happens here.
func (p *Provider) CreateRemoteOrder(ctx context.Context, req *gateway.CreateOrderRequest) (*gateway.RemoteOrder, error) {
	if p.keyID == "" || p.keySecret == "" {
		return nil, domainErrors.ErrMisconfiguredCredentials
	}

	body := createOrderBody{
		Amount:   req.AmountCents,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, &domainErrors.GatewayError{
			Code:    "MARSHAL_ERROR",
			Message: "Failed to prepare request",
			Details: err.Error(),
		}
	}

	url := fmt.Sprintf("%s/%s/orders", p.baseURL, apiVersion)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, &domainErrors.GatewayError{
			Code:    "REQUEST_ERROR",
			Message: "Failed to create request",
			Details: err.Error(),
		}
	}

	httpReq.SetBasicAuth(p.keyID, p.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.logger.Error("RazorpayProvider: Order creation request failed", zap.Error(err))
		return nil, &domainErrors.GatewayError{
			Code:    "API_ERROR",
			Message: "Razorpay API request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domainErrors.GatewayError{
			Code:    "RESPONSE_ERROR",
			Message: "Failed to read response",
			Details: err.Error(),
		}
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		}
		json.Unmarshal(respBody, &errResp)

		p.logger.Error("RazorpayProvider: Order creation failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)))

		return nil, &domainErrors.GatewayError{
			Code:    errResp.Error.Code,
			Message: errResp.Error.Description,
			Details: string(respBody),
		}
	}

	var order orderResponse
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, &domainErrors.GatewayError{
			Code:    "PARSE_ERROR",
			Message: "Failed to parse response",
			Details: err.Error(),
		}
	}

	p.logger.Info("RazorpayProvider: Order created",
		zap.String("order_id", order.ID),
		zap.Int64("amount", order.Amount),
		zap.String("receipt", req.Receipt))

	return &gateway.RemoteOrder{
		OrderID:     order.ID,
		AmountCents: order.Amount,
		Currency:    order.Currency,
	}, nil
}

// VerifySignature checks the checkout callback signature against the key
// secret.
func (p *Provider) VerifySignature(orderID, paymentID, sig string) bool {
	return signature.Verify(p.keySecret, orderID, paymentID, sig)
}
