// Package paypal implements the trusted-capture gateway variant. The
// server captures the order directly against PayPal's Checkout API, so the
// capture response is trusted without a callback signature.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/growvest/wallet-service/internal/domain/errors"
	"github.com/growvest/wallet-service/internal/domain/gateway"
	"github.com/growvest/wallet-service/internal/domain/money"
)

const (
	sandboxAPIBaseURL = "https://api-m.sandbox.paypal.com"
	liveAPIBaseURL    = "https://api-m.paypal.com"
	requestTimeout    = 20 * time.Second
)

// Provider implements gateway.CaptureGateway against the PayPal Checkout
// Orders v2 API.
type Provider struct {
	clientID     string
	clientSecret string
	baseURL      string
	client       *http.Client
	logger       *zap.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(url string) Option {
	return func(p *Provider) { p.baseURL = url }
}

// NewProvider creates a PayPal gateway adapter. The live API is used only
// in the production environment.
func NewProvider(clientID, clientSecret, environment string, logger *zap.Logger, opts ...Option) *Provider {
	baseURL := sandboxAPIBaseURL
	if environment == "production" {
		baseURL = liveAPIBaseURL
	}

	p := &Provider{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		client:       &http.Client{Timeout: requestTimeout},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the gateway name
func (p *Provider) Name() string {
	return gateway.NamePayPal
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	ErrorDescription string `json:"error_description"`
}

// getAccessToken exchanges client credentials for a bearer token.
func (p *Provider) getAccessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	httpReq, err := http.NewRequestWithContext(ctx, "POST",
		p.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &domainErrors.GatewayError{
			Code:    "REQUEST_ERROR",
			Message: "Failed to create token request",
			Details: err.Error(),
		}
	}

	httpReq.SetBasicAuth(p.clientID, p.clientSecret)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.logger.Error("PayPalProvider: Token request failed", zap.Error(err))
		return "", &domainErrors.GatewayError{
			Code:    "API_ERROR",
			Message: "PayPal API request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domainErrors.GatewayError{
			Code:    "RESPONSE_ERROR",
			Message: "Failed to read token response",
			Details: err.Error(),
		}
	}

	var token tokenResponse
	if err := json.Unmarshal(respBody, &token); err != nil || resp.StatusCode != http.StatusOK || token.AccessToken == "" {
		p.logger.Error("PayPalProvider: Token exchange failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)))
		return "", &domainErrors.GatewayError{
			Code:    "AUTH_ERROR",
			Message: "Failed to get PayPal access token",
			Details: token.ErrorDescription,
		}
	}

	return token.AccessToken, nil
}

// CreateRemoteOrder creates a CAPTURE-intent order with PayPal. The minor
// unit amount is formatted as a decimal value string exactly once.
func (p *Provider) CreateRemoteOrder(ctx context.Context, req *gateway.CreateOrderRequest) (*gateway.RemoteOrder, error) {
	if p.clientID == "" || p.clientSecret == "" {
		return nil, domainErrors.ErrMisconfiguredCredentials
	}

	accessToken, err := p.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"reference_id": req.Receipt,
				"amount": map[string]string{
					"currency_code": req.Currency,
					"value":         money.FromCents(req.AmountCents).StringFixed(2),
				},
			},
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, &domainErrors.GatewayError{
			Code:    "MARSHAL_ERROR",
			Message: "Failed to prepare request",
			Details: err.Error(),
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST",
		p.baseURL+"/v2/checkout/orders", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, &domainErrors.GatewayError{
			Code:    "REQUEST_ERROR",
			Message: "Failed to create request",
			Details: err.Error(),
		}
	}

	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.logger.Error("PayPalProvider: Order creation request failed", zap.Error(err))
		return nil, &domainErrors.GatewayError{
			Code:    "API_ERROR",
			Message: "PayPal API request failed",
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

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var errResp struct {
			Name    string `json:"name"`
			Message string `json:"message"`
		}
		json.Unmarshal(respBody, &errResp)

		p.logger.Error("PayPalProvider: Order creation failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)))

		return nil, &domainErrors.GatewayError{
			Code:    errResp.Name,
			Message: errResp.Message,
			Details: string(respBody),
		}
	}

	var order struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, &domainErrors.GatewayError{
			Code:    "PARSE_ERROR",
			Message: "Failed to parse response",
			Details: err.Error(),
		}
	}

	p.logger.Info("PayPalProvider: Order created",
		zap.String("order_id", order.ID),
		zap.Int64("amount", req.AmountCents))

	return &gateway.RemoteOrder{
		OrderID:     order.ID,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
	}, nil
}

type captureResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
				Amount struct {
					CurrencyCode string `json:"currency_code"`
					Value        string `json:"value"`
				} `json:"amount"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// Capture performs the server-to-server capture call. Only a COMPLETED
// status is treated as settled.
func (p *Provider) Capture(ctx context.Context, orderID string) (*gateway.CaptureResult, error) {
	if p.clientID == "" || p.clientSecret == "" {
		return nil, domainErrors.ErrMisconfiguredCredentials
	}

	accessToken, err := p.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", p.baseURL, orderID)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer([]byte("{}")))
	if err != nil {
		return nil, &domainErrors.GatewayError{
			Code:    "REQUEST_ERROR",
			Message: "Failed to create request",
			Details: err.Error(),
		}
	}

	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.logger.Error("PayPalProvider: Capture request failed",
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, &domainErrors.GatewayError{
			Code:    "API_ERROR",
			Message: "PayPal API request failed",
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

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var errResp struct {
			Name    string `json:"name"`
			Message string `json:"message"`
		}
		json.Unmarshal(respBody, &errResp)

		p.logger.Error("PayPalProvider: Capture failed",
			zap.String("order_id", orderID),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)))

		return nil, &domainErrors.GatewayError{
			Code:    errResp.Name,
			Message: errResp.Message,
			Details: string(respBody),
		}
	}

	var captured captureResponse
	if err := json.Unmarshal(respBody, &captured); err != nil {
		return nil, &domainErrors.GatewayError{
			Code:    "PARSE_ERROR",
			Message: "Failed to parse response",
			Details: err.Error(),
		}
	}

	result := &gateway.CaptureResult{
		OrderID: captured.ID,
		Status:  gateway.CaptureStatusDeclined,
	}

	switch captured.Status {
	case "COMPLETED":
		result.Status = gateway.CaptureStatusCompleted
	case "PENDING", "PAYER_ACTION_REQUIRED":
		result.Status = gateway.CaptureStatusPending
	}

	if len(captured.PurchaseUnits) > 0 && len(captured.PurchaseUnits[0].Payments.Captures) > 0 {
		capture := captured.PurchaseUnits[0].Payments.Captures[0]
		result.PaymentID = capture.ID
		if cents, err := money.ParseCents(capture.Amount.Value); err == nil {
			result.AmountCents = cents
		}
	}

	p.logger.Info("PayPalProvider: Capture processed",
		zap.String("order_id", orderID),
		zap.String("status", captured.Status),
		zap.String("payment_id", result.PaymentID))

	return result, nil
}
