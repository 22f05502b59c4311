package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/growvest/wallet-service/internal/domain/errors"
	"github.com/growvest/wallet-service/internal/domain/gateway"
)

// newPayPalStub serves the token endpoint plus the given order handlers.
func newPayPalStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "client-id", user)
			assert.Equal(t, "client-secret", pass)
			json.NewEncoder(w).Encode(map[string]string{"access_token": "token-123"})
			return
		}
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		handler(w, r)
	}))
}

func TestProvider_CreateRemoteOrder(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("creates CAPTURE-intent order with decimal amount", func(t *testing.T) {
		server := newPayPalStub(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/checkout/orders", r.URL.Path)

			var body struct {
				Intent        string `json:"intent"`
				PurchaseUnits []struct {
					Amount struct {
						CurrencyCode string `json:"currency_code"`
						Value        string `json:"value"`
					} `json:"amount"`
				} `json:"purchase_units"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "CAPTURE", body.Intent)
			require.Len(t, body.PurchaseUnits, 1)
			assert.Equal(t, "25.00", body.PurchaseUnits[0].Amount.Value)
			assert.Equal(t, "USD", body.PurchaseUnits[0].Amount.CurrencyCode)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"id": "PP-1", "status": "CREATED"})
		})
		defer server.Close()

		p := NewProvider("client-id", "client-secret", "development", logger, WithBaseURL(server.URL))

		order, err := p.CreateRemoteOrder(ctx, &gateway.CreateOrderRequest{
			AmountCents: 2500,
			Currency:    "USD",
			Receipt:     "receipt_1",
		})
		require.NoError(t, err)
		assert.Equal(t, "PP-1", order.OrderID)
		assert.Equal(t, int64(2500), order.AmountCents)
	})

	t.Run("missing credentials fail before any request", func(t *testing.T) {
		p := NewProvider("", "", "development", logger)

		_, err := p.CreateRemoteOrder(ctx, &gateway.CreateOrderRequest{AmountCents: 100, Currency: "USD"})
		assert.ErrorIs(t, err, domainErrors.ErrMisconfiguredCredentials)
	})

	t.Run("token exchange failure is a gateway error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error_description": "Client Authentication failed"})
		}))
		defer server.Close()

		p := NewProvider("client-id", "wrong", "development", logger, WithBaseURL(server.URL))

		_, err := p.CreateRemoteOrder(ctx, &gateway.CreateOrderRequest{AmountCents: 100, Currency: "USD"})
		var gwErr *domainErrors.GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, "AUTH_ERROR", gwErr.Code)
	})
}

func TestProvider_Capture(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	captureBody := func(status, captureID, value string) map[string]interface{} {
		return map[string]interface{}{
			"id":     "PP-1",
			"status": status,
			"purchase_units": []map[string]interface{}{
				{
					"payments": map[string]interface{}{
						"captures": []map[string]interface{}{
							{
								"id":     captureID,
								"status": status,
								"amount": map[string]string{
									"currency_code": "USD",
									"value":         value,
								},
							},
						},
					},
				},
			},
		}
	}

	t.Run("completed capture returns payment id and amount", func(t *testing.T) {
		server := newPayPalStub(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/checkout/orders/PP-1/capture", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(captureBody("COMPLETED", "CAP-9", "25.00"))
		})
		defer server.Close()

		p := NewProvider("client-id", "client-secret", "development", logger, WithBaseURL(server.URL))

		result, err := p.Capture(ctx, "PP-1")
		require.NoError(t, err)
		assert.Equal(t, gateway.CaptureStatusCompleted, result.Status)
		assert.Equal(t, "CAP-9", result.PaymentID)
		assert.Equal(t, int64(2500), result.AmountCents)
	})

	t.Run("pending capture maps to pending", func(t *testing.T) {
		server := newPayPalStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(captureBody("PENDING", "CAP-9", "25.00"))
		})
		defer server.Close()

		p := NewProvider("client-id", "client-secret", "development", logger, WithBaseURL(server.URL))

		result, err := p.Capture(ctx, "PP-1")
		require.NoError(t, err)
		assert.Equal(t, gateway.CaptureStatusPending, result.Status)
	})

	t.Run("API error is surfaced as gateway error", func(t *testing.T) {
		server := newPayPalStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{
				"name":    "UNPROCESSABLE_ENTITY",
				"message": "The requested action could not be performed.",
			})
		})
		defer server.Close()

		p := NewProvider("client-id", "client-secret", "development", logger, WithBaseURL(server.URL))

		_, err := p.Capture(ctx, "PP-1")
		var gwErr *domainErrors.GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, "UNPROCESSABLE_ENTITY", gwErr.Code)
		assert.ErrorIs(t, err, domainErrors.ErrGatewayUnavailable)
	})
}
