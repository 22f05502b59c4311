package razorpay

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
	"github.com/growvest/wallet-service/internal/signature"
)

func TestProvider_CreateRemoteOrder(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("creates order with basic auth and minor units", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/orders", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "rzp_test_key", user)
			assert.Equal(t, "secret", pass)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(49900), body["amount"])
			assert.Equal(t, "INR", body["currency"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":       "order_abc",
				"amount":   49900,
				"currency": "INR",
				"status":   "created",
			})
		}))
		defer server.Close()

		p := NewProvider("rzp_test_key", "secret", logger, WithBaseURL(server.URL))

		order, err := p.CreateRemoteOrder(ctx, &gateway.CreateOrderRequest{
			AmountCents: 49900,
			Currency:    "INR",
			Receipt:     "receipt_1",
		})
		require.NoError(t, err)
		assert.Equal(t, "order_abc", order.OrderID)
		assert.Equal(t, int64(49900), order.AmountCents)
	})

	t.Run("missing keys fail before any request", func(t *testing.T) {
		p := NewProvider("", "", logger)

		_, err := p.CreateRemoteOrder(ctx, &gateway.CreateOrderRequest{AmountCents: 100, Currency: "INR"})
		assert.ErrorIs(t, err, domainErrors.ErrMisconfiguredCredentials)
	})

	t.Run("API error is surfaced as gateway error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{
					"code":        "BAD_REQUEST_ERROR",
					"description": "amount must be at least 100",
				},
			})
		}))
		defer server.Close()

		p := NewProvider("rzp_test_key", "secret", logger, WithBaseURL(server.URL))

		_, err := p.CreateRemoteOrder(ctx, &gateway.CreateOrderRequest{AmountCents: 1, Currency: "INR"})
		require.Error(t, err)

		var gwErr *domainErrors.GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, "BAD_REQUEST_ERROR", gwErr.Code)
		assert.ErrorIs(t, err, domainErrors.ErrGatewayUnavailable)
	})

	t.Run("unreachable server maps to gateway unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // immediately unreachable

		p := NewProvider("rzp_test_key", "secret", logger, WithBaseURL(server.URL))

		_, err := p.CreateRemoteOrder(ctx, &gateway.CreateOrderRequest{AmountCents: 100, Currency: "INR"})
		assert.ErrorIs(t, err, domainErrors.ErrGatewayUnavailable)
	})
}

func TestProvider_VerifySignature(t *testing.T) {
	logger := zap.NewNop()
	p := NewProvider("rzp_test_key", "secret", logger)

	t.Run("accepts signature keyed with the key secret", func(t *testing.T) {
		sig := signature.Sign("secret", "order_abc", "pay_xyz")
		assert.True(t, p.VerifySignature("order_abc", "pay_xyz", sig))
	})

	t.Run("rejects signature keyed with another secret", func(t *testing.T) {
		sig := signature.Sign("other", "order_abc", "pay_xyz")
		assert.False(t, p.VerifySignature("order_abc", "pay_xyz", sig))
	})
}

func TestProvider_CheckoutKeyID(t *testing.T) {
	p := NewProvider("rzp_test_key", "secret", zap.NewNop())
	assert.Equal(t, "rzp_test_key", p.CheckoutKeyID())
}
