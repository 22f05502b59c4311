package signature_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/growvest/wallet-service/internal/signature"
)

const testSecret = "test-key-secret"

func TestVerifyValidSignature(t *testing.T) {
	sig := signature.Sign(testSecret, "order_abc", "pay_xyz")
	assert.True(t, signature.Verify(testSecret, "order_abc", "pay_xyz", sig))
}

func TestVerifyRejectsTamperedPaymentID(t *testing.T) {
	// Signature computed over a different payment id than the one supplied.
	sig := signature.Sign(testSecret, "order_abc", "pay_other")
	assert.False(t, signature.Verify(testSecret, "order_abc", "pay_xyz", sig))
}

func TestVerifyRejectsArbitraryHex(t *testing.T) {
	fake := strings.Repeat("ab", 32)
	assert.False(t, signature.Verify(testSecret, "order_abc", "pay_xyz", fake))
}

func TestVerifyFailsClosed(t *testing.T) {
	valid := signature.Sign(testSecret, "order_abc", "pay_xyz")

	tests := []struct {
		name      string
		secret    string
		orderID   string
		paymentID string
		sig       string
	}{
		{name: "empty secret", secret: "", orderID: "order_abc", paymentID: "pay_xyz", sig: valid},
		{name: "empty order id", secret: testSecret, orderID: "", paymentID: "pay_xyz", sig: valid},
		{name: "empty payment id", secret: testSecret, orderID: "order_abc", paymentID: "", sig: valid},
		{name: "empty signature", secret: testSecret, orderID: "order_abc", paymentID: "pay_xyz", sig: ""},
		{name: "non-hex signature", secret: testSecret, orderID: "order_abc", paymentID: "pay_xyz", sig: "not-hex!"},
		{name: "truncated signature", secret: testSecret, orderID: "order_abc", paymentID: "pay_xyz", sig: valid[:32]},
		{name: "wrong secret", secret: "other-secret", orderID: "order_abc", paymentID: "pay_xyz", sig: valid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, signature.Verify(tt.secret, tt.orderID, tt.paymentID, tt.sig))
		})
	}
}

// The separator prevents ("ab","c") and ("a","bc") from signing identically.
func TestSignSeparatorDisambiguates(t *testing.T) {
	assert.NotEqual(t,
		signature.Sign(testSecret, "ab", "c"),
		signature.Sign(testSecret, "a", "bc"))
}
