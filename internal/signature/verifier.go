// Package signature verifies gateway payment callbacks. The gateway signs
// the pair of order id and payment id with the shared key secret; the
// server recomputes the digest and compares in constant time.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the hex-encoded HMAC-SHA256 digest over
// "<orderID>|<paymentID>" with the shared secret. Exposed so tests and
// sandbox tooling can forge valid callbacks.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a gateway-supplied signature against the expected digest.
// It fails closed: an empty secret, empty identifiers, or a signature that
// is not valid hex all return false. Comparison is constant time.
func Verify(secret, orderID, paymentID, signature string) bool {
	if secret == "" || orderID == "" || paymentID == "" || signature == "" {
		return false
	}

	supplied, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := mac.Sum(nil)

	return hmac.Equal(expected, supplied)
}
