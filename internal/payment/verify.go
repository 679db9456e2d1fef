package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrVerification means the callback's signature did not check out.  The
// provider may still have captured the payment, so callers must log this
// distinctly: it is a reconciliation case, not just a failed request.
var ErrVerification = errors.New("payment verification failed")

// Verifier checks a checkout callback against the shared provider secret.
type Verifier interface {
	Verify(orderID, paymentID, signature string) error
}

// HMACVerifier implements the provider's signature scheme: the signature
// is hex(HMAC-SHA256("<orderID>|<paymentID>", secret)).
type HMACVerifier struct {
	secret []byte
}

// NewHMACVerifier returns a Verifier keyed with the provider secret.
func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

// Verify recomputes the expected signature and compares in constant time.
func (v *HMACVerifier) Verify(orderID, paymentID, signature string) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return ErrVerification
	}
	if !hmac.Equal([]byte(Sign(orderID, paymentID, v.secret)), []byte(signature)) {
		return ErrVerification
	}
	return nil
}

// Sign computes the callback signature for an order/payment pair.  Exposed
// so harnesses and tests can fabricate valid callbacks.
func Sign(orderID, paymentID string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
