package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Signature computes the callback signature the gateway is expected to send:
// base64(HMAC-SHA256(secret, orderID + "|" + paymentID)).
//
// Razorpay's documented scheme hex-encodes this digest; the verification
// contract this system interoperates with uses the base64 form, so the digest
// is computed here rather than through the SDK helper.
func Signature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches the expected digest for
// the order/payment pair. Pure function of its four inputs: no side effects,
// safe to retry, must only run on a trusted boundary holding the secret.
// The comparison is case-sensitive and exact.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	expected := Signature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
