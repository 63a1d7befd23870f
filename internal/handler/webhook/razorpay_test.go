package webhook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rvasant/kinara/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func postVerify(t *testing.T, h *RazorpayHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/razorpay/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.VerifyPayment(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestVerifyPaymentValid(t *testing.T) {
	h := NewRazorpayHandler(testSecret, nil)
	sig := gateway.Signature("order_abc", "pay_123", testSecret)

	payload, err := json.Marshal(map[string]string{
		"razorpay_order_id":   "order_abc",
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  sig,
	})
	require.NoError(t, err)

	rec := postVerify(t, h, string(payload))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["verified"])
}

func TestVerifyPaymentKnownVector(t *testing.T) {
	// base64(HMAC-SHA256("test_secret", "order_abc|pay_123"))
	const wantSig = "KuJlt3lOodYNK/vLa+UNngWbzmB1d66vg8EpcJCo38c="

	h := NewRazorpayHandler(testSecret, nil)
	rec := postVerify(t, h, `{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_123","razorpay_signature":"`+wantSig+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["verified"])
}

func TestVerifyPaymentMismatch(t *testing.T) {
	h := NewRazorpayHandler(testSecret, nil)

	rec := postVerify(t, h, `{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_123","razorpay_signature":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, false, body["verified"])
	assert.Equal(t, "Signature mismatch", body["error"])
}

func TestVerifyPaymentMissingFields(t *testing.T) {
	h := NewRazorpayHandler(testSecret, nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing order id", `{"razorpay_payment_id":"pay_123","razorpay_signature":"sig"}`},
		{"missing payment id", `{"razorpay_order_id":"order_abc","razorpay_signature":"sig"}`},
		{"missing signature", `{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_123"}`},
		{"empty object", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postVerify(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Missing required payment data", decodeBody(t, rec)["error"])
		})
	}
}

func TestVerifyPaymentMissingSecret(t *testing.T) {
	h := NewRazorpayHandler("", nil)

	rec := postVerify(t, h, `{"razorpay_order_id":"o","razorpay_payment_id":"p","razorpay_signature":"s"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, false, body["verified"])
	assert.Equal(t, "Razorpay secret not configured", body["error"])
}

func TestVerifyPaymentBadJSON(t *testing.T) {
	h := NewRazorpayHandler(testSecret, nil)

	rec := postVerify(t, h, `not json`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["verified"])
}
