package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rvasant/kinara/internal/domain"
	"github.com/rvasant/kinara/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCheckout implements service.CheckoutService with canned responses.
type stubCheckout struct {
	submitOutcome *service.SubmitOutcome
	submitErr     error
	confirmResult domain.CheckoutResult
	cancelResult  domain.CheckoutResult

	confirmedWith []string
}

func (s *stubCheckout) Submit(ctx context.Context, req domain.CheckoutRequest) (*service.SubmitOutcome, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return s.submitOutcome, nil
}

func (s *stubCheckout) ConfirmPayment(ctx context.Context, gatewayOrderID, paymentID, signature string) domain.CheckoutResult {
	s.confirmedWith = []string{gatewayOrderID, paymentID, signature}
	return s.confirmResult
}

func (s *stubCheckout) CancelPayment(gatewayOrderID string) domain.CheckoutResult {
	return s.cancelResult
}

const submitBody = `{
	"lines": [{"product_id":"prod-1","name":"Kurta","unit_price":"500.00","quantity":1}],
	"subtotal":"500.00","tax":"0","shipping":"0","total":"500.00",
	"shipping_address":{"name":"Asha Rao","line1":"14 Marine Drive","city":"Mumbai","state":"MH","postal_code":"400001","country":"IN"},
	"same_as_shipping":true,
	"payment_method":"cod",
	"user_id":"user-1","user_email":"asha@example.com"
}`

func postCheckout(t *testing.T, h *CheckoutHandler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/checkout", h.Submit)
	mux.HandleFunc("POST /api/checkout/confirm", h.Confirm)
	mux.HandleFunc("POST /api/checkout/cancel", h.Cancel)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.AddItem(context.Background(), domain.CartLine{
		ProductID: "prod-1", Name: "Kurta",
		UnitPrice: decimalFromString(t, "500.00"), Quantity: 1,
	})
	require.NoError(t, err)

	stub := &stubCheckout{submitOutcome: &service.SubmitOutcome{
		Result: domain.CheckoutResult{Success: true, OrderID: "id-1", Message: "Order confirmed successfully!"},
	}}
	h := NewCheckoutHandler(stub, engine)

	rec := postCheckout(t, h, "/api/checkout", submitBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.CheckoutResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, "id-1", result.OrderID)

	assert.Equal(t, 0, engine.State().ItemCount, "successful checkout must clear the cart")
}

func TestSubmitFailureKeepsCart(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.AddItem(context.Background(), domain.CartLine{
		ProductID: "prod-1", Name: "Kurta",
		UnitPrice: decimalFromString(t, "500.00"), Quantity: 1,
	})
	require.NoError(t, err)

	stub := &stubCheckout{submitOutcome: &service.SubmitOutcome{
		Result: domain.CheckoutResult{Success: false, Message: "Failed to process payment. Please try again."},
	}}
	h := NewCheckoutHandler(stub, engine)

	rec := postCheckout(t, h, "/api/checkout", submitBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, engine.State().ItemCount, "failed checkout must leave the cart intact for retry")
}

func TestSubmitPending(t *testing.T) {
	engine := newTestEngine(t)
	stub := &stubCheckout{submitOutcome: &service.SubmitOutcome{
		Pending: &service.PendingPayment{
			GatewayOrderID: "order_x", AmountPaise: 50000, Currency: "INR", KeyID: "rzp_test_key",
		},
	}}
	h := NewCheckoutHandler(stub, engine)

	rec := postCheckout(t, h, "/api/checkout", submitBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                    `json:"success"`
		Pending *service.PendingPayment `json:"pending"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Pending)
	assert.Equal(t, "order_x", body.Pending.GatewayOrderID)
	assert.Equal(t, int64(50000), body.Pending.AmountPaise)
}

func TestSubmitValidationError(t *testing.T) {
	stub := &stubCheckout{submitErr: domain.ErrEmptyCheckout}
	h := NewCheckoutHandler(stub, newTestEngine(t))

	rec := postCheckout(t, h, "/api/checkout", `{"lines":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirmPassesCallbackFields(t *testing.T) {
	stub := &stubCheckout{confirmResult: domain.CheckoutResult{Success: true, OrderID: "id-2", Message: "Order confirmed successfully!"}}
	h := NewCheckoutHandler(stub, newTestEngine(t))

	rec := postCheckout(t, h, "/api/checkout/confirm",
		`{"razorpay_order_id":"order_x","razorpay_payment_id":"pay_y","razorpay_signature":"sig_z"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"order_x", "pay_y", "sig_z"}, stub.confirmedWith)
}

func TestConfirmMissingFields(t *testing.T) {
	stub := &stubCheckout{}
	h := NewCheckoutHandler(stub, newTestEngine(t))

	rec := postCheckout(t, h, "/api/checkout/confirm", `{"razorpay_order_id":"order_x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, stub.confirmedWith)
}

func TestCancel(t *testing.T) {
	stub := &stubCheckout{cancelResult: domain.CheckoutResult{Success: false, Message: "Payment cancelled by user"}}
	h := NewCheckoutHandler(stub, newTestEngine(t))

	rec := postCheckout(t, h, "/api/checkout/cancel", `{"razorpay_order_id":"order_x"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.CheckoutResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.Equal(t, "Payment cancelled by user", result.Message)
}
