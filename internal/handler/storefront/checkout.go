package storefront

import (
	"encoding/json"
	"net/http"

	"github.com/rvasant/kinara/internal/cart"
	"github.com/rvasant/kinara/internal/domain"
	"github.com/rvasant/kinara/internal/handler"
	"github.com/rvasant/kinara/internal/service"
)

// CheckoutHandler submits checkout attempts and resolves suspended gateway
// payments. The cart engine is cleared only when an attempt reports success.
type CheckoutHandler struct {
	checkout service.CheckoutService
	engine   *cart.Engine
}

func NewCheckoutHandler(checkout service.CheckoutService, engine *cart.Engine) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, engine: engine}
}

// Submit handles POST /api/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("checkout.submit", "Invalid request body"))
		return
	}

	outcome, err := h.checkout.Submit(r.Context(), req)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if outcome.Pending != nil {
		handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"pending": outcome.Pending,
		})
		return
	}

	h.respondResult(w, r, outcome.Result)
}

// Confirm handles POST /api/checkout/confirm. Field names follow the
// gateway's callback payload.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RazorpayOrderID   string `json:"razorpay_order_id"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("checkout.confirm", "Invalid request body"))
		return
	}
	if body.RazorpayOrderID == "" || body.RazorpayPaymentID == "" || body.RazorpaySignature == "" {
		handler.ErrorResponse(w, r, domain.Invalid("checkout.confirm", "Missing payment verification fields"))
		return
	}

	result := h.checkout.ConfirmPayment(r.Context(), body.RazorpayOrderID, body.RazorpayPaymentID, body.RazorpaySignature)
	h.respondResult(w, r, result)
}

// Cancel handles POST /api/checkout/cancel
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RazorpayOrderID string `json:"razorpay_order_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("checkout.cancel", "Invalid request body"))
		return
	}

	result := h.checkout.CancelPayment(body.RazorpayOrderID)
	handler.RespondJSON(w, http.StatusOK, result)
}

// respondResult writes a terminal checkout result, clearing the cart when
// the order went through.
func (h *CheckoutHandler) respondResult(w http.ResponseWriter, r *http.Request, result domain.CheckoutResult) {
	if result.Success {
		h.engine.Clear(r.Context())
	}
	handler.RespondJSON(w, http.StatusOK, result)
}
