package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rvasant/kinara/internal/gateway"
	"github.com/rvasant/kinara/internal/handler"
)

// RazorpayHandler verifies payment callback signatures on the trusted
// boundary holding the key secret. Field names and response shapes follow
// the gateway's callback contract and must not change.
type RazorpayHandler struct {
	secret string
	logger *slog.Logger
}

func NewRazorpayHandler(secret string, logger *slog.Logger) *RazorpayHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RazorpayHandler{secret: secret, logger: logger}
}

type verifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// VerifyPayment handles POST /webhooks/razorpay/verify
func (h *RazorpayHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("verify: undecodable payload", "error", err)
		handler.RespondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success":  false,
			"verified": false,
			"error":    err.Error(),
		})
		return
	}

	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		handler.RespondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing required payment data",
		})
		return
	}

	if h.secret == "" {
		h.logger.Error("verify: key secret not configured")
		handler.RespondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success":  false,
			"verified": false,
			"error":    "Razorpay secret not configured",
		})
		return
	}

	if gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, h.secret) {
		handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"verified": true,
		})
		return
	}

	h.logger.Warn("verify: signature mismatch",
		"razorpay_order_id", req.RazorpayOrderID,
		"razorpay_payment_id", req.RazorpayPaymentID,
	)
	handler.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success":  false,
		"verified": false,
		"error":    "Signature mismatch",
	})
}
