package routes

import (
	"github.com/rvasant/kinara/internal/router"
)

// RegisterWebhookRoutes registers gateway-facing callback routes. These run
// on the trusted boundary holding the signing secret.
func RegisterWebhookRoutes(r *router.Router, deps WebhookDeps) {
	r.Post("/webhooks/razorpay/verify", deps.RazorpayHandler.VerifyPayment)
}
