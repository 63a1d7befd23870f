package routes

import (
	"github.com/rvasant/kinara/internal/handler/storefront"
	"github.com/rvasant/kinara/internal/handler/webhook"
)

// StorefrontDeps contains dependencies for the storefront API routes.
type StorefrontDeps struct {
	CartHandler     *storefront.CartHandler
	CheckoutHandler *storefront.CheckoutHandler
	OrderHandler    *storefront.OrderHandler
}

// WebhookDeps contains dependencies for webhook routes.
type WebhookDeps struct {
	RazorpayHandler *webhook.RazorpayHandler
}
