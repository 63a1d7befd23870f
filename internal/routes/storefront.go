package routes

import (
	"github.com/rvasant/kinara/internal/router"
)

// RegisterStorefrontRoutes registers the customer-facing cart, checkout and
// order API routes.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Shopping cart
	r.Get("/api/cart", deps.CartHandler.GetCart)
	r.Post("/api/cart/items", deps.CartHandler.AddItem)
	r.Put("/api/cart/items/{key}", deps.CartHandler.UpdateItem)
	r.Delete("/api/cart/items/{key}", deps.CartHandler.RemoveItem)
	r.Delete("/api/cart", deps.CartHandler.ClearCart)

	// Checkout flow
	r.Post("/api/checkout", deps.CheckoutHandler.Submit)
	r.Post("/api/checkout/confirm", deps.CheckoutHandler.Confirm)
	r.Post("/api/checkout/cancel", deps.CheckoutHandler.Cancel)

	// Order read-back
	r.Get("/api/orders", deps.OrderHandler.ListOrders)
	r.Get("/api/orders/{id}", deps.OrderHandler.GetOrder)
}
