package storefront

import (
	"net/http"

	"github.com/rvasant/kinara/internal/handler"
	"github.com/rvasant/kinara/internal/service"
)

// OrderHandler serves order history and confirmation reads.
type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	view, err := h.orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   view,
	})
}

// ListOrders handles GET /api/orders?user_id=...
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	views, err := h.orders.ListUserOrders(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  views,
	})
}
