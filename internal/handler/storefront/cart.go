package storefront

import (
	"encoding/json"
	"net/http"

	"github.com/rvasant/kinara/internal/cart"
	"github.com/rvasant/kinara/internal/domain"
	"github.com/rvasant/kinara/internal/handler"
)

// CartHandler exposes the cart engine as a JSON API. Item keys in URLs use
// the flat productId-size-color form.
type CartHandler struct {
	engine *cart.Engine
}

func NewCartHandler(engine *cart.Engine) *CartHandler {
	return &CartHandler{engine: engine}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	handler.RespondJSON(w, http.StatusOK, h.engine.State())
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var line domain.CartLine
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("cart.add", "Invalid request body"))
		return
	}

	state, err := h.engine.AddItem(r.Context(), line)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, state)
}

// UpdateItem handles PUT /api/cart/items/{key}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	key, err := cart.DecodeLegacy(r.PathValue("key"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("cart.update", "Invalid item key"))
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("cart.update", "Invalid request body"))
		return
	}

	state := h.engine.UpdateQuantity(r.Context(), key, body.Quantity)
	handler.RespondJSON(w, http.StatusOK, state)
}

// RemoveItem handles DELETE /api/cart/items/{key}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	key, err := cart.DecodeLegacy(r.PathValue("key"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("cart.remove", "Invalid item key"))
		return
	}

	state := h.engine.RemoveItem(r.Context(), key)
	handler.RespondJSON(w, http.StatusOK, state)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	handler.RespondJSON(w, http.StatusOK, h.engine.Clear(r.Context()))
}
