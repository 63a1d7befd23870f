package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rvasant/kinara/internal/cart"
	"github.com/rvasant/kinara/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *cart.Engine {
	t.Helper()
	store, err := cart.NewFileStore(filepath.Join(t.TempDir(), "cart.json"))
	require.NoError(t, err)
	return cart.NewEngine(context.Background(), store, nil)
}

func newCartRouter(engine *cart.Engine) http.Handler {
	h := NewCartHandler(engine)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cart", h.GetCart)
	mux.HandleFunc("POST /api/cart/items", h.AddItem)
	mux.HandleFunc("PUT /api/cart/items/{key}", h.UpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{key}", h.RemoveItem)
	mux.HandleFunc("DELETE /api/cart", h.ClearCart)
	return mux
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) domain.CartState {
	t.Helper()
	var state domain.CartState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	return state
}

func TestCartEndpoints(t *testing.T) {
	router := newCartRouter(newTestEngine(t))

	rec := doJSON(t, router, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeState(t, rec).ItemCount)

	rec = doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"product_id":"prod-1","name":"Linen Kurta","unit_price":"250.00","quantity":2,"size":"M"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeState(t, rec)
	assert.Equal(t, 2, state.ItemCount)
	assert.Equal(t, "500.00", state.Total.StringFixed(2))

	// Same identity merges rather than appending.
	rec = doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"product_id":"prod-1","name":"Linen Kurta","unit_price":"250.00","quantity":1,"size":"M"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeState(t, rec)
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 3, state.Lines[0].Quantity)

	rec = doJSON(t, router, http.MethodPut, "/api/cart/items/prod-1-M-nocolor", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeState(t, rec)
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 5, state.Lines[0].Quantity)

	rec = doJSON(t, router, http.MethodDelete, "/api/cart/items/prod-1-M-nocolor", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeState(t, rec).Lines)

	rec = doJSON(t, router, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeState(t, rec).ItemCount)
}

func TestCartAddItemInvalid(t *testing.T) {
	router := newCartRouter(newTestEngine(t))

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"product_id":"","name":"x","unit_price":"1.00","quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"product_id":"p","name":"x","unit_price":"1.00","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/cart/items", `{bad json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartUpdateUnknownKeyLeavesStateUnchanged(t *testing.T) {
	router := newCartRouter(newTestEngine(t))

	rec := doJSON(t, router, http.MethodPost, "/api/cart/items",
		`{"product_id":"prod-1","name":"Kurta","unit_price":"100.00","quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/cart/items/ghost-nosize-nocolor", `{"quantity":4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeState(t, rec)
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 1, state.Lines[0].Quantity)
}
