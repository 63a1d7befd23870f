package domain

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrInvalidQuantity = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrInvalidLineList = &Error{Code: EINVALID, Message: "Snapshot is not a well-formed line list"}
	ErrEmptyProductID  = &Error{Code: EINVALID, Message: "Product ID is required"}
)

// CartLine is one (product, variant) entry with a quantity in the shopper's
// cart. Identity is the (ProductID, Size, Color) tuple; absent size/color are
// normalized to sentinel values so two lines differing only by an unset
// attribute are the same line.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// Subtotal returns UnitPrice * Quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Validate checks the invariants a line must satisfy before entering the cart.
func (l CartLine) Validate() error {
	if l.ProductID == "" {
		return ErrEmptyProductID
	}
	if l.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if l.UnitPrice.IsNegative() {
		return Errorf(EINVALID, "cart.validate", "unit price must not be negative")
	}
	return nil
}

// CartState is the engine's authoritative view of the cart.
// Total and ItemCount are derived; they are recomputed on every mutation and
// never mutated independently.
type CartState struct {
	Lines     []CartLine      `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// ComputeTotals derives Total (rounded to 2 places) and ItemCount from lines.
func ComputeTotals(lines []CartLine) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, l := range lines {
		total = total.Add(l.Subtotal())
		count += l.Quantity
	}
	return total.Round(2), count
}
