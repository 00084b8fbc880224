// internal/domain/cart/entity.go
package cart

import "time"

// LineItemTypeProduct is the only line item type the storefront composes
const LineItemTypeProduct = "product"

// TaxEntry represents one component of a line item's tax breakdown.
// Tax amounts are computed by the external cart pipeline and carried
// here as opaque values.
type TaxEntry struct {
	Rate   float64 `json:"rate"`
	Amount int64   `json:"amount"`
}

// CalculatedPrice represents a line item's price record in cents
type CalculatedPrice struct {
	UnitPrice    int64      `json:"unit_price"`
	TotalPrice   int64      `json:"total_price"`
	TaxBreakdown []TaxEntry `json:"tax_breakdown,omitempty"`
}

// LineItem represents one cart entry, optionally with nested children.
// A customized pizza is one parent (the size variant) with its toppings
// and drink attached as sibling children.
type LineItem struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	ReferencedID string          `json:"referenced_id"`
	Quantity     int             `json:"quantity"`
	Removable    bool            `json:"removable"`
	Stackable    bool            `json:"stackable"`
	Children     []LineItem      `json:"children,omitempty"`
	Price        CalculatedPrice `json:"price"`
}

// Cart represents one shopper's cart, keyed by session token
type Cart struct {
	Token     string     `json:"token"`
	Items     []LineItem `json:"items"`
	Totals    CartTotals `json:"totals"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartTotals represents calculated cart totals
type CartTotals struct {
	ItemCount     int   `json:"item_count"`     // Number of top-level entries
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities, children included
	SubTotal      int64 `json:"sub_total"`
	TaxAmount     int64 `json:"tax_amount"`
	TotalAmount   int64 `json:"total_amount"`
}

// ChildItemRequest represents one child of an add-to-cart item
type ChildItemRequest struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// AddItemRequest represents one tagged add-to-cart item. Only product
// items exist today; the type tag keeps the wire format explicit.
type AddItemRequest struct {
	Type     string             `json:"type" binding:"required"`
	ID       string             `json:"id" binding:"required"`
	Quantity int                `json:"quantity"`
	Children []ChildItemRequest `json:"children,omitempty"`
}

// NewCart creates an empty cart for a session token
func NewCart(token string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		Token:     token,
		Items:     []LineItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
