// internal/domain/cart/composer.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pizzeria-backend/internal/domain/pricing"
)

// ErrInvalidItem is returned when an add-to-cart item fails validation
var ErrInvalidItem = errors.New("invalid line item request")

// Composer builds priced line item trees from add-to-cart requests
type Composer struct {
	prices pricing.PriceSource
	log    *logrus.Logger
}

// NewComposer creates a new line item composer
func NewComposer(prices pricing.PriceSource, log *logrus.Logger) *Composer {
	return &Composer{
		prices: prices,
		log:    log,
	}
}

// Build composes one parent line item with its children and propagates
// prices: each child's total is unit price times quantity, and the
// parent's total is its own price plus the sum of all children. The
// parent total is assigned only after the full child set is attached.
func (c *Composer) Build(ctx context.Context, req AddItemRequest) (*LineItem, error) {
	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	parent, err := c.newLineItem(ctx, req.ID, req.Quantity)
	if err != nil {
		return nil, err
	}

	var childrenTotal int64
	for _, childReq := range req.Children {
		if childReq.ID == "" {
			return nil, fmt.Errorf("%w: child item id is required", ErrInvalidItem)
		}

		child, err := c.newLineItem(ctx, childReq.ID, childReq.Quantity)
		if err != nil {
			return nil, err
		}

		childrenTotal += child.Price.TotalPrice
		parent.Children = append(parent.Children, *child)

		c.log.WithFields(logrus.Fields{
			"parent_id": parent.ID,
			"child_id":  child.ID,
			"product":   childReq.ID,
		}).Debug("Attached child line item")
	}

	// The parent's own total already accounts for its quantity; the tax
	// breakdown reference is preserved across the price update.
	parent.Price = CalculatedPrice{
		UnitPrice:    parent.Price.UnitPrice,
		TotalPrice:   parent.Price.TotalPrice + childrenTotal,
		TaxBreakdown: parent.Price.TaxBreakdown,
	}

	c.log.WithFields(logrus.Fields{
		"line_item_id": parent.ID,
		"product_id":   parent.ReferencedID,
		"total_price":  parent.Price.TotalPrice,
		"children":     len(parent.Children),
	}).Debug("Composed line item")

	return parent, nil
}

// newLineItem builds a single priced node. Every node is removable and
// stackable so bundle children stay independently manageable in the
// cart UI.
func (c *Composer) newLineItem(ctx context.Context, productID string, quantity int) (*LineItem, error) {
	if quantity <= 0 {
		quantity = 1
	}

	unitPrice, found, err := c.prices.PriceOf(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !found {
		c.log.WithField("product_id", productID).Warn("Composing line item with zero fallback price")
	}

	return &LineItem{
		ID:           uuid.New().String(),
		Type:         LineItemTypeProduct,
		ReferencedID: productID,
		Quantity:     quantity,
		Removable:    true,
		Stackable:    true,
		Price: CalculatedPrice{
			UnitPrice:  unitPrice,
			TotalPrice: unitPrice * int64(quantity),
		},
	}, nil
}

func validateItemRequest(req AddItemRequest) error {
	if req.Type != LineItemTypeProduct {
		return fmt.Errorf("%w: unsupported item type %q", ErrInvalidItem, req.Type)
	}
	if req.ID == "" {
		return fmt.Errorf("%w: item id is required", ErrInvalidItem)
	}
	if req.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidItem)
	}
	return nil
}
