// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoItems is returned when an add-to-cart batch is empty
	ErrNoItems = errors.New("no items provided")

	// ErrCartMutation wraps failures while composing or committing a
	// batch of line items
	ErrCartMutation = errors.New("cart mutation failed")
)

// Service handles cart business logic. Carts are addressed by session
// token through the Store; there is no ambient cart state.
type Service struct {
	store    Store
	composer *Composer
	log      *logrus.Logger
}

// NewService creates a new cart service
func NewService(store Store, composer *Composer, log *logrus.Logger) *Service {
	return &Service{
		store:    store,
		composer: composer,
		log:      log,
	}
}

// GetCart retrieves the cart for a session token
func (s *Service) GetCart(ctx context.Context, token string) (*Cart, error) {
	c, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	s.recalculate(c)
	return c, nil
}

// AddItems composes every request into a line item tree, then commits
// the whole batch in a single store write. Any composition failure
// aborts the batch before anything is persisted, so the stored cart is
// never left half-mutated. The cart-wide recalculation runs once after
// all items are staged, not per item.
func (s *Service) AddItems(ctx context.Context, token string, reqs []AddItemRequest) (*Cart, error) {
	if len(reqs) == 0 {
		return nil, ErrNoItems
	}

	c, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartMutation, err)
	}

	// Stage all line items before touching the cart.
	staged := make([]LineItem, 0, len(reqs))
	for _, req := range reqs {
		item, err := s.composer.Build(ctx, req)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"token":      token,
				"product_id": req.ID,
			}).WithError(err).Error("Failed to compose line item, aborting batch")
			return nil, fmt.Errorf("%w: %v", ErrCartMutation, err)
		}
		staged = append(staged, *item)
	}

	c.Items = append(c.Items, staged...)
	c.UpdatedAt = time.Now().UTC()
	s.recalculate(c)

	if err := s.store.Save(ctx, token, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCartMutation, err)
	}

	s.log.WithFields(logrus.Fields{
		"token":        token,
		"items_added":  len(staged),
		"total_amount": c.Totals.TotalAmount,
	}).Info("Items added to cart")

	return c, nil
}

// ClearCart removes all items from the cart
func (s *Service) ClearCart(ctx context.Context, token string) error {
	return s.store.Delete(ctx, token)
}

// recalculate recomputes cart totals from the full line item set.
// Parent totals already include their children, so the subtotal sums
// top-level entries only.
func (s *Service) recalculate(c *Cart) {
	var totals CartTotals

	totals.ItemCount = len(c.Items)
	for _, item := range c.Items {
		totals.TotalQuantity += item.Quantity
		totals.SubTotal += item.Price.TotalPrice

		for _, child := range item.Children {
			totals.TotalQuantity += child.Quantity
		}
		for _, tax := range item.Price.TaxBreakdown {
			totals.TaxAmount += tax.Amount
		}
	}

	totals.TotalAmount = totals.SubTotal
	c.Totals = totals
}
