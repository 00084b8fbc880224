// internal/domain/pricing/engine.go
package pricing

import (
	"context"

	"github.com/sirupsen/logrus"
)

// PriceSource resolves unit prices from the product catalog. The found
// flag distinguishes a genuinely free product from the permissive zero
// fallback for missing or inactive ones.
type PriceSource interface {
	PriceOf(ctx context.Context, productID string) (int64, bool, error)
	VariantPriceOf(ctx context.Context, toppingProductID, sizeID string) (int64, bool, error)
}

// PriceQuote is a derived total for a selection, never persisted. All
// amounts are in cents. UnpricedIDs lists products that fell back to a
// zero price.
type PriceQuote struct {
	BasePrice     int64    `json:"basePrice"`
	ToppingsPrice int64    `json:"toppingsPrice"`
	DrinkPrice    int64    `json:"drinkPrice"`
	TotalPrice    int64    `json:"totalPrice"`
	UnpricedIDs   []string `json:"unpricedIds,omitempty"`
}

// Engine computes server-authoritative totals for selections
type Engine struct {
	prices PriceSource
	log    *logrus.Logger
}

// NewEngine creates a new pricing engine
func NewEngine(prices PriceSource, log *logrus.Logger) *Engine {
	return &Engine{
		prices: prices,
		log:    log,
	}
}

// ComputeTotal prices a selection: base size price plus the sum of the
// selected topping prices (in the size's context) plus an optional
// drink price. Topping order never affects the result, and duplicate
// topping ids are charged once.
func (e *Engine) ComputeTotal(ctx context.Context, sel Selection) (*PriceQuote, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	quote := &PriceQuote{}

	basePrice, found, err := e.prices.PriceOf(ctx, sel.SizeID)
	if err != nil {
		return nil, err
	}
	if !found {
		quote.UnpricedIDs = append(quote.UnpricedIDs, sel.SizeID)
	}
	quote.BasePrice = basePrice

	for _, toppingID := range sel.DedupedToppings() {
		price, found, err := e.prices.VariantPriceOf(ctx, toppingID, sel.SizeID)
		if err != nil {
			return nil, err
		}
		if !found {
			quote.UnpricedIDs = append(quote.UnpricedIDs, toppingID)
		}
		quote.ToppingsPrice += price
	}

	if sel.DrinkID != "" {
		price, found, err := e.prices.PriceOf(ctx, sel.DrinkID)
		if err != nil {
			return nil, err
		}
		if !found {
			quote.UnpricedIDs = append(quote.UnpricedIDs, sel.DrinkID)
		}
		quote.DrinkPrice = price
	}

	quote.TotalPrice = quote.BasePrice + quote.ToppingsPrice + quote.DrinkPrice

	if len(quote.UnpricedIDs) > 0 {
		e.log.WithFields(logrus.Fields{
			"size_id":      sel.SizeID,
			"unpriced_ids": quote.UnpricedIDs,
		}).Warn("Selection contains products without a resolvable price")
	}

	e.log.WithFields(logrus.Fields{
		"size_id":     sel.SizeID,
		"total_price": quote.TotalPrice,
	}).Debug("Total price calculated")

	return quote, nil
}
