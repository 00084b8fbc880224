// internal/domain/pricing/selection.go
package pricing

import "errors"

// ErrSizeRequired is returned when a selection has no size variant; a
// selection is not priceable without one and must never default to a
// zero total.
var ErrSizeRequired = errors.New("size selection is required")

// Selection represents the shopper's in-progress customization choice
type Selection struct {
	SizeID     string   `json:"sizeId"`
	ToppingIDs []string `json:"toppings"`
	DrinkID    string   `json:"drink,omitempty"`
}

// Validate checks that the selection is priceable
func (s *Selection) Validate() error {
	if s.SizeID == "" {
		return ErrSizeRequired
	}
	return nil
}

// DedupedToppings returns the topping ids with duplicates removed,
// preserving first-seen order. Duplicate ids in a request must never be
// charged twice.
func (s *Selection) DedupedToppings() []string {
	seen := make(map[string]struct{}, len(s.ToppingIDs))
	deduped := make([]string, 0, len(s.ToppingIDs))
	for _, id := range s.ToppingIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	return deduped
}
