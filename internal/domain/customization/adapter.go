// internal/domain/customization/adapter.go
package customization

import (
	"context"

	"github.com/your-org/pizzeria-backend/internal/domain/catalog"
)

// ToppingCatalog adapts the catalog service to the ToppingLoader port,
// binding the topping category name so sessions only deal in option ids
type ToppingCatalog struct {
	Catalog interface {
		ListToppingsForSize(ctx context.Context, categoryName, optionID string) ([]catalog.Topping, error)
	}
	Category string
}

// ToppingsForOption loads the toppings matching a size option context
func (t ToppingCatalog) ToppingsForOption(ctx context.Context, optionID string) ([]catalog.Topping, error) {
	return t.Catalog.ListToppingsForSize(ctx, t.Category, optionID)
}
