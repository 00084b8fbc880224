// internal/domain/catalog/pricing.go
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PriceResolver resolves unit prices from the catalog. Missing or
// inactive products resolve to a zero price with found=false instead of
// an error, so a broken catalog entry never blocks checkout; callers are
// expected to surface the flag.
type PriceResolver struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewPriceResolver creates a new price resolver
func NewPriceResolver(db *gorm.DB, log *logrus.Logger) *PriceResolver {
	return &PriceResolver{
		db:  db,
		log: log,
	}
}

// PriceOf returns the unit price of an active product in cents. The
// second return value is false when the product is missing or inactive.
func (r *PriceResolver) PriceOf(ctx context.Context, productID string) (int64, bool, error) {
	var product Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", productID, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.WithField("product_id", productID).Warn("No price found for product, falling back to zero")
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%w: failed to resolve price for %s: %v", ErrCatalogUnavailable, productID, err)
	}

	return product.Price, true, nil
}

// VariantPriceOf returns the unit price of a topping product selected in
// the context of a size. The topping id identifies a per-size child
// variant, so the id alone determines the price; sizeID is carried as
// log context.
func (r *PriceResolver) VariantPriceOf(ctx context.Context, toppingProductID, sizeID string) (int64, bool, error) {
	r.log.WithFields(logrus.Fields{
		"topping_id": toppingProductID,
		"size_id":    sizeID,
	}).Debug("Resolving topping price")

	return r.PriceOf(ctx, toppingProductID)
}
