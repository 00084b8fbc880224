// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrNoVariants is returned when a base product has no active size
	// variants; without sizes the product cannot be customized at all.
	ErrNoVariants = errors.New("no variants found for product")

	// ErrCatalogUnavailable wraps backend query failures
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// Service handles catalog queries for the order customization flow
type Service struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{
		db:  db,
		log: log,
	}
}

// ListSizeVariants returns the active size variants of a base product,
// ascending by price
func (s *Service) ListSizeVariants(ctx context.Context, baseProductID string) ([]Variant, error) {
	var products []Product
	err := s.db.WithContext(ctx).
		Preload("Options").
		Where("parent_id = ? AND is_active = ?", baseProductID, true).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load variants for %s: %v", ErrCatalogUnavailable, baseProductID, err)
	}

	if len(products) == 0 {
		s.log.WithField("product_id", baseProductID).Warn("No variants found for product")
		return nil, ErrNoVariants
	}

	return variantsByPrice(products), nil
}

// variantsByPrice maps child products to variant DTOs sorted by price
// ascending, so the cheapest size renders as the default option
func variantsByPrice(products []Product) []Variant {
	variants := make([]Variant, 0, len(products))
	for _, p := range products {
		v := Variant{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
		}
		if ids := p.OptionIDs(); len(ids) > 0 {
			v.OptionID = ids[0]
		}
		variants = append(variants, v)
	}

	sort.Slice(variants, func(i, j int) bool {
		return variants[i].Price < variants[j].Price
	})

	return variants
}

// ResolveOptionID returns the first option id associated with a variant,
// or an empty string when the variant carries none
func (s *Service) ResolveOptionID(ctx context.Context, variantID string) (string, error) {
	s.log.WithField("variant_id", variantID).Debug("Resolving option id for variant")

	var product Product
	err := s.db.WithContext(ctx).
		Preload("Options").
		Where("id = ?", variantID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithField("variant_id", variantID).Warn("No variant found for id")
			return "", nil
		}
		return "", fmt.Errorf("%w: failed to resolve option for %s: %v", ErrCatalogUnavailable, variantID, err)
	}

	if ids := product.OptionIDs(); len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}

// ListToppingsForSize returns the topping variants of the given category
// priced for the size identified by optionID. Each topping family is a
// parent product; only children carrying the size's option id match, so
// the same topping has a different child (and price) per size.
func (s *Service) ListToppingsForSize(ctx context.Context, categoryName, optionID string) ([]Topping, error) {
	s.log.WithFields(logrus.Fields{
		"category":  categoryName,
		"option_id": optionID,
	}).Debug("Loading toppings for size option")

	var parents []Product
	err := s.db.WithContext(ctx).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.name = ? AND products.is_active = ?", categoryName, true).
		Preload("Children", "is_active = ?", true).
		Preload("Children.Options").
		Find(&parents).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load toppings for category %s: %v", ErrCatalogUnavailable, categoryName, err)
	}

	return toppingsForOption(parents, optionID), nil
}

// toppingsForOption collects the child of each topping family carrying
// the size's option id. The result is never nil: a size without matching
// toppings yields an empty list, not an error.
func toppingsForOption(parents []Product, optionID string) []Topping {
	toppings := []Topping{}
	for _, parent := range parents {
		for _, child := range parent.Children {
			if child.HasOption(optionID) {
				toppings = append(toppings, Topping{
					ID:    child.ID,
					Name:  parent.Name,
					Price: child.Price,
				})
			}
		}
	}

	return toppings
}

// ListDrinks returns active drink products whose category name contains
// categoryName, sorted by name ascending
func (s *Service) ListDrinks(ctx context.Context, categoryName string) ([]Drink, error) {
	s.log.WithField("category", categoryName).Debug("Loading drinks for category")

	var products []Product
	err := s.db.WithContext(ctx).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.name LIKE ? AND products.is_active = ?", "%"+categoryName+"%", true).
		Order("products.name ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load drinks for category %s: %v", ErrCatalogUnavailable, categoryName, err)
	}

	drinks := make([]Drink, 0, len(products))
	for _, p := range products {
		drinks = append(drinks, Drink{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
		})
	}

	return drinks, nil
}
