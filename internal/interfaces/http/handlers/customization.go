// internal/interfaces/http/handlers/customization.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pizzeria-backend/internal/config"
	"github.com/your-org/pizzeria-backend/internal/domain/catalog"
	"github.com/your-org/pizzeria-backend/internal/domain/pricing"
)

// CatalogService is the catalog query surface the handler needs
type CatalogService interface {
	ListSizeVariants(ctx context.Context, baseProductID string) ([]catalog.Variant, error)
	ResolveOptionID(ctx context.Context, variantID string) (string, error)
	ListToppingsForSize(ctx context.Context, categoryName, optionID string) ([]catalog.Topping, error)
	ListDrinks(ctx context.Context, categoryName string) ([]catalog.Drink, error)
}

// PricingEngine computes server-authoritative quotes
type PricingEngine interface {
	ComputeTotal(ctx context.Context, sel pricing.Selection) (*pricing.PriceQuote, error)
}

// CustomizationHandler handles order customization endpoints
type CustomizationHandler struct {
	catalog CatalogService
	pricer  PricingEngine
	config  *config.Config
	log     *logrus.Logger
}

// NewCustomizationHandler creates a new customization handler
func NewCustomizationHandler(catalogService CatalogService, pricer PricingEngine, cfg *config.Config, log *logrus.Logger) *CustomizationHandler {
	return &CustomizationHandler{
		catalog: catalogService,
		pricer:  pricer,
		config:  cfg,
		log:     log,
	}
}

// ShowCustomizationOptions handles GET /customization/:productId
func (h *CustomizationHandler) ShowCustomizationOptions(c *gin.Context) {
	productID := c.Param("productId")
	ctx := c.Request.Context()

	h.log.WithField("product_id", productID).Info("Showing customization options")

	sizes, err := h.catalog.ListSizeVariants(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNoVariants) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No variants found for this product",
			})
			return
		}
		h.catalogError(c, err)
		return
	}

	// Toppings are preloaded for the cheapest size, which the page
	// renders as the default-checked option.
	optionID, err := h.catalog.ResolveOptionID(ctx, sizes[0].ID)
	if err != nil {
		h.catalogError(c, err)
		return
	}

	toppings, err := h.catalog.ListToppingsForSize(ctx, h.config.Catalog.ToppingCategory, optionID)
	if err != nil {
		h.catalogError(c, err)
		return
	}

	drinks, err := h.catalog.ListDrinks(ctx, h.config.Catalog.DrinkCategory)
	if err != nil {
		h.catalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productId": productID,
		"sizes":     sizes,
		"toppings":  toppings,
		"drinks":    drinks,
		"basePrice": sizes[0].Price,
	})
}

// LoadExtras handles GET /customization/extras/:sizeId
func (h *CustomizationHandler) LoadExtras(c *gin.Context) {
	sizeID := c.Param("sizeId")
	ctx := c.Request.Context()

	optionID, err := h.catalog.ResolveOptionID(ctx, sizeID)
	if err != nil {
		h.catalogError(c, err)
		return
	}

	extras, err := h.catalog.ListToppingsForSize(ctx, h.config.Catalog.ToppingCategory, optionID)
	if err != nil {
		h.catalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"extras": extras,
	})
}

// CalculatePrice handles POST /customization/calculate-price
func (h *CustomizationHandler) CalculatePrice(c *gin.Context) {
	var sel pricing.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	quote, err := h.pricer.ComputeTotal(c.Request.Context(), sel)
	if err != nil {
		if errors.Is(err, pricing.ErrSizeRequired) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Pizza size ID is required",
			})
			return
		}
		h.catalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *CustomizationHandler) catalogError(c *gin.Context, err error) {
	h.log.WithError(err).Error("Catalog query failed")
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": "Catalog unavailable",
	})
}
