package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/pizzeria-backend/internal/config"
	"github.com/your-org/pizzeria-backend/internal/domain/catalog"
	"github.com/your-org/pizzeria-backend/internal/domain/pricing"
)

type fakeCatalog struct {
	variants    []catalog.Variant
	variantsErr error
	optionIDs   map[string]string
	toppings    map[string][]catalog.Topping
	drinks      []catalog.Drink
	queryErr    error
}

func (f *fakeCatalog) ListSizeVariants(_ context.Context, _ string) ([]catalog.Variant, error) {
	if f.variantsErr != nil {
		return nil, f.variantsErr
	}
	return f.variants, nil
}

func (f *fakeCatalog) ResolveOptionID(_ context.Context, variantID string) (string, error) {
	if f.queryErr != nil {
		return "", f.queryErr
	}
	return f.optionIDs[variantID], nil
}

func (f *fakeCatalog) ListToppingsForSize(_ context.Context, _, optionID string) ([]catalog.Topping, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.toppings[optionID], nil
}

func (f *fakeCatalog) ListDrinks(_ context.Context, _ string) ([]catalog.Drink, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.drinks, nil
}

type fakePricer struct {
	quote *pricing.PriceQuote
	err   error
}

func (f *fakePricer) ComputeTotal(_ context.Context, sel pricing.Selection) (*pricing.PriceQuote, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.quote, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig() *config.Config {
	return &config.Config{
		Catalog: config.CatalogConfig{
			ToppingCategory: "Toppings",
			DrinkCategory:   "Drinks",
		},
	}
}

func customizationRouter(cat *fakeCatalog, pricer *fakePricer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCustomizationHandler(cat, pricer, testConfig(), testLogger())

	router := gin.New()
	group := router.Group("/customization")
	group.GET("/:productId", h.ShowCustomizationOptions)
	group.GET("/extras/:sizeId", h.LoadExtras)
	group.POST("/calculate-price", h.CalculatePrice)
	return router
}

func TestShowCustomizationOptions(t *testing.T) {
	cat := &fakeCatalog{
		variants: []catalog.Variant{
			{ID: "S-small", Name: "Margherita", Price: 500, OptionID: "opt-small"},
			{ID: "S-large", Name: "Margherita", Price: 900, OptionID: "opt-large"},
		},
		optionIDs: map[string]string{"S-small": "opt-small"},
		toppings: map[string][]catalog.Topping{
			"opt-small": {{ID: "T1", Name: "Salami", Price: 100}},
		},
		drinks: []catalog.Drink{{ID: "D1", Name: "Cola", Price: 250}},
	}
	router := customizationRouter(cat, &fakePricer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/customization/base-pizza", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"productId":"base-pizza"`)
	assert.Contains(t, body, `"basePrice":500`)
	assert.Contains(t, body, `"Salami"`)
	assert.Contains(t, body, `"Cola"`)
}

func TestShowCustomizationOptionsWithoutVariants(t *testing.T) {
	router := customizationRouter(&fakeCatalog{variantsErr: catalog.ErrNoVariants}, &fakePricer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/customization/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No variants found")
}

func TestShowCustomizationOptionsCatalogDown(t *testing.T) {
	router := customizationRouter(&fakeCatalog{variantsErr: catalog.ErrCatalogUnavailable}, &fakePricer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/customization/base-pizza", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Catalog unavailable")
}

func TestLoadExtras(t *testing.T) {
	cat := &fakeCatalog{
		optionIDs: map[string]string{"S-large": "opt-large"},
		toppings: map[string][]catalog.Topping{
			"opt-large": {{ID: "T1-large", Name: "Salami", Price: 200}},
		},
	}
	router := customizationRouter(cat, &fakePricer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/customization/extras/S-large", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"extras"`)
	assert.Contains(t, w.Body.String(), `"T1-large"`)
}

func TestLoadExtrasWithoutMatchesReturnsEmptyList(t *testing.T) {
	// A size with no priced toppings is a valid page state, not an
	// error, and must serialize as [] rather than null.
	cat := &fakeCatalog{
		optionIDs: map[string]string{"S-small": "opt-small"},
		toppings: map[string][]catalog.Topping{
			"opt-small": {},
		},
	}
	router := customizationRouter(cat, &fakePricer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/customization/extras/S-small", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"extras":[]`)
}

func TestCalculatePrice(t *testing.T) {
	pricer := &fakePricer{quote: &pricing.PriceQuote{
		BasePrice:     500,
		ToppingsPrice: 250,
		DrinkPrice:    250,
		TotalPrice:    1000,
	}}
	router := customizationRouter(&fakeCatalog{}, pricer)

	payload := `{"sizeId":"S-small","toppings":["T1","T2"],"drink":"D1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customization/calculate-price", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalPrice":1000`)
}

func TestCalculatePriceWithoutSize(t *testing.T) {
	router := customizationRouter(&fakeCatalog{}, &fakePricer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customization/calculate-price", strings.NewReader(`{"toppings":["T1"]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Pizza size ID is required")
}

func TestCalculatePriceRejectsMalformedJSON(t *testing.T) {
	router := customizationRouter(&fakeCatalog{}, &fakePricer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customization/calculate-price", strings.NewReader(`{"sizeId":`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request data")
}

func TestCalculatePricePricingBackendError(t *testing.T) {
	router := customizationRouter(&fakeCatalog{}, &fakePricer{err: errors.New("db gone")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customization/calculate-price", strings.NewReader(`{"sizeId":"S-small"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
