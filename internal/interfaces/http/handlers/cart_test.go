package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/pizzeria-backend/internal/domain/cart"
)

type fakeCartService struct {
	cart     *cart.Cart
	addErr   error
	getErr   error
	clearErr error

	lastToken string
	lastReqs  []cart.AddItemRequest
}

func (f *fakeCartService) GetCart(_ context.Context, token string) (*cart.Cart, error) {
	f.lastToken = token
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.cart != nil {
		return f.cart, nil
	}
	return cart.NewCart(token), nil
}

func (f *fakeCartService) AddItems(_ context.Context, token string, reqs []cart.AddItemRequest) (*cart.Cart, error) {
	f.lastToken = token
	f.lastReqs = reqs
	if len(reqs) == 0 {
		return nil, cart.ErrNoItems
	}
	if f.addErr != nil {
		return nil, f.addErr
	}
	if f.cart != nil {
		return f.cart, nil
	}
	return cart.NewCart(token), nil
}

func (f *fakeCartService) ClearCart(_ context.Context, token string) error {
	f.lastToken = token
	return f.clearErr
}

func cartRouter(svc *fakeCartService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCartHandler(svc, testLogger())

	router := gin.New()
	router.POST("/customization/add-to-cart", h.AddToCart)
	router.GET("/cart", h.GetCart)
	router.DELETE("/cart", h.ClearCart)
	return router
}

func TestAddToCart(t *testing.T) {
	svc := &fakeCartService{}
	router := cartRouter(svc)

	payload := `{"items":[{"type":"product","id":"S1","quantity":1,"children":[{"id":"T1"},{"id":"T2"}]}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customization/add-to-cart", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	require.Len(t, svc.lastReqs, 1)
	assert.Equal(t, "S1", svc.lastReqs[0].ID)
	assert.Len(t, svc.lastReqs[0].Children, 2)
}

func TestAddToCartSetsSessionCookie(t *testing.T) {
	svc := &fakeCartService{}
	router := cartRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customization/add-to-cart",
		strings.NewReader(`{"items":[{"type":"product","id":"S1"}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "session_id", cookies[0].Name)
	assert.Equal(t, svc.lastToken, cookies[0].Value)
}

func TestAddToCartReusesSessionCookie(t *testing.T) {
	svc := &fakeCartService{}
	router := cartRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customization/add-to-cart",
		strings.NewReader(`{"items":[{"type":"product","id":"S1"}]}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "existing-token"})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "existing-token", svc.lastToken)
}

func TestAddToCartWithoutItems(t *testing.T) {
	router := cartRouter(&fakeCartService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customization/add-to-cart", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), "No items provided")
}

func TestAddToCartRejectsMalformedJSON(t *testing.T) {
	router := cartRouter(&fakeCartService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customization/add-to-cart", strings.NewReader(`{"items":`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid JSON data")
}

func TestAddToCartMutationFailure(t *testing.T) {
	svc := &fakeCartService{addErr: cart.ErrCartMutation}
	router := cartRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customization/add-to-cart",
		strings.NewReader(`{"items":[{"type":"product","id":"S1"}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestGetCart(t *testing.T) {
	stored := cart.NewCart("existing-token")
	stored.Totals.TotalAmount = 750
	svc := &fakeCartService{cart: stored}
	router := cartRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "existing-token"})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cart retrieved successfully")
	assert.Contains(t, w.Body.String(), `"total_amount":750`)
}

func TestClearCart(t *testing.T) {
	svc := &fakeCartService{}
	router := cartRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "existing-token"})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cart cleared successfully")
	assert.Equal(t, "existing-token", svc.lastToken)
}
