// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pizzeria-backend/internal/domain/cart"
)

// CartService is the cart surface the handler needs
type CartService interface {
	GetCart(ctx context.Context, token string) (*cart.Cart, error)
	AddItems(ctx context.Context, token string, reqs []cart.AddItemRequest) (*cart.Cart, error)
	ClearCart(ctx context.Context, token string) error
}

// CartHandler handles cart endpoints
type CartHandler struct {
	carts CartService
	log   *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts CartService, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		carts: carts,
		log:   log,
	}
}

// AddToCartRequest represents the add-to-cart batch payload
type AddToCartRequest struct {
	Items []cart.AddItemRequest `json:"items"`
}

// AddToCart handles POST /customization/add-to-cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	token := h.getOrCreateSessionID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.WithError(err).Warn("Invalid add-to-cart payload")
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid JSON data",
		})
		return
	}

	updated, err := h.carts.AddItems(c.Request.Context(), token, req.Items)
	if err != nil {
		if errors.Is(err, cart.ErrNoItems) {
			h.log.Warn("No items provided in add-to-cart request")
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "No items provided",
			})
			return
		}

		h.log.WithError(err).Error("Error adding items to cart")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	token := h.getOrCreateSessionID(c)

	cartResponse, err := h.carts.GetCart(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartResponse,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	token := h.getOrCreateSessionID(c)

	if err := h.carts.ClearCart(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// getOrCreateSessionID gets session ID from cookie or creates a new one
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	// Try to get session ID from cookie
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		// Generate new session ID
		sessionID = uuid.New().String()

		// Set session cookie (24 hours)
		c.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}

	return sessionID
}
