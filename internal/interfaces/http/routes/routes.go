// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pizzeria-backend/internal/config"
	"github.com/your-org/pizzeria-backend/internal/domain/cart"
	"github.com/your-org/pizzeria-backend/internal/domain/catalog"
	"github.com/your-org/pizzeria-backend/internal/domain/pricing"
	"github.com/your-org/pizzeria-backend/internal/interfaces/http/handlers"
	"gorm.io/gorm"
)

// SetupRoutes wires the customization and cart endpoints
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) {
	catalogService := catalog.NewService(db, log)
	priceResolver := catalog.NewPriceResolver(db, log)
	pricingEngine := pricing.NewEngine(priceResolver, log)

	cartStore := cart.NewRedisStore(redisClient, cfg.Redis.CartTTL)
	lineItemComposer := cart.NewComposer(priceResolver, log)
	cartService := cart.NewService(cartStore, lineItemComposer, log)

	customizationHandler := handlers.NewCustomizationHandler(catalogService, pricingEngine, cfg, log)
	cartHandler := handlers.NewCartHandler(cartService, log)

	customization := rg.Group("/customization")
	{
		customization.GET("/:productId", customizationHandler.ShowCustomizationOptions)
		customization.GET("/extras/:sizeId", customizationHandler.LoadExtras)
		customization.POST("/calculate-price", customizationHandler.CalculatePrice)
		customization.POST("/add-to-cart", cartHandler.AddToCart)
	}

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}
