package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/api/handlers"
	"github.com/ampereshop/storeapi/internal/api/middleware"
	"github.com/ampereshop/storeapi/internal/cart"
	"github.com/ampereshop/storeapi/internal/checkout"
	"github.com/ampereshop/storeapi/internal/config"
	"github.com/ampereshop/storeapi/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, carts *cart.Manager, checkoutSvc *checkout.Service, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public catalog routes
		v1.GET("/products", handlers.HandleListProducts(repos, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(repos, logger))

		// Customer routes (require authentication)
		customerRoutes := v1.Group("")
		customerRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			customerRoutes.GET("/cart", handlers.HandleGetCart(checkoutSvc))
			customerRoutes.POST("/cart/items", handlers.HandleAddCartItem(carts, repos, logger))
			customerRoutes.PATCH("/cart/items/:productId", handlers.HandleSetCartQuantity(carts))
			customerRoutes.DELETE("/cart/items/:productId", handlers.HandleRemoveCartItem(carts))
			customerRoutes.DELETE("/cart", handlers.HandleClearCart(carts))

			customerRoutes.GET("/checkout/prefill", handlers.HandleCheckoutPrefill(repos, logger))
			customerRoutes.POST("/checkout/submit", handlers.HandleCheckoutSubmit(checkoutSvc, logger))

			customerRoutes.GET("/orders", handlers.HandleListMyOrders(repos, logger))
			customerRoutes.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))

			customerRoutes.GET("/profile", handlers.HandleGetProfile(repos, logger))
			customerRoutes.PUT("/profile", handlers.HandleUpdateProfile(repos, logger))
			customerRoutes.POST("/wishlist", handlers.HandleAddToWishlist(repos, logger))
			customerRoutes.DELETE("/wishlist/:productId", handlers.HandleRemoveFromWishlist(repos, logger))

			customerRoutes.POST("/quotations", handlers.HandleCreateQuotation(repos, logger))
			customerRoutes.GET("/quotations", handlers.HandleListMyQuotations(repos, logger))
			customerRoutes.GET("/quotations/:id", handlers.HandleGetQuotation(repos, logger))
		}

		// Admin routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(repos, logger))
		adminRoutes.Use(middleware.AdminOnly())
		{
			adminRoutes.POST("/products", handlers.HandleAdminCreateProduct(repos, logger))
			adminRoutes.GET("/orders", handlers.HandleAdminListOrders(repos, logger))
			adminRoutes.POST("/orders/:id/ship", handlers.HandleAdminShipOrder(repos, logger))
			adminRoutes.POST("/orders/:id/deliver", handlers.HandleAdminDeliverOrder(repos, logger))
			adminRoutes.POST("/orders/:id/cancel", handlers.HandleAdminCancelOrder(repos, logger))
			adminRoutes.GET("/quotations", handlers.HandleAdminListQuotations(repos, logger))
			adminRoutes.POST("/quotations/:id/moderate", handlers.HandleAdminModerateQuotation(repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
