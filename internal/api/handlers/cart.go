package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/api/middleware"
	"github.com/ampereshop/storeapi/internal/cart"
	"github.com/ampereshop/storeapi/internal/checkout"
	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/pkg/errors"
)

// AddCartItemRequest adds one product to the cart. Name, price and image
// are resolved from the catalog here, at add time, and embedded into the
// line; later catalog changes do not touch carts.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// SetQuantityRequest updates a line's quantity
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse represents the cart with its current price preview
type CartResponse struct {
	Items     []domain.CartLine     `json:"items"`
	Breakdown domain.PriceBreakdown `json:"breakdown"`
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(checkoutSvc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		lines, breakdown := checkoutSvc.Preview(c.Request.Context(), user.ID.String())
		c.JSON(http.StatusOK, CartResponse{Items: lines, Breakdown: breakdown})
	}
}

// HandleAddCartItem handles POST /v1/cart/items
func HandleAddCartItem(carts *cart.Manager, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		product, err := repos.Product.GetByID(c.Request.Context(), req.ProductID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to resolve product for cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		imageRef := ""
		if len(product.Images) > 0 {
			imageRef = product.Images[0]
		}

		carts.AddItem(c.Request.Context(), user.ID.String(), domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			ImageRef:  imageRef,
		})

		c.Status(http.StatusNoContent)
	}
}

// HandleSetCartQuantity handles PATCH /v1/cart/items/:productId
func HandleSetCartQuantity(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req SetQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		carts.SetQuantity(c.Request.Context(), user.ID.String(), c.Param("productId"), req.Quantity)
		c.Status(http.StatusNoContent)
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items/:productId
func HandleRemoveCartItem(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		carts.RemoveItem(c.Request.Context(), user.ID.String(), c.Param("productId"))
		c.Status(http.StatusNoContent)
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		carts.Clear(c.Request.Context(), user.ID.String())
		c.Status(http.StatusNoContent)
	}
}
