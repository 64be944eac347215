package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/internal/service"
)

// CreateProductRequest carries a new catalog entry
type CreateProductRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Description    string                 `json:"description"`
	Brand          string                 `json:"brand"`
	Price          float64                `json:"price" binding:"required,gt=0"`
	Category       string                 `json:"category" binding:"required"`
	Images         []string               `json:"images"`
	Specifications []domain.Specification `json:"specifications"`
	CountInStock   int                    `json:"count_in_stock" binding:"gte=0"`
}

// ShipOrderRequest carries tracking details for a shipment
type ShipOrderRequest struct {
	Carrier        string `json:"carrier" binding:"required"`
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// ModerateQuotationRequest updates a quotation's status
type ModerateQuotationRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"admin_notes"`
}

// HandleAdminCreateProduct handles POST /v1/admin/products
func HandleAdminCreateProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		product := &domain.Product{
			Name:           req.Name,
			Description:    req.Description,
			Brand:          req.Brand,
			Price:          req.Price,
			Category:       req.Category,
			Images:         req.Images,
			Specifications: req.Specifications,
			CountInStock:   req.CountInStock,
		}

		if err := repos.Product.Create(c.Request.Context(), product); err != nil {
			logger.Error("Failed to create product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		logger.Info("Product created",
			zap.String("product_id", product.ID),
			zap.String("name", product.Name))

		c.JSON(http.StatusCreated, toProductResponse(product))
	}
}

// HandleAdminListOrders handles GET /v1/admin/orders
func HandleAdminListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit < 1 || limit > 200 {
			limit = 50
		}
		if offset < 0 {
			offset = 0
		}

		orders, err := repos.Order.List(c.Request.Context(), limit, offset)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": toOrderResponses(orders),
			"limit":  limit,
			"offset": offset,
		})
	}
}

// HandleAdminShipOrder handles POST /v1/admin/orders/:id/ship
func HandleAdminShipOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		var req ShipOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.ShipOrder(c.Request.Context(), orderID, req.Carrier, req.TrackingNumber); err != nil {
			respondOrderError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": domain.OrderStatusShipped})
	}
}

// HandleAdminDeliverOrder handles POST /v1/admin/orders/:id/deliver
func HandleAdminDeliverOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.DeliverOrder(c.Request.Context(), orderID); err != nil {
			respondOrderError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": domain.OrderStatusDelivered})
	}
}

// HandleAdminCancelOrder handles POST /v1/admin/orders/:id/cancel
func HandleAdminCancelOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.CancelOrder(c.Request.Context(), orderID); err != nil {
			respondOrderError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": domain.OrderStatusCancelled})
	}
}

// HandleAdminListQuotations handles GET /v1/admin/quotations
func HandleAdminListQuotations(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		quotationService := service.NewQuotationService(repos, logger)
		quotations, err := quotationService.ListAll(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list quotations", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"quotations": toQuotationResponses(quotations)})
	}
}

// HandleAdminModerateQuotation handles POST /v1/admin/quotations/:id/moderate
func HandleAdminModerateQuotation(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		quotationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quotation ID"})
			return
		}

		var req ModerateQuotationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		quotationService := service.NewQuotationService(repos, logger)
		status := domain.QuotationStatus(req.Status)
		if err := quotationService.Moderate(c.Request.Context(), quotationID, status, req.AdminNotes); err != nil {
			respondQuotationError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": status})
	}
}
