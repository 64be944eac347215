package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/api/middleware"
	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/internal/service"
	"github.com/ampereshop/storeapi/pkg/errors"
)

// OrderResponse represents the order response
type OrderResponse struct {
	ID              string                 `json:"id"`
	Status          domain.OrderStatus     `json:"status"`
	PaymentStatus   domain.PaymentStatus   `json:"payment_status"`
	PaymentMethod   domain.PaymentMethod   `json:"payment_method"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	Breakdown       domain.PriceBreakdown  `json:"breakdown"`
	Items           []domain.CartLine      `json:"items"`
	TrackingCarrier *string                `json:"tracking_carrier,omitempty"`
	TrackingNumber  *string                `json:"tracking_number,omitempty"`
	CreatedAt       string                 `json:"created_at"`
	UpdatedAt       string                 `json:"updated_at"`
}

// HandleGetOrder handles GET /v1/orders/:id
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		order, err := orderService.GetOrder(c.Request.Context(), orderID, user)
		if err != nil {
			respondOrderError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toOrderResponse(order))
	}
}

// HandleListMyOrders handles GET /v1/orders
func HandleListMyOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		orders, err := orderService.ListUserOrders(c.Request.Context(), user.ID)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": toOrderResponses(orders)})
	}
}

func toOrderResponses(orders []*domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = toOrderResponse(order)
	}
	return responses
}

func toOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID.String(),
		Status:          order.Status,
		PaymentStatus:   order.PaymentStatus,
		PaymentMethod:   order.PaymentMethod,
		ShippingAddress: order.ShippingAddress,
		Breakdown:       order.Breakdown,
		Items:           order.Lines,
		TrackingCarrier: order.TrackingCarrier,
		TrackingNumber:  order.TrackingNumber,
		CreatedAt:       order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       order.UpdatedAt.Format(time.RFC3339),
	}
}

func respondOrderError(c *gin.Context, logger *zap.Logger, err error) {
	var notFound *errors.ErrNotFound
	if stderrors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}

	var unauthorized *errors.ErrUnauthorized
	if stderrors.As(err, &unauthorized) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	var transition *errors.ErrInvalidStateTransition
	if stderrors.As(err, &transition) {
		c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
		return
	}

	logger.Error("order request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
