package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/api/middleware"
	"github.com/ampereshop/storeapi/internal/checkout"
	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/internal/service"
	"github.com/ampereshop/storeapi/pkg/errors"
)

// CheckoutSubmitRequest represents the checkout submission payload
type CheckoutSubmitRequest struct {
	Shipping      ShippingAddressRequest `json:"shipping" binding:"required"`
	PaymentMethod string                 `json:"payment_method" binding:"required"`
}

type ShippingAddressRequest struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

// CheckoutSubmitResponse represents the response
type CheckoutSubmitResponse struct {
	OrderID       string               `json:"order_id"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
}

// HandleCheckoutSubmit handles POST /v1/checkout/submit. The optional
// X-Idempotency-Key header makes retries of the same attempt safe.
func HandleCheckoutSubmit(checkoutSvc *checkout.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req CheckoutSubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		result, err := checkoutSvc.Submit(c.Request.Context(), user.ID.String(), checkout.SubmitRequest{
			UserID: user.ID,
			ShippingAddress: domain.ShippingAddress{
				Street:     req.Shipping.Street,
				City:       req.Shipping.City,
				PostalCode: req.Shipping.PostalCode,
				Country:    req.Shipping.Country,
			},
			PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
			IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
		})
		if err != nil {
			respondCheckoutError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, CheckoutSubmitResponse{
			OrderID:       result.OrderID.String(),
			PaymentStatus: result.PaymentStatus,
		})
	}
}

// HandleCheckoutPrefill handles GET /v1/checkout/prefill. A profile fetch
// failure degrades to blank fields instead of blocking checkout.
func HandleCheckoutPrefill(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		prefill := service.ProfilePrefill{}
		profile, err := repos.User.GetByID(c.Request.Context(), user.ID)
		if err != nil {
			logger.Warn("profile prefill unavailable", zap.Error(err))
		} else {
			prefill = service.ProfilePrefill{
				Name:    profile.Name,
				Email:   profile.Email,
				Phone:   profile.Phone,
				Address: profile.Address,
			}
		}

		c.JSON(http.StatusOK, prefill)
	}
}

func respondCheckoutError(c *gin.Context, logger *zap.Logger, err error) {
	if stderrors.Is(err, checkout.ErrSubmissionInFlight) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	var validationErr *errors.ErrValidation
	if stderrors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Message})
		return
	}

	var paymentErr *errors.ErrPayment
	if stderrors.As(err, &paymentErr) {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":    paymentErr.Error(),
			"declined": paymentErr.Declined,
		})
		return
	}

	var persistenceErr *errors.ErrPersistence
	if stderrors.As(err, &persistenceErr) {
		logger.Error("checkout persistence failure", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "order could not be saved, please retry"})
		return
	}

	logger.Error("checkout failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
