package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/api/middleware"
	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/pkg/errors"
)

// ProfileResponse represents the account profile
type ProfileResponse struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Email    string                 `json:"email"`
	Phone    string                 `json:"phone,omitempty"`
	Address  domain.ShippingAddress `json:"address"`
	Wishlist []string               `json:"wishlist"`
	IsAdmin  bool                   `json:"is_admin"`
}

// UpdateProfileRequest updates profile fields; empty fields keep their
// current value
type UpdateProfileRequest struct {
	Name    string                  `json:"name"`
	Email   string                  `json:"email"`
	Phone   string                  `json:"phone"`
	Address *ShippingAddressRequest `json:"address"`
}

// WishlistRequest adds a product to the wishlist
type WishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// HandleGetProfile handles GET /v1/profile
func HandleGetProfile(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		profile, err := repos.User.GetByID(c.Request.Context(), user.ID)
		if err != nil {
			respondUserError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toProfileResponse(profile))
	}
}

// HandleUpdateProfile handles PUT /v1/profile
func HandleUpdateProfile(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		profile, err := repos.User.GetByID(c.Request.Context(), user.ID)
		if err != nil {
			respondUserError(c, logger, err)
			return
		}

		if req.Name != "" {
			profile.Name = req.Name
		}
		if req.Email != "" {
			profile.Email = req.Email
		}
		if req.Phone != "" {
			profile.Phone = req.Phone
		}
		if req.Address != nil {
			profile.Address = domain.ShippingAddress{
				Street:     req.Address.Street,
				City:       req.Address.City,
				PostalCode: req.Address.PostalCode,
				Country:    req.Address.Country,
			}
		}

		if err := repos.User.UpdateProfile(c.Request.Context(), profile); err != nil {
			respondUserError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toProfileResponse(profile))
	}
}

// HandleAddToWishlist handles POST /v1/wishlist
func HandleAddToWishlist(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req WishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := repos.User.AddToWishlist(c.Request.Context(), user.ID, req.ProductID); err != nil {
			respondUserError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "product added to wishlist"})
	}
}

// HandleRemoveFromWishlist handles DELETE /v1/wishlist/:productId
func HandleRemoveFromWishlist(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := repos.User.RemoveFromWishlist(c.Request.Context(), user.ID, c.Param("productId")); err != nil {
			respondUserError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product removed from wishlist"})
	}
}

func toProfileResponse(user *domain.User) ProfileResponse {
	wishlist := user.Wishlist
	if wishlist == nil {
		wishlist = []string{}
	}
	return ProfileResponse{
		ID:       user.ID.String(),
		Name:     user.Name,
		Email:    user.Email,
		Phone:    user.Phone,
		Address:  user.Address,
		Wishlist: wishlist,
		IsAdmin:  user.IsAdmin,
	}
}

func respondUserError(c *gin.Context, logger *zap.Logger, err error) {
	var notFound *errors.ErrNotFound
	if stderrors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}

	var validation *errors.ErrValidation
	if stderrors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
		return
	}

	logger.Error("user request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
