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

// QuotationResponse represents a quotation request
type QuotationResponse struct {
	ID            string                 `json:"id"`
	Products      []domain.QuotationItem `json:"products"`
	CompanyName   string                 `json:"company_name"`
	ContactPerson string                 `json:"contact_person"`
	Email         string                 `json:"email"`
	Phone         string                 `json:"phone"`
	Message       string                 `json:"message,omitempty"`
	Status        domain.QuotationStatus `json:"status"`
	AdminNotes    string                 `json:"admin_notes,omitempty"`
	CreatedAt     string                 `json:"created_at"`
}

// HandleCreateQuotation handles POST /v1/quotations
func HandleCreateQuotation(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req service.QuotationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		quotationService := service.NewQuotationService(repos, logger)
		quotation, err := quotationService.CreateRequest(c.Request.Context(), req, user.ID)
		if err != nil {
			respondQuotationError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, toQuotationResponse(quotation))
	}
}

// HandleListMyQuotations handles GET /v1/quotations
func HandleListMyQuotations(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		quotationService := service.NewQuotationService(repos, logger)
		quotations, err := quotationService.ListUserQuotations(c.Request.Context(), user.ID)
		if err != nil {
			logger.Error("Failed to list quotations", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"quotations": toQuotationResponses(quotations)})
	}
}

// HandleGetQuotation handles GET /v1/quotations/:id
func HandleGetQuotation(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		quotationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quotation ID"})
			return
		}

		quotationService := service.NewQuotationService(repos, logger)
		quotation, err := quotationService.GetQuotation(c.Request.Context(), quotationID, user)
		if err != nil {
			respondQuotationError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toQuotationResponse(quotation))
	}
}

func toQuotationResponse(q *domain.Quotation) QuotationResponse {
	return QuotationResponse{
		ID:            q.ID.String(),
		Products:      q.Products,
		CompanyName:   q.CompanyName,
		ContactPerson: q.ContactPerson,
		Email:         q.Email,
		Phone:         q.Phone,
		Message:       q.Message,
		Status:        q.Status,
		AdminNotes:    q.AdminNotes,
		CreatedAt:     q.CreatedAt.Format(time.RFC3339),
	}
}

func toQuotationResponses(quotations []*domain.Quotation) []QuotationResponse {
	responses := make([]QuotationResponse, len(quotations))
	for i, q := range quotations {
		responses[i] = toQuotationResponse(q)
	}
	return responses
}

func respondQuotationError(c *gin.Context, logger *zap.Logger, err error) {
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

	var validation *errors.ErrValidation
	if stderrors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
		return
	}

	var transition *errors.ErrInvalidStateTransition
	if stderrors.As(err, &transition) {
		c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
		return
	}

	logger.Error("quotation request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
