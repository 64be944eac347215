package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/pkg/errors"
)

// ProductResponse represents a catalog entry
type ProductResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Brand          string                 `json:"brand,omitempty"`
	Price          float64                `json:"price"`
	Category       string                 `json:"category"`
	Images         []string               `json:"images"`
	Specifications []domain.Specification `json:"specifications,omitempty"`
	CountInStock   int                    `json:"count_in_stock"`
}

// ProductListResponse is one catalog page
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     int               `json:"page"`
	Pages    int               `json:"pages"`
	Count    int64             `json:"count"`
}

// HandleListProducts handles GET /v1/products
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

		filter := repository.ProductFilter{
			Category: c.Query("category"),
			Keyword:  c.Query("keyword"),
			Page:     page,
		}

		products, count, err := repos.Product.List(c.Request.Context(), filter)
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]ProductResponse, len(products))
		for i, p := range products {
			responses[i] = toProductResponse(p)
		}

		pageSize := filter.PageSize
		if pageSize <= 0 {
			pageSize = 12
		}

		c.JSON(http.StatusOK, ProductListResponse{
			Products: responses,
			Page:     maxInt(page, 1),
			Pages:    int(math.Ceil(float64(count) / float64(pageSize))),
			Count:    count,
		})
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := repos.Product.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, toProductResponse(product))
	}
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Brand:          p.Brand,
		Price:          p.Price,
		Category:       p.Category,
		Images:         p.Images,
		Specifications: p.Specifications,
		CountInStock:   p.CountInStock,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
