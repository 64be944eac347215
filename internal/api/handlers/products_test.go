package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/pkg/errors"
)

// MockProductRepo implements repository.ProductRepository for testing
type MockProductRepo struct {
	Products []*domain.Product
	Count    int64
	Err      error

	LastFilter repository.ProductFilter
}

func (m *MockProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*domain.Product, int64, error) {
	m.LastFilter = filter
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return m.Products, m.Count, nil
}

func (m *MockProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: id}
}

func (m *MockProductRepo) Create(_ context.Context, product *domain.Product) error {
	if m.Err != nil {
		return m.Err
	}
	product.ID = fmt.Sprintf("p%d", len(m.Products)+1)
	m.Products = append(m.Products, product)
	return nil
}

func productTestRouter(mock *MockProductRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	repos := &repository.Repositories{Product: mock}
	logger := zap.NewNop()

	router := gin.New()
	router.GET("/v1/products", HandleListProducts(repos, logger))
	router.GET("/v1/products/:id", HandleGetProduct(repos, logger))
	return router
}

func TestListProducts(t *testing.T) {
	mock := &MockProductRepo{
		Products: []*domain.Product{
			{ID: "p1", Name: "100 kVA Transformer", Price: 185000, Category: "Transformers"},
			{ID: "p2", Name: "10 kVA UPS", Price: 92500, Category: "UPS Systems"},
		},
		Count: 30,
	}
	router := productTestRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/products?page=2&keyword=transformer", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Products, 2)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 3, resp.Pages, "30 products at 12 per page is 3 pages")
	assert.Equal(t, int64(30), resp.Count)

	assert.Equal(t, 2, mock.LastFilter.Page)
	assert.Equal(t, "transformer", mock.LastFilter.Keyword)
}

func TestGetProduct(t *testing.T) {
	mock := &MockProductRepo{
		Products: []*domain.Product{{ID: "p1", Name: "100 kVA Transformer", Price: 185000}},
	}
	router := productTestRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/products/p1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "100 kVA Transformer", resp.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	router := productTestRouter(&MockProductRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/products/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
