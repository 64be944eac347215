package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ampereshop/storeapi/internal/domain"
)

var (
	ErrCartSnapshotNotFound    = errors.New("cart snapshot not found")
	ErrIdempotencyKeyNotFound  = errors.New("idempotency key not found")
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already recorded")
)

// OrderRepository is the durable order store. An order is retrievable by ID
// immediately after Create returns.
type OrderRepository interface {
	// Create persists a new pending order and assigns its ID
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// MarkPaid transitions the order's payment status away from UNPAID
	// exactly once; a second call for the same order fails.
	MarkPaid(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	UpdateTracking(ctx context.Context, id uuid.UUID, carrier, trackingNumber string) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Order, error)
}

// IdempotencyRepository records which order each checkout token produced
type IdempotencyRepository interface {
	Create(ctx context.Context, key *domain.IdempotencyKey) error
	GetByKey(ctx context.Context, key string) (*domain.IdempotencyKey, error)
}

// CartSnapshotRepository persists cart contents between sessions
type CartSnapshotRepository interface {
	Load(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Save(ctx context.Context, sessionID string, lines []domain.CartLine) error
	Delete(ctx context.Context, sessionID string) error
}

// ProductFilter narrows a catalog listing
type ProductFilter struct {
	Category string
	Keyword  string
	Page     int
	PageSize int
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateProfile(ctx context.Context, user *domain.User) error
	AddToWishlist(ctx context.Context, userID uuid.UUID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID uuid.UUID, productID string) error
}

type QuotationRepository interface {
	Create(ctx context.Context, quotation *domain.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Quotation, error)
	List(ctx context.Context) ([]*domain.Quotation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuotationStatus, adminNotes string) error
}

// Repositories bundles every store the services depend on
type Repositories struct {
	Order        OrderRepository
	Idempotency  IdempotencyRepository
	CartSnapshot CartSnapshotRepository
	Product      ProductRepository
	User         UserRepository
	Quotation    QuotationRepository
}
