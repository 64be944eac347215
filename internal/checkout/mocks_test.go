package checkout

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ampereshop/storeapi/internal/cache"
	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/pkg/errors"
)

// MockOrderRepo implements repository.OrderRepository for testing
type MockOrderRepo struct {
	mu     sync.Mutex
	Orders map[uuid.UUID]*domain.Order

	CreateErr   error
	MarkPaidErr error
	CreateCalls int
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{Orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *MockOrderRepo) Create(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateErr != nil {
		return m.CreateErr
	}
	order.ID = uuid.New()
	stored := *order
	m.Orders[order.ID] = &stored
	return nil
}

func (m *MockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.Orders[id]
	if !ok {
		return nil, &notFoundErr{}
	}
	copied := *order
	return &copied, nil
}

func (m *MockOrderRepo) MarkPaid(_ context.Context, id uuid.UUID, status domain.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MarkPaidErr != nil {
		return m.MarkPaidErr
	}
	order, ok := m.Orders[id]
	if !ok {
		return &notFoundErr{}
	}
	// Mirrors the store's guard: only an unpaid order can be finalized
	if !order.PaymentStatus.CanTransitionTo(status) {
		return &errors.ErrInvalidStateTransition{From: order.PaymentStatus, To: status}
	}
	order.PaymentStatus = status
	return nil
}

func (m *MockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order, ok := m.Orders[id]; ok {
		order.Status = status
	}
	return nil
}

func (m *MockOrderRepo) UpdateTracking(_ context.Context, _ uuid.UUID, _, _ string) error {
	return nil
}

func (m *MockOrderRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]*domain.Order, error) {
	return nil, nil
}

func (m *MockOrderRepo) List(_ context.Context, _, _ int) ([]*domain.Order, error) {
	return nil, nil
}

type notFoundErr struct{}

func (*notFoundErr) Error() string { return "order not found" }

// MockIdempotencyRepo implements repository.IdempotencyRepository for testing
type MockIdempotencyRepo struct {
	mu   sync.Mutex
	Keys map[string]*domain.IdempotencyKey
}

func NewMockIdempotencyRepo() *MockIdempotencyRepo {
	return &MockIdempotencyRepo{Keys: make(map[string]*domain.IdempotencyKey)}
}

func (m *MockIdempotencyRepo) Create(_ context.Context, key *domain.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Keys[key.Key]; exists {
		return repository.ErrDuplicateIdempotencyKey
	}
	m.Keys[key.Key] = key
	return nil
}

func (m *MockIdempotencyRepo) GetByKey(_ context.Context, key string) (*domain.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.Keys[key]
	if !ok {
		return nil, repository.ErrIdempotencyKeyNotFound
	}
	return record, nil
}

// MockGateway implements PaymentGateway for testing
type MockGateway struct {
	mu      sync.Mutex
	Result  GatewayResult
	Err     error
	Calls   int
	Block   chan struct{} // When set, Initiate waits for a receive before returning
	Amounts []float64
}

func (m *MockGateway) Initiate(ctx context.Context, _ uuid.UUID, amount float64) (GatewayResult, error) {
	m.mu.Lock()
	m.Calls++
	m.Amounts = append(m.Amounts, amount)
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return GatewayResult{}, ctx.Err()
		}
	}
	if ctx.Err() != nil {
		return GatewayResult{}, ctx.Err()
	}
	return m.Result, m.Err
}

// MockSnapshots implements repository.CartSnapshotRepository for testing
type MockSnapshots struct {
	mu    sync.Mutex
	lines map[string][]domain.CartLine
}

func NewMockSnapshots() *MockSnapshots {
	return &MockSnapshots{lines: make(map[string][]domain.CartLine)}
}

func (m *MockSnapshots) Load(_ context.Context, sessionID string) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines, ok := m.lines[sessionID]
	if !ok {
		return nil, repository.ErrCartSnapshotNotFound
	}
	return lines, nil
}

func (m *MockSnapshots) Save(_ context.Context, sessionID string, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines[sessionID] = lines
	return nil
}

func (m *MockSnapshots) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lines, sessionID)
	return nil
}

// MockCache implements cache.CartCache for testing. It always misses.
type MockCache struct{}

func (MockCache) Get(_ context.Context, _ string) ([]domain.CartLine, error) {
	return nil, cache.ErrCacheMiss
}

func (MockCache) Set(_ context.Context, _ string, _ []domain.CartLine) error { return nil }

func (MockCache) Delete(_ context.Context, _ string) error { return nil }
