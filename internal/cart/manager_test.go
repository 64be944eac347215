package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/cache"
	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
)

// MockSnapshotRepo implements repository.CartSnapshotRepository for testing
type MockSnapshotRepo struct {
	Lines   []domain.CartLine
	LoadErr error

	SavedLines   []domain.CartLine
	SaveCalls    int
	DeleteCalls  int
	LoadCalls    int
	SaveErr      error
	DeleteErr    error
	DeletedItems []string
}

func (m *MockSnapshotRepo) Load(_ context.Context, _ string) ([]domain.CartLine, error) {
	m.LoadCalls++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Lines, nil
}

func (m *MockSnapshotRepo) Save(_ context.Context, _ string, lines []domain.CartLine) error {
	m.SaveCalls++
	m.SavedLines = lines
	return m.SaveErr
}

func (m *MockSnapshotRepo) Delete(_ context.Context, sessionID string) error {
	m.DeleteCalls++
	m.DeletedItems = append(m.DeletedItems, sessionID)
	return m.DeleteErr
}

// MockCartCache implements cache.CartCache for testing
type MockCartCache struct {
	Lines  []domain.CartLine
	GetErr error

	SetCalls    int
	DeleteCalls int
}

func (m *MockCartCache) Get(_ context.Context, _ string) ([]domain.CartLine, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Lines, nil
}

func (m *MockCartCache) Set(_ context.Context, _ string, lines []domain.CartLine) error {
	m.SetCalls++
	return nil
}

func (m *MockCartCache) Delete(_ context.Context, _ string) error {
	m.DeleteCalls++
	return nil
}

func newTestManager(snapshots *MockSnapshotRepo, cartCache *MockCartCache) *Manager {
	return NewManager(snapshots, cartCache, zap.NewNop())
}

func TestGet_RehydratesFromCache(t *testing.T) {
	snapshots := &MockSnapshotRepo{LoadErr: repository.ErrCartSnapshotNotFound}
	cartCache := &MockCartCache{
		Lines: []domain.CartLine{{ProductID: "p1", UnitPrice: 100, Quantity: 2}},
	}
	m := newTestManager(snapshots, cartCache)

	c := m.Get(context.Background(), "session-1")

	lines := c.Snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 0, snapshots.LoadCalls, "cache hit should not touch the snapshot store")
}

func TestGet_FallsBackToSnapshotStore(t *testing.T) {
	snapshots := &MockSnapshotRepo{
		Lines: []domain.CartLine{{ProductID: "p1", UnitPrice: 100, Quantity: 3}},
	}
	cartCache := &MockCartCache{GetErr: cache.ErrCacheMiss}
	m := newTestManager(snapshots, cartCache)

	c := m.Get(context.Background(), "session-1")

	lines := c.Snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 1, snapshots.LoadCalls)
}

func TestGet_EmptyCartWhenNothingPersisted(t *testing.T) {
	snapshots := &MockSnapshotRepo{LoadErr: repository.ErrCartSnapshotNotFound}
	cartCache := &MockCartCache{GetErr: cache.ErrCacheMiss}
	m := newTestManager(snapshots, cartCache)

	c := m.Get(context.Background(), "session-1")

	assert.True(t, c.IsEmpty())
}

func TestGet_ReusesLiveCart(t *testing.T) {
	snapshots := &MockSnapshotRepo{LoadErr: repository.ErrCartSnapshotNotFound}
	cartCache := &MockCartCache{GetErr: cache.ErrCacheMiss}
	m := newTestManager(snapshots, cartCache)

	first := m.Get(context.Background(), "session-1")
	first.AddItem(domain.CartLine{ProductID: "p1", UnitPrice: 100})

	second := m.Get(context.Background(), "session-1")

	assert.Same(t, first, second)
	assert.False(t, second.IsEmpty())
}

func TestAddItem_PersistsSnapshotAndInvalidatesCache(t *testing.T) {
	snapshots := &MockSnapshotRepo{LoadErr: repository.ErrCartSnapshotNotFound}
	cartCache := &MockCartCache{GetErr: cache.ErrCacheMiss}
	m := newTestManager(snapshots, cartCache)

	m.AddItem(context.Background(), "session-1", domain.CartLine{ProductID: "p1", UnitPrice: 100})

	assert.Equal(t, 1, snapshots.SaveCalls)
	require.Len(t, snapshots.SavedLines, 1)
	assert.Equal(t, 1, snapshots.SavedLines[0].Quantity)
	assert.Equal(t, 1, cartCache.DeleteCalls)
}

func TestMutations_StayTotalOnPersistenceFailure(t *testing.T) {
	snapshots := &MockSnapshotRepo{
		LoadErr: repository.ErrCartSnapshotNotFound,
		SaveErr: errors.New("mongo down"),
	}
	cartCache := &MockCartCache{GetErr: cache.ErrCacheMiss}
	m := newTestManager(snapshots, cartCache)

	m.AddItem(context.Background(), "session-1", domain.CartLine{ProductID: "p1", UnitPrice: 100})
	m.SetQuantity(context.Background(), "session-1", "p1", 4)

	// The in-memory cart still reflects both operations
	lines := m.Get(context.Background(), "session-1").Snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
}

func TestClear_DeletesSnapshotAndCache(t *testing.T) {
	snapshots := &MockSnapshotRepo{
		Lines: []domain.CartLine{{ProductID: "p1", UnitPrice: 100, Quantity: 1}},
	}
	cartCache := &MockCartCache{GetErr: cache.ErrCacheMiss}
	m := newTestManager(snapshots, cartCache)

	m.Clear(context.Background(), "session-1")

	assert.True(t, m.Get(context.Background(), "session-1").IsEmpty())
	assert.Equal(t, 1, snapshots.DeleteCalls)
	assert.GreaterOrEqual(t, cartCache.DeleteCalls, 1)
}
