package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ampereshop/storeapi/internal/cache"
	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
)

// Manager owns the live carts of active sessions. A session's first touch
// rehydrates its cart from the snapshot cache, falling back to the snapshot
// store; later touches reuse the in-memory cart. Every mutation persists the
// updated snapshot and invalidates the cache entry. Persistence failures are
// logged, not surfaced: the cart operations stay total.
type Manager struct {
	mu    sync.Mutex
	carts map[string]*Cart

	snapshots repository.CartSnapshotRepository
	cache     cache.CartCache
	sfg       singleflight.Group // Prevents concurrent rehydrations of the same session
	logger    *zap.Logger
}

// NewManager creates a cart manager
func NewManager(snapshots repository.CartSnapshotRepository, cartCache cache.CartCache, logger *zap.Logger) *Manager {
	return &Manager{
		carts:     make(map[string]*Cart),
		snapshots: snapshots,
		cache:     cartCache,
		logger:    logger,
	}
}

// Get returns the session's cart, rehydrating it on first touch
func (m *Manager) Get(ctx context.Context, sessionID string) *Cart {
	m.mu.Lock()
	if c, ok := m.carts[sessionID]; ok {
		m.mu.Unlock()
		return c
	}
	m.mu.Unlock()

	v, _, _ := m.sfg.Do(sessionID, func() (interface{}, error) {
		return m.rehydrate(ctx, sessionID), nil
	})
	c := v.(*Cart)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.carts[sessionID]; ok {
		return existing
	}
	m.carts[sessionID] = c
	return c
}

func (m *Manager) rehydrate(ctx context.Context, sessionID string) *Cart {
	lines, err := m.cache.Get(ctx, sessionID)
	if err == nil {
		return Restore(lines)
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		m.logger.Warn("cart cache get failed", zap.String("session_id", sessionID), zap.Error(err))
	}

	lines, err = m.snapshots.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, repository.ErrCartSnapshotNotFound) {
			m.logger.Warn("cart snapshot load failed", zap.String("session_id", sessionID), zap.Error(err))
		}
		return New()
	}

	go func() {
		if errSet := m.cache.Set(context.Background(), sessionID, lines); errSet != nil {
			m.logger.Warn("cart cache set failed", zap.String("session_id", sessionID), zap.Error(errSet))
		}
	}()

	return Restore(lines)
}

// AddItem adds the item to the session's cart and persists the snapshot
func (m *Manager) AddItem(ctx context.Context, sessionID string, item domain.CartLine) {
	c := m.Get(ctx, sessionID)
	c.AddItem(item)
	m.persist(ctx, sessionID, c)
}

// SetQuantity updates a line's quantity and persists the snapshot
func (m *Manager) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) {
	c := m.Get(ctx, sessionID)
	c.SetQuantity(productID, quantity)
	m.persist(ctx, sessionID, c)
}

// RemoveItem removes a line and persists the snapshot
func (m *Manager) RemoveItem(ctx context.Context, sessionID, productID string) {
	c := m.Get(ctx, sessionID)
	c.RemoveItem(productID)
	m.persist(ctx, sessionID, c)
}

// Clear empties the session's cart and deletes the persisted snapshot
func (m *Manager) Clear(ctx context.Context, sessionID string) {
	c := m.Get(ctx, sessionID)
	c.Clear()

	if err := m.snapshots.Delete(ctx, sessionID); err != nil &&
		!errors.Is(err, repository.ErrCartSnapshotNotFound) {
		m.logger.Warn("cart snapshot delete failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	if err := m.cache.Delete(ctx, sessionID); err != nil {
		m.logger.Warn("cart cache delete failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

func (m *Manager) persist(ctx context.Context, sessionID string, c *Cart) {
	lines := c.Snapshot()

	if err := m.snapshots.Save(ctx, sessionID, lines); err != nil {
		m.logger.Warn("cart snapshot save failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	if err := m.cache.Delete(ctx, sessionID); err != nil {
		m.logger.Warn("cart cache invalidate failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}
