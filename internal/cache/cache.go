package cache

import (
	"context"
	"errors"

	"github.com/ampereshop/storeapi/internal/domain"
)

// CartCache is a read-through cache over persisted cart snapshots
type CartCache interface {
	Get(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Set(ctx context.Context, sessionID string, lines []domain.CartLine) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCacheMiss = errors.New("cache miss")
