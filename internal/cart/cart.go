package cart

import (
	"sync"

	"github.com/ampereshop/storeapi/internal/domain"
)

// Cart holds a session's in-progress selection of line items. All four
// mutation operations are total: invalid product IDs are no-ops, never
// errors. Lines keep insertion order, with at most one line per product.
//
// HTTP handlers may touch the same session concurrently, so every
// operation holds the mutex; AddItem in particular is read-modify-write.
type Cart struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// Restore replaces the cart contents with a previously persisted snapshot
func Restore(lines []domain.CartLine) *Cart {
	c := &Cart{lines: make([]domain.CartLine, len(lines))}
	copy(c.lines, lines)
	return c
}

// AddItem appends a new line with quantity 1, or increments the quantity of
// the existing line for the same product. Any quantity carried by item is
// ignored.
func (c *Cart) AddItem(item domain.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == item.ProductID {
			c.lines[i].Quantity++
			return
		}
	}

	item.Quantity = 1
	c.lines = append(c.lines, item)
}

// SetQuantity sets the line's quantity to max(1, quantity). It never removes
// the line, even for a requested quantity of 0; removal is RemoveItem's job.
// No-op when the product is not in the cart.
func (c *Cart) SetQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the line for the product; no-op when absent
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
}

// Snapshot returns a copy of the current lines in display order. Mutating
// the returned slice does not affect the cart.
func (c *Cart) Snapshot() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]domain.CartLine, len(c.lines))
	copy(snapshot, c.lines)
	return snapshot
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.lines) == 0
}
