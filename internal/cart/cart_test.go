package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampereshop/storeapi/internal/domain"
)

func line(productID string, price float64) domain.CartLine {
	return domain.CartLine{
		ProductID: productID,
		Name:      "Product " + productID,
		UnitPrice: price,
		Quantity:  1,
	}
}

func TestAddItem_NewProduct(t *testing.T) {
	c := New()

	c.AddItem(line("p1", 100))

	lines := c.Snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAddItem_SameProductIncrementsQuantity(t *testing.T) {
	c := New()

	c.AddItem(line("p1", 100))
	c.AddItem(line("p1", 100))
	c.AddItem(line("p1", 100))

	lines := c.Snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddItem_IgnoresEmbeddedQuantity(t *testing.T) {
	c := New()

	item := line("p1", 100)
	item.Quantity = 50
	c.AddItem(item)

	lines := c.Snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAddItem_KeepsInsertionOrder(t *testing.T) {
	c := New()

	c.AddItem(line("p1", 100))
	c.AddItem(line("p2", 200))
	c.AddItem(line("p3", 300))
	c.AddItem(line("p2", 200))

	lines := c.Snapshot()
	require.Len(t, lines, 3)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, "p2", lines[1].ProductID)
	assert.Equal(t, "p3", lines[2].ProductID)
	assert.Equal(t, 2, lines[1].Quantity)
}

func TestSetQuantity_ClampsToOne(t *testing.T) {
	c := New()
	c.AddItem(line("p1", 100))

	c.SetQuantity("p1", 0)

	lines := c.Snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	c.SetQuantity("p1", -5)
	assert.Equal(t, 1, c.Snapshot()[0].Quantity)
}

func TestSetQuantity_UpdatesExistingLine(t *testing.T) {
	c := New()
	c.AddItem(line("p1", 100))

	c.SetQuantity("p1", 7)

	assert.Equal(t, 7, c.Snapshot()[0].Quantity)
}

func TestSetQuantity_UnknownProductIsNoOp(t *testing.T) {
	c := New()
	c.AddItem(line("p1", 100))

	c.SetQuantity("p2", 5)

	lines := c.Snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	c := New()
	c.AddItem(line("p1", 100))
	c.AddItem(line("p2", 200))

	c.RemoveItem("p1")

	lines := c.Snapshot()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)
}

func TestRemoveItem_UnknownProductIsNoOp(t *testing.T) {
	c := New()
	c.AddItem(line("p1", 100))

	c.RemoveItem("p2")

	assert.Len(t, c.Snapshot(), 1)
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(line("p1", 100))
	c.AddItem(line("p2", 200))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Snapshot())
}

func TestSnapshot_IsACopy(t *testing.T) {
	c := New()
	c.AddItem(line("p1", 100))

	snapshot := c.Snapshot()
	snapshot[0].Quantity = 99

	assert.Equal(t, 1, c.Snapshot()[0].Quantity)
}

func TestRestore(t *testing.T) {
	saved := []domain.CartLine{
		{ProductID: "p1", Name: "Product p1", UnitPrice: 100, Quantity: 3},
		{ProductID: "p2", Name: "Product p2", UnitPrice: 200, Quantity: 1},
	}

	c := Restore(saved)

	lines := c.Snapshot()
	require.Len(t, lines, 2)
	assert.Equal(t, 3, lines[0].Quantity)

	// Mutating the source slice must not leak into the cart
	saved[0].Quantity = 42
	assert.Equal(t, 3, c.Snapshot()[0].Quantity)
}
