package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/config"
	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/pkg/errors"
)

func setupTestDB(t *testing.T) *repository.Repositories {
	ctx := context.Background()

	container, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := NewConnection(config.DatabaseConfig{
		Host:     host,
		Port:     port.Port(),
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunMigrations(db, "../../../migrations"))

	return NewRepositories(db, zap.NewNop())
}

func placedOrder(lines []domain.CartLine) *domain.Order {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}
	return &domain.Order{
		UserID: uuid.New(),
		Lines:  lines,
		ShippingAddress: domain.ShippingAddress{
			Street:     "14 Industrial Estate",
			City:       "Pune",
			PostalCode: "411001",
			Country:    "IN",
		},
		PaymentMethod: domain.PaymentMethodCashOnDelivery,
		Breakdown: domain.PriceBreakdown{
			Subtotal:       subtotal,
			TaxAmount:      0,
			ShippingAmount: 100,
			GrandTotal:     subtotal + 100,
		},
		PaymentStatus: domain.PaymentStatusUnpaid,
		Status:        domain.OrderStatusPlaced,
	}
}

func TestOrderRoundTrip_PreservesLineOrder(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	lines := []domain.CartLine{
		{ProductID: "p-transformer", Name: "100 kVA Transformer", UnitPrice: 185000, Quantity: 1},
		{ProductID: "p-ups", Name: "10 kVA UPS", UnitPrice: 92500, Quantity: 2},
		{ProductID: "p-ats", Name: "63A Changeover Switch", UnitPrice: 8400, Quantity: 4},
		{ProductID: "p-stabilizer", Name: "30 kVA Stabilizer", UnitPrice: 64000, Quantity: 1},
	}
	order := placedOrder(lines)
	require.NoError(t, repos.Order.Create(ctx, order))

	got, err := repos.Order.GetByID(ctx, order.ID)
	require.NoError(t, err)

	require.Len(t, got.Lines, len(lines))
	for i := range lines {
		assert.Equal(t, lines[i].ProductID, got.Lines[i].ProductID, "line %d out of order", i)
		assert.Equal(t, lines[i].Quantity, got.Lines[i].Quantity)
		assert.Equal(t, lines[i].UnitPrice, got.Lines[i].UnitPrice)
	}
}

func TestMarkPaid_ExactlyOnce(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	order := placedOrder([]domain.CartLine{
		{ProductID: "p1", Name: "Product", UnitPrice: 100, Quantity: 1},
	})
	require.NoError(t, repos.Order.Create(ctx, order))

	require.NoError(t, repos.Order.MarkPaid(ctx, order.ID, domain.PaymentStatusPaid))

	err := repos.Order.MarkPaid(ctx, order.ID, domain.PaymentStatusCODConfirmed)
	var transition *errors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &transition)

	got, err := repos.Order.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, got.PaymentStatus)
}

func TestIdempotencyKey_DuplicateRejected(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	order := placedOrder([]domain.CartLine{
		{ProductID: "p1", Name: "Product", UnitPrice: 100, Quantity: 1},
	})
	require.NoError(t, repos.Order.Create(ctx, order))

	record := &domain.IdempotencyKey{Key: "attempt-1", UserID: order.UserID, OrderID: order.ID}
	require.NoError(t, repos.Idempotency.Create(ctx, record))

	err := repos.Idempotency.Create(ctx, record)
	assert.ErrorIs(t, err, repository.ErrDuplicateIdempotencyKey)

	got, err := repos.Idempotency.GetByKey(ctx, "attempt-1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.OrderID)

	_, err = repos.Idempotency.GetByKey(ctx, "unknown")
	assert.ErrorIs(t, err, repository.ErrIdempotencyKeyNotFound)
}
