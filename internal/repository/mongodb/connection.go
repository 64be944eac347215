package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/config"
	"github.com/ampereshop/storeapi/internal/repository"
)

// Connect opens and pings the document store
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client.Database(cfg.DBName), nil
}

// Attach fills in the document-store-backed repositories
func Attach(ctx context.Context, repos *repository.Repositories, db *mongo.Database, logger *zap.Logger) {
	repos.Product = NewProductRepository(db, logger)
	repos.User = NewUserRepository(db, logger)
	repos.Quotation = NewQuotationRepository(db, logger)

	carts := NewCartSnapshotRepository(db, logger)
	if err := carts.CreateIndexes(ctx); err != nil {
		logger.Warn("failed to create cart snapshot indexes", zap.Error(err))
	}
	repos.CartSnapshot = carts
}
