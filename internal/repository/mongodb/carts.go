package mongodb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
)

type cartSnapshotDoc struct {
	SessionID string            `bson:"_id"`
	Lines     []domain.CartLine `bson:"lines"`
	CreatedAt time.Time         `bson:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

type cartSnapshotRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewCartSnapshotRepository creates a new cart snapshot repository
func NewCartSnapshotRepository(db *mongo.Database, logger *zap.Logger) *cartSnapshotRepository {
	return &cartSnapshotRepository{
		collection: db.Collection("carts"),
		logger:     logger,
	}
}

func (r *cartSnapshotRepository) Load(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	var doc cartSnapshotDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrCartSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	return doc.Lines, nil
}

func (r *cartSnapshotRepository) Save(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	now := time.Now()

	update := bson.M{
		"$set": bson.M{
			"lines":      lines,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": sessionID}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart snapshot: %w", err)
	}

	return nil
}

func (r *cartSnapshotRepository) Delete(ctx context.Context, sessionID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": sessionID})
	if err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrCartSnapshotNotFound
	}

	return nil
}

// CreateIndexes sets a TTL on stale carts so abandoned sessions age out
func (r *cartSnapshotRepository) CreateIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60),
	}

	if _, err := r.collection.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	return nil
}
