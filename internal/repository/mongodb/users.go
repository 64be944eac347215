package mongodb

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/pkg/errors"
)

type userDoc struct {
	ID         string                 `bson:"_id"`
	Name       string                 `bson:"name"`
	Email      string                 `bson:"email"`
	Phone      string                 `bson:"phone"`
	Address    domain.ShippingAddress `bson:"address"`
	Wishlist   []string               `bson:"wishlist"`
	APIKeyHash string                 `bson:"api_key_hash"`
	IsAdmin    bool                   `bson:"is_admin"`
	IsActive   bool                   `bson:"is_active"`
	CreatedAt  time.Time              `bson:"created_at"`
	UpdatedAt  time.Time              `bson:"updated_at"`
}

func (d *userDoc) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:         id,
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Address:    d.Address,
		Wishlist:   d.Wishlist,
		APIKeyHash: d.APIKeyHash,
		IsAdmin:    d.IsAdmin,
		IsActive:   d.IsActive,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}, nil
}

type userRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database, logger *zap.Logger) *userRepository {
	return &userRepository{
		collection: db.Collection("users"),
		logger:     logger,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var doc userDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, &errors.ErrNotFound{Resource: "user", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.Error(err))
		return nil, err
	}

	return doc.toDomain()
}

// GetByAPIKey verifies the presented key against each active account's
// bcrypt hash. Hashes are salted, so a direct hash lookup is impossible;
// for production scale add a SHA256 lookup column.
func (r *userRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		r.logger.Error("Failed to query users", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			continue
		}

		if err := bcrypt.CompareHashAndPassword([]byte(doc.APIKeyHash), []byte(apiKey)); err == nil {
			return doc.toDomain()
		}
	}

	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	doc := userDoc{
		ID:         user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Address:    user.Address,
		Wishlist:   user.Wishlist,
		APIKeyHash: user.APIKeyHash,
		IsAdmin:    user.IsAdmin,
		IsActive:   user.IsActive,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to create user", zap.Error(err))
		return err
	}

	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"email":      user.Email,
		"phone":      user.Phone,
		"address":    user.Address,
		"updated_at": user.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID.String()}, update)
	if err != nil {
		r.logger.Error("Failed to update user profile", zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return &errors.ErrNotFound{Resource: "user", ID: user.ID.String()}
	}

	return nil
}

func (r *userRepository) AddToWishlist(ctx context.Context, userID uuid.UUID, productID string) error {
	update := bson.M{
		"$addToSet": bson.M{"wishlist": productID},
		"$set":      bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID.String()}, update)
	if err != nil {
		r.logger.Error("Failed to add to wishlist", zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return &errors.ErrNotFound{Resource: "user", ID: userID.String()}
	}
	if result.ModifiedCount == 0 {
		return &errors.ErrValidation{Message: "product already in wishlist"}
	}

	return nil
}

func (r *userRepository) RemoveFromWishlist(ctx context.Context, userID uuid.UUID, productID string) error {
	update := bson.M{
		"$pull": bson.M{"wishlist": productID},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID.String()}, update)
	if err != nil {
		r.logger.Error("Failed to remove from wishlist", zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return &errors.ErrNotFound{Resource: "user", ID: userID.String()}
	}

	return nil
}
