package mongodb

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/pkg/errors"
)

const defaultPageSize = 12

type productDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description"`
	Brand          string             `bson:"brand"`
	Price          float64            `bson:"price"`
	Category       string             `bson:"category"`
	Images         []string           `bson:"images"`
	Specifications []specificationDoc `bson:"specifications"`
	CountInStock   int                `bson:"count_in_stock"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

type specificationDoc struct {
	Key   string `bson:"key"`
	Value string `bson:"value"`
}

func (d *productDoc) toDomain() *domain.Product {
	specs := make([]domain.Specification, len(d.Specifications))
	for i, s := range d.Specifications {
		specs[i] = domain.Specification{Key: s.Key, Value: s.Value}
	}
	return &domain.Product{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Description:    d.Description,
		Brand:          d.Brand,
		Price:          d.Price,
		Category:       d.Category,
		Images:         d.Images,
		Specifications: specs,
		CountInStock:   d.CountInStock,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func productToDoc(p *domain.Product) *productDoc {
	specs := make([]specificationDoc, len(p.Specifications))
	for i, s := range p.Specifications {
		specs[i] = specificationDoc{Key: s.Key, Value: s.Value}
	}
	return &productDoc{
		Name:           p.Name,
		Description:    p.Description,
		Brand:          p.Brand,
		Price:          p.Price,
		Category:       p.Category,
		Images:         p.Images,
		Specifications: specs,
		CountInStock:   p.CountInStock,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type productRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewProductRepository creates a new catalog repository
func NewProductRepository(db *mongo.Database, logger *zap.Logger) *productRepository {
	return &productRepository{
		collection: db.Collection("products"),
		logger:     logger,
	}
}

// List returns one page of the catalog, newest first, optionally narrowed
// by category and a case-insensitive name keyword
func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Keyword != "" {
		query["name"] = bson.M{"$regex": filter.Keyword, "$options": "i"}
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	count, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error("Failed to count products", zap.Error(err))
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(pageSize)).
		SetSkip(int64(pageSize * (page - 1)))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	products := make([]*domain.Product, len(docs))
	for i := range docs {
		products[i] = docs[i].toDomain()
	}

	return products, count, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}

	var doc productDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get product", zap.Error(err))
		return nil, err
	}

	return doc.toDomain(), nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	doc := productToDoc(product)
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid.Hex()
	}

	return nil
}
