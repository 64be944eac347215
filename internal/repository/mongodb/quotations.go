package mongodb

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/pkg/errors"
)

type quotationDoc struct {
	ID            string                 `bson:"_id"`
	UserID        string                 `bson:"user_id"`
	Products      []domain.QuotationItem `bson:"products"`
	CompanyName   string                 `bson:"company_name"`
	ContactPerson string                 `bson:"contact_person"`
	Email         string                 `bson:"email"`
	Phone         string                 `bson:"phone"`
	Message       string                 `bson:"message"`
	Status        string                 `bson:"status"`
	AdminNotes    string                 `bson:"admin_notes"`
	CreatedAt     time.Time              `bson:"created_at"`
	UpdatedAt     time.Time              `bson:"updated_at"`
}

func (d *quotationDoc) toDomain() (*domain.Quotation, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.Quotation{
		ID:            id,
		UserID:        userID,
		Products:      d.Products,
		CompanyName:   d.CompanyName,
		ContactPerson: d.ContactPerson,
		Email:         d.Email,
		Phone:         d.Phone,
		Message:       d.Message,
		Status:        domain.QuotationStatus(d.Status),
		AdminNotes:    d.AdminNotes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

type quotationRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *mongo.Database, logger *zap.Logger) *quotationRepository {
	return &quotationRepository{
		collection: db.Collection("quotations"),
		logger:     logger,
	}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *domain.Quotation) error {
	now := time.Now()
	if quotation.ID == uuid.Nil {
		quotation.ID = uuid.New()
	}
	if quotation.CreatedAt.IsZero() {
		quotation.CreatedAt = now
	}
	quotation.UpdatedAt = now

	doc := quotationDoc{
		ID:            quotation.ID.String(),
		UserID:        quotation.UserID.String(),
		Products:      quotation.Products,
		CompanyName:   quotation.CompanyName,
		ContactPerson: quotation.ContactPerson,
		Email:         quotation.Email,
		Phone:         quotation.Phone,
		Message:       quotation.Message,
		Status:        quotation.Status.String(),
		AdminNotes:    quotation.AdminNotes,
		CreatedAt:     quotation.CreatedAt,
		UpdatedAt:     quotation.UpdatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to create quotation", zap.Error(err))
		return err
	}

	return nil
}

func (r *quotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	var doc quotationDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, &errors.ErrNotFound{Resource: "quotation", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get quotation", zap.Error(err))
		return nil, err
	}

	return doc.toDomain()
}

func (r *quotationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Quotation, error) {
	return r.list(ctx, bson.M{"user_id": userID.String()})
}

func (r *quotationRepository) List(ctx context.Context) ([]*domain.Quotation, error) {
	return r.list(ctx, bson.M{})
}

func (r *quotationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Quotation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list quotations", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var quotations []*domain.Quotation
	for cursor.Next(ctx) {
		var doc quotationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		quotation, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		quotations = append(quotations, quotation)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return quotations, nil
}

func (r *quotationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuotationStatus, adminNotes string) error {
	update := bson.M{"$set": bson.M{
		"status":      status.String(),
		"admin_notes": adminNotes,
		"updated_at":  time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id.String()}, update)
	if err != nil {
		r.logger.Error("Failed to update quotation status", zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return &errors.ErrNotFound{Resource: "quotation", ID: id.String()}
	}

	return nil
}
