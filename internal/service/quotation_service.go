package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/pkg/errors"
)

type quotationService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewQuotationService creates a new quotation service
func NewQuotationService(repos *repository.Repositories, logger *zap.Logger) *quotationService {
	return &quotationService{
		repos:  repos,
		logger: logger,
	}
}

// CreateRequest opens a new quotation request in the pending state
func (s *quotationService) CreateRequest(ctx context.Context, req QuotationRequest, userID uuid.UUID) (*domain.Quotation, error) {
	if len(req.Products) == 0 {
		return nil, &errors.ErrValidation{Message: "no products selected for quotation"}
	}

	quotation := &domain.Quotation{
		UserID:        userID,
		Products:      req.Products,
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Message:       req.Message,
		Status:        domain.QuotationStatusPending,
	}

	if err := s.repos.Quotation.Create(ctx, quotation); err != nil {
		return nil, err
	}

	s.logger.Info("quotation request created",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("products", len(quotation.Products)),
	)

	return quotation, nil
}

// GetQuotation fetches a quotation; non-admin callers only see their own
func (s *quotationService) GetQuotation(ctx context.Context, id uuid.UUID, caller *domain.User) (*domain.Quotation, error) {
	quotation, err := s.repos.Quotation.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin && quotation.UserID != caller.ID {
		return nil, &errors.ErrUnauthorized{Message: "access denied"}
	}

	return quotation, nil
}

// ListUserQuotations returns the caller's quotation requests
func (s *quotationService) ListUserQuotations(ctx context.Context, userID uuid.UUID) ([]*domain.Quotation, error) {
	return s.repos.Quotation.ListByUser(ctx, userID)
}

// ListAll returns every quotation request for admin moderation
func (s *quotationService) ListAll(ctx context.Context) ([]*domain.Quotation, error) {
	return s.repos.Quotation.List(ctx)
}

// Moderate moves a quotation to a new status with optional admin notes
func (s *quotationService) Moderate(ctx context.Context, id uuid.UUID, status domain.QuotationStatus, adminNotes string) error {
	if !status.IsValid() {
		return &errors.ErrValidation{Message: "unknown quotation status"}
	}

	quotation, err := s.repos.Quotation.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Validate state transition
	if !quotation.Status.CanTransitionTo(status) {
		return &errors.ErrInvalidStateTransition{
			From: quotation.Status,
			To:   status,
		}
	}

	if err := s.repos.Quotation.UpdateStatus(ctx, id, status, adminNotes); err != nil {
		return err
	}

	s.logger.Info("quotation moderated",
		zap.String("quotation_id", id.String()),
		zap.String("from", quotation.Status.String()),
		zap.String("to", status.String()),
	)

	return nil
}
