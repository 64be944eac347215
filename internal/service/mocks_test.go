package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/pkg/errors"
)

// MockOrderRepo implements repository.OrderRepository for testing
type MockOrderRepo struct {
	Order  *domain.Order
	GetErr error

	UpdatedStatus   *domain.OrderStatus
	TrackingCarrier string
	TrackingNumber  string
	UpdateErr       error
}

func (m *MockOrderRepo) Create(_ context.Context, _ *domain.Order) error { return nil }

func (m *MockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Order == nil {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	return m.Order, nil
}

func (m *MockOrderRepo) MarkPaid(_ context.Context, _ uuid.UUID, _ domain.PaymentStatus) error {
	return nil
}

func (m *MockOrderRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status domain.OrderStatus) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.UpdatedStatus = &status
	return nil
}

func (m *MockOrderRepo) UpdateTracking(_ context.Context, _ uuid.UUID, carrier, trackingNumber string) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.TrackingCarrier = carrier
	m.TrackingNumber = trackingNumber
	return nil
}

func (m *MockOrderRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]*domain.Order, error) {
	return nil, nil
}

func (m *MockOrderRepo) List(_ context.Context, _, _ int) ([]*domain.Order, error) {
	return nil, nil
}

// MockQuotationRepo implements repository.QuotationRepository for testing
type MockQuotationRepo struct {
	Quotation *domain.Quotation
	GetErr    error
	CreateErr error

	Created       *domain.Quotation
	UpdatedStatus *domain.QuotationStatus
	UpdatedNotes  string
}

func (m *MockQuotationRepo) Create(_ context.Context, quotation *domain.Quotation) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	quotation.ID = uuid.New()
	m.Created = quotation
	return nil
}

func (m *MockQuotationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Quotation, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Quotation == nil {
		return nil, &errors.ErrNotFound{Resource: "quotation", ID: id.String()}
	}
	return m.Quotation, nil
}

func (m *MockQuotationRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]*domain.Quotation, error) {
	return nil, nil
}

func (m *MockQuotationRepo) List(_ context.Context) ([]*domain.Quotation, error) {
	return nil, nil
}

func (m *MockQuotationRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status domain.QuotationStatus, adminNotes string) error {
	m.UpdatedStatus = &status
	m.UpdatedNotes = adminNotes
	return nil
}
