package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/pkg/errors"
)

func quotationRequestFixture() QuotationRequest {
	return QuotationRequest{
		Products: []domain.QuotationItem{
			{ProductID: "p1", Quantity: 5},
		},
		CompanyName:   "Vidyut Infra Pvt Ltd",
		ContactPerson: "R. Iyer",
		Email:         "purchasing@vidyutinfra.example",
		Phone:         "+91-9800000001",
	}
}

func TestCreateRequest(t *testing.T) {
	mock := &MockQuotationRepo{}
	svc := NewQuotationService(&repository.Repositories{Quotation: mock}, zap.NewNop())

	userID := uuid.New()
	quotation, err := svc.CreateRequest(context.Background(), quotationRequestFixture(), userID)

	require.NoError(t, err)
	assert.Equal(t, domain.QuotationStatusPending, quotation.Status)
	assert.Equal(t, userID, quotation.UserID)
	require.NotNil(t, mock.Created)
}

func TestCreateRequest_NoProducts(t *testing.T) {
	mock := &MockQuotationRepo{}
	svc := NewQuotationService(&repository.Repositories{Quotation: mock}, zap.NewNop())

	req := quotationRequestFixture()
	req.Products = nil

	_, err := svc.CreateRequest(context.Background(), req, uuid.New())

	var validation *errors.ErrValidation
	require.ErrorAs(t, err, &validation)
	assert.Nil(t, mock.Created)
}

func TestGetQuotation_StrangerDenied(t *testing.T) {
	quotation := &domain.Quotation{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: domain.QuotationStatusPending,
	}
	mock := &MockQuotationRepo{Quotation: quotation}
	svc := NewQuotationService(&repository.Repositories{Quotation: mock}, zap.NewNop())

	caller := &domain.User{ID: uuid.New()}
	_, err := svc.GetQuotation(context.Background(), quotation.ID, caller)

	var unauthorized *errors.ErrUnauthorized
	require.ErrorAs(t, err, &unauthorized)
}

func TestModerate(t *testing.T) {
	quotation := &domain.Quotation{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: domain.QuotationStatusPending,
	}
	mock := &MockQuotationRepo{Quotation: quotation}
	svc := NewQuotationService(&repository.Repositories{Quotation: mock}, zap.NewNop())

	err := svc.Moderate(context.Background(), quotation.ID, domain.QuotationStatusQuoted, "quoted at list minus 8%")

	require.NoError(t, err)
	require.NotNil(t, mock.UpdatedStatus)
	assert.Equal(t, domain.QuotationStatusQuoted, *mock.UpdatedStatus)
	assert.Equal(t, "quoted at list minus 8%", mock.UpdatedNotes)
}

func TestModerate_UnknownStatus(t *testing.T) {
	mock := &MockQuotationRepo{}
	svc := NewQuotationService(&repository.Repositories{Quotation: mock}, zap.NewNop())

	err := svc.Moderate(context.Background(), uuid.New(), domain.QuotationStatus("ESCALATED"), "")

	var validation *errors.ErrValidation
	require.ErrorAs(t, err, &validation)
}

func TestModerate_TerminalQuotation(t *testing.T) {
	quotation := &domain.Quotation{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: domain.QuotationStatusRejected,
	}
	mock := &MockQuotationRepo{Quotation: quotation}
	svc := NewQuotationService(&repository.Repositories{Quotation: mock}, zap.NewNop())

	err := svc.Moderate(context.Background(), quotation.ID, domain.QuotationStatusQuoted, "")

	var transition *errors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &transition)
	assert.Nil(t, mock.UpdatedStatus)
}
