package service

import "github.com/ampereshop/storeapi/internal/domain"

// QuotationRequest represents the quotation submission payload
type QuotationRequest struct {
	Products      []domain.QuotationItem `json:"products" binding:"required,min=1"`
	CompanyName   string                 `json:"company_name" binding:"required"`
	ContactPerson string                 `json:"contact_person" binding:"required"`
	Email         string                 `json:"email" binding:"required,email"`
	Phone         string                 `json:"phone" binding:"required"`
	Message       string                 `json:"message"`
}

// ProfilePrefill is the optional shipping pre-fill read at checkout.
// A profile fetch failure degrades to blank fields, never blocks checkout.
type ProfilePrefill struct {
	Name    string                 `json:"name"`
	Email   string                 `json:"email"`
	Phone   string                 `json:"phone"`
	Address domain.ShippingAddress `json:"address"`
}
