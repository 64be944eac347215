package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one product entry in a cart. Name, UnitPrice and ImageRef are
// copied from the catalog at add time and never re-resolved.
type CartLine struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	ImageRef  string  `json:"image_ref" bson:"image_ref"`
}

// ShippingAddress is owned by the order once submitted
type ShippingAddress struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}

// IsComplete reports whether every required field is non-blank
func (a ShippingAddress) IsComplete() bool {
	return a.Street != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

// PriceBreakdown is derived from cart contents and frozen onto the order
// at submission time; it is never recomputed for an existing order.
type PriceBreakdown struct {
	Subtotal       float64 `json:"subtotal" bson:"subtotal"`
	TaxAmount      float64 `json:"tax_amount" bson:"tax_amount"`
	ShippingAmount float64 `json:"shipping_amount" bson:"shipping_amount"`
	GrandTotal     float64 `json:"grand_total" bson:"grand_total"`
}

// Order is a persisted checkout. Lines and Breakdown are a snapshot taken
// at submission time; catalog or pricing changes never alter them.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Lines           []CartLine
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	Breakdown       PriceBreakdown
	PaymentStatus   PaymentStatus
	Status          OrderStatus
	TrackingCarrier *string
	TrackingNumber  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IdempotencyKey records which order a checkout attempt produced, so a
// retried submission with the same token returns the existing order
type IdempotencyKey struct {
	Key       string
	UserID    uuid.UUID
	OrderID   uuid.UUID
	CreatedAt time.Time
}

// Product is a catalog entry
type Product struct {
	ID             string
	Name           string
	Description    string
	Brand          string
	Price          float64
	Category       string
	Images         []string
	Specifications []Specification
	CountInStock   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Specification struct {
	Key   string
	Value string
}

// User is a storefront account
type User struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Phone      string
	Address    ShippingAddress
	Wishlist   []string
	APIKeyHash string
	IsAdmin    bool
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Quotation is an admin-moderated bulk pricing request
type Quotation struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Products      []QuotationItem
	CompanyName   string
	ContactPerson string
	Email         string
	Phone         string
	Message       string
	Status        QuotationStatus
	AdminNotes    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type QuotationItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}
