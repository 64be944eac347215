package domain

// PaymentMethod selects the checkout path
type PaymentMethod string

const (
	PaymentMethodGateway        PaymentMethod = "GATEWAY"
	PaymentMethodCashOnDelivery PaymentMethod = "COD"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodGateway || m == PaymentMethodCashOnDelivery
}

func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
	// PaymentStatusCODConfirmed is the single terminal value for
	// cash-on-delivery orders: confirmed, payment collected on delivery.
	PaymentStatusCODConfirmed PaymentStatus = "COD_CONFIRMED"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusCODConfirmed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a payment status transition is valid.
// Paid states are terminal; an order never returns to UNPAID.
func (s PaymentStatus) CanTransitionTo(newStatus PaymentStatus) bool {
	switch s {
	case PaymentStatusUnpaid:
		return newStatus == PaymentStatusPaid || newStatus == PaymentStatusCODConfirmed
	default:
		return false
	}
}

func (s PaymentStatus) String() string {
	return string(s)
}

// OrderStatus represents the fulfillment state of an order
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a fulfillment status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPlaced:
		return newStatus == OrderStatusShipped || newStatus == OrderStatusCancelled
	case OrderStatusShipped:
		return newStatus == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	return string(s)
}

// QuotationStatus represents the moderation state of a quotation request
type QuotationStatus string

const (
	QuotationStatusPending    QuotationStatus = "PENDING"
	QuotationStatusProcessing QuotationStatus = "PROCESSING"
	QuotationStatusQuoted     QuotationStatus = "QUOTED"
	QuotationStatusRejected   QuotationStatus = "REJECTED"
)

// IsValid checks if the quotation status is valid
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusPending, QuotationStatusProcessing, QuotationStatusQuoted, QuotationStatusRejected:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a quotation status transition is valid
func (s QuotationStatus) CanTransitionTo(newStatus QuotationStatus) bool {
	switch s {
	case QuotationStatusPending:
		return newStatus == QuotationStatusProcessing ||
			newStatus == QuotationStatusQuoted ||
			newStatus == QuotationStatusRejected
	case QuotationStatusProcessing:
		return newStatus == QuotationStatusQuoted || newStatus == QuotationStatusRejected
	case QuotationStatusQuoted, QuotationStatusRejected:
		return false // Terminal states
	default:
		return false
	}
}

func (s QuotationStatus) String() string {
	return string(s)
}
