package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethodIsValid(t *testing.T) {
	assert.True(t, PaymentMethodGateway.IsValid())
	assert.True(t, PaymentMethodCashOnDelivery.IsValid())
	assert.False(t, PaymentMethod("CHEQUE").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}

func TestPaymentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{PaymentStatusUnpaid, PaymentStatusPaid, true},
		{PaymentStatusUnpaid, PaymentStatusCODConfirmed, true},
		{PaymentStatusPaid, PaymentStatusUnpaid, false},
		{PaymentStatusPaid, PaymentStatusCODConfirmed, false},
		{PaymentStatusCODConfirmed, PaymentStatusPaid, false},
		{PaymentStatusCODConfirmed, PaymentStatusUnpaid, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPlaced, OrderStatusShipped, true},
		{OrderStatusPlaced, OrderStatusCancelled, true},
		{OrderStatusPlaced, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusPlaced, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusCancelled, OrderStatusPlaced, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestQuotationStatusTransitions(t *testing.T) {
	cases := []struct {
		from    QuotationStatus
		to      QuotationStatus
		allowed bool
	}{
		{QuotationStatusPending, QuotationStatusProcessing, true},
		{QuotationStatusPending, QuotationStatusQuoted, true},
		{QuotationStatusPending, QuotationStatusRejected, true},
		{QuotationStatusProcessing, QuotationStatusQuoted, true},
		{QuotationStatusProcessing, QuotationStatusRejected, true},
		{QuotationStatusProcessing, QuotationStatusPending, false},
		{QuotationStatusQuoted, QuotationStatusRejected, false},
		{QuotationStatusRejected, QuotationStatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestShippingAddressIsComplete(t *testing.T) {
	complete := ShippingAddress{
		Street:     "14 Industrial Estate",
		City:       "Pune",
		PostalCode: "411001",
		Country:    "IN",
	}
	assert.True(t, complete.IsComplete())

	missingCity := complete
	missingCity.City = ""
	assert.False(t, missingCity.IsComplete())

	assert.False(t, ShippingAddress{}.IsComplete())
}
