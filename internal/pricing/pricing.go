package pricing

import (
	"math"

	"github.com/ampereshop/storeapi/internal/domain"
)

// Defaults match the storefront's business rules: 18% tax and a flat
// shipping fee of 100 currency units regardless of cart size or weight.
const (
	DefaultTaxRate     = 0.18
	DefaultShippingFee = 100
)

// ComputeBreakdown derives the price breakdown for a set of cart lines.
// It is a pure function: the same lines, rate and fee always produce an
// identical breakdown. Each component is rounded to currency minor units
// and the grand total is the exact sum of the rounded components.
//
// Shipping is intentionally flat. It does not tier by quantity, weight or
// distance; callers must not reintroduce tiering here.
func ComputeBreakdown(lines []domain.CartLine, taxRate, shippingFee float64) domain.PriceBreakdown {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}

	subtotal = RoundMinorUnits(subtotal)
	tax := RoundMinorUnits(subtotal * taxRate)
	shipping := RoundMinorUnits(shippingFee)

	return domain.PriceBreakdown{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		ShippingAmount: shipping,
		GrandTotal:     subtotal + tax + shipping,
	}
}

// RoundMinorUnits rounds a value to currency minor-unit precision
func RoundMinorUnits(v float64) float64 {
	return math.Round(v*100) / 100
}
