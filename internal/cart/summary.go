package cart

import (
	"math"

	"github.com/pawmart/storefront-backend/internal/models"
)

// taxRate is the flat sales-tax rate applied to the subtotal.
const taxRate = 0.08

// ComputeOrderSummary derives the monetary breakdown for a set of cart
// line items and a shipping method. It is a pure function of its inputs:
// the same cart and method always produce the same summary.
//
// Shipping is forced to 0 for an empty cart regardless of the selected
// method. Discount is a pass-through amount (no coupon rules live here);
// callers without a discount source pass 0.
func ComputeOrderSummary(items []models.CartLineItem, method models.ShippingMethod, discount float64) models.OrderSummary {
	var subtotal float64
	var count int
	for _, item := range items {
		subtotal += item.Product.Price * float64(item.Quantity)
		count += item.Quantity
	}
	subtotal = round2(subtotal)

	shipping := 0.0
	if len(items) > 0 {
		shipping = method.Cost()
	}

	tax := round2(subtotal * taxRate)

	return models.OrderSummary{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Discount:  discount,
		Total:     round2(subtotal + shipping + tax - discount),
		ItemCount: count,
	}
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
