package services

import "arostore/internal/models"

// Free shipping settings. FlatShippingFee is the single canonical shipping
// charge; every quote site (cart page, checkout page, payment creation,
// confirmation email) must go through Quote so the three never diverge.
const (
	FreeShippingThreshold = 1500.0
	FlatShippingFee       = 99.0
)

// PricingQuote is an ephemeral price breakdown derived from cart contents.
// It is recomputed wherever needed and never persisted.
type PricingQuote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Quote computes subtotal, shipping and total for a cart snapshot. An empty
// cart quotes to all zeros; otherwise shipping is free at or above the
// threshold and the flat fee below it.
func Quote(items []models.CartItem) PricingQuote {
	var q PricingQuote
	for i := range items {
		q.Subtotal += items[i].TotalPrice()
	}
	if len(items) > 0 && q.Subtotal < FreeShippingThreshold {
		q.Shipping = FlatShippingFee
	}
	q.Total = q.Subtotal + q.Shipping
	return q
}

// RemainingForFreeShipping is the amount still needed to reach free
// shipping, floored at zero.
func RemainingForFreeShipping(subtotal float64) float64 {
	if remaining := FreeShippingThreshold - subtotal; remaining > 0 {
		return remaining
	}
	return 0
}
