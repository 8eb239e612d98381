package wizard

import "cancelflow/internal/domain/subscription"

// flatDiscountCents is the variant-B downsell: $10 off
const flatDiscountCents int64 = 1000

// DownsellPrice returns the discounted monthly price in cents shown
// on the offer step. Variant A halves the price, variant B takes a
// flat $10 off, floored at zero.
func DownsellPrice(monthlyPriceCents int64, v subscription.Variant) int64 {
	switch v {
	case subscription.VariantA:
		return monthlyPriceCents / 2
	default:
		price := monthlyPriceCents - flatDiscountCents
		if price < 0 {
			price = 0
		}
		return price
	}
}
