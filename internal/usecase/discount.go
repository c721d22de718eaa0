package usecase

import "github.com/Aviraj0403/restro-back/internal/domain/model"

// ComputeDiscount translates an offer and an order total into a bounded
// discount amount. The result is always within [0, totalAmount]. Percentage
// validity is enforced when offers are created or updated, not here.
func ComputeDiscount(offer *model.Offer, totalAmount float64) float64 {
	if offer == nil || totalAmount <= 0 {
		return 0
	}

	discount := totalAmount * offer.DiscountPercentage / 100

	limit := totalAmount
	if offer.MaxDiscountAmount != nil && *offer.MaxDiscountAmount < limit {
		limit = *offer.MaxDiscountAmount
	}
	if limit < 0 {
		limit = 0
	}

	if discount > limit {
		discount = limit
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
