package dto

import "time"

// OfferRequest describes create/update payload for an offer.
type OfferRequest struct {
	Name               string    `json:"name"`
	Code               *string   `json:"code"`
	DiscountPercentage float64   `json:"discount_percentage"`
	MaxDiscountAmount  *float64  `json:"max_discount_amount"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	AutoApply          bool      `json:"auto_apply"`
	MaxUsageCount      int       `json:"max_usage_count"`
}

// OfferResponse describes an offer entry.
type OfferResponse struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Code               *string   `json:"code,omitempty"`
	DiscountPercentage float64   `json:"discount_percentage"`
	MaxDiscountAmount  *float64  `json:"max_discount_amount,omitempty"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	Status             string    `json:"status"`
	AutoApply          bool      `json:"auto_apply"`
	UsageCount         int       `json:"usage_count"`
	MaxUsageCount      int       `json:"max_usage_count"`
}

// ValidateOfferRequest describes promo code validation payload.
type ValidateOfferRequest struct {
	Code string `json:"code"`
}

// ValidateOfferResponse reports the outcome of a promo code check.
type ValidateOfferResponse struct {
	Valid bool           `json:"valid"`
	Offer *OfferResponse `json:"offer,omitempty"`
}
