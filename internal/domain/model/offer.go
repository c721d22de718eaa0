package model

import (
	"strings"
	"time"
)

// OfferStatus describes offer availability.
type OfferStatus string

const (
	OfferStatusActive   OfferStatus = "Active"
	OfferStatusInactive OfferStatus = "Inactive"
)

// DefaultMaxUsageCount applies when an offer is created without explicit cap.
const DefaultMaxUsageCount = 40

// Offer describes a promotional discount rule, optionally keyed by a
// redeemable code. Code is nil for auto-apply offers.
type Offer struct {
	ID                 int64
	Name               string
	Code               *string
	DiscountPercentage float64
	MaxDiscountAmount  *float64
	StartDate          time.Time
	EndDate            time.Time
	Status             OfferStatus
	AutoApply          bool
	UsageCount         int
	MaxUsageCount      int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NormalizeCode canonicalizes a promo code for storage and lookups.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Redeemable reports whether the offer can be applied at the given moment,
// ignoring usage state.
func (o *Offer) Redeemable(now time.Time) bool {
	return o.Status == OfferStatusActive && !now.Before(o.StartDate) && !now.After(o.EndDate)
}

// Exhausted reports whether the global usage cap has been reached.
func (o *Offer) Exhausted() bool {
	return o.UsageCount >= o.MaxUsageCount
}
