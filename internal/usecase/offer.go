package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/Aviraj0403/restro-back/internal/domain/errors"
	"github.com/Aviraj0403/restro-back/internal/domain/model"
	"github.com/Aviraj0403/restro-back/internal/domain/repository"
)

// OfferUseCase manages the promotional offer ledger.
type OfferUseCase struct {
	offers repository.OfferRepository
}

// NewOfferUseCase constructs OfferUseCase.
func NewOfferUseCase(offers repository.OfferRepository) *OfferUseCase {
	return &OfferUseCase{offers: offers}
}

func validateOfferDefinition(offer *model.Offer) error {
	if offer.DiscountPercentage < 0 || offer.DiscountPercentage > 100 {
		return domainErrors.ErrInvalidOffer
	}
	if offer.MaxDiscountAmount != nil && *offer.MaxDiscountAmount < 0 {
		return domainErrors.ErrInvalidOffer
	}
	if !offer.StartDate.IsZero() && !offer.EndDate.IsZero() && offer.EndDate.Before(offer.StartDate) {
		return domainErrors.ErrInvalidOffer
	}
	if offer.MaxUsageCount < 0 {
		return domainErrors.ErrInvalidOffer
	}
	return nil
}

// Create validates and stores a new offer. The code, when present, is
// normalized to uppercase; collisions surface as ErrAlreadyExists.
func (u *OfferUseCase) Create(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	if err := validateOfferDefinition(offer); err != nil {
		return nil, err
	}
	if offer.Code != nil {
		normalized := model.NormalizeCode(*offer.Code)
		if normalized == "" {
			offer.Code = nil
		} else {
			offer.Code = &normalized
		}
	}
	if offer.Status == "" {
		offer.Status = model.OfferStatusActive
	}
	if offer.MaxUsageCount == 0 {
		offer.MaxUsageCount = model.DefaultMaxUsageCount
	}
	return u.offers.Create(ctx, offer)
}

// Update applies changes to an existing offer with the same validation rules
// as creation. Usage state is never modified through this path, and the cap
// can never drop below redemptions already recorded.
func (u *OfferUseCase) Update(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	if err := validateOfferDefinition(offer); err != nil {
		return nil, err
	}
	if offer.Code != nil {
		normalized := model.NormalizeCode(*offer.Code)
		if normalized == "" {
			offer.Code = nil
		} else {
			offer.Code = &normalized
		}
	}
	if offer.MaxUsageCount == 0 {
		offer.MaxUsageCount = model.DefaultMaxUsageCount
	}
	stored, err := u.offers.GetByID(ctx, offer.ID)
	if err != nil {
		return nil, err
	}
	if offer.MaxUsageCount < stored.UsageCount {
		return nil, domainErrors.ErrInvalidOffer
	}
	return u.offers.Update(ctx, offer)
}

// Deactivate soft-invalidates an offer instead of deleting it, so historical
// orders keep a resolvable reference.
func (u *OfferUseCase) Deactivate(ctx context.Context, id int64) error {
	return u.offers.Deactivate(ctx, id)
}

// Get fetches a single offer by identifier.
func (u *OfferUseCase) Get(ctx context.Context, id int64) (*model.Offer, error) {
	return u.offers.GetByID(ctx, id)
}

// List returns all offers, newest first.
func (u *OfferUseCase) List(ctx context.Context) ([]model.Offer, error) {
	return u.offers.List(ctx)
}

// ListActive returns offers currently inside their validity window.
func (u *OfferUseCase) ListActive(ctx context.Context, now time.Time) ([]model.Offer, error) {
	return u.offers.ListActive(ctx, now)
}

// ListActivePromoCodes returns active offers that carry a redeemable code.
func (u *OfferUseCase) ListActivePromoCodes(ctx context.Context, now time.Time) ([]model.Offer, error) {
	return u.offers.ListActivePromoCodes(ctx, now)
}

// FindRedeemable resolves an offer by code for redemption. Read-only.
func (u *OfferUseCase) FindRedeemable(ctx context.Context, code string, now time.Time) (*model.Offer, error) {
	if strings.TrimSpace(code) == "" {
		return nil, domainErrors.ErrOfferNotFound
	}
	return u.offers.FindRedeemable(ctx, model.NormalizeCode(code), now)
}

// Redeem records a single redemption for the user, enforcing the global cap
// and per-user uniqueness atomically at the storage layer.
func (u *OfferUseCase) Redeem(ctx context.Context, offerID, userID int64) error {
	return u.offers.Redeem(ctx, offerID, userID)
}

// Validate prechecks a promo code for the user without consuming a
// redemption. Used by client UIs before settlement.
func (u *OfferUseCase) Validate(ctx context.Context, code string, userID int64, now time.Time) (*model.Offer, error) {
	offer, err := u.FindRedeemable(ctx, code, now)
	if err != nil {
		return nil, err
	}
	if offer.Exhausted() {
		return nil, domainErrors.ErrOfferExhausted
	}
	redeemed, err := u.offers.HasRedeemed(ctx, offer.ID, userID)
	if err != nil {
		return nil, err
	}
	if redeemed {
		return nil, domainErrors.ErrOfferAlreadyRedeemed
	}
	return offer, nil
}

// SelectExpired returns active offers whose window has closed.
func (u *OfferUseCase) SelectExpired(ctx context.Context, now time.Time, limit int) ([]model.Offer, error) {
	return u.offers.SelectExpired(ctx, now, limit)
}
