package repository

import (
	"context"
	"time"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
)

// OfferRepository is the authoritative store of promotional codes and their
// redemption state.
type OfferRepository interface {
	Create(ctx context.Context, offer *model.Offer) (*model.Offer, error)
	Update(ctx context.Context, offer *model.Offer) (*model.Offer, error)
	// Deactivate soft-invalidates an offer; offers referenced by historical
	// orders are never hard-deleted.
	Deactivate(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Offer, error)
	List(ctx context.Context) ([]model.Offer, error)
	ListActive(ctx context.Context, now time.Time) ([]model.Offer, error)
	ListActivePromoCodes(ctx context.Context, now time.Time) ([]model.Offer, error)

	// FindRedeemable resolves an active offer by normalized code whose window
	// contains now. Does not mutate state.
	FindRedeemable(ctx context.Context, code string, now time.Time) (*model.Offer, error)
	// HasRedeemed reports whether the user already appears in the offer's
	// redemption set.
	HasRedeemed(ctx context.Context, offerID, userID int64) (bool, error)
	// Redeem atomically records a redemption: appends the user to the
	// redemption set and increments the usage counter, failing with
	// ErrOfferAlreadyRedeemed or ErrOfferExhausted without partial state.
	Redeem(ctx context.Context, offerID, userID int64) error

	// SelectExpired returns active offers whose window has closed.
	SelectExpired(ctx context.Context, now time.Time, limit int) ([]model.Offer, error)
}
