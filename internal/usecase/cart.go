package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/Aviraj0403/restro-back/internal/domain/errors"
	"github.com/Aviraj0403/restro-back/internal/domain/model"
	"github.com/Aviraj0403/restro-back/internal/domain/repository"
)

// CartUseCase manages the per-user persisted cart.
type CartUseCase struct {
	carts repository.CartRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository) *CartUseCase {
	return &CartUseCase{carts: carts}
}

// Get returns the user's cart; a user without a stored cart gets an empty one.
func (u *CartUseCase) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	cart, err := u.carts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

// Put replaces the cart contents for the user.
func (u *CartUseCase) Put(ctx context.Context, userID int64, items []model.CartItem) (*model.Cart, error) {
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, domainErrors.ErrInvalidQuantity
		}
	}
	return u.carts.Put(ctx, userID, items)
}

// Clear removes the user's stored cart.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) error {
	return u.carts.Clear(ctx, userID)
}
