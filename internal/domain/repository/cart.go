package repository

import (
	"context"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
)

// CartRepository stores the per-user cart between sessions.
type CartRepository interface {
	Get(ctx context.Context, userID int64) (*model.Cart, error)
	// Put replaces the cart contents for the user (upsert).
	Put(ctx context.Context, userID int64, items []model.CartItem) (*model.Cart, error)
	Clear(ctx context.Context, userID int64) error
}
