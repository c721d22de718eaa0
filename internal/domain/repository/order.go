package repository

import (
	"context"
	"time"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// CreateSettled persists the order and, when order.OfferID is set,
	// records the offer redemption for order.UserID in the same transaction.
	// Either both writes commit or neither does.
	CreateSettled(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error)
	// UpdateStatus applies an admin status change after validating the
	// transition against the current status under lock.
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error)
	// Cancel flips the order to Cancelled on behalf of its owner, only while
	// the order is still cancellable.
	Cancel(ctx context.Context, orderID, userID int64) (*model.Order, error)
	Stats(ctx context.Context, since *time.Time) (*model.OrderStats, error)
}
