package handlers

import (
	"context"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (int64, model.Role, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID int64, items []model.OrderItem, shipping model.ShippingAddress, method model.PaymentMethod, totalAmount float64, discountCode *string) (*model.Order, error)
	Order(ctx context.Context, orderID, userID int64, role model.Role) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	CancelOrder(ctx context.Context, orderID, userID int64) (*model.Order, error)
	AllOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error)
	TodayStats(ctx context.Context) (*model.OrderStats, error)
	TotalStats(ctx context.Context) (*model.OrderStats, error)
}

// OfferFacade provides offer ledger operations.
type OfferFacade interface {
	CreateOffer(ctx context.Context, offer *model.Offer) (*model.Offer, error)
	UpdateOffer(ctx context.Context, offer *model.Offer) (*model.Offer, error)
	DeactivateOffer(ctx context.Context, offerID int64) error
	Offer(ctx context.Context, offerID int64) (*model.Offer, error)
	Offers(ctx context.Context) ([]model.Offer, error)
	ActiveOffers(ctx context.Context) ([]model.Offer, error)
	ActivePromoCodes(ctx context.Context) ([]model.Offer, error)
	ValidateOffer(ctx context.Context, code string, userID int64) (*model.Offer, error)
}

// CartFacade provides cart operations.
type CartFacade interface {
	Cart(ctx context.Context, userID int64) (*model.Cart, error)
	SaveCart(ctx context.Context, userID int64, items []model.CartItem) (*model.Cart, error)
	ClearCart(ctx context.Context, userID int64) error
}

// OrderingFacade aggregates the full set of operations used across handlers.
type OrderingFacade interface {
	AuthFacade
	OrderFacade
	OfferFacade
	CartFacade
}
