package app

import (
	"context"
	"time"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
	"github.com/Aviraj0403/restro-back/internal/usecase"
)

// EventPublisher fans settled order events out to live subscribers.
// Publishing is fire-and-forget: a failed or dropped event never affects
// the persisted order.
type EventPublisher interface {
	PublishOrderCreated(order *model.Order)
	PublishOrderUpdated(order *model.Order)
	PublishOrderCancelled(order *model.Order)
}

// OrderingFacade aggregates use cases behind a single application surface
// consumed by the HTTP layer, the websocket layer, and the sweeper.
type OrderingFacade struct {
	auth   *usecase.AuthUseCase
	orders *usecase.OrderUseCase
	offers *usecase.OfferUseCase
	carts  *usecase.CartUseCase
	events EventPublisher
}

// NewOrderingFacade constructs the facade.
func NewOrderingFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, offers *usecase.OfferUseCase, carts *usecase.CartUseCase, events EventPublisher) *OrderingFacade {
	return &OrderingFacade{auth: auth, orders: orders, offers: offers, carts: carts, events: events}
}

// --- Authentication ---

func (f *OrderingFacade) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, name, email, password)
}

func (f *OrderingFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *OrderingFacade) ParseToken(token string) (int64, model.Role, error) {
	return f.auth.ParseToken(token)
}

func (f *OrderingFacade) User(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

// --- Orders ---

// PlaceOrder settles one order, empties the submitter's cart, and notifies
// subscribers. The cart clear is best effort: the order is already durable.
func (f *OrderingFacade) PlaceOrder(ctx context.Context, userID int64, items []model.OrderItem, shipping model.ShippingAddress, method model.PaymentMethod, totalAmount float64, discountCode *string) (*model.Order, error) {
	order, err := f.orders.Place(ctx, userID, items, shipping, method, totalAmount, discountCode)
	if err != nil {
		return nil, err
	}
	_ = f.carts.Clear(ctx, userID)
	f.events.PublishOrderCreated(order)
	return order, nil
}

func (f *OrderingFacade) Order(ctx context.Context, orderID, userID int64, role model.Role) (*model.Order, error) {
	return f.orders.Get(ctx, orderID, userID, role)
}

func (f *OrderingFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *OrderingFacade) CancelOrder(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	order, err := f.orders.Cancel(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	f.events.PublishOrderCancelled(order)
	return order, nil
}

func (f *OrderingFacade) AllOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	return f.orders.List(ctx, filter)
}

func (f *OrderingFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	order, err := f.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	f.events.PublishOrderUpdated(order)
	return order, nil
}

func (f *OrderingFacade) TodayStats(ctx context.Context) (*model.OrderStats, error) {
	return f.orders.TodayStats(ctx)
}

func (f *OrderingFacade) TotalStats(ctx context.Context) (*model.OrderStats, error) {
	return f.orders.TotalStats(ctx)
}

// --- Offers ---

func (f *OrderingFacade) CreateOffer(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	return f.offers.Create(ctx, offer)
}

func (f *OrderingFacade) UpdateOffer(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	return f.offers.Update(ctx, offer)
}

func (f *OrderingFacade) DeactivateOffer(ctx context.Context, offerID int64) error {
	return f.offers.Deactivate(ctx, offerID)
}

func (f *OrderingFacade) Offer(ctx context.Context, offerID int64) (*model.Offer, error) {
	return f.offers.Get(ctx, offerID)
}

func (f *OrderingFacade) Offers(ctx context.Context) ([]model.Offer, error) {
	return f.offers.List(ctx)
}

func (f *OrderingFacade) ActiveOffers(ctx context.Context) ([]model.Offer, error) {
	return f.offers.ListActive(ctx, time.Now())
}

func (f *OrderingFacade) ActivePromoCodes(ctx context.Context) ([]model.Offer, error) {
	return f.offers.ListActivePromoCodes(ctx, time.Now())
}

func (f *OrderingFacade) ValidateOffer(ctx context.Context, code string, userID int64) (*model.Offer, error) {
	return f.offers.Validate(ctx, code, userID, time.Now())
}

func (f *OrderingFacade) ExpiredOffers(ctx context.Context, now time.Time, limit int) ([]model.Offer, error) {
	return f.offers.SelectExpired(ctx, now, limit)
}

// --- Cart ---

func (f *OrderingFacade) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	return f.carts.Get(ctx, userID)
}

func (f *OrderingFacade) SaveCart(ctx context.Context, userID int64, items []model.CartItem) (*model.Cart, error) {
	return f.carts.Put(ctx, userID, items)
}

func (f *OrderingFacade) ClearCart(ctx context.Context, userID int64) error {
	return f.carts.Clear(ctx, userID)
}
