package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn        func(context.Context, int64, []model.OrderItem, model.ShippingAddress, model.PaymentMethod, float64, *string) (*model.Order, error)
	OrderFn        func(context.Context, int64, int64, model.Role) (*model.Order, error)
	OrdersFn       func(context.Context, int64) ([]model.Order, error)
	CancelFn       func(context.Context, int64, int64) (*model.Order, error)
	AllOrdersFn    func(context.Context, model.OrderFilter) ([]model.Order, int64, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) (*model.Order, error)
	TodayStatsFn   func(context.Context) (*model.OrderStats, error)
	TotalStatsFn   func(context.Context) (*model.OrderStats, error)
}

// PlaceOrder delegates to provided function or returns a default settled order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, userID int64, items []model.OrderItem, shipping model.ShippingAddress, method model.PaymentMethod, totalAmount float64, discountCode *string) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, userID, items, shipping, method, totalAmount, discountCode)
	}
	return &model.Order{ID: 1, UserID: userID, Items: items, TotalAmount: totalAmount, Status: model.OrderStatusPending, PlacedAt: time.Unix(0, 0)}, nil
}

// Order returns predefined order for given identifier.
func (s OrderFacadeStub) Order(ctx context.Context, orderID, userID int64, role model.Role) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID, userID, role)
	}
	return &model.Order{ID: orderID, UserID: userID}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID}}, nil
}

// CancelOrder delegates cancellation to configured handler.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID, userID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusCancelled}, nil
}

// AllOrders returns the configured admin listing.
func (s OrderFacadeStub) AllOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, filter)
	}
	return []model.Order{{ID: 1}}, 1, nil
}

// UpdateOrderStatus applies configured transition handler.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	return &model.Order{ID: orderID, Status: status}, nil
}

// TodayStats returns configured daily aggregates.
func (s OrderFacadeStub) TodayStats(ctx context.Context) (*model.OrderStats, error) {
	if s.TodayStatsFn != nil {
		return s.TodayStatsFn(ctx)
	}
	return &model.OrderStats{}, nil
}

// TotalStats returns configured lifetime aggregates.
func (s OrderFacadeStub) TotalStats(ctx context.Context) (*model.OrderStats, error) {
	if s.TotalStatsFn != nil {
		return s.TotalStatsFn(ctx)
	}
	return &model.OrderStats{}, nil
}

// OfferFacadeStub simulates offer ledger operations for HTTP layer tests.
type OfferFacadeStub struct {
	CreateFn       func(context.Context, *model.Offer) (*model.Offer, error)
	UpdateFn       func(context.Context, *model.Offer) (*model.Offer, error)
	DeactivateFn   func(context.Context, int64) error
	OfferFn        func(context.Context, int64) (*model.Offer, error)
	OffersFn       func(context.Context) ([]model.Offer, error)
	ActiveOffersFn func(context.Context) ([]model.Offer, error)
	PromoCodesFn   func(context.Context) ([]model.Offer, error)
	ValidateFn     func(context.Context, string, int64) (*model.Offer, error)
}

// CreateOffer echoes the offer back unless overridden.
func (s OfferFacadeStub) CreateOffer(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, offer)
	}
	created := *offer
	created.ID = 1
	return &created, nil
}

// UpdateOffer applies configured handler.
func (s OfferFacadeStub) UpdateOffer(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, offer)
	}
	return offer, nil
}

// DeactivateOffer applies configured handler.
func (s OfferFacadeStub) DeactivateOffer(ctx context.Context, id int64) error {
	if s.DeactivateFn != nil {
		return s.DeactivateFn(ctx, id)
	}
	return nil
}

// Offer returns configured offer details.
func (s OfferFacadeStub) Offer(ctx context.Context, id int64) (*model.Offer, error) {
	if s.OfferFn != nil {
		return s.OfferFn(ctx, id)
	}
	return &model.Offer{ID: id, Name: "stub", Status: model.OfferStatusActive}, nil
}

// Offers returns configured listing.
func (s OfferFacadeStub) Offers(ctx context.Context) ([]model.Offer, error) {
	if s.OffersFn != nil {
		return s.OffersFn(ctx)
	}
	return []model.Offer{{ID: 1, Name: "stub"}}, nil
}

// ActiveOffers returns configured active listing.
func (s OfferFacadeStub) ActiveOffers(ctx context.Context) ([]model.Offer, error) {
	if s.ActiveOffersFn != nil {
		return s.ActiveOffersFn(ctx)
	}
	return []model.Offer{{ID: 1, Name: "stub", Status: model.OfferStatusActive}}, nil
}

// ActivePromoCodes returns configured promo listing.
func (s OfferFacadeStub) ActivePromoCodes(ctx context.Context) ([]model.Offer, error) {
	if s.PromoCodesFn != nil {
		return s.PromoCodesFn(ctx)
	}
	code := "STUB10"
	return []model.Offer{{ID: 1, Code: &code, Status: model.OfferStatusActive}}, nil
}

// ValidateOffer resolves a code for the user without mutating state.
func (s OfferFacadeStub) ValidateOffer(ctx context.Context, code string, userID int64) (*model.Offer, error) {
	if s.ValidateFn != nil {
		return s.ValidateFn(ctx, code, userID)
	}
	normalized := code
	return &model.Offer{ID: 1, Code: &normalized, DiscountPercentage: 10, Status: model.OfferStatusActive}, nil
}

// CartFacadeStub simulates cart operations for HTTP layer tests.
type CartFacadeStub struct {
	CartFn      func(context.Context, int64) (*model.Cart, error)
	SaveCartFn  func(context.Context, int64, []model.CartItem) (*model.Cart, error)
	ClearCartFn func(context.Context, int64) error
}

// Cart returns the stored cart or an empty one.
func (s CartFacadeStub) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
}

// SaveCart echoes the submitted items unless overridden.
func (s CartFacadeStub) SaveCart(ctx context.Context, userID int64, items []model.CartItem) (*model.Cart, error) {
	if s.SaveCartFn != nil {
		return s.SaveCartFn(ctx, userID, items)
	}
	return &model.Cart{UserID: userID, Items: items}, nil
}

// ClearCart applies configured handler.
func (s CartFacadeStub) ClearCart(ctx context.Context, userID int64) error {
	if s.ClearCartFn != nil {
		return s.ClearCartFn(ctx, userID)
	}
	return nil
}

// OrderingFacadeStub aggregates the per-concern stubs for router level tests.
type OrderingFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	OfferFacadeStub
	CartFacadeStub
}

// SweepCall stores information about DeactivateOffer invocations made by the sweeper.
type SweepCall struct {
	OfferID int64
}

// SweeperFacadeStub mimics worker interactions with the ordering facade.
type SweeperFacadeStub struct {
	Batches      [][]model.Offer
	ExpiredFn    func(context.Context, time.Time, int) ([]model.Offer, error)
	DeactivateFn func(context.Context, int64) error
	Deactivated  []SweepCall
	mu           sync.Mutex
	batchCount   int32
}

// Lock exposes internal mutex for external synchronization.
func (s *SweeperFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *SweeperFacadeStub) Unlock() { s.mu.Unlock() }

// ExpiredOffers returns batches from the configured queue.
func (s *SweeperFacadeStub) ExpiredOffers(ctx context.Context, now time.Time, limit int) ([]model.Offer, error) {
	if s.ExpiredFn != nil {
		return s.ExpiredFn(ctx, now, limit)
	}
	call := atomic.AddInt32(&s.batchCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// DeactivateOffer records deactivation requests.
func (s *SweeperFacadeStub) DeactivateOffer(ctx context.Context, offerID int64) error {
	if s.DeactivateFn != nil {
		return s.DeactivateFn(ctx, offerID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deactivated = append(s.Deactivated, SweepCall{OfferID: offerID})
	return nil
}

// PublishedEvent records a single fanout publication.
type PublishedEvent struct {
	Name  string
	Order *model.Order
}

// EventPublisherStub records fanout publications for assertions.
type EventPublisherStub struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishOrderCreated records the event.
func (s *EventPublisherStub) PublishOrderCreated(order *model.Order) {
	s.record("order:created", order)
}

// PublishOrderUpdated records the event.
func (s *EventPublisherStub) PublishOrderUpdated(order *model.Order) {
	s.record("order:updated", order)
}

// PublishOrderCancelled records the event.
func (s *EventPublisherStub) PublishOrderCancelled(order *model.Order) {
	s.record("order:cancelled", order)
}

func (s *EventPublisherStub) record(name string, order *model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, PublishedEvent{Name: name, Order: order})
}

// Recorded returns a snapshot of published events.
func (s *EventPublisherStub) Recorded() []PublishedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PublishedEvent, len(s.Events))
	copy(out, s.Events)
	return out
}
