package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/Aviraj0403/restro-back/internal/domain/errors"
	"github.com/Aviraj0403/restro-back/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, name, email, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Name: name, Email: email, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OfferRepositoryStub allows tests to customize ledger behaviour.
type OfferRepositoryStub struct {
	CreateFn               func(context.Context, *model.Offer) (*model.Offer, error)
	UpdateFn               func(context.Context, *model.Offer) (*model.Offer, error)
	DeactivateFn           func(context.Context, int64) error
	GetByIDFn              func(context.Context, int64) (*model.Offer, error)
	ListFn                 func(context.Context) ([]model.Offer, error)
	ListActiveFn           func(context.Context, time.Time) ([]model.Offer, error)
	ListActivePromoCodesFn func(context.Context, time.Time) ([]model.Offer, error)
	FindRedeemableFn       func(context.Context, string, time.Time) (*model.Offer, error)
	HasRedeemedFn          func(context.Context, int64, int64) (bool, error)
	RedeemFn               func(context.Context, int64, int64) error
	SelectExpiredFn        func(context.Context, time.Time, int) ([]model.Offer, error)

	Offers      []model.Offer
	Deactivated []int64
	Redeemed    []RedeemCall
	mu          sync.Mutex
}

// RedeemCall records a redemption attempt.
type RedeemCall struct {
	OfferID int64
	UserID  int64
}

// Create returns the configured response or echoes the offer with an ID.
func (s *OfferRepositoryStub) Create(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, offer)
	}
	created := *offer
	created.ID = int64(len(s.Offers) + 1)
	s.Offers = append(s.Offers, created)
	return &created, nil
}

// Update applies override when provided.
func (s *OfferRepositoryStub) Update(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, offer)
	}
	return offer, nil
}

// Deactivate tracks invocations.
func (s *OfferRepositoryStub) Deactivate(ctx context.Context, id int64) error {
	if s.DeactivateFn != nil {
		return s.DeactivateFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deactivated = append(s.Deactivated, id)
	return nil
}

// GetByID returns matched offer either via override or stored slice.
func (s *OfferRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Offer, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Offers {
		if o.ID == id {
			offer := o
			return &offer, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns configured offers.
func (s *OfferRepositoryStub) List(ctx context.Context) ([]model.Offer, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Offers, nil
}

// ListActive returns offers redeemable at now.
func (s *OfferRepositoryStub) ListActive(ctx context.Context, now time.Time) ([]model.Offer, error) {
	if s.ListActiveFn != nil {
		return s.ListActiveFn(ctx, now)
	}
	var active []model.Offer
	for _, o := range s.Offers {
		if o.Redeemable(now) {
			active = append(active, o)
		}
	}
	return active, nil
}

// ListActivePromoCodes returns active offers carrying a code.
func (s *OfferRepositoryStub) ListActivePromoCodes(ctx context.Context, now time.Time) ([]model.Offer, error) {
	if s.ListActivePromoCodesFn != nil {
		return s.ListActivePromoCodesFn(ctx, now)
	}
	var active []model.Offer
	for _, o := range s.Offers {
		if o.Code != nil && o.Redeemable(now) {
			active = append(active, o)
		}
	}
	return active, nil
}

// FindRedeemable resolves an offer by normalized code.
func (s *OfferRepositoryStub) FindRedeemable(ctx context.Context, code string, now time.Time) (*model.Offer, error) {
	if s.FindRedeemableFn != nil {
		return s.FindRedeemableFn(ctx, code, now)
	}
	for _, o := range s.Offers {
		if o.Code != nil && *o.Code == code && o.Redeemable(now) {
			offer := o
			return &offer, nil
		}
	}
	return nil, domainErrors.ErrOfferNotFound
}

// HasRedeemed reports whether the redemption was recorded by this stub.
func (s *OfferRepositoryStub) HasRedeemed(ctx context.Context, offerID, userID int64) (bool, error) {
	if s.HasRedeemedFn != nil {
		return s.HasRedeemedFn(ctx, offerID, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, call := range s.Redeemed {
		if call.OfferID == offerID && call.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// Redeem records the attempt and enforces stub-level cap and uniqueness.
func (s *OfferRepositoryStub) Redeem(ctx context.Context, offerID, userID int64) error {
	if s.RedeemFn != nil {
		return s.RedeemFn(ctx, offerID, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, call := range s.Redeemed {
		if call.OfferID == offerID && call.UserID == userID {
			return domainErrors.ErrOfferAlreadyRedeemed
		}
	}
	for i := range s.Offers {
		if s.Offers[i].ID == offerID {
			if s.Offers[i].Exhausted() {
				return domainErrors.ErrOfferExhausted
			}
			s.Offers[i].UsageCount++
		}
	}
	s.Redeemed = append(s.Redeemed, RedeemCall{OfferID: offerID, UserID: userID})
	return nil
}

// SelectExpired returns active offers whose end date has passed.
func (s *OfferRepositoryStub) SelectExpired(ctx context.Context, now time.Time, limit int) ([]model.Offer, error) {
	if s.SelectExpiredFn != nil {
		return s.SelectExpiredFn(ctx, now, limit)
	}
	var expired []model.Offer
	for _, o := range s.Offers {
		if o.Status == model.OfferStatusActive && o.EndDate.Before(now) {
			expired = append(expired, o)
			if len(expired) == limit {
				break
			}
		}
	}
	return expired, nil
}

// OrderRepositoryStub allows tests to customize order persistence behaviour.
type OrderRepositoryStub struct {
	CreateSettledFn func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn       func(context.Context, int64) (*model.Order, error)
	ListByUserFn    func(context.Context, int64) ([]model.Order, error)
	ListFn          func(context.Context, model.OrderFilter) ([]model.Order, int64, error)
	UpdateStatusFn  func(context.Context, int64, model.OrderStatus) (*model.Order, error)
	CancelFn        func(context.Context, int64, int64) (*model.Order, error)
	StatsFn         func(context.Context, *time.Time) (*model.OrderStats, error)

	Orders  []model.Order
	Settled []*model.Order
}

// CreateSettled tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) CreateSettled(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateSettledFn != nil {
		return s.CreateSettledFn(ctx, order)
	}
	created := *order
	created.ID = int64(len(s.Settled) + 1)
	created.PlacedAt = time.Now()
	s.Settled = append(s.Settled, &created)
	return &created, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Orders, nil
}

// List returns configured orders with a total count.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return s.Orders, int64(len(s.Orders)), nil
}

// UpdateStatus applies override or mutates the stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			if !model.CanTransition(s.Orders[i].Status, status) {
				return nil, domainErrors.ErrInvalidStatusTransition
			}
			s.Orders[i].Status = status
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Cancel applies override or cancels the stored order for its owner.
func (s *OrderRepositoryStub) Cancel(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID, userID)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			if s.Orders[i].UserID != userID {
				return nil, domainErrors.ErrForbidden
			}
			if !s.Orders[i].Cancellable() {
				return nil, domainErrors.ErrInvalidStatusTransition
			}
			s.Orders[i].Status = model.OrderStatusCancelled
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Stats returns configured stats or zeroes.
func (s *OrderRepositoryStub) Stats(ctx context.Context, since *time.Time) (*model.OrderStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, since)
	}
	return &model.OrderStats{}, nil
}

// CartRepositoryStub stores carts in-memory for tests.
type CartRepositoryStub struct {
	GetFn   func(context.Context, int64) (*model.Cart, error)
	PutFn   func(context.Context, int64, []model.CartItem) (*model.Cart, error)
	ClearFn func(context.Context, int64) error

	Carts map[int64]*model.Cart
}

// Get returns the stored cart or not found.
func (s *CartRepositoryStub) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	if cart, ok := s.Carts[userID]; ok {
		return cart, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Put upserts the cart for the user.
func (s *CartRepositoryStub) Put(ctx context.Context, userID int64, items []model.CartItem) (*model.Cart, error) {
	if s.PutFn != nil {
		return s.PutFn(ctx, userID, items)
	}
	if s.Carts == nil {
		s.Carts = make(map[int64]*model.Cart)
	}
	cart := &model.Cart{UserID: userID, Items: items, UpdatedAt: time.Now()}
	s.Carts[userID] = cart
	return cart, nil
}

// Clear removes the stored cart.
func (s *CartRepositoryStub) Clear(ctx context.Context, userID int64) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	delete(s.Carts, userID)
	return nil
}

// CatalogProviderStub resolves food lookups for tests.
type CatalogProviderStub struct {
	FoodFn func(context.Context, int64) (*model.Food, error)
	Foods  map[int64]*model.Food
}

// Food returns configured metadata or a generic active item.
func (s CatalogProviderStub) Food(ctx context.Context, id int64) (*model.Food, error) {
	if s.FoodFn != nil {
		return s.FoodFn(ctx, id)
	}
	if s.Foods != nil {
		if food, ok := s.Foods[id]; ok {
			return food, nil
		}
		return nil, domainErrors.ErrFoodNotFound
	}
	return &model.Food{ID: id, Name: "Margherita", Price: 250, Active: true,
		Variants: []model.FoodVariant{{Name: "regular", Price: 250}}}, nil
}
