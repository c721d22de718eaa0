package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/Aviraj0403/restro-back/internal/domain/errors"
	"github.com/Aviraj0403/restro-back/internal/domain/model"
	"github.com/Aviraj0403/restro-back/internal/domain/repository"
)

// CatalogProvider resolves food metadata from the catalog service.
type CatalogProvider interface {
	Food(ctx context.Context, id int64) (*model.Food, error)
}

// OrderUseCase encapsulates order settlement and lifecycle logic.
type OrderUseCase struct {
	orders  repository.OrderRepository
	offers  repository.OfferRepository
	catalog CatalogProvider
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, offers repository.OfferRepository, catalog CatalogProvider) *OrderUseCase {
	return &OrderUseCase{orders: orders, offers: offers, catalog: catalog}
}

// Place validates a settlement request and produces exactly one persisted
// order, or fails without partial state. A discount code that cannot be
// redeemed aborts the whole settlement: an invalid or exhausted code never
// silently produces a zero-discount order.
func (u *OrderUseCase) Place(ctx context.Context, userID int64, items []model.OrderItem, shipping model.ShippingAddress, method model.PaymentMethod, totalAmount float64, discountCode *string) (*model.Order, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, domainErrors.ErrInvalidQuantity
		}
	}
	if !model.ValidPaymentMethod(method) {
		return nil, domainErrors.ErrInvalidPaymentMethod
	}
	if totalAmount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	enriched, err := u.enrichItems(ctx, items)
	if err != nil {
		return nil, err
	}

	var (
		discountAmount float64
		offerID        *int64
		codeUsed       *string
	)
	if discountCode != nil && model.NormalizeCode(*discountCode) != "" {
		offer, err := u.offers.FindRedeemable(ctx, model.NormalizeCode(*discountCode), time.Now())
		if err != nil {
			return nil, err
		}
		discountAmount = ComputeDiscount(offer, totalAmount)
		offerID = &offer.ID
		normalized := model.NormalizeCode(*discountCode)
		codeUsed = &normalized
	}

	paymentStatus := model.PaymentStatusPending
	if method == model.PaymentMethodOnline {
		paymentStatus = model.PaymentStatusPaid
	}

	order := &model.Order{
		UserID:          userID,
		Items:           enriched,
		ShippingAddress: shipping,
		PaymentMethod:   method,
		PaymentStatus:   paymentStatus,
		Status:          model.OrderStatusPending,
		TotalAmount:     totalAmount,
		DiscountAmount:  discountAmount,
		DiscountCode:    codeUsed,
		OfferID:         offerID,
	}

	// Redemption and order insert commit in one transaction; a cap or
	// duplicate-user failure rolls everything back.
	return u.orders.CreateSettled(ctx, order)
}

// enrichItems resolves each item against the catalog. Unknown or inactive
// items fail the order, as does a variant the catalog does not offer. The
// frozen variant carries the catalog price, not the client copy.
func (u *OrderUseCase) enrichItems(ctx context.Context, items []model.OrderItem) ([]model.OrderItem, error) {
	enriched := make([]model.OrderItem, len(items))
	for i, item := range items {
		food, err := u.catalog.Food(ctx, item.FoodID)
		if err != nil {
			return nil, err
		}
		if !food.Active {
			return nil, domainErrors.ErrFoodNotFound
		}
		item.FoodName = food.Name
		if len(food.Variants) > 0 {
			variant, ok := matchVariant(food.Variants, item.SelectedVariant.Name)
			if !ok {
				return nil, domainErrors.ErrInvalidVariant
			}
			item.SelectedVariant = model.OrderVariant{Name: variant.Name, Size: variant.Size, Price: variant.Price}
		} else if item.SelectedVariant.Name != "" {
			return nil, domainErrors.ErrInvalidVariant
		}
		enriched[i] = item
	}
	return enriched, nil
}

func matchVariant(variants []model.FoodVariant, name string) (model.FoodVariant, bool) {
	for _, v := range variants {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return model.FoodVariant{}, false
}

// Get fetches an order, restricted to its owner or an administrator.
func (u *OrderUseCase) Get(ctx context.Context, orderID, userID int64, role model.Role) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && role != model.RoleAdmin {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// List returns orders for administrative review with optional status filter
// and pagination. Returns matching orders and the total match count.
func (u *OrderUseCase) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	if filter.Status != nil && !model.ValidOrderStatus(*filter.Status) {
		return nil, 0, domainErrors.ErrInvalidStatusTransition
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	return u.orders.List(ctx, filter)
}

// Cancel flips the order to Cancelled on behalf of its owner. Permitted only
// while the order is Pending or Processing.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	return u.orders.Cancel(ctx, orderID, userID)
}

// UpdateStatus applies an administrative status change, validated against the
// monotonic transition rules.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, domainErrors.ErrInvalidStatusTransition
	}
	return u.orders.UpdateStatus(ctx, orderID, status)
}

// TodayStats aggregates orders placed since local midnight.
func (u *OrderUseCase) TodayStats(ctx context.Context) (*model.OrderStats, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return u.orders.Stats(ctx, &midnight)
}

// TotalStats aggregates all orders ever placed.
func (u *OrderUseCase) TotalStats(ctx context.Context) (*model.OrderStats, error) {
	return u.orders.Stats(ctx, nil)
}
