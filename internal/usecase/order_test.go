package usecase

import (
	"context"
	"testing"
	"time"

	domainErrors "github.com/Aviraj0403/restro-back/internal/domain/errors"
	"github.com/Aviraj0403/restro-back/internal/domain/model"
	testhelpers "github.com/Aviraj0403/restro-back/internal/test"
)

func orderItems() []model.OrderItem {
	return []model.OrderItem{{
		FoodID:          1,
		SelectedVariant: model.OrderVariant{Name: "regular", Price: 250},
		Quantity:        2,
	}}
}

func shipping() model.ShippingAddress {
	return model.ShippingAddress{FullName: "A B", Phone: "1", AddressLine1: "street", City: "city", State: "st", PinCode: "000", Country: "IN"}
}

func TestOrderUseCasePlace(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	offers := &testhelpers.OfferRepositoryStub{}
	uc := NewOrderUseCase(orders, offers, testhelpers.CatalogProviderStub{})

	order, err := uc.Place(context.Background(), 7, orderItems(), shipping(), model.PaymentMethodCOD, 500, nil)
	if err != nil {
		t.Fatalf("place returned error: %v", err)
	}
	if order.Status != model.OrderStatusPending || order.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("unexpected statuses: %+v", order)
	}
	if order.Items[0].FoodName != "Margherita" {
		t.Fatalf("expected item enriched from catalog, got %+v", order.Items[0])
	}
	if len(orders.Settled) != 1 {
		t.Fatalf("expected a single settled order, got %d", len(orders.Settled))
	}
}

func TestOrderUseCasePlaceOnlinePaymentMarksPaid(t *testing.T) {
	uc := NewOrderUseCase(&testhelpers.OrderRepositoryStub{}, &testhelpers.OfferRepositoryStub{}, testhelpers.CatalogProviderStub{})

	order, err := uc.Place(context.Background(), 7, orderItems(), shipping(), model.PaymentMethodOnline, 500, nil)
	if err != nil {
		t.Fatalf("place returned error: %v", err)
	}
	if order.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("expected paid status for online payment, got %q", order.PaymentStatus)
	}
}

func TestOrderUseCasePlaceValidation(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	uc := NewOrderUseCase(orders, &testhelpers.OfferRepositoryStub{}, testhelpers.CatalogProviderStub{})
	ctx := context.Background()

	zeroQty := orderItems()
	zeroQty[0].Quantity = 0

	cases := []struct {
		name   string
		items  []model.OrderItem
		method model.PaymentMethod
		total  float64
		want   error
	}{
		{name: "no items", items: nil, method: model.PaymentMethodCOD, total: 500, want: domainErrors.ErrEmptyOrder},
		{name: "zero quantity", items: zeroQty, method: model.PaymentMethodCOD, total: 500, want: domainErrors.ErrInvalidQuantity},
		{name: "unknown payment method", items: orderItems(), method: "CARD", total: 500, want: domainErrors.ErrInvalidPaymentMethod},
		{name: "zero total", items: orderItems(), method: model.PaymentMethodCOD, total: 0, want: domainErrors.ErrInvalidAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Place(ctx, 7, tc.items, shipping(), tc.method, tc.total, nil); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if len(orders.Settled) != 0 {
		t.Fatalf("rejected orders must not persist, got %d", len(orders.Settled))
	}
}

func TestOrderUseCasePlaceInactiveFoodFails(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	catalog := testhelpers.CatalogProviderStub{Foods: map[int64]*model.Food{
		1: {ID: 1, Name: "Margherita", Price: 250, Active: false},
	}}
	uc := NewOrderUseCase(orders, &testhelpers.OfferRepositoryStub{}, catalog)

	if _, err := uc.Place(context.Background(), 7, orderItems(), shipping(), model.PaymentMethodCOD, 500, nil); err != domainErrors.ErrFoodNotFound {
		t.Fatalf("expected ErrFoodNotFound for inactive item, got %v", err)
	}
	if len(orders.Settled) != 0 {
		t.Fatal("failed settlement must not persist an order")
	}
}

func TestOrderUseCasePlaceUnknownVariantFails(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	catalog := testhelpers.CatalogProviderStub{Foods: map[int64]*model.Food{
		1: {ID: 1, Name: "Margherita", Price: 400, Active: true,
			Variants: []model.FoodVariant{{Name: "large", Price: 400}}},
	}}
	uc := NewOrderUseCase(orders, &testhelpers.OfferRepositoryStub{}, catalog)

	if _, err := uc.Place(context.Background(), 7, orderItems(), shipping(), model.PaymentMethodCOD, 500, nil); err != domainErrors.ErrInvalidVariant {
		t.Fatalf("expected ErrInvalidVariant, got %v", err)
	}

	noVariant := orderItems()
	noVariant[0].SelectedVariant = model.OrderVariant{}
	if _, err := uc.Place(context.Background(), 7, noVariant, shipping(), model.PaymentMethodCOD, 500, nil); err != domainErrors.ErrInvalidVariant {
		t.Fatalf("expected ErrInvalidVariant for missing selection, got %v", err)
	}
	if len(orders.Settled) != 0 {
		t.Fatal("failed settlement must not persist an order")
	}
}

func TestOrderUseCasePlaceFreezesCatalogVariantPrice(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	catalog := testhelpers.CatalogProviderStub{Foods: map[int64]*model.Food{
		1: {ID: 1, Name: "Margherita", Price: 300, Active: true,
			Variants: []model.FoodVariant{{Name: "regular", Size: "9in", Price: 300}}},
	}}
	uc := NewOrderUseCase(orders, &testhelpers.OfferRepositoryStub{}, catalog)

	spoofed := orderItems()
	spoofed[0].SelectedVariant.Price = 1

	order, err := uc.Place(context.Background(), 7, spoofed, shipping(), model.PaymentMethodCOD, 600, nil)
	if err != nil {
		t.Fatalf("place returned error: %v", err)
	}
	got := order.Items[0].SelectedVariant
	if got.Price != 300 || got.Size != "9in" {
		t.Fatalf("expected catalog variant frozen into the order, got %+v", got)
	}
}

func TestOrderUseCasePlaceWithDiscountCode(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	offers := &testhelpers.OfferRepositoryStub{Offers: []model.Offer{activeOffer("SAVE10", 0, 40)}}
	uc := NewOrderUseCase(orders, offers, testhelpers.CatalogProviderStub{})

	code := " save10 "
	order, err := uc.Place(context.Background(), 7, orderItems(), shipping(), model.PaymentMethodCOD, 1000, &code)
	if err != nil {
		t.Fatalf("place returned error: %v", err)
	}
	if order.DiscountAmount != 100 {
		t.Fatalf("expected 10%% discount, got %v", order.DiscountAmount)
	}
	if order.DiscountCode == nil || *order.DiscountCode != "SAVE10" {
		t.Fatalf("expected normalized code stored, got %v", order.DiscountCode)
	}
	if order.OfferID == nil || *order.OfferID != 1 {
		t.Fatalf("expected offer reference, got %v", order.OfferID)
	}
}

func TestOrderUseCasePlaceFailClosedOnBadCode(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	offers := &testhelpers.OfferRepositoryStub{}
	uc := NewOrderUseCase(orders, offers, testhelpers.CatalogProviderStub{})

	code := "GONE"
	if _, err := uc.Place(context.Background(), 7, orderItems(), shipping(), model.PaymentMethodCOD, 1000, &code); err != domainErrors.ErrOfferNotFound {
		t.Fatalf("expected ErrOfferNotFound, got %v", err)
	}
	if len(orders.Settled) != 0 {
		t.Fatal("a failed discount must abort the whole settlement")
	}
}

func TestOrderUseCasePlaceBlankCodeIgnored(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	uc := NewOrderUseCase(orders, &testhelpers.OfferRepositoryStub{}, testhelpers.CatalogProviderStub{})

	blank := "   "
	order, err := uc.Place(context.Background(), 7, orderItems(), shipping(), model.PaymentMethodCOD, 500, &blank)
	if err != nil {
		t.Fatalf("place returned error: %v", err)
	}
	if order.DiscountAmount != 0 || order.OfferID != nil {
		t.Fatalf("blank code must settle without discount, got %+v", order)
	}
}

func TestOrderUseCaseGetOwnership(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{{ID: 3, UserID: 7}}}
	uc := NewOrderUseCase(orders, &testhelpers.OfferRepositoryStub{}, testhelpers.CatalogProviderStub{})
	ctx := context.Background()

	if _, err := uc.Get(ctx, 3, 7, model.RoleUser); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := uc.Get(ctx, 3, 8, model.RoleUser); err != domainErrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign user, got %v", err)
	}
	if _, err := uc.Get(ctx, 3, 8, model.RoleAdmin); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
	if _, err := uc.Get(ctx, 99, 7, model.RoleUser); err != domainErrors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderUseCaseListDefaultsPagination(t *testing.T) {
	var gotFilter model.OrderFilter
	orders := &testhelpers.OrderRepositoryStub{ListFn: func(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
		gotFilter = filter
		return nil, 0, nil
	}}
	uc := NewOrderUseCase(orders, &testhelpers.OfferRepositoryStub{}, testhelpers.CatalogProviderStub{})

	if _, _, err := uc.List(context.Background(), model.OrderFilter{}); err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if gotFilter.Page != 1 || gotFilter.Limit != 10 {
		t.Fatalf("expected defaults page=1 limit=10, got %+v", gotFilter)
	}

	bogus := model.OrderStatus("Bogus")
	if _, _, err := uc.List(context.Background(), model.OrderFilter{Status: &bogus}); err == nil {
		t.Fatal("expected error for unknown status filter")
	}
}

func TestOrderUseCaseCancel(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{
		{ID: 1, UserID: 7, Status: model.OrderStatusPending},
		{ID: 2, UserID: 7, Status: model.OrderStatusShipped},
	}}
	uc := NewOrderUseCase(orders, &testhelpers.OfferRepositoryStub{}, testhelpers.CatalogProviderStub{})
	ctx := context.Background()

	order, err := uc.Cancel(ctx, 1, 7)
	if err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if order.Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %q", order.Status)
	}
	if _, err := uc.Cancel(ctx, 2, 7); err != domainErrors.ErrInvalidStatusTransition {
		t.Fatalf("expected ErrInvalidStatusTransition for shipped order, got %v", err)
	}
	if _, err := uc.Cancel(ctx, 1, 8); err != domainErrors.ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign user, got %v", err)
	}
}

func TestOrderUseCaseUpdateStatus(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{{ID: 1, Status: model.OrderStatusPending}}}
	uc := NewOrderUseCase(orders, &testhelpers.OfferRepositoryStub{}, testhelpers.CatalogProviderStub{})
	ctx := context.Background()

	if _, err := uc.UpdateStatus(ctx, 1, "Bogus"); err != domainErrors.ErrInvalidStatusTransition {
		t.Fatalf("expected rejection of unknown status, got %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, 1, model.OrderStatusDelivered); err != domainErrors.ErrInvalidStatusTransition {
		t.Fatalf("expected rejection of skipped transition, got %v", err)
	}
	order, err := uc.UpdateStatus(ctx, 1, model.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if order.Status != model.OrderStatusProcessing {
		t.Fatalf("unexpected status %q", order.Status)
	}
}

func TestOrderUseCaseStats(t *testing.T) {
	var gotSince *time.Time
	orders := &testhelpers.OrderRepositoryStub{StatsFn: func(ctx context.Context, since *time.Time) (*model.OrderStats, error) {
		gotSince = since
		return &model.OrderStats{Count: 2, TotalRevenue: 700}, nil
	}}
	uc := NewOrderUseCase(orders, &testhelpers.OfferRepositoryStub{}, testhelpers.CatalogProviderStub{})
	ctx := context.Background()

	stats, err := uc.TodayStats(ctx)
	if err != nil {
		t.Fatalf("today stats returned error: %v", err)
	}
	if stats.Count != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if gotSince == nil {
		t.Fatal("expected midnight boundary for today stats")
	}
	if gotSince.Hour() != 0 || gotSince.Minute() != 0 || gotSince.Second() != 0 {
		t.Fatalf("expected local midnight, got %v", gotSince)
	}

	if _, err := uc.TotalStats(ctx); err != nil {
		t.Fatalf("total stats returned error: %v", err)
	}
	if gotSince != nil {
		t.Fatal("expected nil boundary for lifetime stats")
	}
}
