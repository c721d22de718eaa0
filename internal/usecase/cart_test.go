package usecase

import (
	"context"
	"testing"

	domainErrors "github.com/Aviraj0403/restro-back/internal/domain/errors"
	"github.com/Aviraj0403/restro-back/internal/domain/model"
	testhelpers "github.com/Aviraj0403/restro-back/internal/test"
)

func TestCartUseCaseGetReturnsEmptyCart(t *testing.T) {
	uc := NewCartUseCase(&testhelpers.CartRepositoryStub{})

	cart, err := uc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if cart.UserID != 7 || len(cart.Items) != 0 {
		t.Fatalf("expected empty cart for new user, got %+v", cart)
	}
}

func TestCartUseCasePutAndGet(t *testing.T) {
	repo := &testhelpers.CartRepositoryStub{}
	uc := NewCartUseCase(repo)
	ctx := context.Background()

	items := []model.CartItem{{FoodID: 1, SelectedVariant: model.OrderVariant{Name: "regular", Price: 250}, Quantity: 2}}
	if _, err := uc.Put(ctx, 7, items); err != nil {
		t.Fatalf("put returned error: %v", err)
	}

	replacement := []model.CartItem{{FoodID: 2, Quantity: 1}}
	cart, err := uc.Put(ctx, 7, replacement)
	if err != nil {
		t.Fatalf("second put returned error: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].FoodID != 2 {
		t.Fatalf("put must replace contents, got %+v", cart.Items)
	}

	stored, err := uc.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if len(stored.Items) != 1 || stored.Items[0].FoodID != 2 {
		t.Fatalf("unexpected stored cart %+v", stored.Items)
	}
}

func TestCartUseCasePutRejectsBadQuantity(t *testing.T) {
	repo := &testhelpers.CartRepositoryStub{}
	uc := NewCartUseCase(repo)

	items := []model.CartItem{{FoodID: 1, Quantity: 0}}
	if _, err := uc.Put(context.Background(), 7, items); err != domainErrors.ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if len(repo.Carts) != 0 {
		t.Fatal("rejected put must not persist")
	}
}

func TestCartUseCaseClear(t *testing.T) {
	repo := &testhelpers.CartRepositoryStub{}
	uc := NewCartUseCase(repo)
	ctx := context.Background()

	if _, err := uc.Put(ctx, 7, []model.CartItem{{FoodID: 1, Quantity: 1}}); err != nil {
		t.Fatalf("put returned error: %v", err)
	}
	if err := uc.Clear(ctx, 7); err != nil {
		t.Fatalf("clear returned error: %v", err)
	}
	cart, err := uc.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", cart.Items)
	}
}
