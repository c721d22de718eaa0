package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/Aviraj0403/restro-back/internal/adapter/catalog"
	"github.com/Aviraj0403/restro-back/internal/app"
	"github.com/Aviraj0403/restro-back/internal/config"
	"github.com/Aviraj0403/restro-back/internal/domain/repository"
	"github.com/Aviraj0403/restro-back/internal/storage/postgres"
	"github.com/Aviraj0403/restro-back/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:            ":0",
		DatabaseURI:           "postgres://stub",
		CatalogServiceAddress: "http://localhost",
		JWTSecret:             "secret",
		OfferSweepInterval:    time.Millisecond,
		WorkerPoolSize:        1,
		ShutdownTimeout:       time.Millisecond,
		MaxOffersBatch:        1,
		WSEventBurst:          1,
		WSEventRefillInterval: time.Second,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	offerRepo := &test.OfferRepositoryStub{}
	orderRepo := &test.OrderRepositoryStub{}
	cartRepo := &test.CartRepositoryStub{}
	catalogStub := test.CatalogProviderStub{}

	var facade *app.OrderingFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.OfferRepository(offerRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.CartRepository(cartRepo)),
			fx.Replace(catalog.Client(catalogStub)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected ordering facade instance")
	}
}
