package catalog

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Aviraj0403/restro-back/internal/config"
	"github.com/Aviraj0403/restro-back/internal/usecase"
)

// Module exposes catalog client implementation to fx graph.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(func(c Client) usecase.CatalogProvider { return c }),
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.CatalogServiceAddress, p.Logger)
}
