package router

import (
	"go.uber.org/fx"

	"github.com/Aviraj0403/restro-back/internal/app"
	"github.com/Aviraj0403/restro-back/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(f *app.OrderingFacade) handlers.OrderingFacade { return f }),
	fx.Provide(Setup),
)
