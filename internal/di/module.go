package di

import (
	"go.uber.org/fx"

	"github.com/Aviraj0403/restro-back/internal/adapter/catalog"
	"github.com/Aviraj0403/restro-back/internal/app"
	"github.com/Aviraj0403/restro-back/internal/config"
	"github.com/Aviraj0403/restro-back/internal/logger"
	"github.com/Aviraj0403/restro-back/internal/pkg/auth"
	"github.com/Aviraj0403/restro-back/internal/server/http/router"
	"github.com/Aviraj0403/restro-back/internal/server/ws"
	"github.com/Aviraj0403/restro-back/internal/storage/postgres"
	"github.com/Aviraj0403/restro-back/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		catalog.Module,
		usecase.Module,
		ws.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
