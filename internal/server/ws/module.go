package ws

import (
	"context"
	"errors"
	"log/slog"

	"go.uber.org/fx"

	"github.com/Aviraj0403/restro-back/internal/app"
	"github.com/Aviraj0403/restro-back/internal/config"
)

// Module wires the notification hub, its upgrade endpoint, and the
// publisher binding used by the ordering facade.
var Module = fx.Options(
	fx.Provide(
		newHub,
		newHandler,
		func(h *Hub) app.EventPublisher { return h },
	),
	fx.Invoke(registerLifecycle),
)

func newHub(logger *slog.Logger) *Hub {
	return NewHub(logger)
}

type handlerParams struct {
	fx.In

	Hub    *Hub
	Facade *app.OrderingFacade
	Config *config.Config
	Logger *slog.Logger
}

func newHandler(p handlerParams) *Handler {
	return NewHandler(p.Hub, p.Facade, p.Facade, p.Config.WSEventBurst, p.Config.WSEventRefillInterval, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Hub       *Hub
	Logger    *slog.Logger
}

func registerLifecycle(p lifecycleParams) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := p.Hub.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
					p.Logger.Error("websocket hub terminated", slog.String("error", err.Error()))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		},
	})
}
