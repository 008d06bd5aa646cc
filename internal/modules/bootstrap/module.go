package bootstrap

import (
	"context"

	bootstrap "signal_bot/internal/modules/bootstrap/service"
	"signal_bot/pkg/logger"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(
			bootstrap.NewActivator,
		),
		fx.Invoke(func(lc fx.Lifecycle, act *bootstrap.Activator) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					pairs := act.Activate()
					logger.Info("[BOOT] watchlist activated: %d pairs", len(pairs))
					return nil
				},
			})
		}),
	)
}
