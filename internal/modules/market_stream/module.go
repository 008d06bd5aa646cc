package market_stream

import (
	"context"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	historysvc "signal_bot/internal/modules/history/service"
	"signal_bot/internal/modules/market_stream/service"

	"go.uber.org/fx"
)

// Module поднимает транспорт real-time котировок: generic-сокет
// с поллинг-фолбэком и крипто-стрим, оба в общий канал тиков.
func Module() fx.Option {
	return fx.Module("market_stream",
		fx.Provide(
			func() chan models.PriceTick {
				// общий буфер тиков для хаба
				return make(chan models.PriceTick, 1024)
			},
			func(cfg *config.Config, hist *historysvc.Client, out chan models.PriceTick) *service.Manager {
				return service.NewManager(cfg, hist, out)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, m *service.Manager) {
			ctx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					m.Start(ctx)
					return nil
				},
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})
		}),
	)
}
