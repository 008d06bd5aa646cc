package feed_hub

import (
	"context"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/feed_hub/service"
	streamsvc "signal_bot/internal/modules/market_stream/service"

	"go.uber.org/fx"
)

// Module поднимает хаб котировок и насос тиков из транспорта.
func Module() fx.Option {
	return fx.Module("feed_hub",
		fx.Provide(
			func(m *streamsvc.Manager) *service.Hub {
				return service.NewHub(m)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, hub *service.Hub, ticks chan models.PriceTick) {
			ctx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						for {
							select {
							case <-ctx.Done():
								return
							case t := <-ticks:
								hub.Publish(t)
							}
						}
					}()
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
