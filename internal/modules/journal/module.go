package journal

import (
	"context"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/journal/service"
	"signal_bot/pkg/db"
	"signal_bot/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Module поднимает журнал сигналов. Без DSN журнал выключен,
// приложение при этом стартует штатно.
func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(
			func(cfg *config.Config) (*pgxpool.Pool, error) {
				if cfg.DB == "" {
					logger.Warn("[JOURNAL] db_dsn is empty, signal journal disabled")
					return nil, nil
				}
				pool, err := db.NewPool(context.Background(), db.PoolConfig{DSN: cfg.DB})
				if err != nil {
					return nil, err
				}
				if err := pool.Ping(context.Background()); err != nil {
					return nil, err
				}
				return pool, nil
			},
			service.NewJournal,
		),
		fx.Invoke(func(lc fx.Lifecycle, j *service.Journal, pool *pgxpool.Pool) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return j.Init(ctx)
				},
				OnStop: func(context.Context) error {
					if pool != nil {
						pool.Close()
					}
					return nil
				},
			})
		}),
	)
}
