package scanner

import (
	analysissvc "signal_bot/internal/modules/analysis/service"
	"signal_bot/internal/modules/config"
	historysvc "signal_bot/internal/modules/history/service"
	"signal_bot/internal/modules/scanner/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("scanner",
		fx.Provide(
			func(cfg *config.Config, hist *historysvc.Client, scorer *analysissvc.Scorer) *service.Scanner {
				return service.NewScanner(cfg, hist, scorer)
			},
		),
	)
}
