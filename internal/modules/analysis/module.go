package analysis

import (
	"signal_bot/internal/modules/analysis/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("analysis",
		fx.Provide(
			service.NewScorer,
		),
	)
}
