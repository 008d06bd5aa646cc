package main

import (
	"log"

	"signal_bot/internal/modules/analysis"
	"signal_bot/internal/modules/bootstrap"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/feed_hub"
	"signal_bot/internal/modules/health"
	"signal_bot/internal/modules/history"
	"signal_bot/internal/modules/journal"
	"signal_bot/internal/modules/market_stream"
	"signal_bot/internal/modules/scanner"
	"signal_bot/internal/notify"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"

	"go.uber.org/fx"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	logger.SetServiceName("signal_bot")

	app := fx.New(
		fx.Provide(
			notify.NewNotifier,
		),
		fx.Invoke(func(cfg *config.Config) {
			if cfg.Jaeger.Host == "" {
				return
			}
			_, _, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				logger.Warn("[MAIN] jaeger init failed, tracing disabled: %v", err)
			}
		}),
		config.Module(),
		analysis.Module(),
		history.Module(),
		market_stream.Module(),
		feed_hub.Module(),
		scanner.Module(),
		journal.Module(),
		health.Module(),
		bootstrap.Module(),
		runner.Module(),
	)
	app.Run()
}
