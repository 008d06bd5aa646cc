package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"signal_bot/internal/models"
	analysissvc "signal_bot/internal/modules/analysis/service"
	"signal_bot/internal/modules/config"
	historysvc "signal_bot/internal/modules/history/service"
	scansvc "signal_bot/internal/modules/scanner/service"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
)

// Разовый ручной обход рынка без поднятия всего приложения:
// go run ./cmd/scan -market OTC
// go run ./cmd/scan EURUSD_otc GBPUSD_otc
func main() {
	market := flag.String("market", "", "OTC | REAL (default from config)")
	timeout := flag.Duration("timeout", 5*time.Minute, "total scan deadline")
	flag.Parse()

	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	logger.SetServiceName("signal_bot_scan")

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	if *market != "" {
		cfg.Scan.Market = *market
	}

	pairs := flag.Args()
	if len(pairs) == 0 {
		pairs = cfg.Scan.Watchlist
	}
	if len(pairs) == 0 {
		pairs = models.Watchlist(cfg.Scan.Market)
	}

	scanner := scansvc.NewScanner(cfg, historysvc.NewClient(cfg), analysissvc.NewScorer())

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cands, err := scanner.Scan(ctx, pairs)
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range cands {
		mark := ""
		if c.Degraded {
			mark = " (degraded)"
		}
		fmt.Printf("%-12s %-4s %5.1f%% %-8s %s%s\n",
			c.Pair, c.Decision.Direction, c.Decision.Confidence,
			c.Decision.Strategy, c.Decision.Advisory, mark)
	}

	best, ok := scansvc.Best(cands)
	if !ok {
		fmt.Println("no candidate above calibration")
		os.Exit(1)
	}

	sig := runner.Finalize(best, time.Now())
	fmt.Printf("\nBEST: %s %s %.1f%% — %s\n", sig.Pair, sig.Direction, sig.Confidence, sig.Reasoning)
}
