package service

import (
	"context"
	"sync"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	analysissvc "signal_bot/internal/modules/analysis/service"
	historysvc "signal_bot/internal/modules/history/service"
	"signal_bot/pkg/logger"

	"github.com/opentracing/opentracing-go"
	"golang.org/x/time/rate"
)

// HistoryClient — источник свечных окон для скана.
type HistoryClient interface {
	Window(ctx context.Context, pair string, count int) (*models.Window, error)
}

// Scanner — обход рынка: инструменты пачками, пачка параллельно, между
// пачками пауза, чтобы не душить upstream. Скан никогда не падает целиком:
// недоступная история подменяется синтетическим окном, кандидат помечается
// degraded.
type Scanner struct {
	cfg    config.ScanConfig
	hist   HistoryClient
	scorer *analysissvc.Scorer

	pacer *rate.Limiter // темп пачек

	mu      sync.Mutex
	metrics map[string]models.PairMetrics
}

func NewScanner(cfg *config.Config, hist HistoryClient, scorer *analysissvc.Scorer) *Scanner {
	pause := cfg.Scan.BatchPause
	if pause <= 0 {
		pause = 800 * time.Millisecond
	}
	return &Scanner{
		cfg:     cfg.Scan,
		hist:    hist,
		scorer:  scorer,
		pacer:   rate.NewLimiter(rate.Every(pause), 1),
		metrics: make(map[string]models.PairMetrics),
	}
}

// Scan обходит инструменты и возвращает кандидата по каждому,
// в порядке входного списка.
func (s *Scanner) Scan(ctx context.Context, pairs []string) ([]models.SignalCandidate, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "market_scan")
	span.SetTag("pairs", len(pairs))
	defer span.Finish()

	batchSize := s.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 3
	}

	out := make([]models.SignalCandidate, 0, len(pairs))
	for start := 0; start < len(pairs); start += batchSize {
		if err := s.pacer.Wait(ctx); err != nil {
			return out, err
		}

		end := start + batchSize
		if end > len(pairs) {
			end = len(pairs)
		}
		batch := pairs[start:end]

		results := make([]models.SignalCandidate, len(batch))
		var wg sync.WaitGroup
		for i, pair := range batch {
			wg.Add(1)
			go func(i int, pair string) {
				defer wg.Done()
				results[i] = s.scanPair(ctx, pair)
			}(i, pair)
		}
		wg.Wait()
		out = append(out, results...)
	}

	return out, ctx.Err()
}

// ScanPair — разовый скан одного инструмента.
func (s *Scanner) ScanPair(ctx context.Context, pair string) models.SignalCandidate {
	span, ctx := opentracing.StartSpanFromContext(ctx, "pair_scan")
	span.SetTag("pair", pair)
	defer span.Finish()

	return s.scanPair(ctx, pair)
}

func (s *Scanner) scanPair(ctx context.Context, pair string) models.SignalCandidate {
	count := s.cfg.CandleCount
	if count <= 0 {
		count = 100
	}

	degraded := false
	w, err := s.hist.Window(ctx, pair, count)
	if err != nil {
		logger.Warn("[SCAN] %s: history unavailable, synthetic window: %v", pair, err)
		w = historysvc.SyntheticWindow(pair, count)
		degraded = true
	}

	dec := s.scorer.Evaluate(w)
	s.storeMetrics(pair, w, dec)

	return models.SignalCandidate{
		Pair:     pair,
		Decision: dec,
		Price:    w.Last().Close,
		History:  w.Closes(),
		Degraded: degraded,
	}
}

// Best выбирает кандидата с максимальной уверенностью; при равенстве
// побеждает встреченный раньше. Калибрующиеся (confidence 0) не участвуют.
func Best(cands []models.SignalCandidate) (models.SignalCandidate, bool) {
	bestIdx := -1
	for i, c := range cands {
		if c.Decision.Confidence <= 0 {
			continue
		}
		if bestIdx < 0 || c.Decision.Confidence > cands[bestIdx].Decision.Confidence {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return models.SignalCandidate{}, false
	}
	return cands[bestIdx], true
}

func (s *Scanner) storeMetrics(pair string, w *models.Window, dec models.SignalDecision) {
	// калибрующиеся окна метрик не дают; порог тот же, что у скоринга
	if w.Len() < 60 {
		return
	}
	snap := analysissvc.Compute(w)
	volBps := 0.0
	if snap.Price > 0 {
		volBps = snap.ATR / snap.Price * 10000
	}

	s.mu.Lock()
	s.metrics[pair] = models.PairMetrics{
		ADX:        snap.ADX,
		RSI:        snap.RSI,
		VolBps:     volBps,
		Confidence: dec.Confidence,
		Updated:    time.Now(),
	}
	s.mu.Unlock()
}

// Metrics — снапшот метрик по инструментам после последнего обхода.
func (s *Scanner) Metrics() map[string]models.PairMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.PairMetrics, len(s.metrics))
	for k, v := range s.metrics {
		out[k] = v
	}
	return out
}
