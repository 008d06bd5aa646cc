package service

import (
	"context"
	"os"
	"sync"
	"testing"

	"signal_bot/internal/models"
	analysissvc "signal_bot/internal/modules/analysis/service"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeHistory struct {
	mu    sync.Mutex
	fail  map[string]bool
	calls []string
}

func (f *fakeHistory) Window(_ context.Context, pair string, count int) (*models.Window, error) {
	f.mu.Lock()
	f.calls = append(f.calls, pair)
	f.mu.Unlock()

	if f.fail[pair] {
		return nil, errors.Wrap(models.ErrUpstreamUnavailable, pair)
	}

	w := models.NewWindow(pair, 0)
	price := 1.0
	for i := 0; i < count; i++ {
		next := price * 1.003
		w.Append(models.Candle{Open: price, High: next, Low: price, Close: next, Volume: 100})
		price = next
	}
	return w, nil
}

func newTestScanner(hist HistoryClient) *Scanner {
	cfg := &config.Config{}
	cfg.Scan = config.ScanConfig{BatchSize: 3, BatchPause: 1, CandleCount: 100}
	return NewScanner(cfg, hist, analysissvc.NewScorer())
}

func TestScanKeepsInputOrder(t *testing.T) {
	hist := &fakeHistory{}
	s := newTestScanner(hist)

	pairs := []string{"EURUSD_otc", "GBPUSD_otc", "USDJPY_otc", "AUDUSD_otc", "USDCAD_otc"}
	cands, err := s.Scan(context.Background(), pairs)
	require.NoError(t, err)
	require.Len(t, cands, len(pairs))

	for i, c := range cands {
		assert.Equal(t, pairs[i], c.Pair)
		assert.False(t, c.Degraded)
		assert.Len(t, c.History, 100)
		assert.Greater(t, c.Decision.Confidence, 0.0)
	}
}

func TestScanSyntheticFallback(t *testing.T) {
	hist := &fakeHistory{fail: map[string]bool{"GBPUSD_otc": true}}
	s := newTestScanner(hist)

	cands, err := s.Scan(context.Background(), []string{"EURUSD_otc", "GBPUSD_otc"})
	require.NoError(t, err)
	require.Len(t, cands, 2)

	assert.False(t, cands[0].Degraded)
	assert.True(t, cands[1].Degraded, "недоступный upstream даёт синтетику")
	assert.Len(t, cands[1].History, 100, "синтетическое окно полноразмерное")
	assert.Greater(t, cands[1].Price, 0.0)
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(&fakeHistory{})
	_, err := s.Scan(ctx, []string{"EURUSD_otc"})
	assert.Error(t, err)
}

func TestBest(t *testing.T) {
	cand := func(pair string, conf float64) models.SignalCandidate {
		return models.SignalCandidate{Pair: pair, Decision: models.SignalDecision{Confidence: conf}}
	}

	best, ok := Best([]models.SignalCandidate{
		cand("A", 72.5),
		cand("B", 91.0),
		cand("C", 91.0), // равенство — побеждает встреченный раньше
		cand("D", 40.0),
	})
	require.True(t, ok)
	assert.Equal(t, "B", best.Pair)

	// калибрующиеся не участвуют
	best, ok = Best([]models.SignalCandidate{cand("A", 0), cand("B", 45)})
	require.True(t, ok)
	assert.Equal(t, "B", best.Pair)

	_, ok = Best([]models.SignalCandidate{cand("A", 0)})
	assert.False(t, ok)

	_, ok = Best(nil)
	assert.False(t, ok)
}

func TestMetricsAtScoringFloor(t *testing.T) {
	hist := &fakeHistory{}
	cfg := &config.Config{}
	cfg.Scan = config.ScanConfig{BatchSize: 3, BatchPause: 1, CandleCount: 60}
	s := NewScanner(cfg, hist, analysissvc.NewScorer())

	cands, err := s.Scan(context.Background(), []string{"EURUSD_otc"})
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Greater(t, cands[0].Decision.Confidence, 0.0, "60 свечей уже скорятся")

	// окно, прошедшее скоринг, обязано попасть и в метрики
	assert.Contains(t, s.Metrics(), "EURUSD_otc")
}

func TestMetricsSweep(t *testing.T) {
	s := newTestScanner(&fakeHistory{})

	_, err := s.Scan(context.Background(), []string{"EURUSD_otc"})
	require.NoError(t, err)

	m := s.Metrics()
	require.Contains(t, m, "EURUSD_otc")
	assert.Greater(t, m["EURUSD_otc"].Confidence, 0.0)
	assert.False(t, m["EURUSD_otc"].Updated.IsZero())
}
