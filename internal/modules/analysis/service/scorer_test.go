package service

import (
	"testing"

	"signal_bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCalibrating(t *testing.T) {
	sc := NewScorer()

	for _, w := range []*models.Window{
		nil,
		flatWindow(0, 1),
		flatWindow(59, 1.08),
		risingWindow(59, 100, 0.01),
	} {
		dec := sc.Evaluate(w)
		assert.Equal(t, 0.0, dec.Confidence)
		assert.Equal(t, "CALIBRATING", dec.Values["STATUS"])
	}
}

func TestEvaluateConfidenceBounds(t *testing.T) {
	sc := NewScorer()
	dec := sc.Evaluate(risingWindow(100, 1.08, 0.003))
	assert.GreaterOrEqual(t, dec.Confidence, 40.0)
	assert.LessOrEqual(t, dec.Confidence, 99.0)
}

func TestEvaluateIdempotent(t *testing.T) {
	sc := NewScorer()
	w := risingWindow(100, 1.08, 0.002)

	first := sc.Evaluate(w)
	second := sc.Evaluate(w)

	assert.Equal(t, first.Direction, second.Direction)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Values, second.Values)
}

// Плоское окно: ATR около нуля, фильтр режет confidence, совет не SAFE.
func TestEvaluateFlatWindow(t *testing.T) {
	sc := NewScorer()
	dec := sc.Evaluate(flatWindow(100, 1.08))

	assert.LessOrEqual(t, dec.Confidence, 50.0)
	assert.NotEqual(t, "SAFE", dec.Advisory)
	assert.NotEqual(t, "SAFE", dec.Values["MTG"])
	assert.GreaterOrEqual(t, dec.Confidence, 40.0, "клэмп снизу")
}

// Монотонный рост: CALL через трендовую семью с макро-бустом.
func TestEvaluateRisingWindow(t *testing.T) {
	sc := NewScorer()
	dec := sc.Evaluate(risingWindow(100, 100, 0.003))

	require.Equal(t, models.DirCall, dec.Direction)
	assert.Equal(t, models.StrategyTrend, dec.Strategy)
	assert.Equal(t, "M5:BULL", dec.Values["TREND"])
	// 90 по правилам + 20 макро
	assert.Equal(t, "110", dec.Values["SCORE_TREND"])
	assert.Equal(t, "SAFE", dec.Advisory)
	assert.Equal(t, 99.0, dec.Confidence)
}

func TestEvaluateValuesShape(t *testing.T) {
	sc := NewScorer()
	dec := sc.Evaluate(risingWindow(100, 1.08, 0.002))

	for _, key := range []string{"RSI", "MFI", "CCI", "OSC", "TREND", "VOL", "PATTERN", "REASON", "MTG", "STRATEGY", "SCORE_TREND", "SCORE_MOMENTUM"} {
		assert.Contains(t, dec.Values, key)
	}
	assert.Contains(t, dec.Values["VOL"], " bps")
	assert.NotEmpty(t, dec.Reason)
}

func TestMacroTrendNeutralOnShortResample(t *testing.T) {
	sc := NewScorer()
	// 59 свечей не проходят даже минимальный порог движка
	dec := sc.Evaluate(risingWindow(59, 100, 0.003))
	assert.Equal(t, "CALIBRATING", dec.Values["STATUS"])
}
