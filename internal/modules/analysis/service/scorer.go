package service

import (
	"fmt"
	"math"
	"strings"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
)

const (
	// движку нужно минимум 60 свечей, иначе CALIBRATING
	minCandles = 60
	// макро-тренд классифицируем от 12 ресемпленных M5 свечей (час данных)
	macroMinBars = 12

	macroBoost = 20
)

// Scorer — чистый скоринг окна. Состояния нет: два вызова на одном окне
// дают идентичный результат.
type Scorer struct{}

func NewScorer() *Scorer { return &Scorer{} }

// Evaluate прогоняет окно через индикаторы, макро-тренд, четыре стратегии
// и вола-фильтр. Никогда не возвращает ошибку: плохое окно — это
// деградированный результат, не исключение.
func (sc *Scorer) Evaluate(w *models.Window) models.SignalDecision {
	if w == nil || w.Len() < minCandles {
		return models.SignalDecision{
			Direction:  models.DirCall,
			Confidence: 0,
			Values: map[string]string{
				"STATUS": "CALIBRATING",
				"ERROR":  "Need >60 candles",
			},
		}
	}

	snap := Compute(w)

	// макро-тренд по M5-ресемплу
	macro := sc.macroTrend(w)

	trendCall := EvaluateTrend(&snap, models.DirCall)
	trendPut := EvaluateTrend(&snap, models.DirPut)
	revCall := EvaluateReversal(&snap, models.DirCall)
	revPut := EvaluateReversal(&snap, models.DirPut)

	if macro == "BULL" {
		trendCall.Score += macroBoost
	}
	if macro == "BEAR" {
		trendPut.Score += macroBoost
	}

	maxCall := math.Max(trendCall.Score, revCall.Score)
	maxPut := math.Max(trendPut.Score, revPut.Score)

	direction := models.DirCall
	bestScore := maxCall
	family := models.StrategyTrend
	bestLog := trendCall.Log

	// Ничья уходит в CALL; внутри семьи ничья уходит в TREND.
	if maxPut > maxCall {
		direction = models.DirPut
		bestScore = maxPut
		if trendPut.Score >= revPut.Score {
			bestLog = trendPut.Log
		} else {
			family = models.StrategyReversal
			bestLog = revPut.Log
		}
	} else {
		if trendCall.Score >= revCall.Score {
			bestLog = trendCall.Log
		} else {
			family = models.StrategyReversal
			bestLog = revCall.Log
		}
	}

	confidence := bestScore
	advisory := "SAFE"

	vol := CheckVolatility(&snap)
	if !vol.Passed {
		confidence *= 0.5
		advisory = vol.Reason
		if advisory == "" {
			advisory = "CAUTION"
		}
	}

	confidence = helper.Round1(helper.Clamp(confidence, 40, 99))

	reason := "Neural Confluence"
	if len(bestLog) > 0 {
		top := bestLog
		if len(top) > 3 {
			top = top[:3]
		}
		reason = strings.Join(top, " + ")
	}

	volBps := 0.0
	if snap.Price > 0 {
		volBps = snap.ATR / snap.Price * 10000
	}

	scoreTrend, scoreMomentum := 0.0, 0.0
	if family == models.StrategyTrend {
		scoreTrend = bestScore
	} else {
		scoreMomentum = bestScore
	}

	return models.SignalDecision{
		Direction:  direction,
		Confidence: confidence,
		Strategy:   family,
		Reason:     reason,
		Advisory:   advisory,
		Values: map[string]string{
			"RSI":            fmt.Sprintf("%.1f", snap.RSI),
			"MFI":            fmt.Sprintf("%.1f", snap.MFI),
			"CCI":            fmt.Sprintf("%.0f", snap.CCI),
			"ADX":            fmt.Sprintf("%.0f", snap.ADX),
			"OSC":            fmt.Sprintf("RSI:%.0f CCI:%.0f", snap.RSI, snap.CCI),
			"TREND":          "M5:" + macro,
			"VOL":            fmt.Sprintf("%.0f bps", volBps),
			"PATTERN":        snap.Patterns.Name(),
			"REASON":         reason,
			"MTG":            advisory,
			"STRATEGY":       family,
			"SCORE_TREND":    fmt.Sprintf("%.0f", scoreTrend),
			"SCORE_MOMENTUM": fmt.Sprintf("%.0f", scoreMomentum),
		},
	}
}

// macroTrend: M5-ресемпл, EMA20/EMA50 по closes.
// BULL когда close > ema20 > ema50, BEAR зеркально, иначе NEUTRAL.
func (sc *Scorer) macroTrend(w *models.Window) string {
	_, _, _, c := ResampleM5(w.Opens(), w.Highs(), w.Lows(), w.Closes())
	if len(c) < macroMinBars {
		return "NEUTRAL"
	}
	ema20 := EMA(c, 20)
	ema50 := EMA(c, 50)
	last := c[len(c)-1]
	switch {
	case last > ema20 && ema20 > ema50:
		return "BULL"
	case last < ema20 && ema20 < ema50:
		return "BEAR"
	default:
		return "NEUTRAL"
	}
}
