package models

import "time"

type Direction string

const (
	DirCall Direction = "CALL"
	DirPut  Direction = "PUT"
)

const (
	StrategyTrend    = "TREND"
	StrategyReversal = "REVERSAL"
)

// SignalDecision — результат скоринга одного окна.
type SignalDecision struct {
	Direction  Direction
	Confidence float64
	Strategy   string // TREND | REVERSAL
	Reason     string
	Advisory   string // SAFE либо причина провала вола-фильтра
	Values     map[string]string
}

// SignalCandidate — кандидат по одному инструменту внутри скана.
// Degraded=true когда окно синтетическое (upstream не ответил).
type SignalCandidate struct {
	Pair     string
	Decision SignalDecision
	Price    float64
	History  []float64
	Degraded bool
}

// Signal — финальный сигнал, который уходит потребителям (нотифайер, журнал).
type Signal struct {
	Pair       string
	Direction  Direction
	Confidence float64
	Strategy   string
	Reasoning  string
	Expiry     string // всегда M1
	CreatedAt  time.Time
	EntryAt    time.Time // CreatedAt + 1m
	Values     map[string]string
	Degraded   bool
}

// PairMetrics — метрики инструмента после полного обхода рынка.
type PairMetrics struct {
	ADX        float64
	RSI        float64
	VolBps     float64
	Confidence float64
	Updated    time.Time
}
