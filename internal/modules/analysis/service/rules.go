package service

import "signal_bot/internal/models"

// StrategyResult — счёт одной стратегии плюс упорядоченный лог
// сработавших условий (порядок = порядок правил, не вклад в счёт).
type StrategyResult struct {
	Score float64
	Log   []string
}

type rule struct {
	name   string
	weight float64
	match  func(s *Snapshot) bool
}

func evalRules(s *Snapshot, rules []rule) StrategyResult {
	var res StrategyResult
	for _, r := range rules {
		if r.match(s) {
			res.Score += r.weight
			res.Log = append(res.Log, r.name)
		}
	}
	return res
}

var trendCallRules = []rule{
	{"EMA STACK BULL", 25, func(s *Snapshot) bool { return s.Price > s.EMA20 && s.EMA20 > s.EMA50 }},
	{"MACD MOMENTUM UP", 15, func(s *Snapshot) bool { return s.MACDHist > 0 }},
	{"SUPERTREND BULL", 15, func(s *Snapshot) bool { return s.SuperTrend == "BULL" }},
	{"SAR BELOW PRICE", 10, func(s *Snapshot) bool { return s.SARRising }},
	{"VORTEX +VI DOMINANT", 10, func(s *Snapshot) bool { return s.PlusVI > s.MinusVI }},
	{"TENKAN OVER KIJUN", 10, func(s *Snapshot) bool { return s.Tenkan > s.Kijun }},
	{"ADX TRENDING", 10, func(s *Snapshot) bool { return s.ADX > 25 }},
	{"RSI BULL ZONE", 10, func(s *Snapshot) bool { return s.RSI > 50 && s.RSI <= 70 }},
	{"3-SOLDIERS", 10, func(s *Snapshot) bool { return s.Patterns.ThreeSoldiers }},
}

var trendPutRules = []rule{
	{"EMA STACK BEAR", 25, func(s *Snapshot) bool { return s.Price < s.EMA20 && s.EMA20 < s.EMA50 }},
	{"MACD MOMENTUM DOWN", 15, func(s *Snapshot) bool { return s.MACDHist < 0 }},
	{"SUPERTREND BEAR", 15, func(s *Snapshot) bool { return s.SuperTrend == "BEAR" }},
	{"SAR ABOVE PRICE", 10, func(s *Snapshot) bool { return !s.SARRising }},
	{"VORTEX -VI DOMINANT", 10, func(s *Snapshot) bool { return s.MinusVI > s.PlusVI }},
	{"KIJUN OVER TENKAN", 10, func(s *Snapshot) bool { return s.Tenkan < s.Kijun }},
	{"ADX TRENDING", 10, func(s *Snapshot) bool { return s.ADX > 25 }},
	{"RSI BEAR ZONE", 10, func(s *Snapshot) bool { return s.RSI >= 30 && s.RSI < 50 }},
	{"3-CROWS", 10, func(s *Snapshot) bool { return s.Patterns.ThreeCrows }},
}

var reversalCallRules = []rule{
	{"RSI OVERSOLD", 25, func(s *Snapshot) bool { return s.RSI < 30 }},
	{"STOCH OVERSOLD", 15, func(s *Snapshot) bool { return s.StochK < 20 }},
	{"CCI OVERSOLD", 15, func(s *Snapshot) bool { return s.CCI < -100 }},
	{"BB LOWER BREAK", 15, func(s *Snapshot) bool { return s.Price < s.BBLower }},
	{"W%R WASHOUT", 10, func(s *Snapshot) bool { return s.WilliamsR < -80 }},
	{"MFI DRAINED", 10, func(s *Snapshot) bool { return s.MFI < 20 }},
	{"M-STAR REVERSAL", 15, func(s *Snapshot) bool { return s.Patterns.MorningStar }},
	{"HAMMER", 10, func(s *Snapshot) bool { return s.Patterns.Hammer }},
	{"BULL ENGULF", 10, func(s *Snapshot) bool { return s.Patterns.Engulfing && s.Patterns.LastBull }},
}

var reversalPutRules = []rule{
	{"RSI OVERBOUGHT", 25, func(s *Snapshot) bool { return s.RSI > 70 }},
	{"STOCH OVERBOUGHT", 15, func(s *Snapshot) bool { return s.StochK > 80 }},
	{"CCI OVERBOUGHT", 15, func(s *Snapshot) bool { return s.CCI > 100 }},
	{"BB UPPER BREAK", 15, func(s *Snapshot) bool { return s.Price > s.BBUpper }},
	{"W%R EXHAUSTED", 10, func(s *Snapshot) bool { return s.WilliamsR > -20 }},
	{"MFI OVERHEATED", 10, func(s *Snapshot) bool { return s.MFI > 80 }},
	{"E-STAR REVERSAL", 15, func(s *Snapshot) bool { return s.Patterns.EveningStar }},
	{"S-STAR", 10, func(s *Snapshot) bool { return s.Patterns.ShootingStar }},
	{"BEAR ENGULF", 10, func(s *Snapshot) bool { return s.Patterns.Engulfing && !s.Patterns.LastBull }},
}

// EvaluateTrend — трендовая семья для одного направления.
func EvaluateTrend(s *Snapshot, dir models.Direction) StrategyResult {
	if dir == models.DirCall {
		return evalRules(s, trendCallRules)
	}
	return evalRules(s, trendPutRules)
}

// EvaluateReversal — контртрендовая семья.
func EvaluateReversal(s *Snapshot, dir models.Direction) StrategyResult {
	if dir == models.DirCall {
		return evalRules(s, reversalCallRules)
	}
	return evalRules(s, reversalPutRules)
}
