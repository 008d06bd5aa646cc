package helper

import (
	"math"
	"strings"
)

// IsCryptoPair — эвристика классификации инструмента: крипта идёт через
// выделенный стрим биржи, остальное через generic-провайдер.
func IsCryptoPair(pair string) bool {
	return strings.Contains(pair, "/USDT") ||
		strings.Contains(pair, "BTC") ||
		strings.Contains(pair, "ETH") ||
		strings.Contains(pair, "BNB") ||
		strings.Contains(pair, "SOL")
}

// ExchangeSymbol: "BTC/USDT" -> "BTCUSDT".
func ExchangeSymbol(pair string) string {
	return strings.ReplaceAll(pair, "/", "")
}

// PairFromSymbol: "BTCUSDT" -> "BTC/USDT". Символы без USDT возвращаем как есть.
func PairFromSymbol(symbol string) string {
	if strings.HasSuffix(symbol, "USDT") {
		return strings.TrimSuffix(symbol, "USDT") + "/USDT"
	}
	return symbol
}

func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Round1 — округление до одного знака (точность confidence).
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
