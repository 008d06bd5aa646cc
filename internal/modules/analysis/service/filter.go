package service

// Вола-фильтр: мёртвый и перегретый рынок режут confidence вдвое.
// Границы в базисных пунктах ATR к цене.
const (
	minVolBps = 5
	maxVolBps = 150
)

type FilterResult struct {
	Passed bool
	Reason string
}

func CheckVolatility(s *Snapshot) FilterResult {
	if s.Price <= 0 {
		return FilterResult{Passed: false, Reason: "NO PRICE"}
	}
	bps := s.ATR / s.Price * 10000
	if bps < minVolBps {
		return FilterResult{Passed: false, Reason: "LOW VOLATILITY - DEAD MARKET"}
	}
	if bps > maxVolBps {
		return FilterResult{Passed: false, Reason: "EXTREME VOLATILITY"}
	}
	return FilterResult{Passed: true}
}
