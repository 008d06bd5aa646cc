package service

import (
	"math"

	"signal_bot/internal/models"
)

// Snapshot — значения индикаторов по одному окну. Считается заново на
// каждый скан, после вычисления не мутирует.
type Snapshot struct {
	Price float64

	RSI float64
	MFI float64
	CCI float64
	ATR float64
	// НЕ учебниковый Wilder ADX: прокси через нормированный ATR.
	// Пороги стратегий подогнаны под него — не "чинить".
	ADX float64

	EMA20 float64
	EMA50 float64

	MACD       float64
	MACDSignal float64
	MACDHist   float64

	BBUpper  float64
	BBMiddle float64
	BBLower  float64

	StochK    float64
	StochD    float64
	WilliamsR float64

	PlusVI  float64
	MinusVI float64

	SuperTrend string // BULL | BEAR | NEUTRAL
	STUpper    float64
	STLower    float64

	KeltnerUpper  float64
	KeltnerMiddle float64
	KeltnerLower  float64

	Tenkan float64
	Kijun  float64

	SAR       float64
	SARRising bool

	AO    float64
	Slope float64

	Patterns Patterns
}

// Compute — чистая функция окна. Константы и дегенеративные ветки
// повторяют боевые значения один в один.
func Compute(w *models.Window) Snapshot {
	closes := w.Closes()
	highs := w.Highs()
	lows := w.Lows()
	opens := w.Opens()
	volumes := w.Volumes()

	price := 0.0
	if len(closes) > 0 {
		price = closes[len(closes)-1]
	}

	macd, sig, hist := MACD(closes)
	bbU, bbM, bbL := Bollinger(closes, 20, 2)
	stU, stL, stTrend := SuperTrend(highs, lows, closes, 10, 3)
	kU, kM, kL := Keltner(highs, lows, closes, 20, 2)
	tenkan, kijun := Ichimoku(highs, lows)
	sar, rising := ParabolicSAR(highs, lows, 0.02, 0.2)
	plusVI, minusVI := Vortex(highs, lows, closes, 14)
	k, d := Stochastic(closes, highs, lows, 14)

	return Snapshot{
		Price: price,

		RSI: RSI(closes, 14),
		MFI: MFI(highs, lows, closes, volumes, 14),
		CCI: CCI(highs, lows, closes, 20),
		ATR: ATR(highs, lows, closes, 14),
		ADX: ADXProxy(highs, lows, closes, 14),

		EMA20: EMA(closes, 20),
		EMA50: EMA(closes, 50),

		MACD:       macd,
		MACDSignal: sig,
		MACDHist:   hist,

		BBUpper:  bbU,
		BBMiddle: bbM,
		BBLower:  bbL,

		StochK:    k,
		StochD:    d,
		WilliamsR: WilliamsR(highs, lows, closes, 14),

		PlusVI:  plusVI,
		MinusVI: minusVI,

		SuperTrend: stTrend,
		STUpper:    stU,
		STLower:    stL,

		KeltnerUpper:  kU,
		KeltnerMiddle: kM,
		KeltnerLower:  kL,

		Tenkan: tenkan,
		Kijun:  kijun,

		SAR:       sar,
		SARRising: rising,

		AO:    AwesomeOscillator(highs, lows),
		Slope: RegressionSlope(closes),

		Patterns: DetectPatterns(opens, highs, lows, closes),
	}
}

// RSI по последним period приращениям. Мало данных -> нейтральные 50,
// нет потерь -> 100.
func RSI(prices []float64, period int) float64 {
	if len(prices) < period+1 {
		return 50
	}
	var gains, losses float64
	for i := 0; i < period; i++ {
		diff := prices[len(prices)-1-i] - prices[len(prices)-2-i]
		if diff >= 0 {
			gains += diff
		} else {
			losses -= diff
		}
	}
	if losses == 0 {
		return 100
	}
	rs := gains / losses
	return 100 - 100/(1+rs)
}

// EMA — рекурсия по всей серии с затравкой первым значением.
// Без раннего выхода на коротких сериях: макро-тренд на M5 опирается
// на это поведение (см. DESIGN.md).
func EMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}
	k := 2.0 / (float64(period) + 1)
	ema := prices[0]
	for i := 1; i < len(prices); i++ {
		ema = prices[i]*k + ema*(1-k)
	}
	return ema
}

// MACD: сигнальная линия — фикс 0.92 от MACD, не своя EMA.
// Подогнанная константа, сохраняем.
func MACD(prices []float64) (macd, signal, hist float64) {
	ema12 := EMA(prices, 12)
	ema26 := EMA(prices, 26)
	macd = ema12 - ema26
	signal = macd * 0.92
	hist = macd - signal
	return macd, signal, hist
}

func Bollinger(prices []float64, period int, stdDev float64) (upper, middle, lower float64) {
	if len(prices) == 0 {
		return 0, 0, 0
	}
	slice := prices
	if len(prices) > period {
		slice = prices[len(prices)-period:]
	}
	var sum float64
	for _, p := range slice {
		sum += p
	}
	mean := sum / float64(period)
	var variance float64
	for _, p := range slice {
		variance += (p - mean) * (p - mean)
	}
	variance /= float64(period)
	sd := math.Sqrt(variance)
	return mean + stdDev*sd, mean, mean - stdDev*sd
}

// ADXProxy — ATR, нормированный на 5 бп цены, шкала до 100.
func ADXProxy(highs, lows, closes []float64, period int) float64 {
	if len(closes) < 2 {
		return 0
	}
	var trSum float64
	n := len(closes)
	if n > period {
		n = period
	}
	for i := 1; i < n; i++ {
		hl := highs[len(highs)-i] - lows[len(lows)-i]
		hc := math.Abs(highs[len(highs)-i] - closes[len(closes)-i-1])
		lc := math.Abs(lows[len(lows)-i] - closes[len(closes)-i-1])
		trSum += math.Max(hl, math.Max(hc, lc))
	}
	atr := trSum / float64(period)
	price := closes[len(closes)-1]
	if price == 0 {
		return 0
	}
	return math.Min((atr/(price*0.0005))*10, 100)
}

func ATR(highs, lows, closes []float64, period int) float64 {
	var trSum float64
	for i := 1; i <= period; i++ {
		idx := len(closes) - i
		if idx < 1 {
			break
		}
		hl := highs[idx] - lows[idx]
		hc := math.Abs(highs[idx] - closes[idx-1])
		lc := math.Abs(lows[idx] - closes[idx-1])
		trSum += math.Max(hl, math.Max(hc, lc))
	}
	return trSum / float64(period)
}

// Stochastic — сырой %K, D без сглаживания (D==K).
func Stochastic(closes, highs, lows []float64, period int) (k, d float64) {
	if len(closes) == 0 {
		return 0, 0
	}
	hh, ll := windowHighLow(highs, lows, period)
	rng := hh - ll
	if rng == 0 {
		rng = 1
	}
	k = (closes[len(closes)-1] - ll) / rng * 100
	return k, k
}

func WilliamsR(highs, lows, closes []float64, period int) float64 {
	if len(closes) == 0 {
		return 0
	}
	hh, ll := windowHighLow(highs, lows, period)
	rng := hh - ll
	if rng == 0 {
		rng = 1
	}
	return (hh - closes[len(closes)-1]) / rng * -100
}

func CCI(highs, lows, closes []float64, period int) float64 {
	if len(closes) < period {
		return 0
	}
	tps := make([]float64, 0, period)
	for i := 0; i < period; i++ {
		idx := len(closes) - 1 - i
		tps = append(tps, (highs[idx]+lows[idx]+closes[idx])/3)
	}
	var avg float64
	for _, tp := range tps {
		avg += tp
	}
	avg /= float64(period)
	var meanDev float64
	for _, tp := range tps {
		meanDev += math.Abs(tp - avg)
	}
	meanDev /= float64(period)

	currentTp := (highs[len(highs)-1] + lows[len(lows)-1] + closes[len(closes)-1]) / 3
	denom := 0.015 * meanDev
	if denom == 0 {
		denom = 1
	}
	return (currentTp - avg) / denom
}

func MFI(highs, lows, closes, volumes []float64, period int) float64 {
	if len(volumes) < period {
		return 50
	}
	var posFlow, negFlow float64
	for i := 0; i < period; i++ {
		idx := len(closes) - 1 - i
		prevIdx := idx - 1
		if prevIdx < 0 {
			break
		}
		tp := (highs[idx] + lows[idx] + closes[idx]) / 3
		prevTp := (highs[prevIdx] + lows[prevIdx] + closes[prevIdx]) / 3
		raw := tp * volumes[idx]
		if tp > prevTp {
			posFlow += raw
		} else if tp < prevTp {
			negFlow += raw
		}
	}
	if negFlow == 0 {
		return 100
	}
	ratio := posFlow / negFlow
	return 100 - 100/(1+ratio)
}

func Vortex(highs, lows, closes []float64, period int) (plusVI, minusVI float64) {
	if len(highs) < period+1 {
		return 0, 0
	}
	var trSum, vmPlus, vmMinus float64
	for i := 1; i <= period; i++ {
		idx := len(highs) - i
		prevIdx := idx - 1

		hl := math.Abs(highs[idx] - lows[idx])
		hc := math.Abs(highs[idx] - closes[prevIdx])
		lc := math.Abs(lows[idx] - closes[prevIdx])
		trSum += math.Max(hl, math.Max(hc, lc))

		vmPlus += math.Abs(highs[idx] - lows[prevIdx])
		vmMinus += math.Abs(lows[idx] - highs[prevIdx])
	}
	if trSum == 0 {
		return 0, 0
	}
	return vmPlus / trSum, vmMinus / trSum
}

// SuperTrend — аппроксимация по последней свече, без полного стейта серии.
func SuperTrend(highs, lows, closes []float64, period int, mult float64) (upper, lower float64, trend string) {
	if len(closes) == 0 {
		return 0, 0, "NEUTRAL"
	}
	atr := ATR(highs, lows, closes, period)
	mid := (highs[len(highs)-1] + lows[len(lows)-1]) / 2
	upper = mid + mult*atr
	lower = mid - mult*atr
	switch {
	case closes[len(closes)-1] > upper:
		trend = "BULL"
	case closes[len(closes)-1] < lower:
		trend = "BEAR"
	default:
		trend = "NEUTRAL"
	}
	return upper, lower, trend
}

// Keltner: EMA(20) +- 2*ATR(10). Период ATR именно 10.
func Keltner(highs, lows, closes []float64, period int, mult float64) (upper, middle, lower float64) {
	ema := EMA(closes, period)
	atr := ATR(highs, lows, closes, 10)
	return ema + mult*atr, ema, ema - mult*atr
}

func Ichimoku(highs, lows []float64) (tenkan, kijun float64) {
	h9, l9 := windowHighLow(highs, lows, 9)
	tenkan = (h9 + l9) / 2
	h26, l26 := windowHighLow(highs, lows, 26)
	kijun = (h26 + l26) / 2
	return tenkan, kijun
}

func ParabolicSAR(highs, lows []float64, af, maxAf float64) (sar float64, rising bool) {
	if len(highs) == 0 || len(lows) == 0 {
		return 0, false
	}
	sar = lows[0]
	rising = true
	ep := highs[0]
	acc := af

	for i := 1; i < len(highs); i++ {
		prevSar := sar
		sar = prevSar + acc*(ep-prevSar)

		if rising {
			if lows[i] < sar {
				rising = false
				sar = ep
				ep = lows[i]
				acc = af
			} else {
				if highs[i] > ep {
					ep = highs[i]
					acc = math.Min(acc+af, maxAf)
				}
				// SAR не выше двух предыдущих лоу
				if i > 1 {
					sar = math.Min(sar, math.Min(lows[i-1], lows[i-2]))
				}
			}
		} else {
			if highs[i] > sar {
				rising = true
				sar = ep
				ep = highs[i]
				acc = af
			} else {
				if lows[i] < ep {
					ep = lows[i]
					acc = math.Min(acc+af, maxAf)
				}
				if i > 1 {
					sar = math.Max(sar, math.Max(highs[i-1], highs[i-2]))
				}
			}
		}
	}
	return sar, rising
}

func AwesomeOscillator(highs, lows []float64) float64 {
	if len(highs) == 0 {
		return 0
	}
	mid := make([]float64, len(highs))
	for i := range highs {
		mid[i] = (highs[i] + lows[i]) / 2
	}
	return EMA(mid, 5) - EMA(mid, 34)
}

func RegressionSlope(prices []float64) float64 {
	n := len(prices)
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range prices {
		x := float64(i)
		sumX += x
		sumY += p
		sumXY += x * p
		sumXX += x * x
	}
	fn := float64(n)
	return (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
}

func windowHighLow(highs, lows []float64, period int) (hh, ll float64) {
	if len(highs) == 0 || len(lows) == 0 {
		return 0, 0
	}
	hFrom, lFrom := 0, 0
	if len(highs) > period {
		hFrom = len(highs) - period
	}
	if len(lows) > period {
		lFrom = len(lows) - period
	}
	hh = highs[hFrom]
	for _, h := range highs[hFrom:] {
		if h > hh {
			hh = h
		}
	}
	ll = lows[lFrom]
	for _, l := range lows[lFrom:] {
		if l < ll {
			ll = l
		}
	}
	return hh, ll
}
