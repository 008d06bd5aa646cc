package service

import (
	"testing"

	"signal_bot/internal/models"

	"github.com/stretchr/testify/assert"
)

func flatWindow(n int, price float64) *models.Window {
	w := models.NewWindow("EURUSD_otc", 0)
	for i := 0; i < n; i++ {
		w.Append(models.Candle{Open: price, High: price, Low: price, Close: price})
	}
	return w
}

// полнотелые растущие свечи: open = close предыдущей, шаг stepPct
func risingWindow(n int, start, stepPct float64) *models.Window {
	w := models.NewWindow("EUR/USD", 0)
	price := start
	for i := 0; i < n; i++ {
		open := price
		price = price * (1 + stepPct)
		w.Append(models.Candle{Open: open, High: price, Low: open, Close: price})
	}
	return w
}

func TestRSIDegenerate(t *testing.T) {
	assert.Equal(t, 50.0, RSI([]float64{1, 2, 3}, 14), "мало данных -> нейтраль")

	up := make([]float64, 20)
	for i := range up {
		up[i] = float64(i)
	}
	assert.Equal(t, 100.0, RSI(up, 14), "нет потерь -> 100")
}

func TestRSIBounds(t *testing.T) {
	prices := []float64{10, 11, 10.5, 12, 11.8, 12.2, 12.1, 13, 12.7, 13.5, 13.2, 14, 13.8, 14.5, 14.2, 15}
	rsi := RSI(prices, 14)
	assert.GreaterOrEqual(t, rsi, 0.0)
	assert.LessOrEqual(t, rsi, 100.0)
}

func TestEMAConstantSeries(t *testing.T) {
	series := []float64{5, 5, 5, 5, 5, 5}
	assert.InDelta(t, 5.0, EMA(series, 3), 1e-12)
}

func TestMACDSignalRatio(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 + float64(i)*0.5
	}
	macd, signal, hist := MACD(prices)
	assert.InDelta(t, macd*0.92, signal, 1e-9, "сигнальная линия — фикс 0.92")
	assert.InDelta(t, macd*0.08, hist, 1e-9)
}

func TestADXProxyCap(t *testing.T) {
	// огромный размах свечей упирает прокси в 100
	highs := []float64{100, 200, 300, 400, 500}
	lows := []float64{50, 60, 70, 80, 90}
	closes := []float64{90, 180, 250, 350, 450}
	assert.Equal(t, 100.0, ADXProxy(highs, lows, closes, 14))

	flat := []float64{100, 100, 100, 100}
	assert.Equal(t, 0.0, ADXProxy(flat, flat, flat, 14))
}

func TestStochasticBounds(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	highs := []float64{2, 3, 4, 5, 6}
	lows := []float64{0, 1, 2, 3, 4}
	k, d := Stochastic(closes, highs, lows, 14)
	assert.GreaterOrEqual(t, k, 0.0)
	assert.LessOrEqual(t, k, 100.0)
	assert.Equal(t, k, d, "D без сглаживания")

	// нулевой размах не делит на ноль
	same := []float64{5, 5, 5}
	k, _ = Stochastic(same, same, same, 14)
	assert.Equal(t, 0.0, k)
}

func TestMFIDegenerate(t *testing.T) {
	h := []float64{1, 2, 3}
	assert.Equal(t, 50.0, MFI(h, h, h, []float64{1, 2}, 14), "мало объёмов -> 50")
}

func TestCCIZeroDeviation(t *testing.T) {
	flat := make([]float64, 30)
	for i := range flat {
		flat[i] = 7
	}
	assert.Equal(t, 0.0, CCI(flat, flat, flat, 20), "нулевая девиация не взрывается")
}

func TestVortexInsufficient(t *testing.T) {
	short := []float64{1, 2, 3}
	p, m := Vortex(short, short, short, 14)
	assert.Equal(t, 0.0, p)
	assert.Equal(t, 0.0, m)
}

func TestParabolicSARRising(t *testing.T) {
	w := risingWindow(30, 100, 0.01)
	sar, rising := ParabolicSAR(w.Highs(), w.Lows(), 0.02, 0.2)
	assert.True(t, rising)
	assert.Less(t, sar, w.Last().Close)
}

func TestDetectPatternsHammer(t *testing.T) {
	// длинный нижний фитиль, короткий верхний
	opens := []float64{10, 10.0}
	highs := []float64{10.5, 10.25}
	lows := []float64{9.8, 9.0}
	closes := []float64{10.2, 10.2}
	p := DetectPatterns(opens, highs, lows, closes)
	assert.True(t, p.Hammer)
	assert.False(t, p.ShootingStar)
}

func TestDetectPatternsDojiMarubozu(t *testing.T) {
	p := DetectPatterns(
		[]float64{10, 10.0},
		[]float64{11, 10.5},
		[]float64{9, 9.5},
		[]float64{10.1, 10.01},
	)
	assert.True(t, p.Doji)

	p = DetectPatterns(
		[]float64{10, 10.0},
		[]float64{11, 11.0},
		[]float64{9, 9.99},
		[]float64{10.1, 10.9},
	)
	assert.True(t, p.Marubozu)
}

func TestDetectPatternsEngulfing(t *testing.T) {
	// медвежья, затем бычья с телом шире
	opens := []float64{10.5, 9.8}
	highs := []float64{10.6, 10.8}
	lows := []float64{9.9, 9.7}
	closes := []float64{10.0, 10.7}
	p := DetectPatterns(opens, highs, lows, closes)
	assert.True(t, p.Engulfing)
	assert.True(t, p.LastBull)
}

func TestDetectPatternsMorningStar(t *testing.T) {
	// большая медвежья -> маленькая -> бычья выше середины первой
	opens := []float64{11.0, 10.05, 10.1}
	highs := []float64{11.05, 10.1, 10.9}
	lows := []float64{9.95, 9.95, 10.0}
	closes := []float64{10.0, 10.0, 10.8}
	p := DetectPatterns(opens, highs, lows, closes)
	assert.True(t, p.MorningStar)
	assert.Equal(t, "M-STAR", p.Name())
}

func TestDetectPatternsThreeSoldiers(t *testing.T) {
	w := risingWindow(3, 100, 0.01)
	p := DetectPatterns(w.Opens(), w.Highs(), w.Lows(), w.Closes())
	assert.True(t, p.ThreeSoldiers)
	assert.Equal(t, "3-SOLDIERS", p.Name())
}

func TestPatternNamePriority(t *testing.T) {
	p := Patterns{MorningStar: true, Hammer: true, Engulfing: true}
	assert.Equal(t, "M-STAR", p.Name())
	p = Patterns{Hammer: true, Engulfing: true}
	assert.Equal(t, "HAMMER", p.Name())
	assert.Equal(t, "NEUTRAL", Patterns{}.Name())
}

func TestResampleM5(t *testing.T) {
	// 7 свечей -> одна M5-группа из последних пяти, остаток спереди отброшен
	opens := []float64{1, 2, 3, 4, 5, 6, 7}
	highs := []float64{11, 12, 13, 14, 15, 16, 17}
	lows := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7}
	closes := []float64{1.5, 2.5, 3.5, 4.5, 5.5, 6.5, 7.5}

	o, h, l, c := ResampleM5(opens, highs, lows, closes)
	assert.Len(t, c, 1)
	assert.Equal(t, 3.0, o[0], "open первой свечи группы")
	assert.Equal(t, 7.5, c[0], "close последней")
	assert.Equal(t, 17.0, h[0])
	assert.Equal(t, 0.3, l[0])
}

func TestResampleM5TwoGroups(t *testing.T) {
	closes := make([]float64, 10)
	for i := range closes {
		closes[i] = float64(i)
	}
	o, _, _, c := ResampleM5(closes, closes, closes, closes)
	assert.Len(t, c, 2)
	assert.Equal(t, 0.0, o[0])
	assert.Equal(t, 4.0, c[0])
	assert.Equal(t, 9.0, c[1])
}
