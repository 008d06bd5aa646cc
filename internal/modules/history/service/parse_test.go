package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCandlesObjects(t *testing.T) {
	raw := []byte(`[
		{"open":1.1,"high":1.3,"low":1.0,"close":1.2,"volume":10},
		{"o":"2.1","h":"2.3","l":"2.0","cl":"2.2","vol":"5"},
		{"price":3.2},
		{"open":9.9}
	]`)
	candles, err := ParseCandles(raw)
	require.NoError(t, err)
	// свеча без close дропается молча
	require.Len(t, candles, 3)

	assert.Equal(t, 1.2, candles[0].Close)
	assert.Equal(t, 10.0, candles[0].Volume)
	assert.Equal(t, 2.2, candles[1].Close, "строковые значения и алиасы")
	assert.Equal(t, 2.1, candles[1].Open)
	// отсутствующие h/l/o добираются из close
	assert.Equal(t, 3.2, candles[2].High)
	assert.Equal(t, 3.2, candles[2].Low)
}

func TestParseCandlesWrapped(t *testing.T) {
	raw := []byte(`{"candles":[{"close":1.5},{"close":1.6}]}`)
	candles, err := ParseCandles(raw)
	require.NoError(t, err)
	assert.Len(t, candles, 2)
	assert.Equal(t, 1.6, candles[1].Close)
}

func TestParseCandlesIndexed(t *testing.T) {
	raw := []byte(`[[1700000000,"1.1","1.3","1.0","1.2","7"]]`)
	candles, err := ParseCandles(raw)
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, 1.2, candles[0].Close)
	assert.Equal(t, 1.3, candles[0].High)
	assert.Equal(t, 7.0, candles[0].Volume)
}

func TestParseCandlesMalformed(t *testing.T) {
	_, err := ParseCandles([]byte(`{"foo":1}`))
	assert.Error(t, err)

	_, err = ParseCandles([]byte(`not json`))
	assert.Error(t, err)

	candles, err := ParseCandles([]byte(`[{"close":"abc"},{"close":2.0}]`))
	require.NoError(t, err)
	assert.Len(t, candles, 1, "нечисловой close дропается")
}

func TestParseKlines(t *testing.T) {
	raw := []byte(`[
		[1700000000000,"50000.1","50100.2","49900.3","50050.4","12.5",1700000059999],
		[1700000060000,"50050.4","50200.0","50000.0","50150.0","7.1",1700000119999]
	]`)
	candles, err := ParseKlines(raw)
	require.NoError(t, err)
	require.Len(t, candles, 2)
	assert.Equal(t, 50050.4, candles[0].Close)
	assert.Equal(t, 50100.2, candles[0].High)
	assert.Equal(t, 12.5, candles[0].Volume)
	assert.Equal(t, 50150.0, candles[1].Close)
}

func TestSyntheticWindow(t *testing.T) {
	w := SyntheticWindow("EURUSD_otc", 100)
	require.Equal(t, 100, w.Len())
	for _, c := range w.Candles {
		assert.InDelta(t, 1.08, c.Close, 0.01)
	}

	cw := SyntheticWindow("BTC/USDT", 100)
	assert.InDelta(t, 50000, cw.Last().Close, 100)
}
