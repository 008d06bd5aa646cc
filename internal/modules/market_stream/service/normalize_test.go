package service

import (
	"testing"

	"signal_bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenericFrame(t *testing.T) {
	ticks := ParseGenericFrame([]byte(`[
		{"pair":"EURUSD_otc","price":1.0812,"change":0.04},
		{"symbol":"GBPUSD_otc","close":"1.2701","chg":"-0.1"},
		{"asset":"USDJPY_otc","c":154.2},
		{"pair":"AUDUSD_otc"},
		{"price":2.0},
		"garbage"
	]`))
	require.Len(t, ticks, 3, "кадры без пары или цены дропаются")

	assert.Equal(t, models.PriceTick{Pair: "EURUSD_otc", Price: 1.0812, Change: 0.04}, ticks[0])
	assert.Equal(t, "GBPUSD_otc", ticks[1].Pair)
	assert.Equal(t, 1.2701, ticks[1].Price, "строковые числа тоже принимаем")
	assert.Equal(t, -0.1, ticks[1].Change)
	assert.Equal(t, 0.0, ticks[2].Change, "change опционален")
}

func TestParseGenericFrameShapes(t *testing.T) {
	single := ParseGenericFrame([]byte(`{"pair":"EURUSD_otc","price":1.08}`))
	require.Len(t, single, 1)

	wrapped := ParseGenericFrame([]byte(`{"data":[{"pair":"EURUSD_otc","price":1.08}]}`))
	require.Len(t, wrapped, 1)

	assert.Nil(t, ParseGenericFrame([]byte(`not json`)))
	assert.Nil(t, ParseGenericFrame([]byte(`42`)))
}

func TestParseMiniTickers(t *testing.T) {
	ticks := ParseMiniTickers([]byte(`[
		{"s":"BTCUSDT","c":"50500","o":"50000"},
		{"s":"ETHUSDT","c":"0","o":"3000"},
		{"s":"SOLUSDT","c":"abc","o":"100"}
	]`))
	require.Len(t, ticks, 1, "нулевая и нечисловая цена дропаются")

	assert.Equal(t, "BTC/USDT", ticks[0].Pair, "символ биржи мапится обратно в пару")
	assert.Equal(t, 50500.0, ticks[0].Price)
	assert.InDelta(t, 1.0, ticks[0].Change, 1e-9)
}

func TestTickFromCandles(t *testing.T) {
	tick, ok := TickFromCandles("EURUSD_otc", []models.Candle{
		{Close: 1.0800},
		{Close: 1.0854},
	})
	require.True(t, ok)
	assert.Equal(t, 1.0854, tick.Price)
	assert.InDelta(t, 0.5, tick.Change, 1e-9)

	// одна свеча — тик без change
	tick, ok = TickFromCandles("EURUSD_otc", []models.Candle{{Close: 1.08}})
	require.True(t, ok)
	assert.Equal(t, 0.0, tick.Change)

	_, ok = TickFromCandles("EURUSD_otc", nil)
	assert.False(t, ok)
}
