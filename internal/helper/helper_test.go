package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCryptoPair(t *testing.T) {
	assert.True(t, IsCryptoPair("BTC/USDT"))
	assert.True(t, IsCryptoPair("SOL/USDT"))
	assert.True(t, IsCryptoPair("BTCUSD_otc"))
	assert.False(t, IsCryptoPair("EUR/USD"))
	assert.False(t, IsCryptoPair("USDJPY_otc"))
}

func TestSymbolRoundTrip(t *testing.T) {
	assert.Equal(t, "BTCUSDT", ExchangeSymbol("BTC/USDT"))
	assert.Equal(t, "BTC/USDT", PairFromSymbol("BTCUSDT"))
	assert.Equal(t, "XAUUSD", PairFromSymbol("XAUUSD"))
}

func TestClampRound(t *testing.T) {
	assert.Equal(t, 40.0, Clamp(7.5, 40, 99))
	assert.Equal(t, 99.0, Clamp(130, 40, 99))
	assert.Equal(t, 87.5, Clamp(87.5, 40, 99))
	assert.Equal(t, 87.5, Round1(87.54))
}
