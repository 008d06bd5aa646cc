package service

import (
	"strconv"
	"time"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"golang.org/x/time/rate"
)

// Нормализация входящих кадров в models.PriceTick. Schema-free: провайдеры
// меняют форму payload без предупреждения, поэтому разбираем в any и достаём
// поля по алиасам. Кадр без инструмента или цены дропается с warn-логом;
// лог троттлится, чтобы мусорный поток не заливал вывод.

var malformedWarn = rate.NewLimiter(rate.Every(10*time.Second), 1)

func warnMalformed(feed, what string) {
	if malformedWarn.Allow() {
		logger.Warn("[WS] %s: malformed frame dropped (%s)", feed, what)
	}
}

// ParseGenericFrame разбирает кадр generic-сокета: один объект либо массив
// объектов {pair|symbol|asset, price|close|c, change|chg}.
func ParseGenericFrame(raw []byte) []models.PriceTick {
	var v any
	if err := sonic.Unmarshal(raw, &v); err != nil {
		warnMalformed("generic", "bad json")
		return nil
	}

	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case map[string]any:
		// обёртка {data:[...]} либо одиночный тик
		if inner, ok := t["data"].([]any); ok {
			items = inner
		} else {
			items = []any{t}
		}
	default:
		warnMalformed("generic", "unexpected root type")
		return nil
	}

	out := make([]models.PriceTick, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			warnMalformed("generic", "non-object element")
			continue
		}
		pair := firstString(m, "pair", "symbol", "asset")
		price, okP := firstNumber(m, "price", "close", "c")
		if pair == "" || !okP || price <= 0 {
			warnMalformed("generic", "no pair or price")
			continue
		}
		change, _ := firstNumber(m, "change", "chg", "percent")
		out = append(out, models.PriceTick{Pair: pair, Price: price, Change: change})
	}
	return out
}

// ParseMiniTickers разбирает all-tickers кадр биржи: массив
// {s: символ, c: последняя цена, o: цена открытия за окно}.
// Change считаем сами: (c-o)/o·100.
func ParseMiniTickers(raw []byte) []models.PriceTick {
	var rows []struct {
		Symbol string `json:"s"`
		Close  string `json:"c"`
		Open   string `json:"o"`
	}
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		warnMalformed("crypto", "bad json")
		return nil
	}

	out := make([]models.PriceTick, 0, len(rows))
	for _, r := range rows {
		price, err := strconv.ParseFloat(r.Close, 64)
		if err != nil || price <= 0 {
			warnMalformed("crypto", "bad price in "+r.Symbol)
			continue
		}
		open, _ := strconv.ParseFloat(r.Open, 64)
		change := 0.0
		if open > 0 {
			change = (price - open) / open * 100
		}
		out = append(out, models.PriceTick{
			Pair:   helper.PairFromSymbol(r.Symbol),
			Price:  price,
			Change: change,
		})
	}
	return out
}

// TickFromCandles строит тик из хвоста свечного окна (поллинг):
// последняя свеча — цена, предпоследняя — база для change.
func TickFromCandles(pair string, candles []models.Candle) (models.PriceTick, bool) {
	if len(candles) == 0 {
		return models.PriceTick{}, false
	}
	last := candles[len(candles)-1]
	if last.Close <= 0 {
		return models.PriceTick{}, false
	}

	change := 0.0
	if len(candles) >= 2 {
		prev := candles[len(candles)-2].Close
		if prev > 0 {
			change = (last.Close - prev) / prev * 100
		}
	}
	return models.PriceTick{Pair: pair, Price: last.Close, Change: change}, true
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstNumber(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return t, true
		case string:
			if f, err := strconv.ParseFloat(t, 64); err == nil {
				return f, true
			}
		case int64:
			return float64(t), true
		}
	}
	return 0, false
}
