package service

import (
	"strconv"

	"signal_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// ParseCandles разбирает гибкий формат generic-провайдера: массив свечей
// либо {candles:[...]}. Свеча — объект с алиасами полей или массив по
// индексам [_, o, h, l, c, v]. Обязателен только close; битые элементы
// молча пропускаются, пустые h/l/o добираются из close.
func ParseCandles(raw []byte) ([]models.Candle, error) {
	var root any
	if err := sonic.Unmarshal(raw, &root); err != nil {
		return nil, errors.Wrap(models.ErrMalformedPayload, err.Error())
	}

	var items []any
	switch v := root.(type) {
	case []any:
		items = v
	case map[string]any:
		inner, ok := v["candles"].([]any)
		if !ok {
			return nil, errors.Wrap(models.ErrMalformedPayload, "no candles field")
		}
		items = inner
	default:
		return nil, errors.Wrap(models.ErrMalformedPayload, "unexpected root type")
	}

	out := make([]models.Candle, 0, len(items))
	for _, item := range items {
		if c, ok := candleFromAny(item); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// ParseKlines — строки биржи [openTime, o, h, l, c, vol, ...].
func ParseKlines(raw []byte) ([]models.Candle, error) {
	var rows [][]any
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return nil, errors.Wrap(models.ErrMalformedPayload, err.Error())
	}

	out := make([]models.Candle, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		closeP, ok := toFloat(row[4])
		if !ok {
			continue
		}
		c := models.Candle{Close: closeP}
		if v, ok := toFloat(row[1]); ok {
			c.Open = v
		} else {
			c.Open = closeP
		}
		if v, ok := toFloat(row[2]); ok {
			c.High = v
		} else {
			c.High = closeP
		}
		if v, ok := toFloat(row[3]); ok {
			c.Low = v
		} else {
			c.Low = closeP
		}
		if len(row) >= 6 {
			if v, ok := toFloat(row[5]); ok {
				c.Volume = v
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func candleFromAny(item any) (models.Candle, bool) {
	switch v := item.(type) {
	case map[string]any:
		closeP, ok := firstFloat(v, "close", "price", "cl")
		if !ok {
			return models.Candle{}, false
		}
		c := models.Candle{Close: closeP}
		c.Open = floatOr(v, closeP, "open", "o")
		c.High = floatOr(v, closeP, "high", "h")
		c.Low = floatOr(v, closeP, "low", "l")
		c.Volume = floatOr(v, 0, "volume", "vol", "v")
		return c, true
	case []any:
		if len(v) < 5 {
			return models.Candle{}, false
		}
		closeP, ok := toFloat(v[4])
		if !ok {
			return models.Candle{}, false
		}
		c := models.Candle{Close: closeP}
		if f, ok := toFloat(v[1]); ok {
			c.Open = f
		} else {
			c.Open = closeP
		}
		if f, ok := toFloat(v[2]); ok {
			c.High = f
		} else {
			c.High = closeP
		}
		if f, ok := toFloat(v[3]); ok {
			c.Low = f
		} else {
			c.Low = closeP
		}
		if len(v) >= 6 {
			if f, ok := toFloat(v[5]); ok {
				c.Volume = f
			}
		}
		return c, true
	default:
		return models.Candle{}, false
	}
}

func firstFloat(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if raw, ok := m[k]; ok {
			if f, ok := toFloat(raw); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func floatOr(m map[string]any, def float64, keys ...string) float64 {
	if f, ok := firstFloat(m, keys...); ok {
		return f
	}
	return def
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
