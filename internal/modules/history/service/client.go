package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Client — выдача исторических окон OHLCV. Generic-провайдер и крипто-биржа
// за одним фасадом, маршрутизация по классификации инструмента.
type Client struct {
	httpc      *http.Client
	limiter    *rate.Limiter
	genericURL string
	cryptoURL  string
}

func NewClient(cfg *config.Config) *Client {
	rps := cfg.Scan.RequestsPerSec
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		httpc:      &http.Client{Timeout: cfg.Feeds.FetchTimeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
		genericURL: cfg.Feeds.GenericHTTPURL,
		cryptoURL:  cfg.Feeds.CryptoHTTPURL,
	}
}

// Window тянет свежее окно на count свечей. Ошибка не маскируется здесь:
// синтетический fallback — решение оркестратора, не клиента.
func (c *Client) Window(ctx context.Context, pair string, count int) (*models.Window, error) {
	var (
		candles []models.Candle
		err     error
	)
	if helper.IsCryptoPair(pair) {
		candles, err = c.Klines(ctx, pair, count)
	} else {
		candles, err = c.Candles(ctx, pair, count)
	}
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, errors.Wrap(models.ErrUpstreamUnavailable, pair)
	}

	w := models.NewWindow(pair, 0)
	w.Candles = candles
	return w, nil
}

// Candles — generic-эндпоинт: ?pair=X&timeframe=M1&count=N.
// Ответ либо массив свечей, либо {candles:[...]}, поля с алиасами.
func (c *Client) Candles(ctx context.Context, pair string, count int) ([]models.Candle, error) {
	u := fmt.Sprintf("%s?pair=%s&timeframe=M1&count=%d", c.genericURL, url.QueryEscape(pair), count)
	raw, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	candles, err := ParseCandles(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parse candles %s", pair)
	}
	return candles, nil
}

// Klines — крипто-история: ?symbol=BTCUSDT&interval=1m&limit=N,
// строки вида [openTime, o, h, l, c, vol, ...].
func (c *Client) Klines(ctx context.Context, pair string, count int) ([]models.Candle, error) {
	symbol := helper.ExchangeSymbol(pair)
	u := fmt.Sprintf("%s?symbol=%s&interval=1m&limit=%d", c.cryptoURL, symbol, count)
	raw, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	candles, err := ParseKlines(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parse klines %s", symbol)
	}
	return candles, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrap(models.ErrUpstreamUnavailable, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(models.ErrUpstreamUnavailable, "HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
