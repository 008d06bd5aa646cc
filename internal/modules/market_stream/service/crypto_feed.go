package service

import (
	"context"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/gorilla/websocket"
)

// runCrypto — all-tickers стрим биржи. Выделенное постоянное соединение:
// сервер сам шлёт весь рынок, подписка не нужна, фильтруем по активным
// парам на своей стороне. Фолбэка нет, reconnect бесконечный; HTTP-историю
// крипта получает только в скане.
func (m *Manager) runCrypto(ctx context.Context) {
	bo := newReconnectBackoff(m.cfg.ReconnectBase, m.cfg.ReconnectMax)
	attempts := 0

	for ctx.Err() == nil {
		m.setState(feedCrypto, models.StatusConnecting, attempts)
		conn, _, err := m.dialer.DialContext(ctx, m.cfg.CryptoWSURL, nil)
		if err != nil {
			attempts++
			logger.Warn("[WS] crypto dial failed (attempt %d): %v", attempts, err)
			if !sleepCtx(ctx, bo.NextBackOff()) {
				return
			}
			continue
		}

		attempts = 0
		bo.Reset()
		m.setState(feedCrypto, models.StatusConnected, 0)
		logger.Info("[WS] crypto connected: %s", m.cfg.CryptoWSURL)

		m.serveCrypto(ctx, conn)
		m.setState(feedCrypto, models.StatusDisconnected, 0)

		if !sleepCtx(ctx, bo.NextBackOff()) {
			return
		}
		attempts = 1
	}
}

func (m *Manager) serveCrypto(ctx context.Context, conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("[WS] crypto read error: %v", err)
			}
			return
		}
		for _, tick := range ParseMiniTickers(msg) {
			if !m.isActive(tick.Pair) {
				continue
			}
			m.publish(tick)
		}
	}
}
