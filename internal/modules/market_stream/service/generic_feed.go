package service

import (
	"context"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// runGeneric — цикл generic-сокета. Дисконнект стоит ретрая с экспоненциальной
// паузой; после MaxWSRetries подряд неудач сокет замораживается и включается
// HTTP-поллинг. Реконнект-таймер в режиме поллинга не тикает: дозвон
// возобновляется только после смены состава активных пар.
func (m *Manager) runGeneric(ctx context.Context) {
	bo := newReconnectBackoff(m.cfg.ReconnectBase, m.cfg.ReconnectMax)
	attempts := 0

	for ctx.Err() == nil {
		if len(m.genericPairs()) == 0 {
			attempts = 0
			bo.Reset()
			m.setState(feedGeneric, models.StatusDisconnected, 0)
			if !m.waitWake(ctx, m.wakeGeneric) {
				return
			}
			continue
		}

		m.setState(feedGeneric, models.StatusConnecting, attempts)
		conn, _, err := m.dialer.DialContext(ctx, m.cfg.GenericWSURL, nil)
		if err != nil {
			attempts++
			logger.Warn("[WS] generic dial failed (attempt %d): %v", attempts, err)
			if attempts >= m.cfg.MaxWSRetries {
				if !m.pollUntilWake(ctx, attempts) {
					return
				}
				attempts = 0
				bo.Reset()
				continue
			}
			if !sleepCtx(ctx, bo.NextBackOff()) {
				return
			}
			continue
		}

		attempts = 0
		bo.Reset()
		m.setState(feedGeneric, models.StatusConnected, 0)
		logger.Info("[WS] generic connected: %s", m.cfg.GenericWSURL)

		m.serveGeneric(ctx, conn)
		m.setState(feedGeneric, models.StatusDisconnected, 0)

		if !sleepCtx(ctx, bo.NextBackOff()) {
			return
		}
		attempts = 1
	}
}

// pollUntilWake держит HTTP-поллинг, пока не поменяется состав пар.
// false — процесс останавливается.
func (m *Manager) pollUntilWake(ctx context.Context, attempts int) bool {
	m.setState(feedGeneric, models.StatusPolling, attempts)
	logger.Warn("[WS] generic retry budget exhausted (%d attempts), dial frozen, polling engaged", attempts)

	// протухший wake от старого изменения пар уже ничего не значит:
	// поллинг читает актуальный список на каждом тике
	select {
	case <-m.wakeGeneric:
	default:
	}

	pctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go m.runPolling(pctx)

	return m.waitWake(ctx, m.wakeGeneric)
}

// serveGeneric — subscribe + read-loop одного соединения. Возврат = обрыв.
func (m *Manager) serveGeneric(ctx context.Context, conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()

	if err := m.subscribeGeneric(conn); err != nil {
		logger.Warn("[WS] generic subscribe failed: %v", err)
		return
	}

	// вотчер: закрыть сокет по ctx, пересабскрайб при смене пар
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = conn.Close()
				return
			case <-done:
				return
			case <-m.wakeGeneric:
				if err := m.subscribeGeneric(conn); err != nil {
					_ = conn.Close()
					return
				}
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("[WS] generic read error: %v", err)
			}
			return
		}
		for _, tick := range ParseGenericFrame(msg) {
			if !m.isActive(tick.Pair) {
				continue
			}
			m.publish(tick)
		}
	}
}

func (m *Manager) subscribeGeneric(conn *websocket.Conn) error {
	msg, err := sonic.Marshal(map[string]any{
		"action": "subscribe",
		"pairs":  m.genericPairs(),
	})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, msg)
}
