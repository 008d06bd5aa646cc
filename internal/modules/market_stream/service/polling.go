package service

import (
	"context"
	"time"

	"signal_bot/pkg/logger"
)

// Хвост окна на один poll: последняя свеча + база для change.
const pollTailCandles = 5

// runPolling — HTTP-фолбэк generic-фида: раз в PollInterval опрашивает хвост
// свечей по каждой активной паре. Запросы конкурентные, но на пару не больше
// одного in-flight — отстающий upstream не должен копить очередь.
func (m *Manager) runPolling(ctx context.Context) {
	logger.Warn("[FEED] generic socket is down, falling back to HTTP polling every %s", m.cfg.PollInterval)

	t := time.NewTicker(m.cfg.PollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			for _, pair := range m.genericPairs() {
				if !m.beginPoll(pair) {
					continue
				}
				go m.pollPair(ctx, pair)
			}
		}
	}
}

func (m *Manager) pollPair(ctx context.Context, pair string) {
	defer m.endPoll(pair)

	cctx, cancel := context.WithTimeout(ctx, m.cfg.FetchTimeout)
	defer cancel()

	candles, err := m.hist.Candles(cctx, pair, pollTailCandles)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("[FEED] poll %s: %v", pair, err)
		}
		return
	}
	if tick, ok := TickFromCandles(pair, candles); ok {
		m.publish(tick)
	}
}

func (m *Manager) beginPoll(pair string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight[pair] {
		return false
	}
	m.inFlight[pair] = true
	return true
}

func (m *Manager) endPoll(pair string) {
	m.mu.Lock()
	delete(m.inFlight, pair)
	m.mu.Unlock()
}
