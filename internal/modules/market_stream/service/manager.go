package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"

	"github.com/gorilla/websocket"
)

// Имена логических фидов в карте состояний.
const (
	feedGeneric = "generic"
	feedCrypto  = "crypto"
)

// HistoryClient — хвост свечей для HTTP-поллинга, когда generic-сокет лёг.
type HistoryClient interface {
	Candles(ctx context.Context, pair string, count int) ([]models.Candle, error)
}

// Manager — транспорт real-time котировок. Два независимых фида:
// generic-сокет с бюджетом ретраев и фолбэком на поллинг, и крипто-стрим
// биржи с бесконечным reconnect. Наружу оба сливаются в один канал тиков.
type Manager struct {
	cfg  config.FeedsConfig
	hist HistoryClient
	out  chan<- models.PriceTick

	dialer *websocket.Dialer

	mu       sync.Mutex
	active   map[string]struct{}
	states   map[string]models.FeedState
	inFlight map[string]bool // поллинг: не больше одного запроса на пару

	wakeGeneric chan struct{}
}

func NewManager(cfg *config.Config, hist HistoryClient, out chan<- models.PriceTick) *Manager {
	return &Manager{
		cfg:    cfg.Feeds,
		hist:   hist,
		out:    out,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		active: make(map[string]struct{}),
		states: map[string]models.FeedState{
			feedGeneric: {Status: models.StatusDisconnected},
			feedCrypto:  {Status: models.StatusDisconnected},
		},
		inFlight:    make(map[string]bool),
		wakeGeneric: make(chan struct{}, 1),
	}
}

// Start поднимает оба фида. Живут до отмены ctx.
func (m *Manager) Start(ctx context.Context) {
	go m.runGeneric(ctx)
	go m.runCrypto(ctx)
}

// SetActivePairs заменяет набор инструментов целиком.
func (m *Manager) SetActivePairs(pairs []string) {
	m.mu.Lock()
	m.active = make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		m.active[p] = struct{}{}
	}
	m.mu.Unlock()
	m.wake()
}

func (m *Manager) Activate(pair string) {
	m.mu.Lock()
	m.active[pair] = struct{}{}
	m.mu.Unlock()
	m.wake()
}

func (m *Manager) Deactivate(pair string) {
	m.mu.Lock()
	delete(m.active, pair)
	m.mu.Unlock()
	m.wake()
}

// States — снапшот состояния фидов.
func (m *Manager) States() map[string]models.FeedState {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]models.FeedState, len(m.states))
	for k, v := range m.states {
		out[k] = v
	}
	return out
}

// wake будит generic-фид: крипто-стрим постоянный и на состав пар
// не реагирует, фильтрация у него на чтении.
func (m *Manager) wake() {
	select {
	case m.wakeGeneric <- struct{}{}:
	default:
	}
}

func (m *Manager) setState(feed string, st models.ConnStatus, attempts int) {
	m.mu.Lock()
	m.states[feed] = models.FeedState{Status: st, Attempts: attempts}
	m.mu.Unlock()
}

func (m *Manager) isActive(pair string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.active[pair]
	return ok
}

// genericPairs — активные инструменты generic-провайдера, отсортированы
// для стабильного subscribe-сообщения.
func (m *Manager) genericPairs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.active))
	for p := range m.active {
		if !helper.IsCryptoPair(p) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// publish отдаёт тик потребителю. Медленный потребитель не должен
// стопорить read-loop сокета, лишний тик дешевле дропнуть.
func (m *Manager) publish(t models.PriceTick) {
	select {
	case m.out <- t:
	default:
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (m *Manager) waitWake(ctx context.Context, wake <-chan struct{}) bool {
	select {
	case <-ctx.Done():
		return false
	case <-wake:
		return true
	}
}
