package service

import (
	"sync"

	"signal_bot/internal/models"
)

// WildcardKey — подписка на весь рынок, а не на конкретный инструмент.
const WildcardKey = "ALL"

type TickFunc func(models.PriceTick)

// Transport — нижний слой, который хаб включает и выключает по факту
// наличия подписчиков.
type Transport interface {
	Activate(pair string)
	Deactivate(pair string)
	SetActivePairs(pairs []string)
	States() map[string]models.FeedState
}

// Subscription — хэндл подписки. Функции в Go несравнимы, поэтому
// отписка идёт по хэндлу, а не по колбэку.
type Subscription struct {
	key string
	fn  TickFunc
}

// Hub — фан-аут котировок. Держит последний тик по каждому инструменту
// и раздаёт его новым подписчикам синхронно при подписке; дальше подписчик
// получает живой поток. Порядок доставки = порядок регистрации,
// точные подписки раньше wildcard.
type Hub struct {
	transport Transport

	mu    sync.Mutex
	subs  map[string][]*Subscription
	cache map[string]models.PriceTick
}

func NewHub(transport Transport) *Hub {
	return &Hub{
		transport: transport,
		subs:      make(map[string][]*Subscription),
		cache:     make(map[string]models.PriceTick),
	}
}

// Subscribe регистрирует колбэк на инструмент (или WildcardKey).
// Первый подписчик инструмента активирует его в транспорте. Если по
// инструменту уже есть кэшированный тик, колбэк получает его до возврата.
func (h *Hub) Subscribe(pair string, fn TickFunc) *Subscription {
	sub := &Subscription{key: pair, fn: fn}

	h.mu.Lock()
	first := len(h.subs[pair]) == 0
	h.subs[pair] = append(h.subs[pair], sub)
	cached, hasCached := h.cache[pair]
	h.mu.Unlock()

	if first && pair != WildcardKey {
		h.transport.Activate(pair)
	}
	if hasCached {
		fn(cached)
	}
	return sub
}

// Unsubscribe снимает подписку. Последний ушедший подписчик инструмента
// деактивирует его в транспорте.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	list := h.subs[sub.key]
	found := false
	for i, s := range list {
		if s == sub {
			list = append(list[:i], list[i+1:]...)
			found = true
			break
		}
	}
	if len(list) == 0 {
		delete(h.subs, sub.key)
	} else {
		h.subs[sub.key] = list
	}
	last := found && len(list) == 0
	h.mu.Unlock()

	if last && sub.key != WildcardKey {
		h.transport.Deactivate(sub.key)
	}
}

// Publish кэширует тик и раздаёт его подписчикам: сперва точные,
// затем wildcard, в порядке регистрации. Колбэки зовутся вне лока.
func (h *Hub) Publish(t models.PriceTick) {
	h.mu.Lock()
	h.cache[t.Pair] = t
	targets := make([]*Subscription, 0, len(h.subs[t.Pair])+len(h.subs[WildcardKey]))
	targets = append(targets, h.subs[t.Pair]...)
	if t.Pair != WildcardKey {
		targets = append(targets, h.subs[WildcardKey]...)
	}
	h.mu.Unlock()

	for _, s := range targets {
		s.fn(t)
	}
}

// Cached — последний известный тик инструмента.
func (h *Hub) Cached(pair string) (models.PriceTick, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.cache[pair]
	return t, ok
}

// UpdateActivePairs заменяет рабочий набор инструментов транспорта целиком.
func (h *Hub) UpdateActivePairs(pairs []string) {
	h.transport.SetActivePairs(pairs)
}

// FeedStates — снапшот состояния фидов транспорта.
func (h *Hub) FeedStates() map[string]models.FeedState {
	return h.transport.States()
}
