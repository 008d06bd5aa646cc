package models

// PriceTick — одно real-time обновление цены по инструменту.
// Эфемерный: хаб хранит только последний тик на инструмент.
type PriceTick struct {
	Pair   string
	Price  float64
	Change float64 // процент изменения
}

type ConnStatus int

const (
	StatusDisconnected ConnStatus = iota
	StatusConnecting
	StatusConnected
	StatusPolling // fallback после исчерпания ретраев
)

func (s ConnStatus) String() string {
	switch s {
	case StatusConnecting:
		return "CONNECTING"
	case StatusConnected:
		return "CONNECTED"
	case StatusPolling:
		return "POLLING"
	default:
		return "DISCONNECTED"
	}
}

// FeedState — состояние одного логического фида. Мутирует только
// транспортный менеджер, читатели получают снапшот.
type FeedState struct {
	Status   ConnStatus
	Attempts int
}
