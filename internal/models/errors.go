package models

import "github.com/pkg/errors"

// Таксономия ошибок ядра. Ни одна не фатальна для процесса:
// транспортные лечатся реконнектом, парсинг — дропом, недоступный
// upstream — синтетическим окном. Нехватка свечей ошибкой не считается,
// движок отвечает на неё калибровочным решением.
var (
	ErrMalformedPayload    = errors.New("malformed upstream payload")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
