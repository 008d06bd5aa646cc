package service

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// newReconnectBackoff — политика переподключения сокета: base·2^n с потолком,
// без джиттера и без дедлайна. Сбрасывать после успешного коннекта.
func newReconnectBackoff(base, max time.Duration) *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = base
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = max
	bo.MaxElapsedTime = 0
	bo.Reset()
	return bo
}
