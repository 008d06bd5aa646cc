package service

import (
	"math/rand"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
)

// SyntheticWindow — плоско-случайное окно на случай недоступного upstream.
// Скан всегда обязан вернуть результат; кто получил такое окно, помечает
// кандидата как degraded.
func SyntheticWindow(pair string, n int) *models.Window {
	base, spread := 1.0800, 0.005
	if helper.IsCryptoPair(pair) {
		base, spread = 50000, 100
	}

	w := models.NewWindow(pair, 0)
	for i := 0; i < n; i++ {
		p := base + (rand.Float64()-0.5)*spread
		w.Append(models.Candle{Open: p, High: p, Low: p, Close: p})
	}
	return w
}
