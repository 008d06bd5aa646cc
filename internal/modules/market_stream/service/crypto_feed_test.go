package service

import (
	"context"
	"testing"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"

	"github.com/stretchr/testify/require"
)

func TestCryptoStreamAlwaysOn(t *testing.T) {
	url, dials := refusingEndpoint(t)

	cfg := &config.Config{}
	cfg.Feeds = config.FeedsConfig{
		CryptoWSURL:   url,
		ReconnectBase: time.Millisecond,
		ReconnectMax:  2 * time.Millisecond,
	}

	out := make(chan models.PriceTick, 1)
	m := NewManager(cfg, tailHistory{}, out)
	// ни одной активной пары: выделенное соединение всё равно держится
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.runCrypto(ctx)

	require.Eventually(t, func() bool {
		return dials.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond, "стрим подключается и переподключается без активных пар")
}
