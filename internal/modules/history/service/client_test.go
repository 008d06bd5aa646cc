package service

import (
	"testing"

	"signal_bot/internal/modules/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestNewClientLimiterSustainedRate(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scan.RequestsPerSec = 5

	c := NewClient(cfg)
	// устойчивый темп N req/s, а не разовый burst с 1 req/s после него
	assert.Equal(t, rate.Limit(5), c.limiter.Limit())
	assert.Equal(t, 5, c.limiter.Burst())
}

func TestNewClientLimiterDefault(t *testing.T) {
	c := NewClient(&config.Config{})
	assert.Equal(t, rate.Limit(5), c.limiter.Limit())
	assert.Equal(t, 5, c.limiter.Burst())
}
