package service

import (
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	feedhub "signal_bot/internal/modules/feed_hub/service"
	healthsvc "signal_bot/internal/modules/health/service"
)

// Activator включает рабочий watchlist в транспорте на старте процесса
// и отмечает готовность в health, когда фиды получили список.
type Activator struct {
	cfg   config.ScanConfig
	hub   *feedhub.Hub
	state *healthsvc.State
}

func NewActivator(cfg *config.Config, hub *feedhub.Hub, state *healthsvc.State) *Activator {
	return &Activator{cfg: cfg.Scan, hub: hub, state: state}
}

// Activate отдаёт watchlist транспорту и вешает wildcard-подписку,
// чтобы health видел живой поток тиков.
func (a *Activator) Activate() []string {
	pairs := a.cfg.Watchlist
	if len(pairs) == 0 {
		pairs = models.Watchlist(a.cfg.Market)
	}

	a.hub.UpdateActivePairs(pairs)
	a.hub.Subscribe(feedhub.WildcardKey, func(models.PriceTick) {
		a.state.TouchTick(time.Now())
	})
	a.state.SetReady(true)
	return pairs
}
