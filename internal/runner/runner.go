package runner

import (
	"context"
	"fmt"
	"time"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	journalsvc "signal_bot/internal/modules/journal/service"
	scansvc "signal_bot/internal/modules/scanner/service"
	"signal_bot/internal/notify"
	"signal_bot/pkg/logger"
)

// Окно бинарного сигнала: экспирация M1, вход через минуту после выдачи.
const (
	signalExpiry = "M1"
	entryDelay   = time.Minute
)

// Manager — авто-скан по расписанию: обход watchlist, финализация лучшего
// кандидата в сигнал, журнал и рассылка. Ошибки журнала и нотифайера
// не валят цикл.
type Manager struct {
	cfg      config.ScanConfig
	scanner  *scansvc.Scanner
	journal  *journalsvc.Journal
	notifier *notify.Notifier
}

func NewManager(cfg *config.Config, scanner *scansvc.Scanner, journal *journalsvc.Journal, notifier *notify.Notifier) *Manager {
	return &Manager{
		cfg:      cfg.Scan,
		scanner:  scanner,
		journal:  journal,
		notifier: notifier,
	}
}

// Watchlist — рабочий список инструментов: из конфига, иначе дефолт рынка.
func (m *Manager) Watchlist() []string {
	if len(m.cfg.Watchlist) > 0 {
		return m.cfg.Watchlist
	}
	return models.Watchlist(m.cfg.Market)
}

// Finalize превращает кандидата в сигнал для потребителей.
func Finalize(c models.SignalCandidate, now time.Time) models.Signal {
	dec := c.Decision
	return models.Signal{
		Pair:       c.Pair,
		Direction:  dec.Direction,
		Confidence: dec.Confidence,
		Strategy:   dec.Strategy,
		Reasoning: fmt.Sprintf("STRATEGY: %s. TREND: %s. (MTG: %s)",
			dec.Strategy, dec.Values["TREND"], dec.Advisory),
		Expiry:    signalExpiry,
		CreatedAt: now,
		EntryAt:   now.Add(entryDelay),
		Values:    dec.Values,
		Degraded:  c.Degraded,
	}
}

// RunOnce — один полный цикл: скан, выбор лучшего, журнал, рассылка.
// Возвращает nil без ошибки, когда весь рынок калибруется.
func (m *Manager) RunOnce(ctx context.Context) (*models.Signal, error) {
	pairs := m.Watchlist()
	cands, err := m.scanner.Scan(ctx, pairs)
	if err != nil {
		return nil, err
	}

	best, ok := scansvc.Best(cands)
	if !ok {
		logger.Info("[RUNNER] scan finished, no candidate above calibration")
		return nil, nil
	}

	sig := Finalize(best, time.Now())
	logger.Info("[RUNNER] signal %s %s conf=%.1f strategy=%s degraded=%v",
		sig.Pair, sig.Direction, sig.Confidence, sig.Strategy, sig.Degraded)

	if err := m.journal.Record(ctx, sig); err != nil {
		logger.Error("[RUNNER] journal: %v", err)
	}
	if err := m.notifier.SendSignal(ctx, sig); err != nil {
		logger.Error("[RUNNER] notify: %v", err)
	}
	return &sig, nil
}

// Start крутит авто-скан с интервалом из конфига. Interval <= 0 — выключено.
func (m *Manager) Start(ctx context.Context) {
	if m.cfg.Interval <= 0 {
		logger.Info("[RUNNER] periodic scan disabled")
		return
	}

	go func() {
		t := time.NewTicker(m.cfg.Interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if _, err := m.RunOnce(ctx); err != nil && ctx.Err() == nil {
					logger.Error("[RUNNER] scan cycle: %v", err)
				}
			}
		}
	}()
}
