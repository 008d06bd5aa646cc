package notify

import (
	"context"
	"fmt"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier — доставка сигналов в Telegram. Без токена работает вхолостую:
// бот опционален, движок без него жить обязан.
type Notifier struct {
	bot    *tgbot.BotAPI
	chatID int64
}

func NewNotifier(cfg *config.Config) (*Notifier, error) {
	if cfg.Telegram.Token == "" {
		logger.Warn("[NOTIFY] telegram token is empty, notifications disabled")
		return &Notifier{}, nil
	}

	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Notifier{bot: b, chatID: cfg.Telegram.ChatID}, nil
}

func (n *Notifier) Enabled() bool { return n != nil && n.bot != nil }

func (n *Notifier) Send(_ context.Context, msg string) error {
	if !n.Enabled() {
		return nil
	}
	_, err := n.bot.Send(tgbot.NewMessage(n.chatID, msg))
	return err
}

func (n *Notifier) Sendf(ctx context.Context, format string, args ...any) error {
	return n.Send(ctx, fmt.Sprintf(format, args...))
}

// SendSignal — карточка сигнала.
func (n *Notifier) SendSignal(ctx context.Context, sig models.Signal) error {
	if !n.Enabled() {
		return nil
	}

	arrow := "🟢"
	if sig.Direction == models.DirPut {
		arrow = "🔴"
	}
	degraded := ""
	if sig.Degraded {
		degraded = "\n⚠️ источник данных деградировал, окно синтетическое"
	}

	msg := fmt.Sprintf(
		"%s *%s* %s\n"+
			"Уверенность: %.1f%%\n"+
			"Экспирация: %s (вход %s)\n"+
			"%s%s",
		arrow, sig.Pair, sig.Direction,
		sig.Confidence,
		sig.Expiry, sig.EntryAt.Format("15:04:05"),
		sig.Reasoning, degraded,
	)

	m := tgbot.NewMessage(n.chatID, msg)
	m.ParseMode = tgbot.ModeMarkdown
	_, err := n.bot.Send(m)
	return err
}
