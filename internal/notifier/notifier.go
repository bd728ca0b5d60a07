package notifier

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier delivers a rendered alert to a human.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

var (
	_ Notifier = (*TelegramNotifier)(nil)
	_ Notifier = (*LogNotifier)(nil)
)

// LogNotifier writes alerts to the log instead of delivering them. It stands
// in when no chat credentials are configured.
type LogNotifier struct {
	Logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Send(_ context.Context, text string) error {
	n.Logger.Warn().Str("alert", text).Msg("telegram credentials missing, alert not delivered")
	return nil
}
