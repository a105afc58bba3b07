package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes messages to the log instead of sending them. Used in
// local development when no delivery service is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "mail not sent (log provider)",
		"from", msg.From,
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
	)
	logger.DebugContext(ctx, "mail body", "text", msg.Text)
	return nil
}
