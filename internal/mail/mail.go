// Package mail delivers transactional email. Delivery is synchronous; callers
// decide what a failure means.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// VerificationMessage builds the email carrying a registration code.
func VerificationMessage(to, code string, ttl time.Duration) Message {
	return Message{
		To:      to,
		Subject: "Your verification code",
		Body: fmt.Sprintf("Your verification code is %s.\r\n\r\nIt expires in %d minutes. "+
			"If you did not try to create an account, ignore this email.\r\n", code, int(ttl.Minutes())),
	}
}

// LogMailer records that a message was due without sending it. The body
// carries verification codes and is never logged. Development only.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "mail not sent, no SMTP configured",
		"to", msg.To, "subject", msg.Subject)
	return nil
}

func stripCRLF(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
