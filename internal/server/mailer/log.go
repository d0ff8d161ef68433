package mailer

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/cybervault/internal/common"
	"github.com/dmitrijs2005/cybervault/internal/logging"
)

// LogMailer stands in for SMTP when mail is disabled. It records that a
// message would have been sent and reports success. Bodies are never
// logged: recovery mail carries the plaintext answer.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(l logging.Logger) *LogMailer {
	return &LogMailer{logger: l.With("module", "mailer")}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return common.ErrorMail
	}
	m.logger.Info(ctx, "mail disabled, not sent", "to", to, "subject", subject, "body_bytes", len(body))
	return nil
}
