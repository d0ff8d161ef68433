package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cybervault/internal/common"
	"github.com/dmitrijs2005/cybervault/internal/logging"
	"github.com/wneessen/go-mail"
)

// SMTPConfig describes an SMTP submission server reached over implicit TLS.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	Timeout  time.Duration
}

// SMTPMailer dials the server for every message. There is no retry and no
// queue: the caller learns the outcome of each send.
type SMTPMailer struct {
	cfg    SMTPConfig
	logger logging.Logger
	dial   func(ctx context.Context, c *mail.Client, m *mail.Msg) error
}

func NewSMTPMailer(cfg SMTPConfig, l logging.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		logger: l.With("module", "mailer"),
		dial: func(ctx context.Context, c *mail.Client, m *mail.Msg) error {
			return c.DialAndSendWithContext(ctx, m)
		},
	}
}

func (s *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg, err := s.buildMessage(to, subject, body)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorMail, err)
	}

	client, err := s.newClient()
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorMail, err)
	}

	if err := s.dial(ctx, client, msg); err != nil {
		s.logger.Error(ctx, "mail delivery failed", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("%w: %w", common.ErrorMail, err)
	}

	s.logger.Info(ctx, "mail sent", "to", to, "subject", subject)
	return nil
}

func (s *SMTPMailer) buildMessage(to, subject, body string) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.cfg.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", s.cfg.Sender, err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	m.SetCharset(mail.CharsetUTF8)
	m.Subject(subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(mail.TypeTextPlain, body)
	return m, nil
}

func (s *SMTPMailer) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSSL(),
		mail.WithTimeout(s.cfg.Timeout),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return mail.NewClient(s.cfg.Host, opts...)
}
