// Package services contains the server-side operations behind the transport
// layer: recovery registration and retrieval, vault blob sync and status.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cybervault/internal/common"
	"github.com/dmitrijs2005/cybervault/internal/logging"
	"github.com/dmitrijs2005/cybervault/internal/server/mailer"
	"github.com/dmitrijs2005/cybervault/internal/server/repositories/repomanager"
)

// Cipher is the part of cryptox.Engine the services depend on.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) string
}

// RecoveryService registers recovery material and mails it back on request.
//
// Mail is handled with two policies. Registration confirmations are
// best-effort: the record is already durable and a delivery failure is only
// logged. Recovery and test mail are required: delivery is the operation, so
// its failure is returned as common.ErrorMail.
type RecoveryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cipher      Cipher
	mailer      mailer.Mailer
	publicHost  string
	logger      logging.Logger
}

func NewRecoveryService(db *sql.DB, m repomanager.RepositoryManager, c Cipher, ml mailer.Mailer, publicHost string, l logging.Logger) *RecoveryService {
	return &RecoveryService{
		db:          db,
		repomanager: m,
		cipher:      c,
		mailer:      ml,
		publicHost:  publicHost,
		logger:      l.With("module", "recovery"),
	}
}

// Register encrypts question and answer and stores them for email,
// replacing any earlier registration. Both may be empty.
func (s *RecoveryService) Register(ctx context.Context, email, question, answer string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	qc, err := s.cipher.Encrypt(question)
	if err != nil {
		s.logger.Error(ctx, "encrypting security question failed", "email", email, "error", err)
		return err
	}
	ac, err := s.cipher.Encrypt(answer)
	if err != nil {
		s.logger.Error(ctx, "encrypting security answer failed", "email", email, "error", err)
		return err
	}

	repo := s.repomanager.Recovery(s.db)
	if err := repo.Upsert(ctx, email, qc, ac); err != nil {
		s.logger.Error(ctx, "storing recovery record failed", "op", "register", "email", email, "error", err)
		return fmt.Errorf("%w: %w", common.ErrorStorage, err)
	}

	s.logger.Info(ctx, "recovery record registered", "email", email)

	msg, err := registrationMessage(email, s.publicHost)
	if err != nil {
		s.logger.Error(ctx, "rendering confirmation mail failed", "email", email, "error", err)
		return nil
	}
	s.deliverBestEffort(ctx, email, msg)
	return nil
}

// RequestRecovery mails the decrypted question and answer to email. It
// returns common.ErrorNotFound for an unknown email (nothing is sent) and
// common.ErrorMail when delivery fails.
func (s *RecoveryService) RequestRecovery(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	repo := s.repomanager.Recovery(s.db)
	rec, err := repo.Get(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Info(ctx, "recovery requested for unknown email", "email", email)
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "loading recovery record failed", "op", "request_recovery", "email", email, "error", err)
		return fmt.Errorf("%w: %w", common.ErrorStorage, err)
	}

	question := orPlaceholder(s.cipher.Decrypt(rec.SecurityQuestionCiphertext))
	answer := orPlaceholder(s.cipher.Decrypt(rec.SecurityAnswerCiphertext))

	msg, err := recoveryMessage(question, answer, s.publicHost)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	if err := s.deliverRequired(ctx, email, msg); err != nil {
		return err
	}

	s.logger.Info(ctx, "recovery mail sent", "email", email)
	return nil
}

// SendTestEmail sends a fixed test message to verify the mail setup.
func (s *RecoveryService) SendTestEmail(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	msg, err := testMessage(s.publicHost)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return s.deliverRequired(ctx, email, msg)
}

func (s *RecoveryService) deliverBestEffort(ctx context.Context, to string, m message) {
	if err := s.mailer.Send(ctx, to, m.Subject, m.Body); err != nil {
		s.logger.Warn(ctx, "confirmation mail not delivered", "email", to, "error", err)
	}
}

func (s *RecoveryService) deliverRequired(ctx context.Context, to string, m message) error {
	err := s.mailer.Send(ctx, to, m.Subject, m.Body)
	if err == nil {
		return nil
	}

	s.logger.Error(ctx, "mail delivery failed", "email", to, "subject", m.Subject, "error", err)
	if errors.Is(err, common.ErrorMail) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrorMail, err)
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", common.ErrorInvalidInput)
	}
	return nil
}
