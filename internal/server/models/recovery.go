// Package models defines server-side data models persisted in the database.
package models

import "time"

// RecoveryRecord is the recovery material registered for one email.
// Question and answer hold ciphertext produced by cryptox.Engine; both are
// empty when no recovery info was configured.
type RecoveryRecord struct {
	Email                      string
	SecurityQuestionCiphertext string
	SecurityAnswerCiphertext   string
	CreatedAt                  time.Time
}

// VaultBlob is the singleton row holding the client-encrypted vault.
type VaultBlob struct {
	Blob      string
	UpdatedAt time.Time
}
