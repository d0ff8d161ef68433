// Package common defines sentinel errors shared by the storage, crypto,
// mail and transport layers of CyberVault. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Validation errors. Always local and never retried.
	ErrorInvalidInput = errors.New("invalid input")

	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorStorage  = errors.New("storage error")

	// Crypto errors stricter than the legacy decrypt fallback, e.g. a
	// malformed key file at startup.
	ErrorCrypto = errors.New("crypto failure")

	// Mail delivery errors.
	ErrorMail = errors.New("mail error")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
)
